// services/liturgy_service.go - Daily liturgy storage and reading lookup links
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"liturgia/models"
	"liturgia/verseparser"

	"gorm.io/gorm"
)

// brasilia is used to decide which liturgical day "today" is.
var brasilia = time.FixedZone("BRT", -3*60*60)

type LiturgyService struct {
	db         *gorm.DB
	normalizer *verseparser.Normalizer
	version    string
	now        func() time.Time
}

func NewLiturgyService(db *gorm.DB, normalizer *verseparser.Normalizer, version string) *LiturgyService {
	if normalizer == nil {
		normalizer = verseparser.New(verseparser.PortugueseBooks)
	}
	if version == "" {
		version = verseparser.DefaultVersion
	}
	return &LiturgyService{
		db:         db,
		normalizer: normalizer,
		version:    version,
		now:        time.Now,
	}
}

type ReadingInput struct {
	Kind     string `json:"kind"`
	Citation string `json:"citation"`
	Refrain  string `json:"refrain"`
	Text     string `json:"text"`
}

type LiturgyInput struct {
	Day      string         `json:"day"`
	Title    string         `json:"title"`
	Color    string         `json:"color"`
	Readings []ReadingInput `json:"readings"`
}

// ReadingView is a stored reading plus where to read it online.
type ReadingView struct {
	models.Reading
	Query     string                `json:"query"`
	LookupURL string                `json:"lookup_url"`
	Clauses   []*verseparser.Clause `json:"clauses,omitempty"`
}

type LiturgyView struct {
	ID       uint          `json:"id"`
	Day      string        `json:"day"`
	Title    string        `json:"title"`
	Color    string        `json:"color"`
	Readings []ReadingView `json:"readings"`
}

// Today returns the liturgical day for the current date in Brasília.
func (s *LiturgyService) Today() string {
	return s.now().In(brasilia).Format(models.DayLayout)
}

// GetByDay loads a liturgy with its readings in proclamation order.
func (s *LiturgyService) GetByDay(day string) (*models.Liturgy, error) {
	if _, err := time.Parse(models.DayLayout, day); err != nil {
		return nil, invalid("day", "must be formatted as YYYY-MM-DD")
	}

	var liturgy models.Liturgy
	err := s.db.Preload("Readings", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("day = ?", day).First(&liturgy).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &liturgy, nil
}

// List returns liturgies newest day first.
func (s *LiturgyService) List(page Page) ([]models.Liturgy, int64, error) {
	page = page.normalize()

	var total int64
	if err := s.db.Model(&models.Liturgy{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting liturgies: %w", err)
	}

	var liturgies []models.Liturgy
	if err := s.db.Order("day DESC").Offset(page.offset()).Limit(page.Size).Find(&liturgies).Error; err != nil {
		return nil, 0, fmt.Errorf("listing liturgies: %w", err)
	}
	return liturgies, total, nil
}

// Upsert creates the liturgy for in.Day or replaces it and all its readings.
func (s *LiturgyService) Upsert(in LiturgyInput) (*models.Liturgy, error) {
	if err := ValidateLiturgy(&in); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var liturgy models.Liturgy
		err := tx.Where("day = ?", in.Day).First(&liturgy).Error
		switch {
		case err == nil:
			if err := tx.Where("liturgy_id = ?", liturgy.ID).Delete(&models.Reading{}).Error; err != nil {
				return fmt.Errorf("clearing readings: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			liturgy.Day = in.Day
		default:
			return err
		}

		liturgy.Title = in.Title
		liturgy.Color = in.Color
		if err := tx.Save(&liturgy).Error; err != nil {
			return fmt.Errorf("saving liturgy: %w", err)
		}

		for i, r := range in.Readings {
			reading := models.Reading{
				LiturgyID: liturgy.ID,
				Position:  i,
				Kind:      r.Kind,
				Citation:  r.Citation,
				Refrain:   r.Refrain,
				Text:      r.Text,
			}
			if err := tx.Create(&reading).Error; err != nil {
				return fmt.Errorf("saving reading %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByDay(in.Day)
}

func (s *LiturgyService) Delete(day string) error {
	liturgy, err := s.GetByDay(day)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("liturgy_id = ?", liturgy.ID).Delete(&models.Reading{}).Error; err != nil {
			return fmt.Errorf("deleting readings: %w", err)
		}
		if err := tx.Delete(liturgy).Error; err != nil {
			return fmt.Errorf("deleting liturgy: %w", err)
		}
		return nil
	})
}

// Recent returns the latest limit liturgies without readings.
func (s *LiturgyService) Recent(limit int) ([]models.Liturgy, error) {
	var liturgies []models.Liturgy
	if err := s.db.Order("day DESC").Limit(limit).Find(&liturgies).Error; err != nil {
		return nil, fmt.Errorf("listing recent liturgies: %w", err)
	}
	return liturgies, nil
}

// View decorates every reading with its normalized query and lookup URL.
func (s *LiturgyService) View(l *models.Liturgy) LiturgyView {
	view := LiturgyView{
		ID:       l.ID,
		Day:      l.Day,
		Title:    l.Title,
		Color:    l.Color,
		Readings: make([]ReadingView, 0, len(l.Readings)),
	}
	for _, r := range l.Readings {
		view.Readings = append(view.Readings, s.ViewReading(r))
	}
	return view
}

func (s *LiturgyService) ViewReading(r models.Reading) ReadingView {
	rv := ReadingView{
		Reading:   r,
		Query:     s.normalizer.Normalize(r.Citation),
		LookupURL: s.normalizer.BuildLookupURL(r.Citation, s.version),
	}
	if q, err := verseparser.ParseQuery(rv.Query); err == nil {
		rv.Clauses = q.Clauses
	}
	return rv
}

// ValidateLiturgy checks in and normalizes it in place: fields are trimmed
// and an empty color becomes green.
func ValidateLiturgy(in *LiturgyInput) error {
	in.Day = strings.TrimSpace(in.Day)
	if _, err := time.Parse(models.DayLayout, in.Day); err != nil {
		return invalid("day", "must be formatted as YYYY-MM-DD")
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid("title", "is required")
	}

	in.Color = strings.ToLower(strings.TrimSpace(in.Color))
	if in.Color == "" {
		in.Color = models.ColorGreen
	}
	if !models.ValidColor(in.Color) {
		return invalid("color", "unknown liturgical color")
	}

	if len(in.Readings) == 0 {
		return invalid("readings", "at least one reading is required")
	}
	for i := range in.Readings {
		r := &in.Readings[i]
		r.Kind = strings.TrimSpace(r.Kind)
		r.Citation = strings.TrimSpace(r.Citation)
		if !models.ValidReadingKind(r.Kind) {
			return invalid(fmt.Sprintf("readings[%d].kind", i), "unknown reading kind")
		}
		if r.Citation == "" {
			return invalid(fmt.Sprintf("readings[%d].citation", i), "is required")
		}
	}
	return nil
}
