package services

import (
	"errors"
	"testing"
	"time"

	"liturgia/database/dbtest"
	"liturgia/models"
	"liturgia/verseparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sundayInput() LiturgyInput {
	return LiturgyInput{
		Day:   "2026-03-01",
		Title: " 2º Domingo da Quaresma ",
		Color: "Purple",
		Readings: []ReadingInput{
			{Kind: models.ReadingFirst, Citation: "Gn 12, 1-4a"},
			{Kind: models.ReadingPsalm, Citation: "Sl 32(33), 4-5. 18-19. 20. 22", Refrain: "Sobre nós venha, Senhor, a vossa graça"},
			{Kind: models.ReadingSecond, Citation: "2Tm 1, 8b-10"},
			{Kind: models.ReadingGospel, Citation: "Mt 17, 1-9"},
		},
	}
}

func TestLiturgyUpsertAndView(t *testing.T) {
	s := NewLiturgyService(dbtest.New(t), nil, "")

	l, err := s.Upsert(sundayInput())
	require.NoError(t, err)
	assert.Equal(t, "2º Domingo da Quaresma", l.Title)
	assert.Equal(t, models.ColorPurple, l.Color)
	require.Len(t, l.Readings, 4)
	for i, r := range l.Readings {
		assert.Equal(t, i, r.Position)
	}

	view := s.View(l)
	require.Len(t, view.Readings, 4)
	assert.Equal(t, "Genesis 12:1-4", view.Readings[0].Query)
	assert.Equal(t, "Psalm 32:4-5; 32:18-19; 32:20; 32:22", view.Readings[1].Query)
	assert.Equal(t, "Matthew 17:1-9", view.Readings[3].Query)
	assert.Equal(t, verseparser.BuildLookupURL("Mt 17, 1-9", verseparser.DefaultVersion), view.Readings[3].LookupURL)
	require.Len(t, view.Readings[1].Clauses, 4)
	assert.Equal(t, verseparser.KindVerse, view.Readings[1].Clauses[2].Kind())

	// Replacing the day replaces every reading.
	in := sundayInput()
	in.Readings = in.Readings[3:]
	l2, err := s.Upsert(in)
	require.NoError(t, err)
	assert.Equal(t, l.ID, l2.ID)
	require.Len(t, l2.Readings, 1)
	assert.Equal(t, models.ReadingGospel, l2.Readings[0].Kind)
}

func TestLiturgyViewUsesVersion(t *testing.T) {
	s := NewLiturgyService(dbtest.New(t), nil, "NABRE")
	rv := s.ViewReading(models.Reading{Citation: "Jo 20, 1-9"})
	assert.Equal(t, "John 20:1-9", rv.Query)
	assert.Contains(t, rv.LookupURL, "version=NABRE")

	// Unmapped books pass through verbatim.
	rv = s.ViewReading(models.Reading{Citation: "Xyz 1, 1"})
	assert.Equal(t, "Xyz 1:1", rv.Query)
}

func TestLiturgyValidation(t *testing.T) {
	s := NewLiturgyService(dbtest.New(t), nil, "")

	tests := []struct {
		name  string
		edit  func(*LiturgyInput)
		field string
	}{
		{"bad day", func(in *LiturgyInput) { in.Day = "01/03/2026" }, "day"},
		{"no title", func(in *LiturgyInput) { in.Title = "  " }, "title"},
		{"bad color", func(in *LiturgyInput) { in.Color = "blue" }, "color"},
		{"no readings", func(in *LiturgyInput) { in.Readings = nil }, "readings"},
		{"bad kind", func(in *LiturgyInput) { in.Readings[0].Kind = "homily" }, "readings[0].kind"},
		{"no citation", func(in *LiturgyInput) { in.Readings[1].Citation = " " }, "readings[1].citation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sundayInput()
			tt.edit(&in)
			_, err := s.Upsert(in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	in := sundayInput()
	in.Color = ""
	l, err := s.Upsert(in)
	require.NoError(t, err)
	assert.Equal(t, models.ColorGreen, l.Color)
}

func TestLiturgyGetListDelete(t *testing.T) {
	s := NewLiturgyService(dbtest.New(t), nil, "")

	for _, day := range []string{"2026-03-01", "2026-03-08", "2026-03-15"} {
		in := sundayInput()
		in.Day = day
		_, err := s.Upsert(in)
		require.NoError(t, err)
	}

	_, err := s.GetByDay("2026-03-02")
	assert.ErrorIs(t, err, ErrNotFound)

	list, total, err := s.List(Page{Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-03-15", list[0].Day)

	recent, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "2026-03-15", recent[0].Day)

	require.NoError(t, s.Delete("2026-03-08"))
	assert.ErrorIs(t, s.Delete("2026-03-08"), ErrNotFound)

	var readings int64
	require.NoError(t, s.db.Model(&models.Reading{}).Count(&readings).Error)
	assert.EqualValues(t, 8, readings)
}

func TestLiturgyToday(t *testing.T) {
	s := NewLiturgyService(dbtest.New(t), nil, "")

	// 01:30 UTC is still the previous evening in Brasília.
	s.now = func() time.Time { return time.Date(2026, 10, 19, 1, 30, 0, 0, time.UTC) }
	assert.Equal(t, "2026-10-18", s.Today())

	s.now = func() time.Time { return time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC) }
	assert.Equal(t, "2026-10-19", s.Today())
}
