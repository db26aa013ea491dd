// models/liturgy.go - Daily liturgy and its readings
package models

import (
	"time"
)

// Reading kinds, in the order they are proclaimed.
const (
	ReadingFirst  = "first_reading"
	ReadingPsalm  = "psalm"
	ReadingSecond = "second_reading"
	ReadingGospel = "gospel"
)

// Liturgical colors.
const (
	ColorGreen  = "green"
	ColorWhite  = "white"
	ColorRed    = "red"
	ColorPurple = "purple"
	ColorRose   = "rose"
	ColorBlack  = "black"
)

// DayLayout is the format of Liturgy.Day.
const DayLayout = "2006-01-02"

// Liturgy is the celebration of one calendar day.
type Liturgy struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Day       string    `json:"day" gorm:"not null;size:10;uniqueIndex"` // YYYY-MM-DD
	Title     string    `json:"title" gorm:"not null;size:200"`
	Color     string    `json:"color" gorm:"size:20;default:'green'"`
	Readings  []Reading `json:"readings,omitempty" gorm:"foreignKey:LiturgyID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reading is one proclaimed text. Citation is kept exactly as printed in the
// lectionary, e.g. "Gn 22, 1-2. 9a. 10-13. 15-18".
type Reading struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	LiturgyID uint   `json:"liturgy_id" gorm:"not null;index"`
	Position  int    `json:"position" gorm:"not null;default:0"`
	Kind      string `json:"kind" gorm:"not null;size:20"`
	Citation  string `json:"citation" gorm:"not null;size:200"`
	Refrain   string `json:"refrain,omitempty" gorm:"size:500"` // psalm response
	Text      string `json:"text" gorm:"type:text"`
}

func (Liturgy) TableName() string {
	return "liturgies"
}

func (Reading) TableName() string {
	return "readings"
}

// ValidReadingKind reports whether kind is one of the Reading* constants.
func ValidReadingKind(kind string) bool {
	switch kind {
	case ReadingFirst, ReadingPsalm, ReadingSecond, ReadingGospel:
		return true
	}
	return false
}

// ValidColor reports whether color is one of the Color* constants.
func ValidColor(color string) bool {
	switch color {
	case ColorGreen, ColorWhite, ColorRed, ColorPurple, ColorRose, ColorBlack:
		return true
	}
	return false
}
