// services/og_image_service.go - Open Graph preview cards
package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"liturgia/models"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	OGWidth  = 1200
	OGHeight = 630

	// Cards are drawn at 1/ogScale and scaled up so the 7x13 bitmap face
	// stays legible.
	ogScale   = 3
	ogMargin  = 16
	lineSpace = 16
	maxLines  = 6
)

var (
	cardPunctuation = strings.NewReplacer(
		"–", "-", "—", "-",
		"“", `"`, "”", `"`, "«", `"`, "»", `"`,
		"‘", "'", "’", "'",
		"…", "...",
		"º", "o", "ª", "a",
	)

	brandColor = color.RGBA{0x1a, 0x23, 0x7e, 0xff}

	liturgicalColors = map[string]color.RGBA{
		models.ColorGreen:  {0x2e, 0x7d, 0x32, 0xff},
		models.ColorWhite:  {0xf5, 0xf0, 0xe1, 0xff},
		models.ColorRed:    {0xb7, 0x1c, 0x1c, 0xff},
		models.ColorPurple: {0x4a, 0x14, 0x8c, 0xff},
		models.ColorRose:   {0xd8, 0x1b, 0x60, 0xff},
		models.ColorBlack:  {0x21, 0x21, 0x21, 0xff},
	}
)

type OGImageService struct {
	siteName string
}

func NewOGImageService(siteName string) *OGImageService {
	return &OGImageService{siteName: siteName}
}

// Render draws a 1200x630 PNG card. liturgicalColor selects the background;
// unknown or empty values use the brand color.
func (s *OGImageService) Render(title, subtitle, liturgicalColor string) ([]byte, error) {
	w, h := OGWidth/ogScale, OGHeight/ogScale

	bg, ok := liturgicalColors[liturgicalColor]
	if !ok {
		bg = brandColor
	}
	fg := color.RGBA{0xff, 0xff, 0xff, 0xff}
	if liturgicalColor == models.ColorWhite {
		fg = color.RGBA{0x33, 0x2a, 0x1a, 0xff}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	// accent bar
	bar := image.Rect(ogMargin, ogMargin, ogMargin+40, ogMargin+3)
	draw.Draw(canvas, bar, &image.Uniform{C: fg}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  &image.Uniform{C: fg},
		Face: face,
	}

	maxChars := (w - 2*ogMargin) / face.Advance
	title = cardText(face, title)
	subtitle = cardText(face, subtitle)

	y := ogMargin + 3 + 2*lineSpace
	for _, line := range wrapText(title, maxChars, maxLines) {
		drawer.Dot = fixed.P(ogMargin, y)
		drawer.DrawString(line)
		y += lineSpace
	}

	if subtitle != "" {
		y += lineSpace / 2
		for _, line := range wrapText(subtitle, maxChars, 2) {
			drawer.Dot = fixed.P(ogMargin, y)
			drawer.DrawString(line)
			y += lineSpace
		}
	}

	drawer.Dot = fixed.P(ogMargin, h-ogMargin)
	drawer.DrawString(cardText(face, s.siteName))

	scaled := resize.Resize(OGWidth, OGHeight, canvas, resize.NearestNeighbor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding og image: %w", err)
	}
	return buf.Bytes(), nil
}

// cardText rewrites s into runes face can draw. Accents are folded and
// anything still missing becomes '?'.
func cardText(face font.Face, s string) string {
	s = cardPunctuation.Replace(foldAccents(s))
	return strings.Map(func(r rune) rune {
		if _, ok := face.GlyphAdvance(r); !ok {
			return '?'
		}
		return r
	}, s)
}

// wrapText splits text on spaces into at most maxLines lines of maxChars
// runes. Overflow is replaced by an ellipsis on the last line; words longer
// than a line are cut.
func wrapText(text string, maxChars, maxLines int) []string {
	if maxChars < 1 || maxLines < 1 {
		return nil
	}

	var lines []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, string(current))
			current = current[:0:0]
		}
	}

	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		for len(wr) > maxChars {
			flush()
			lines = append(lines, string(wr[:maxChars]))
			wr = wr[maxChars:]
		}
		switch {
		case len(current) == 0:
			current = append(current, wr...)
		case len(current)+1+len(wr) <= maxChars:
			current = append(current, ' ')
			current = append(current, wr...)
		default:
			flush()
			current = append(current, wr...)
		}
	}
	flush()

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := []rune(lines[maxLines-1])
		keep := max(maxChars-3, 0)
		if len(last) > keep {
			last = last[:keep]
		}
		lines[maxLines-1] = string(last) + "..."
	}
	return lines
}
