package verseparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ClauseKind classifies a parsed clause.
type ClauseKind string

const (
	KindChapter      ClauseKind = "chapter"
	KindChapterRange ClauseKind = "chapter_range"
	KindVerse        ClauseKind = "verse"
	KindVerseRange   ClauseKind = "verse_range"
	KindCrossChapter ClauseKind = "cross_chapter"
)

// Query is a normalized English citation such as "Genesis 22:1-2; 22:9".
type Query struct {
	Book    string    `parser:"@Book" json:"book"`
	Clauses []*Clause `parser:"( @@ ( ';' @@ )* )?" json:"clauses"`
}

// Clause is one ';'-separated part of a Query. EndChapter is nil when the
// clause ends in the chapter it starts in.
type Clause struct {
	Chapter    int  `parser:"@Number" json:"chapter"`
	Verse      *int `parser:"( ':' @Number )?" json:"verse,omitempty"`
	EndChapter *int `parser:"( '-' ( @Number" json:"end_chapter,omitempty"`
	EndVerse   *int `parser:"  ( ':' @Number )? ) )?" json:"end_verse,omitempty"`
}

var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:\d\s*)?\p{L}+(?:\s+\p{L}+)*`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[:;\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var queryParser = participle.MustBuild[Query](
	participle.Lexer(queryLexer),
	participle.Elide("Whitespace"),
)

// ParseQuery parses the output of Normalize into its clauses.
func ParseQuery(query string) (*Query, error) {
	q, err := queryParser.ParseString("", strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("failed to parse query %q: %w", query, err)
	}

	for _, c := range q.Clauses {
		// "22:1-2": the number after the dash is a verse of the same chapter.
		if c.Verse != nil && c.EndChapter != nil && c.EndVerse == nil {
			c.EndVerse = c.EndChapter
			c.EndChapter = nil
		}
	}
	return q, nil
}

// Kind reports what c refers to.
func (c *Clause) Kind() ClauseKind {
	switch {
	case c.Verse == nil && c.EndChapter == nil:
		return KindChapter
	case c.Verse == nil:
		return KindChapterRange
	case c.EndChapter != nil:
		return KindCrossChapter
	case c.EndVerse != nil:
		return KindVerseRange
	default:
		return KindVerse
	}
}

func (c *Clause) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(c.Chapter))
	if c.Verse != nil {
		b.WriteString(":" + strconv.Itoa(*c.Verse))
	}
	if c.EndChapter != nil {
		b.WriteString("-" + strconv.Itoa(*c.EndChapter))
		if c.EndVerse != nil {
			b.WriteString(":" + strconv.Itoa(*c.EndVerse))
		}
	} else if c.EndVerse != nil {
		b.WriteString("-" + strconv.Itoa(*c.EndVerse))
	}
	return b.String()
}

func (q *Query) String() string {
	parts := make([]string, len(q.Clauses))
	for i, c := range q.Clauses {
		parts[i] = c.String()
	}
	if len(parts) == 0 {
		return q.Book
	}
	return q.Book + " " + strings.Join(parts, "; ")
}
