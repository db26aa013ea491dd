// Package verseparser turns Portuguese lectionary citations ("Gn 22, 1-2. 9a")
// into English lookup queries ("Genesis 22:1-2; 22:9") and lookup URLs.
package verseparser

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	// DefaultVersion is the translation requested from the lookup service.
	DefaultVersion = "NRSVCE"

	// DefaultEndpoint is the passage search page of the lookup service.
	DefaultEndpoint = "https://www.biblegateway.com/passage/"
)

var (
	parenRe        = regexp.MustCompile(`\(.*?\)`)
	spaceRe        = regexp.MustCompile(`[\s\p{Z}\v]+`)
	letterRe       = regexp.MustCompile(`\p{L}`)
	nonDigitRe     = regexp.MustCompile(`\D`)
	bookRe         = regexp.MustCompile(`^((?:\d[\s\p{Z}]?)?\p{L}{1,5})[\s\p{Z}]+(.*)$`)
	crossChapterRe = regexp.MustCompile(`(\d+)-(\d+),\s(\d+)`)

	dashReplacer = strings.NewReplacer("–", "-", "—", "-")
)

// Fallback tells how much of a citation could be understood.
type Fallback int

const (
	// FallbackNone means the citation was fully normalized.
	FallbackNone Fallback = iota
	// FallbackEmpty means there was nothing to normalize.
	FallbackEmpty
	// FallbackUnrecognizedBook means no book token was found; the cleaned input is returned.
	FallbackUnrecognizedBook
	// FallbackUnmappedBook means the book token is missing from the table and was kept verbatim.
	FallbackUnmappedBook
	// FallbackMalformedChapter means no chapter digits preceded the first comma.
	FallbackMalformedChapter
)

func (f Fallback) String() string {
	switch f {
	case FallbackNone:
		return "none"
	case FallbackEmpty:
		return "empty"
	case FallbackUnrecognizedBook:
		return "unrecognized_book"
	case FallbackUnmappedBook:
		return "unmapped_book"
	case FallbackMalformedChapter:
		return "malformed_chapter"
	default:
		return "unknown"
	}
}

// Result is the outcome of normalizing one citation.
type Result struct {
	Input    string   `json:"input"`
	Query    string   `json:"query"`
	Book     string   `json:"book,omitempty"`
	Chapter  string   `json:"chapter,omitempty"`
	Clauses  []string `json:"clauses,omitempty"`
	Fallback Fallback `json:"-"`
}

// Normalizer converts citations using an abbreviation table.
// The zero value is not usable; call New.
type Normalizer struct {
	books    map[string]string
	endpoint string
}

// New returns a Normalizer over books. The map is copied so later changes by
// the caller do not leak into concurrent normalizations.
func New(books map[string]string) *Normalizer {
	table := make(map[string]string, len(books))
	for k, v := range books {
		table[k] = v
	}
	return &Normalizer{books: table, endpoint: DefaultEndpoint}
}

// WithEndpoint returns a copy of n that builds URLs against endpoint.
func (n *Normalizer) WithEndpoint(endpoint string) *Normalizer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Normalizer{books: n.books, endpoint: endpoint}
}

// Book returns the English name for a localized abbreviation.
func (n *Normalizer) Book(abbrev string) (string, bool) {
	name, ok := n.books[abbrev]
	return name, ok
}

var defaultNormalizer = New(PortugueseBooks)

// Normalize converts raw with the Portuguese book table.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// BuildLookupURL builds a lookup URL for raw with the Portuguese book table.
func BuildLookupURL(raw, version string) string {
	return defaultNormalizer.BuildLookupURL(raw, version)
}

// Explain normalizes raw with the Portuguese book table and reports how.
func Explain(raw string) Result {
	return defaultNormalizer.Explain(raw)
}

// Normalize returns the English lookup query for raw, or "" when raw is blank.
// It never fails; input it cannot understand is passed through cleaned.
func (n *Normalizer) Normalize(raw string) string {
	return n.Explain(raw).Query
}

// Explain is Normalize with the intermediate parts kept.
func (n *Normalizer) Explain(raw string) Result {
	res := Result{Input: raw}

	s := strings.TrimSpace(raw)
	if s == "" {
		res.Fallback = FallbackEmpty
		return res
	}

	s = parenRe.ReplaceAllString(s, "")
	s = dashReplacer.Replace(s)
	s = spaceRe.ReplaceAllString(s, " ")

	m := bookRe.FindStringSubmatch(s)
	if m == nil {
		res.Query = s
		res.Fallback = FallbackUnrecognizedBook
		return res
	}

	token := spaceRe.ReplaceAllString(m[1], "")
	rest := m[2]

	book, ok := n.books[token]
	if !ok {
		book = token
		res.Fallback = FallbackUnmappedBook
	}
	res.Book = book

	chapterPart, versePart, hasComma := strings.Cut(rest, ",")
	if !hasComma {
		rest = letterRe.ReplaceAllString(rest, "")
		res.Query = strings.TrimSpace(book + " " + rest)
		return res
	}

	chapter := nonDigitRe.ReplaceAllString(chapterPart, "")
	if chapter == "" {
		res.Query = strings.TrimSpace(book + " " + rest)
		res.Fallback = FallbackMalformedChapter
		return res
	}
	res.Chapter = chapter

	verses := strings.ReplaceAll(versePart, ".", ";")
	verses = letterRe.ReplaceAllString(verses, "")
	verses = strings.TrimSpace(spaceRe.ReplaceAllString(verses, " "))
	verses = crossChapterRe.ReplaceAllString(verses, "${1}-${2}:${3}")

	var clauses []string
	for _, clause := range strings.Split(verses, ";") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		clauses = append(clauses, chapter+":"+clause)
	}
	res.Clauses = clauses
	res.Query = strings.TrimSpace(book + " " + strings.Join(clauses, "; "))
	return res
}

// BuildLookupURL returns the lookup page for raw in the given translation
// (DefaultVersion when empty), or "" when raw normalizes to nothing.
func (n *Normalizer) BuildLookupURL(raw, version string) string {
	query := n.Normalize(raw)
	if query == "" {
		return ""
	}
	if version == "" {
		version = DefaultVersion
	}
	return n.endpoint + "?search=" + escape(query) + "&version=" + escape(version)
}

// escape percent-encodes s for a query value, spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
