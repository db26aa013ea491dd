package verseparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		book  string
		want  []Clause
		kinds []ClauseKind
	}{
		{
			name:  "chapter only",
			input: "Psalm 103",
			book:  "Psalm",
			want:  []Clause{{Chapter: 103}},
			kinds: []ClauseKind{KindChapter},
		},
		{
			name:  "verse range",
			input: "Luke 24:1-12",
			book:  "Luke",
			want:  []Clause{{Chapter: 24, Verse: intPtr(1), EndVerse: intPtr(12)}},
			kinds: []ClauseKind{KindVerseRange},
		},
		{
			name:  "several clauses",
			input: "Genesis 22:1-2; 22:9; 22:10-13",
			book:  "Genesis",
			want: []Clause{
				{Chapter: 22, Verse: intPtr(1), EndVerse: intPtr(2)},
				{Chapter: 22, Verse: intPtr(9)},
				{Chapter: 22, Verse: intPtr(10), EndVerse: intPtr(13)},
			},
			kinds: []ClauseKind{KindVerseRange, KindVerse, KindVerseRange},
		},
		{
			name:  "cross chapter",
			input: "Exodus 14:15-15:1",
			book:  "Exodus",
			want:  []Clause{{Chapter: 14, Verse: intPtr(15), EndChapter: intPtr(15), EndVerse: intPtr(1)}},
			kinds: []ClauseKind{KindCrossChapter},
		},
		{
			name:  "numbered multi word book",
			input: "1 Corinthians 15:1-11",
			book:  "1 Corinthians",
			want:  []Clause{{Chapter: 15, Verse: intPtr(1), EndVerse: intPtr(11)}},
			kinds: []ClauseKind{KindVerseRange},
		},
		{
			name:  "chapter range",
			input: "Song of Songs 1-2",
			book:  "Song of Songs",
			want:  []Clause{{Chapter: 1, EndChapter: intPtr(2)}},
			kinds: []ClauseKind{KindChapterRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuery(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.book, q.Book)
			require.Len(t, q.Clauses, len(tt.want))
			for i, c := range q.Clauses {
				assert.Equal(t, tt.want[i], *c)
				assert.Equal(t, tt.kinds[i], c.Kind())
			}
			assert.Equal(t, tt.input, q.String())
		})
	}
}

func TestParseQueryNormalizedOutput(t *testing.T) {
	q, err := ParseQuery(Normalize("Gn 22, 1-2. 9a. 10-13. 15-18"))
	require.NoError(t, err)
	assert.Len(t, q.Clauses, 4)
	assert.Equal(t, "Genesis 22:1-2; 22:9; 22:10-13; 22:15-18", q.String())

	q, err = ParseQuery(Normalize("Lc\u00a024,\u00a01-12"))
	require.NoError(t, err)
	assert.Equal(t, "Luke 24:1-12", q.String())
}

func TestParseQueryErrors(t *testing.T) {
	for _, in := range []string{"", "22:1", "Isaiah 52:13; 52:53, 12"} {
		_, err := ParseQuery(in)
		assert.Error(t, err, in)
	}
}
