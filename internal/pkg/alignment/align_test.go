package alignment

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign_LengthAlwaysMatchesExpected(t *testing.T) {
	tests := []struct {
		name       string
		expected   string
		recognized string
		conf       []float64
	}{
		{"identical", "cat", "cat", nil},
		{"substitution", "cat", "cot", []float64{0.9, 0.5, 0.9}},
		{"shorter", "banana", "ban", nil},
		{"longer", "cat", "cattle", nil},
		{"empty recognized", "dog", "", nil},
		{"empty expected", "", "dog", nil},
		{"disjoint", "abc", "xyzuvw", []float64{0.1}},
		{"unicode", "ñandú", "nandu", nil},
		{"repeated letters", "bbbbbb", "dbbdb", []float64{0.2, 0.3, 0.4, 0.5, 0.6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.expected, tt.recognized, tt.conf)
			require.Len(t, got, utf8.RuneCountInString(tt.expected))
			for _, p := range got {
				assert.GreaterOrEqual(t, p.Confidence, 0.0)
				assert.LessOrEqual(t, p.Confidence, 1.0)
				if p.Char == "" {
					assert.Zero(t, p.Confidence)
				}
			}
		})
	}
}

func TestAlign_EqualCopiesConfidence(t *testing.T) {
	got := Align("cat", "cot", []float64{0.9, 0.5, 0.8})

	assert.Equal(t, []Pair{
		{Expected: "c", Char: "c", Confidence: 0.9},
		{Expected: "a", Char: "o", Confidence: 0.5},
		{Expected: "t", Char: "t", Confidence: 0.8},
	}, got)
}

func TestAlign_DefaultConfidenceIsOne(t *testing.T) {
	got := Align("ab", "ab", nil)

	assert.Equal(t, 1.0, got[0].Confidence)
	assert.Equal(t, 1.0, got[1].Confidence)
}

func TestAlign_DeleteLeavesGap(t *testing.T) {
	got := Align("cart", "cat", nil)

	require.Len(t, got, 4)
	assert.Equal(t, Pair{Expected: "r"}, got[2])
	assert.Equal(t, "t", got[3].Char)
}

func TestAlign_InsertionsDropped(t *testing.T) {
	got := Align("cat", "caxt", nil)

	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].Char)
	assert.Equal(t, "a", got[1].Char)
	assert.Equal(t, "t", got[2].Char)
}

func TestAlign_MissingConfidenceIsZero(t *testing.T) {
	got := Align("ab", "ab", []float64{0.4})

	assert.Equal(t, 0.4, got[0].Confidence)
	assert.Equal(t, "b", got[1].Char)
	assert.Zero(t, got[1].Confidence)
}

func TestAlign_EmptyRecognized(t *testing.T) {
	got := Align("dog", "", nil)

	for _, p := range got {
		assert.Empty(t, p.Char)
		assert.Zero(t, p.Confidence)
	}
}
