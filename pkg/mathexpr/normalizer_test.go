package mathexpr

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{
			name:   "digits with word operator",
			phrase: "14 plus 7",
			want:   "14 + 7",
		},
		{
			name:   "number words",
			phrase: "fourteen plus nine",
			want:   "14 + 9",
		},
		{
			name:   "scale words with and",
			phrase: "three hundred and five",
			want:   "305",
		},
		{
			name:   "thousands flush into total",
			phrase: "two thousand three hundred and five",
			want:   "2305",
		},
		{
			name:   "hyphenated tens",
			phrase: "twenty-one times three",
			want:   "21 * 3",
		},
		{
			name:   "divided by",
			phrase: "eighty divided by four",
			want:   "80 / 4",
		},
		{
			name:   "power phrase",
			phrase: "two to the power of ten",
			want:   "2 ** 10",
		},
		{
			name:   "modulo",
			phrase: "ten mod three",
			want:   "10 % 3",
		},
		{
			name:   "sentence punctuation stripped",
			phrase: "What is 9 times 8?",
			want:   "9 * 8",
		},
		{
			name:   "unknown words become blank",
			phrase: "please work out 2 plus 2 for me",
			want:   "2 + 2",
		},
		{
			name:   "nothing recognizable",
			phrase: "hello there",
			want:   "",
		},
		{
			name:   "empty input",
			phrase: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.phrase); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestWordsToInt(t *testing.T) {
	tests := []struct {
		words []string
		want  int
	}{
		{[]string{"five"}, 5},
		{[]string{"fourteen"}, 14},
		{[]string{"twenty", "one"}, 21},
		{[]string{"three", "hundred"}, 300},
		{[]string{"three", "hundred", "and", "five"}, 305},
		{[]string{"one", "thousand"}, 1000},
		{[]string{"two", "hundred", "thousand"}, 200000},
		{[]string{"one", "million", "two", "hundred"}, 1000200},
		{[]string{"hundred"}, 100},
	}

	for _, tt := range tests {
		got, ok := wordsToInt(tt.words)
		if !ok {
			t.Fatalf("wordsToInt(%v) failed to convert", tt.words)
		}
		if got != tt.want {
			t.Errorf("wordsToInt(%v) = %d, want %d", tt.words, got, tt.want)
		}
	}
}
