// FILE: pkg/mathexpr/normalizer.go
// PURPOSE: Turns spoken arithmetic ("fourteen plus nine") into a symbolic
// expression string that the evaluator accepts.

package mathexpr

import (
	"regexp"
	"strconv"
	"strings"
)

// wordOperators maps spoken operator phrases onto symbols. Order matters:
// longer phrases that share a prefix with a shorter one still normalize
// correctly because leftover words are stripped as alphabetic runs later.
var wordOperators = []struct {
	pattern *regexp.Regexp
	symbol  string
}{
	{regexp.MustCompile(`\bplus\b`), "+"},
	{regexp.MustCompile(`\bminus\b`), "-"},
	{regexp.MustCompile(`\bover\b`), "/"},
	{regexp.MustCompile(`\bdivided by\b`), "/"},
	{regexp.MustCompile(`\bdivide by\b`), "/"},
	{regexp.MustCompile(`\btimes\b`), "*"},
	{regexp.MustCompile(`\bmultiplied by\b`), "*"},
	{regexp.MustCompile(`\bmultiply by\b`), "*"},
	{regexp.MustCompile(`\bmodulo\b`), "%"},
	{regexp.MustCompile(`\bmod\b`), "%"},
	{regexp.MustCompile(`\bpower of\b`), "**"},
	{regexp.MustCompile(`\bto the power of\b`), "**"},
	{regexp.MustCompile(`\braised to\b`), "**"},
}

var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleWords = map[string]int{
	"hundred":  100,
	"thousand": 1_000,
	"million":  1_000_000,
}

// "and" is glue inside spoken numbers ("three hundred and five").
const ignoreWord = "and"

var (
	sentencePunct = regexp.MustCompile(`[?!,.']`)
	alphaRun      = regexp.MustCompile(`[a-z]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Normalize converts a spoken arithmetic phrase into a string containing only
// digits, the characters + - * / % ( ) . and spaces. Unrecognized words are
// dropped, so the result can be empty when nothing usable remains.
func Normalize(phrase string) string {
	s := strings.ToLower(strings.TrimSpace(phrase))
	// spoken hyphenation ("twenty-one") must not read as subtraction
	s = strings.ReplaceAll(s, "-", " ")
	s = sentencePunct.ReplaceAllString(s, "")
	s = convertNumberWords(s)
	for _, op := range wordOperators {
		s = op.pattern.ReplaceAllString(s, " "+op.symbol+" ")
	}
	s = alphaRun.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func isNumberWord(word string) bool {
	if word == ignoreWord {
		return true
	}
	if _, ok := numberWords[word]; ok {
		return true
	}
	_, ok := scaleWords[word]
	return ok
}

// wordsToInt folds a run of number words into a single integer using a
// two-register accumulator: units/tens add into `current`, scale words
// multiply it, and scales of a thousand or more flush `current` into `total`.
func wordsToInt(words []string) (int, bool) {
	total := 0
	current := 0
	for _, word := range words {
		if word == ignoreWord {
			continue
		}
		if v, ok := numberWords[word]; ok {
			current += v
			continue
		}
		scale, ok := scaleWords[word]
		if !ok {
			return 0, false
		}
		if current == 0 {
			current = 1
		}
		current *= scale
		if scale >= 1000 {
			total += current
			current = 0
		}
	}
	return total + current, true
}

// convertNumberWords rewrites each run of number words as a digit string.
// A run that fails to convert is emitted unchanged; everything around it is
// left alone.
func convertNumberWords(s string) string {
	words := strings.Fields(s)
	var result []string
	var run []string

	flush := func() {
		if len(run) == 0 {
			return
		}
		if n, ok := wordsToInt(run); ok {
			result = append(result, strconv.Itoa(n))
		} else {
			result = append(result, run...)
		}
		run = nil
	}

	for _, word := range words {
		if isNumberWord(word) {
			run = append(run, word)
			continue
		}
		flush()
		result = append(result, word)
	}
	flush()

	return strings.Join(result, " ")
}
