// Package stats contains text statistics calculations and reporting.
package stats

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/textcalc/internal/model"
)

const (
	// DefaultTop is the number of most common words reported in detailed mode.
	DefaultTop = 5
	// DefaultWordsPerMinute is the reading speed used for the time estimate.
	DefaultWordsPerMinute = 200
)

// ErrNoText is returned when there is nothing to analyze.
var ErrNoText = errors.New("no text provided")

// asciiPunctuation lists every printable ASCII character that is neither a letter,
// a digit nor a space.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var sentenceSep = regexp.MustCompile(`[.!?]+`)

// Options tunes the detailed metrics. Zero values fall back to the defaults.
type Options struct {
	Top            int
	WordsPerMinute int
}

func (o Options) withDefaults() Options {
	if o.Top <= 0 {
		o.Top = DefaultTop
	}
	if o.WordsPerMinute <= 0 {
		o.WordsPerMinute = DefaultWordsPerMinute
	}
	return o
}

// Analyze computes the basic metrics for text and, in detailed mode, the metrics
// over its normalized words. Modes other than detailed produce basic metrics only.
func Analyze(text string, mode model.Mode, opts Options) (model.AnalysisResult, error) {
	if text == "" {
		return model.AnalysisResult{}, ErrNoText
	}
	opts = opts.withDefaults()

	chars := utf8.RuneCountInString(text)
	result := model.AnalysisResult{
		Mode:          mode,
		Words:         len(splitWords(text)),
		Chars:         chars,
		CharsNoSpaces: chars - strings.Count(text, " "),
		Sentences:     countNonBlank(sentenceSep.Split(text, -1)),
		Paragraphs:    countNonBlank(strings.Split(text, "\n\n")),
	}

	words := NormalizeWords(text)
	if mode != model.ModeDetailed || len(words) == 0 {
		return result, nil
	}
	unique := make(map[string]struct{}, len(words))
	totalLen := 0
	for _, word := range words {
		unique[word] = struct{}{}
		totalLen += utf8.RuneCountInString(word)
	}
	result.Detailed = &model.DetailedStats{
		UniqueWords:       len(unique),
		AverageWordLength: float64(totalLen) / float64(len(words)),
		TopWords:          TopWords(words, opts.Top),
		ReadingTime:       EstimateReadingTime(result.Words, opts.WordsPerMinute),
	}
	return result, nil
}

// NormalizeWords strips ASCII punctuation, lowercases the text and splits it on
// whitespace.
func NormalizeWords(text string) []string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
	return splitWords(strings.ToLower(clean))
}

// EstimateReadingTime converts a word count to a reading time at wpm words per
// minute.
func EstimateReadingTime(words, wpm int) model.ReadingTime {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	minutes := float64(words) / float64(wpm)
	rt := model.ReadingTime{Minutes: minutes}
	if minutes < 1 {
		rt.UnderMinute = true
		rt.Seconds = int(math.RoundToEven(minutes * 60))
	}
	return rt
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, isSpace)
}

// isSpace matches unicode.IsSpace plus the ASCII information separators, which
// also delimit words.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func countNonBlank(parts []string) int {
	n := 0
	for _, part := range parts {
		if strings.TrimFunc(part, isSpace) != "" {
			n++
		}
	}
	return n
}
