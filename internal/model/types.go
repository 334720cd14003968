// Package model defines shared data structures.
package model

// Mode selects which metrics the text analyzer computes.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeDetailed Mode = "detailed"
)

// Known reports whether m is one of the recognized modes.
func (m Mode) Known() bool {
	return m == ModeBasic || m == ModeDetailed
}

// AnalyzerConfig defines text analyzer settings.
type AnalyzerConfig struct {
	Mode  Mode
	Top   int
	WPM   int
	Color string
	JSON  bool
}

// WordCount is a normalized word and the number of times it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ReadingTime is an estimate of how long a text takes to read. Estimates under a
// minute are kept in whole seconds.
type ReadingTime struct {
	Minutes     float64 `json:"minutes"`
	Seconds     int     `json:"seconds"`
	UnderMinute bool    `json:"under_minute"`
}

// DetailedStats holds the metrics computed over normalized words.
type DetailedStats struct {
	UniqueWords       int         `json:"unique_word_count"`
	AverageWordLength float64     `json:"average_word_length"`
	TopWords          []WordCount `json:"top_words"`
	ReadingTime       ReadingTime `json:"estimated_reading_time"`
}

// AnalysisResult captures the metrics for one text.
type AnalysisResult struct {
	Mode          Mode           `json:"mode"`
	Words         int            `json:"word_count"`
	Chars         int            `json:"char_count"`
	CharsNoSpaces int            `json:"char_count_no_spaces"`
	Sentences     int            `json:"sentence_count"`
	Paragraphs    int            `json:"paragraph_count"`
	Detailed      *DetailedStats `json:"detailed,omitempty"`
}
