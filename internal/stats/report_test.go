package stats

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/verte-zerg/textcalc/internal/model"
)

func TestRenderDetailed(t *testing.T) {
	result, err := Analyze("the cat sat on the mat the cat ran", model.ModeDetailed, Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, result, NewStyle(&buf, false)); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"📊 Basic Statistics:",
		"   Words: 9",
		"   Characters: 34",
		"   Characters (no spaces): 26",
		"   Sentences: 1",
		"   Paragraphs: 1",
		"",
		"🔍 Detailed Analysis:",
		"   Unique words: 6",
		"   Average word length: 2.89",
		"   Most common words:",
		"     'the': 3 times",
		"     'cat': 2 times",
		"     'sat': 1 times",
		"     'on':  1 times",
		"     'mat': 1 times",
		"   Estimated reading time: 3 seconds",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestRenderBasic(t *testing.T) {
	result, err := Analyze("Hello world. Hello again!", model.ModeBasic, Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, result, NewStyle(&buf, false)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "Detailed") {
		t.Fatalf("basic report should not contain detailed section:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "   Characters: 25\n") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestRenderReadingTimeInMinutes(t *testing.T) {
	text := strings.Repeat("word ", 450) + "\n\nSecond. Third!"
	result, err := Analyze(text, model.ModeDetailed, Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, result, NewStyle(&buf, false)); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "   Estimated reading time: 2.3 minutes\n") {
		t.Fatalf("unexpected reading time:\n%s", out)
	}
	if !strings.Contains(out, "     'word':   450 times\n") {
		t.Fatalf("counts should be right aligned:\n%s", out)
	}
	if !strings.Contains(out, "     'second':   1 times\n") {
		t.Fatalf("counts should be right aligned:\n%s", out)
	}
}

func TestRenderColor(t *testing.T) {
	result, err := Analyze("one two", model.ModeBasic, Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, result, NewStyle(&buf, true)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI sequences in colored output: %q", buf.String())
	}

	buf.Reset()
	if err := Render(&buf, result, NewStyle(&buf, false)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected ANSI sequences in plain output: %q", buf.String())
	}
}

func TestRenderJSON(t *testing.T) {
	result, err := Analyze("the cat sat on the mat the cat ran", model.ModeDetailed, Options{Top: 2})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderJSON(&buf, result); err != nil {
		t.Fatalf("render json: %v", err)
	}
	var decoded struct {
		Mode     string `json:"mode"`
		Words    int    `json:"word_count"`
		Detailed struct {
			UniqueWords int `json:"unique_word_count"`
			TopWords    []struct {
				Word  string `json:"word"`
				Count int    `json:"count"`
			} `json:"top_words"`
			ReadingTime struct {
				Seconds int `json:"seconds"`
			} `json:"estimated_reading_time"`
		} `json:"detailed"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Mode != "detailed" || decoded.Words != 9 {
		t.Fatalf("unexpected basic fields: %+v", decoded)
	}
	if decoded.Detailed.UniqueWords != 6 || len(decoded.Detailed.TopWords) != 2 {
		t.Fatalf("unexpected detailed fields: %+v", decoded.Detailed)
	}
	if decoded.Detailed.TopWords[0].Word != "the" || decoded.Detailed.ReadingTime.Seconds != 3 {
		t.Fatalf("unexpected detailed fields: %+v", decoded.Detailed)
	}
}

func TestRenderJSONOmitsDetailedInBasicMode(t *testing.T) {
	result, err := Analyze("one", model.ModeBasic, Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderJSON(&buf, result); err != nil {
		t.Fatalf("render json: %v", err)
	}
	if strings.Contains(buf.String(), "detailed\":") {
		t.Fatalf("basic JSON should omit detailed stats: %s", buf.String())
	}
}
