package calc

import (
	"errors"
	"testing"
)

const maxFuzzBytes = 256

func FuzzEvaluate(f *testing.F) {
	f.Add("2^3")
	f.Add("sqrt(16) + max([1, 2.5])")
	f.Add("1/0")
	f.Add("-7.5 // 2 < 3 <= 4")
	f.Add("import os")
	f.Add("")
	if testing.Short() {
		f.Skip("fuzzing skipped in short mode")
	}
	f.Fuzz(func(t *testing.T, expr string) {
		if len(expr) > maxFuzzBytes {
			expr = expr[:maxFuzzBytes]
		}
		first, err := Evaluate(expr)
		second, err2 := Evaluate(expr)
		if (err == nil) != (err2 == nil) {
			t.Fatalf("Evaluate(%q) is not repeatable: %v vs %v", expr, err, err2)
		}
		if err != nil {
			var evalErr *EvalError
			if !errors.Is(err, ErrUnsafeInput) && !errors.As(err, &evalErr) {
				t.Fatalf("Evaluate(%q) returned untyped error %v", expr, err)
			}
			return
		}
		if first.String() != second.String() {
			t.Fatalf("Evaluate(%q) is not repeatable: %s vs %s", expr, first, second)
		}
	})
}
