package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindTuple
	KindList
	KindFunc
)

// String returns the type name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	case KindFunc:
		return "builtin_function_or_method"
	default:
		return "unknown"
	}
}

// Value is the result of evaluating an expression.
type Value struct {
	kind  Kind
	i     *big.Int
	f     float64
	b     bool
	items []Value
	fn    *builtin
}

func intValue(i *big.Int) Value {
	return Value{kind: KindInt, i: i}
}

func int64Value(i int64) Value {
	return intValue(big.NewInt(i))
}

func floatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func boolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func tupleValue(items []Value) Value {
	return Value{kind: KindTuple, items: items}
}

func listValue(items []Value) Value {
	return Value{kind: KindList, items: items}
}

func funcValue(fn *builtin) Value {
	return Value{kind: KindFunc, fn: fn}
}

// Kind returns the dynamic type of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns a copy of the integer held by v. Bools convert to 0 or 1.
func (v Value) Int() (*big.Int, bool) {
	switch v.kind {
	case KindInt:
		return new(big.Int).Set(v.i), true
	case KindBool:
		if v.b {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	default:
		return nil, false
	}
}

// Float returns the float held by v.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Items returns the elements of a tuple or list.
func (v Value) Items() []Value {
	if v.kind != KindTuple && v.kind != KindList {
		return nil
	}
	out := make([]Value, len(v.items))
	copy(out, v.items)
	return out
}

// String renders v the way the calculator prints results.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return v.i.String()
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindTuple:
		if len(v.items) == 1 {
			return "(" + v.items[0].String() + ",)"
		}
		return "(" + joinValues(v.items) + ")"
	case KindList:
		return "[" + joinValues(v.items) + "]"
	case KindFunc:
		return "<built-in function " + v.fn.name + ">"
	default:
		return ""
	}
}

const (
	// maxIntDigits is the longest integer that may be rendered as decimal text.
	maxIntDigits = 4300
	// maxResultLen bounds the rendered size of a whole result.
	maxResultLen = 1 << 22
)

// checkPrintable reports whether v can be rendered by String within the digit
// and length limits.
func (v Value) checkPrintable() error {
	budget := maxResultLen
	return v.charge(&budget)
}

func (v Value) charge(budget *int) error {
	switch v.kind {
	case KindInt:
		n := decimalDigits(v.i)
		if n > maxIntDigits {
			return failf(ErrValue, "exceeds the limit (%d digits) for integer string conversion", maxIntDigits)
		}
		*budget -= n + 1
	case KindTuple, KindList:
		*budget -= 3
		for _, item := range v.items {
			if err := item.charge(budget); err != nil {
				return err
			}
			*budget -= 2
			if *budget < 0 {
				break
			}
		}
	default:
		*budget -= 24
	}
	if *budget < 0 {
		return failf(ErrOverflow, "result is too large to display")
	}
	return nil
}

// decimalDigits counts the decimal digits of i, ignoring the sign.
func decimalDigits(i *big.Int) int {
	bits := i.BitLen()
	if bits == 0 {
		return 1
	}
	// floor(bits*log10(2))+1 overshoots the true count by at most one.
	est := int(float64(bits)*math.Log10(2)) + 1
	if est != maxIntDigits+1 {
		return est
	}
	return len(new(big.Int).Abs(i).Text(10))
}

func joinValues(items []Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ", ")
}

// formatFloat produces the shortest round-trip text for f. Magnitudes from 1e16
// upward and below 1e-4 switch to exponent notation; integral values keep a
// trailing ".0".
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
