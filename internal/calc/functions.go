package calc

import (
	"math"
	"math/big"
	"sort"
	"strconv"
)

// maxFactorialArg bounds factorial so its result stays under maxIntBits.
const maxFactorialArg = 20000

type builtin struct {
	name string
	call func(args []Value) (Value, error)
}

// SafeFunctionTable is the fixed set of names an expression may resolve.
// It is built once and never modified.
type SafeFunctionTable struct {
	entries map[string]Value
}

// Lookup resolves name to a function or constant.
func (t *SafeFunctionTable) Lookup(name string) (Value, bool) {
	v, ok := t.entries[name]
	return v, ok
}

// Names lists every resolvable name in sorted order.
func (t *SafeFunctionTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var safeFunctions *SafeFunctionTable

func init() {
	entries := map[string]Value{
		"pi": floatValue(math.Pi),
		"e":  floatValue(math.E),
	}
	for _, fn := range []*builtin{
		{name: "abs", call: builtinAbs},
		{name: "round", call: builtinRound},
		{name: "min", call: extremum("min", "<")},
		{name: "max", call: extremum("max", ">")},
		{name: "sum", call: builtinSum},
		{name: "pow", call: builtinPow},
		mathFunc("sqrt", math.Sqrt),
		mathFunc("sin", math.Sin),
		mathFunc("cos", math.Cos),
		mathFunc("tan", math.Tan),
		mathFunc("asin", math.Asin),
		mathFunc("acos", math.Acos),
		mathFunc("atan", math.Atan),
		mathFunc("exp", math.Exp),
		{name: "log", call: builtinLog},
		{name: "log10", call: builtinLog10},
		{name: "ceil", call: rounder("ceil", math.Ceil)},
		{name: "floor", call: rounder("floor", math.Floor)},
		{name: "factorial", call: builtinFactorial},
	} {
		entries[fn.name] = funcValue(fn)
	}
	safeFunctions = &SafeFunctionTable{entries: entries}
}

// Functions returns the table of names available to expressions.
func Functions() *SafeFunctionTable {
	return safeFunctions
}

func checkArity(name string, args []Value, lo, hi int) error {
	n := len(args)
	if n >= lo && (hi < 0 || n <= hi) {
		return nil
	}
	switch {
	case lo == 1 && hi == 1:
		return failf(ErrType, "%s() takes exactly one argument (%d given)", name, n)
	case lo == hi:
		return failf(ErrType, "%s() takes exactly %d arguments (%d given)", name, lo, n)
	case n < lo:
		return failf(ErrType, "%s() takes at least %d argument(s) (%d given)", name, lo, n)
	default:
		return failf(ErrType, "%s() takes at most %d arguments (%d given)", name, hi, n)
	}
}

func floatArg(v Value) (float64, error) {
	n, ok := toNumber(v)
	if !ok {
		return 0, failf(ErrType, "must be real number, not %s", v.kind)
	}
	return n.float()
}

func intArg(v Value) (*big.Int, error) {
	i, ok := v.Int()
	if !ok {
		return nil, failf(ErrType, "'%s' object cannot be interpreted as an integer", v.kind)
	}
	return i, nil
}

func floatToInt(f float64) (Value, error) {
	switch {
	case math.IsNaN(f):
		return Value{}, failf(ErrValue, "cannot convert float NaN to integer")
	case math.IsInf(f, 0):
		return Value{}, failf(ErrOverflow, "cannot convert float infinity to integer")
	}
	i, _ := big.NewFloat(f).Int(nil)
	return intValue(i), nil
}

// mathResult maps NaN and infinite results of finite inputs to the usual errors.
func mathResult(x, r float64) (Value, error) {
	if math.IsNaN(r) && !math.IsNaN(x) {
		return Value{}, failf(ErrDomain, "math domain error")
	}
	if math.IsInf(r, 0) && !math.IsInf(x, 0) {
		return Value{}, failf(ErrOverflow, "math range error")
	}
	return floatValue(r), nil
}

func mathFunc(name string, f func(float64) float64) *builtin {
	return &builtin{name: name, call: func(args []Value) (Value, error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return Value{}, err
		}
		x, err := floatArg(args[0])
		if err != nil {
			return Value{}, err
		}
		return mathResult(x, f(x))
	}}
}

func builtinAbs(args []Value) (Value, error) {
	if err := checkArity("abs", args, 1, 1); err != nil {
		return Value{}, err
	}
	n, ok := toNumber(args[0])
	if !ok {
		return Value{}, failf(ErrType, "bad operand type for abs(): '%s'", args[0].kind)
	}
	if n.isInt {
		return intValue(n.i.Abs(n.i)), nil
	}
	return floatValue(math.Abs(n.f)), nil
}

func builtinRound(args []Value) (Value, error) {
	if err := checkArity("round", args, 1, 2); err != nil {
		return Value{}, err
	}
	n, ok := toNumber(args[0])
	if !ok {
		return Value{}, failf(ErrType, "type %s doesn't define __round__ method", args[0].kind)
	}
	if len(args) == 1 {
		if n.isInt {
			return intValue(n.i), nil
		}
		return floatToInt(math.RoundToEven(n.f))
	}
	digits, err := intArg(args[1])
	if err != nil {
		return Value{}, err
	}
	if n.isInt {
		if digits.Sign() >= 0 {
			return intValue(n.i), nil
		}
		// 10**k exceeds 2*|i| once k passes the bit length of i.
		if digits.CmpAbs(big.NewInt(int64(n.i.BitLen()))) > 0 {
			return int64Value(0), nil
		}
		unit := new(big.Int).Exp(big.NewInt(10), new(big.Int).Neg(digits), nil)
		return intValue(roundIntHalfEven(n.i, unit)), nil
	}
	if !digits.IsInt64() {
		if digits.Sign() > 0 {
			return floatValue(n.f), nil
		}
		return floatValue(math.Copysign(0, n.f)), nil
	}
	r := roundFloat(n.f, digits.Int64())
	if math.IsInf(r, 0) && !math.IsInf(n.f, 0) {
		return Value{}, failf(ErrOverflow, "rounded value too large to represent")
	}
	return floatValue(r), nil
}

// roundIntHalfEven rounds i to the nearest multiple of unit, ties to even.
func roundIntHalfEven(i, unit *big.Int) *big.Int {
	q, r := floorDivMod(i, unit)
	c := new(big.Int).Lsh(r, 1).Cmp(unit)
	if c > 0 || (c == 0 && q.Bit(0) == 1) {
		q.Add(q, big.NewInt(1))
	}
	return q.Mul(q, unit)
}

// roundFloat rounds x to the given number of decimal digits using the exact
// decimal value of x, ties to even.
func roundFloat(x float64, digits int64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x == 0 {
		return x
	}
	if digits >= 0 {
		if digits > 330 {
			return x
		}
		r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', int(digits), 64), 64)
		if err != nil {
			return x
		}
		return r
	}
	if digits < -330 {
		return math.Copysign(0, x)
	}
	unit := math.Pow(10, float64(-digits))
	return math.Copysign(math.RoundToEven(x/unit)*unit, x)
}

func extremum(name, op string) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, failf(ErrType, "%s expected at least 1 argument, got 0", name)
		}
		items := args
		if len(args) == 1 {
			if !isSequence(args[0]) {
				return Value{}, failf(ErrType, "'%s' object is not iterable", args[0].kind)
			}
			items = args[0].items
			if len(items) == 0 {
				return Value{}, failf(ErrValue, "%s() arg is an empty sequence", name)
			}
		}
		best := items[0]
		for _, item := range items[1:] {
			better, err := compareValues(op, item, best)
			if err != nil {
				return Value{}, err
			}
			if better {
				best = item
			}
		}
		return best, nil
	}
}

func builtinSum(args []Value) (Value, error) {
	if err := checkArity("sum", args, 1, 2); err != nil {
		return Value{}, err
	}
	if !isSequence(args[0]) {
		return Value{}, failf(ErrType, "'%s' object is not iterable", args[0].kind)
	}
	acc := int64Value(0)
	if len(args) == 2 {
		acc = args[1]
	}
	for _, item := range args[0].items {
		var err error
		acc, err = binaryOp("+", acc, item)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

func builtinPow(args []Value) (Value, error) {
	if err := checkArity("pow", args, 2, 3); err != nil {
		return Value{}, err
	}
	if len(args) == 2 {
		return binaryOp("**", args[0], args[1])
	}
	base, okB := args[0].Int()
	exp, okE := args[1].Int()
	mod, okM := args[2].Int()
	if !okB || !okE || !okM {
		return Value{}, failf(ErrType, "pow() 3rd argument not allowed unless all arguments are integers")
	}
	if mod.Sign() == 0 {
		return Value{}, failf(ErrValue, "pow() 3rd argument cannot be 0")
	}
	absMod := new(big.Int).Abs(mod)
	base.Mod(base, absMod)
	if exp.Sign() < 0 {
		inv := new(big.Int).ModInverse(base, absMod)
		if inv == nil {
			return Value{}, failf(ErrValue, "base is not invertible for the given modulus")
		}
		base = inv
		exp.Neg(exp)
	}
	r := new(big.Int).Exp(base, exp, absMod)
	if mod.Sign() < 0 && r.Sign() != 0 {
		r.Add(r, mod)
	}
	return intValue(r), nil
}

// logarithm applies f to v. Integers too large for a float are split into
// mantissa and binary exponent first.
func logarithm(v Value, f func(float64) float64) (float64, error) {
	n, ok := toNumber(v)
	if !ok {
		return 0, failf(ErrType, "must be real number, not %s", v.kind)
	}
	if n.isInt {
		if n.i.Sign() <= 0 {
			return 0, failf(ErrDomain, "math domain error")
		}
		if x, err := intToFloat(n.i); err == nil {
			return f(x), nil
		}
		mant := new(big.Float)
		exp := new(big.Float).SetInt(n.i).MantExp(mant)
		m, _ := mant.Float64()
		return f(m) + float64(exp)*f(2), nil
	}
	if n.f <= 0 {
		return 0, failf(ErrDomain, "math domain error")
	}
	return f(n.f), nil
}

func builtinLog(args []Value) (Value, error) {
	if err := checkArity("log", args, 1, 2); err != nil {
		return Value{}, err
	}
	x, err := logarithm(args[0], math.Log)
	if err != nil {
		return Value{}, err
	}
	if len(args) == 1 {
		return floatValue(x), nil
	}
	base, err := logarithm(args[1], math.Log)
	if err != nil {
		return Value{}, err
	}
	if base == 0 {
		return Value{}, failf(ErrZeroDivision, "float division by zero")
	}
	return floatValue(x / base), nil
}

func builtinLog10(args []Value) (Value, error) {
	if err := checkArity("log10", args, 1, 1); err != nil {
		return Value{}, err
	}
	x, err := logarithm(args[0], math.Log10)
	if err != nil {
		return Value{}, err
	}
	return floatValue(x), nil
}

func rounder(name string, f func(float64) float64) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return Value{}, err
		}
		n, ok := toNumber(args[0])
		if !ok {
			return Value{}, failf(ErrType, "must be real number, not %s", args[0].kind)
		}
		if n.isInt {
			return intValue(n.i), nil
		}
		return floatToInt(f(n.f))
	}
}

func builtinFactorial(args []Value) (Value, error) {
	if err := checkArity("factorial", args, 1, 1); err != nil {
		return Value{}, err
	}
	n, err := intArg(args[0])
	if err != nil {
		return Value{}, err
	}
	if n.Sign() < 0 {
		return Value{}, failf(ErrValue, "factorial() not defined for negative values")
	}
	if !n.IsInt64() || n.Int64() > maxFactorialArg {
		return Value{}, failf(ErrOverflow, "factorial() argument should not exceed %d", maxFactorialArg)
	}
	return intValue(new(big.Int).MulRange(1, n.Int64())), nil
}
