package calc

import (
	"math"
	"math/big"
)

const (
	// maxIntBits caps the size of integer results so that expressions such as
	// 9**9**9 fail fast instead of exhausting memory.
	maxIntBits = 1 << 20
	// maxSeqLen caps the number of elements, nested ones included, in a tuple
	// or list built by concatenation or repetition.
	maxSeqLen = 1 << 16
)

// number is a numeric operand with bools already promoted to ints.
type number struct {
	isInt bool
	i     *big.Int
	f     float64
}

func toNumber(v Value) (number, bool) {
	switch v.kind {
	case KindInt, KindBool:
		i, _ := v.Int()
		return number{isInt: true, i: i}, true
	case KindFloat:
		return number{f: v.f}, true
	default:
		return number{}, false
	}
}

func (n number) float() (float64, error) {
	if !n.isInt {
		return n.f, nil
	}
	return intToFloat(n.i)
}

// intToFloat converts i to the nearest float64, failing when i is out of range.
func intToFloat(i *big.Int) (float64, error) {
	f, _ := new(big.Float).SetInt(i).Float64()
	if math.IsInf(f, 0) {
		return 0, failf(ErrOverflow, "int too large to convert to float")
	}
	return f, nil
}

func isSequence(v Value) bool {
	return v.kind == KindTuple || v.kind == KindList
}

func unsupported(op string, x, y Value) error {
	return failf(ErrType, "unsupported operand type(s) for %s: '%s' and '%s'", op, x.kind, y.kind)
}

func binaryOp(op string, x, y Value) (Value, error) {
	switch op {
	case "+":
		if isSequence(x) && x.kind == y.kind {
			if weight(x)+weight(y)-2 > maxSeqLen {
				return Value{}, failf(ErrOverflow, "sequence is too long")
			}
			items := make([]Value, 0, len(x.items)+len(y.items))
			items = append(items, x.items...)
			items = append(items, y.items...)
			return Value{kind: x.kind, items: items}, nil
		}
	case "*":
		if isSequence(x) && (y.kind == KindInt || y.kind == KindBool) {
			return repeat(x, y)
		}
		if isSequence(y) && (x.kind == KindInt || x.kind == KindBool) {
			return repeat(y, x)
		}
	}

	a, okA := toNumber(x)
	b, okB := toNumber(y)
	if !okA || !okB {
		return Value{}, unsupported(op, x, y)
	}
	switch op {
	case "**":
		return power(a, b)
	case "/":
		return trueDivide(a, b)
	}
	if a.isInt && b.isInt {
		return intArith(op, a.i, b.i)
	}
	fa, err := a.float()
	if err != nil {
		return Value{}, err
	}
	fb, err := b.float()
	if err != nil {
		return Value{}, err
	}
	return floatArith(op, fa, fb)
}

func repeat(seq, count Value) (Value, error) {
	n, _ := count.Int()
	if n.Sign() <= 0 {
		return Value{kind: seq.kind, items: []Value{}}, nil
	}
	if !n.IsInt64() || n.Int64() > maxSeqLen || n.Int64()*int64(weight(seq)-1) > maxSeqLen {
		return Value{}, failf(ErrOverflow, "sequence is too long")
	}
	items := make([]Value, 0, int(n.Int64())*len(seq.items))
	for k := int64(0); k < n.Int64(); k++ {
		items = append(items, seq.items...)
	}
	return Value{kind: seq.kind, items: items}, nil
}

// weight counts v and every element nested inside it. Counting stops once the
// total passes maxSeqLen.
func weight(v Value) int {
	if !isSequence(v) {
		return 1
	}
	w := 1
	for _, item := range v.items {
		w += weight(item)
		if w > maxSeqLen {
			break
		}
	}
	return w
}

func intArith(op string, a, b *big.Int) (Value, error) {
	switch op {
	case "+":
		return intValue(new(big.Int).Add(a, b)), nil
	case "-":
		return intValue(new(big.Int).Sub(a, b)), nil
	case "*":
		if a.BitLen()+b.BitLen() > maxIntBits {
			return Value{}, failf(ErrOverflow, "integer result too large")
		}
		return intValue(new(big.Int).Mul(a, b)), nil
	case "//", "%":
		if b.Sign() == 0 {
			return Value{}, failf(ErrZeroDivision, "integer division or modulo by zero")
		}
		q, r := floorDivMod(a, b)
		if op == "//" {
			return intValue(q), nil
		}
		return intValue(r), nil
	}
	return Value{}, syntaxErrorf("invalid syntax: unknown operator %q", op)
}

// floorDivMod divides rounding toward negative infinity; the remainder takes the
// sign of the divisor.
func floorDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
	return q, r
}

func floatArith(op string, a, b float64) (Value, error) {
	switch op {
	case "+":
		return floatValue(a + b), nil
	case "-":
		return floatValue(a - b), nil
	case "*":
		return floatValue(a * b), nil
	case "//":
		if b == 0 {
			return Value{}, failf(ErrZeroDivision, "float floor division by zero")
		}
		div, _ := floatDivMod(a, b)
		return floatValue(div), nil
	case "%":
		if b == 0 {
			return Value{}, failf(ErrZeroDivision, "float modulo by zero")
		}
		_, mod := floatDivMod(a, b)
		return floatValue(mod), nil
	}
	return Value{}, syntaxErrorf("invalid syntax: unknown operator %q", op)
}

// floatDivMod returns floor(a/b) and the matching modulo, computed from fmod so
// that the pair stays consistent for values that are not exactly representable.
func floatDivMod(a, b float64) (float64, float64) {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 {
		if (b < 0) != (mod < 0) {
			mod += b
			div--
		}
	} else {
		mod = math.Copysign(0, b)
	}
	if div != 0 {
		floorDiv := math.Floor(div)
		if div-floorDiv > 0.5 {
			floorDiv++
		}
		return floorDiv, mod
	}
	return math.Copysign(0, a/b), mod
}

func trueDivide(a, b number) (Value, error) {
	if a.isInt && b.isInt {
		if b.i.Sign() == 0 {
			return Value{}, failf(ErrZeroDivision, "division by zero")
		}
		f, _ := new(big.Rat).SetFrac(a.i, b.i).Float64()
		if math.IsInf(f, 0) {
			return Value{}, failf(ErrOverflow, "integer division result too large for a float")
		}
		return floatValue(f), nil
	}
	fa, err := a.float()
	if err != nil {
		return Value{}, err
	}
	fb, err := b.float()
	if err != nil {
		return Value{}, err
	}
	if fb == 0 {
		return Value{}, failf(ErrZeroDivision, "float division by zero")
	}
	return floatValue(fa / fb), nil
}

func power(a, b number) (Value, error) {
	if a.isInt && b.isInt && b.i.Sign() >= 0 {
		return intPower(a.i, b.i)
	}
	fa, err := a.float()
	if err != nil {
		return Value{}, err
	}
	fb, err := b.float()
	if err != nil {
		return Value{}, err
	}
	return floatPower(fa, fb)
}

func intPower(base, exp *big.Int) (Value, error) {
	switch {
	case exp.Sign() == 0:
		return int64Value(1), nil
	case base.Sign() == 0:
		return int64Value(0), nil
	case base.CmpAbs(big.NewInt(1)) == 0:
		if base.Sign() < 0 && exp.Bit(0) == 1 {
			return int64Value(-1), nil
		}
		return int64Value(1), nil
	}
	if !exp.IsInt64() || exp.Int64() > maxIntBits || int64(base.BitLen())*exp.Int64() > maxIntBits {
		return Value{}, failf(ErrOverflow, "integer result too large")
	}
	return intValue(new(big.Int).Exp(base, exp, nil)), nil
}

func floatPower(x, y float64) (Value, error) {
	if x == 0 && y < 0 {
		return Value{}, failf(ErrZeroDivision, "0.0 cannot be raised to a negative power")
	}
	if x < 0 && !math.IsInf(x, 0) && !math.IsInf(y, 0) && !math.IsNaN(y) && y != math.Trunc(y) {
		return Value{}, failf(ErrDomain, "negative number cannot be raised to a fractional power")
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return Value{}, failf(ErrOverflow, "numerical result out of range")
	}
	return floatValue(r), nil
}

func unaryOp(op string, x Value) (Value, error) {
	n, ok := toNumber(x)
	if !ok {
		return Value{}, failf(ErrType, "bad operand type for unary %s: '%s'", op, x.kind)
	}
	if op == "+" {
		if n.isInt {
			return intValue(n.i), nil
		}
		return floatValue(n.f), nil
	}
	if n.isInt {
		return intValue(new(big.Int).Neg(n.i)), nil
	}
	return floatValue(-n.f), nil
}

// compareNumbers orders two numbers exactly, including int/float mixes. ok is
// false when either side is NaN.
func compareNumbers(a, b number) (c int, ok bool) {
	if a.isInt && b.isInt {
		return a.i.Cmp(b.i), true
	}
	if (!a.isInt && math.IsNaN(a.f)) || (!b.isInt && math.IsNaN(b.f)) {
		return 0, false
	}
	return exactFloat(a).Cmp(exactFloat(b)), true
}

func exactFloat(n number) *big.Float {
	if n.isInt {
		return new(big.Float).SetInt(n.i)
	}
	return new(big.Float).SetFloat64(n.f)
}

func equalValues(x, y Value) bool {
	a, okA := toNumber(x)
	b, okB := toNumber(y)
	if okA && okB {
		c, ok := compareNumbers(a, b)
		return ok && c == 0
	}
	switch {
	case isSequence(x) && x.kind == y.kind:
		if len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !equalValues(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case x.kind == KindFunc && y.kind == KindFunc:
		return x.fn == y.fn
	}
	return false
}

func compareValues(op string, x, y Value) (bool, error) {
	switch op {
	case "==":
		return equalValues(x, y), nil
	case "!=":
		return !equalValues(x, y), nil
	}

	a, okA := toNumber(x)
	b, okB := toNumber(y)
	if okA && okB {
		c, ok := compareNumbers(a, b)
		if !ok {
			return false, nil
		}
		return orderHolds(op, c), nil
	}
	if isSequence(x) && x.kind == y.kind {
		for i := 0; i < len(x.items) && i < len(y.items); i++ {
			if !equalValues(x.items[i], y.items[i]) {
				return compareValues(op, x.items[i], y.items[i])
			}
		}
		return orderHolds(op, len(x.items)-len(y.items)), nil
	}
	return false, failf(ErrType, "'%s' not supported between instances of '%s' and '%s'", op, x.kind, y.kind)
}

func orderHolds(op string, c int) bool {
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}
	return false
}
