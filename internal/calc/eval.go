package calc

// Evaluate checks expression against the denylist, rewrites '^' as '**' and
// evaluates the result. Only names from Functions() can be resolved.
//
// A denylisted expression returns ErrUnsafeInput; any parse or runtime failure
// returns an *EvalError, as does a result too large to print.
func Evaluate(expression string) (Value, error) {
	if err := CheckSafe(expression); err != nil {
		return Value{}, err
	}
	tree, err := parse(Normalize(expression))
	if err != nil {
		return Value{}, &EvalError{Err: err}
	}
	v, err := evalNode(tree)
	if err != nil {
		return Value{}, &EvalError{Err: err}
	}
	if err := v.checkPrintable(); err != nil {
		return Value{}, &EvalError{Err: err}
	}
	return v, nil
}

func evalNode(n node) (Value, error) {
	switch n := n.(type) {
	case literal:
		return n.val, nil
	case nameRef:
		v, ok := safeFunctions.Lookup(n.name)
		if !ok {
			return Value{}, failf(ErrName, "name '%s' is not defined", n.name)
		}
		return v, nil
	case unaryExpr:
		x, err := evalNode(n.x)
		if err != nil {
			return Value{}, err
		}
		return unaryOp(n.op, x)
	case binaryExpr:
		x, err := evalNode(n.x)
		if err != nil {
			return Value{}, err
		}
		y, err := evalNode(n.y)
		if err != nil {
			return Value{}, err
		}
		return binaryOp(n.op, x, y)
	case compareExpr:
		return evalCompare(n)
	case callExpr:
		return evalCall(n)
	case tupleExpr:
		items, err := evalNodes(n.elts)
		if err != nil {
			return Value{}, err
		}
		return tupleValue(items), nil
	case listExpr:
		items, err := evalNodes(n.elts)
		if err != nil {
			return Value{}, err
		}
		return listValue(items), nil
	default:
		return Value{}, syntaxErrorf("invalid syntax")
	}
}

func evalNodes(nodes []node) ([]Value, error) {
	out := make([]Value, 0, len(nodes))
	for _, n := range nodes {
		v, err := evalNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// evalCompare evaluates a comparison chain left to right and stops at the first
// comparison that does not hold.
func evalCompare(n compareExpr) (Value, error) {
	left, err := evalNode(n.operands[0])
	if err != nil {
		return Value{}, err
	}
	for i, op := range n.ops {
		right, err := evalNode(n.operands[i+1])
		if err != nil {
			return Value{}, err
		}
		holds, err := compareValues(op, left, right)
		if err != nil {
			return Value{}, err
		}
		if !holds {
			return boolValue(false), nil
		}
		left = right
	}
	return boolValue(true), nil
}

func evalCall(n callExpr) (Value, error) {
	fn, err := evalNode(n.fn)
	if err != nil {
		return Value{}, err
	}
	if fn.kind != KindFunc {
		return Value{}, failf(ErrType, "'%s' object is not callable", fn.kind)
	}
	args, err := evalNodes(n.args)
	if err != nil {
		return Value{}, err
	}
	return fn.fn.call(args)
}
