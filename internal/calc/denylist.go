package calc

import "strings"

// denylist holds the substrings that make an expression unsafe. Matching is a
// case-insensitive substring search over the raw input, so identifiers that merely
// contain one of these tokens are rejected too.
var denylist = []string{
	"import",
	"exec(",
	"eval(",
	"open(",
	"__",
	"quit",
	"exit",
	"help",
}

// CheckSafe returns ErrUnsafeInput if expr contains a denylisted token.
func CheckSafe(expr string) error {
	lower := strings.ToLower(expr)
	for _, token := range denylist {
		if strings.Contains(lower, token) {
			return ErrUnsafeInput
		}
	}
	return nil
}

// Normalize rewrites every '^' as the power operator. The substitution is purely
// textual.
func Normalize(expr string) string {
	return strings.ReplaceAll(expr, "^", "**")
}
