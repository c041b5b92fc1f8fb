package eval

import (
	"fmt"
	"strconv"

	"github.com/havrydotdev/lx/token"
)

// nil and false are falsy, everything else is truthy.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}

	val, ok := value.(bool)
	if ok {
		return val
	}

	return true
}

// Runtime values are nil, bool, float64, string or a pointer to a
// callable, all comparable, so == is structural equality.
func isEqual(left, right any) bool {
	if left == nil && right == nil {
		return true
	}

	if left == nil {
		return false
	}

	return left == right
}

func checkNum(op token.Token, operand any) (float64, error) {
	n, ok := operand.(float64)
	if !ok {
		return 0, newRuntimeError(op, "Operand must be a number.")
	}

	return n, nil
}

func checkNums(op token.Token, left, right any) (float64, float64, error) {
	l, okl := left.(float64)
	r, okr := right.(float64)
	if !okl || !okr {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}

	return l, r, nil
}

// Stringify renders a value the way print shows it.
func Stringify(value any) string {
	switch value := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
