package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Operation is an arithmetic update applied to the current value.
//
// Operations are written as an operator followed by an integer operand:
//
//	update: "+1"
//	update: "-100"
//	update: "*2"
//	update: "/3"
//
// In YAML, operations starting with "*" must be quoted. Scripts carry the
// shorthand as text; use [Step.Operation] to obtain the parsed form.
type Operation struct {
	Operator byte
	Operand  int
}

// ParseOperation parses the shorthand form of an [Operation].
func ParseOperation(s string) (Operation, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Operation{}, fmt.Errorf("invalid operation %q (expected an operator and an integer, e.g. \"+1\")", s)
	}

	op := s[0]
	switch op {
	case '+', '-', '*', '/':
	default:
		return Operation{}, fmt.Errorf("invalid operation %q: unknown operator %q (expected +, -, *, or /)", s, op)
	}

	operand, err := strconv.Atoi(strings.TrimSpace(s[1:]))
	if err != nil {
		return Operation{}, fmt.Errorf("invalid operation %q: operand must be an integer", s)
	}
	if op == '/' && operand == 0 {
		return Operation{}, fmt.Errorf("invalid operation %q: division by zero", s)
	}

	return Operation{Operator: op, Operand: operand}, nil
}

// IsZero reports whether the operation is unset.
func (o Operation) IsZero() bool {
	return o.Operator == 0
}

// Apply returns the result of applying the operation to v.
// An unset operation returns v unchanged.
func (o Operation) Apply(v int) int {
	switch o.Operator {
	case '+':
		return v + o.Operand
	case '-':
		return v - o.Operand
	case '*':
		return v * o.Operand
	case '/':
		return v / o.Operand
	default:
		return v
	}
}

// String returns the shorthand form, e.g. "+1".
func (o Operation) String() string {
	if o.IsZero() {
		return ""
	}
	return string(o.Operator) + strconv.Itoa(o.Operand)
}
