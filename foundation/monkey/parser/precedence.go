// File: precedence.go
// Title: Operator Precedence Table
// Description: Binding power of Monkey operators for the Pratt parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial precedence table

package parser

import "github.com/msto63/monkey/foundation/monkey/token"

// Precedence is the binding power of an operator; higher binds tighter
type Precedence int

const (
	Lowest      Precedence = iota
	Equals                 // == !=
	LessGreater            // < >
	Sum                    // + -
	Product                // * /
	Prefix                 // -x !x
	Call                   // f(x), reserved
)

var precedences = map[token.Type]Precedence{
	token.EQ:       Equals,
	token.NOT_EQ:   Equals,
	token.LT:       LessGreater,
	token.GT:       LessGreater,
	token.PLUS:     Sum,
	token.MINUS:    Sum,
	token.SLASH:    Product,
	token.ASTERISK: Product,
}

// PrecedenceOf returns the infix binding power of t, Lowest for anything
// that is not an infix operator
func PrecedenceOf(t token.Type) Precedence {
	if p, ok := precedences[t]; ok {
		return p
	}
	return Lowest
}

func (p Precedence) String() string {
	switch p {
	case Lowest:
		return "Lowest"
	case Equals:
		return "Equals"
	case LessGreater:
		return "LessGreater"
	case Sum:
		return "Sum"
	case Product:
		return "Product"
	case Prefix:
		return "Prefix"
	case Call:
		return "Call"
	default:
		return "Unknown"
	}
}
