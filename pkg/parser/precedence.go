package parser

import "github.com/rezfront/rezfront/pkg/lexer"

// Operator precedence levels for the integer expression grammar, C-like and
// lowest-to-highest.
const (
	precedenceLowest = iota
	precedenceBoolOr
	precedenceBoolAnd
	precedenceBitOr
	precedenceBitXor
	precedenceBitAnd
	precedenceEquals
	precedenceCompare
	precedenceShift
	precedenceSum
	precedenceProduct
	precedenceUnary
)

var precedenceMap = map[lexer.TokenType]int{
	lexer.BOOLOR:       precedenceBoolOr,
	lexer.BOOLAND:      precedenceBoolAnd,
	lexer.BITOR:        precedenceBitOr,
	lexer.BITXOR:       precedenceBitXor,
	lexer.BITAND:       precedenceBitAnd,
	lexer.EQUAL:        precedenceEquals,
	lexer.NOTEQUAL:     precedenceEquals,
	lexer.LESS:         precedenceCompare,
	lexer.GREATER:      precedenceCompare,
	lexer.LESSEQUAL:    precedenceCompare,
	lexer.GREATEREQUAL: precedenceCompare,
	lexer.SHIFTLEFT:    precedenceShift,
	lexer.SHIFTRIGHT:   precedenceShift,
	lexer.PLUS:         precedenceSum,
	lexer.MINUS:        precedenceSum,
	lexer.MULTIPLY:     precedenceProduct,
	lexer.DIVIDE:       precedenceProduct,
	lexer.MODULO:       precedenceProduct,
}

var tokenOp = map[lexer.TokenType]string{
	lexer.BOOLOR: "||", lexer.BOOLAND: "&&", lexer.BITOR: "|", lexer.BITXOR: "^",
	lexer.BITAND: "&", lexer.EQUAL: "==", lexer.NOTEQUAL: "!=", lexer.LESS: "<",
	lexer.GREATER: ">", lexer.LESSEQUAL: "<=", lexer.GREATEREQUAL: ">=",
	lexer.SHIFTLEFT: "<<", lexer.SHIFTRIGHT: ">>", lexer.PLUS: "+", lexer.MINUS: "-",
	lexer.MULTIPLY: "*", lexer.DIVIDE: "/", lexer.MODULO: "%",
}
