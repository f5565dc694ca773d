package kern

import "strconv"

// TermError is an error indicating a token that cannot begin a term, like an
// operator with no left operand or a word that is not a known unary operator.
// It implements InputError.
type TermError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the token.
	Token string
}

func (err *TermError) Error() string {
	return errpos(err.Col, "cannot begin a term with "+strconv.Quote(err.Token))
}

func (err *TermError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating that the input ended where a
// term was expected. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position at which the input ended.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	if err.Col <= 1 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "no expression at end")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// TrailingTokenError is an error indicating input left over after a complete
// expression. It implements InputError.
type TrailingTokenError struct {
	// Col is the position of the first unparsed token.
	Col int
	// Token is the text of the first unparsed token.
	Token string
}

func (err *TrailingTokenError) Error() string {
	return errpos(err.Col, "trailing token "+strconv.Quote(err.Token)+" after expression")
}

func (err *TrailingTokenError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*TermError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TrailingTokenError)(nil)
	_ InputError = (*LexError)(nil)
)
