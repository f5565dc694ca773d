// Package kern implements an arithmetic language in which whitespace decides
// operator precedence.
//
// The horizontal space around an operator matters more than the operator
// itself: less space binds first, and the usual algebraic ranking only breaks
// ties between operators with the same spacing. "1 * 2+3" is therefore the
// same as "1 * (2 + 3)", because "+" hugs its operands and "*" does not.
// Written with uniform spacing, expressions mean exactly what they do in
// ordinary notation.
//
// Unary operators follow the same rule. The gap between "sqrt" and its
// argument sets how much of what follows belongs to it, so "sqrt 1 + 1" is
// "(sqrt 1) + 1" while "sqrt  1 + 1" is "sqrt (1 + 1)".
//
// Parsed expressions render to a fully bracketed form that shows the chosen
// grouping, and evaluate to arbitrary-precision results.
package kern
