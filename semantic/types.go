package semantic

import "github.com/collielang/collie-sub000/token"

const invalidType = token.INVALID

func isNumericType(t token.Kind) bool { return t == token.NUMBER }

func isNumericConvertible(t token.Kind) bool {
	return t == token.NUMBER || t == token.BYTE || t == token.WORD
}

func isBitType(t token.Kind) bool {
	switch t {
	case token.BIT, token.BYTE, token.WORD, token.DWORD:
		return true
	}
	return false
}

func isCharKind(t token.Kind) bool { return t == token.CHAR || t == token.CHARACTER }

func isOrderedType(t token.Kind) bool {
	return isNumericType(t) || t == token.CHAR || t == token.CHARACTER || t == token.STRING
}

func isStringConvertible(t token.Kind) bool {
	switch t {
	case token.STRING, token.CHAR, token.CHARACTER, token.NUMBER, token.BOOL, token.BYTE, token.WORD:
		return true
	}
	return false
}

// isComparableType backs ==, !=.
func isComparableType(l, r token.Kind) bool {
	if l == r {
		return true
	}
	if isNumericType(l) && isNumericType(r) {
		return true
	}
	if isCharKind(l) && isCharKind(r) {
		return true
	}
	return false
}

// isCompatibleType backs <, <=, >, >= and direct-assignment contexts.
// Variable-declaration initializers go through initializerCompatible,
// which accepts everything this accepts plus CHAR→CHARACTER.
func isCompatibleType(l, r token.Kind) bool {
	if l == r {
		return true
	}
	return isNumericType(l) && isNumericType(r)
}

// commonType is used by arithmetic-like contexts (+ and the other
// numeric operators), not by assignment/comparison (§9).
func commonType(l, r token.Kind) token.Kind {
	if l == r {
		return l
	}
	if isNumericConvertible(l) && isNumericConvertible(r) {
		return widestNumeric(l, r)
	}
	if (l == token.STRING && isStringConvertible(r)) || (r == token.STRING && isStringConvertible(l)) {
		return token.STRING
	}
	if isCharKind(l) && isCharKind(r) {
		return token.CHARACTER
	}
	return invalidType
}

func widestNumeric(l, r token.Kind) token.Kind {
	rank := func(k token.Kind) int {
		switch k {
		case token.BYTE:
			return 0
		case token.WORD:
			return 1
		case token.NUMBER:
			return 2
		}
		return -1
	}
	if rank(l) >= rank(r) {
		return l
	}
	return r
}

// initializerCompatible governs variable-declaration initializers: the
// same rule as direct assignment (is_compatible_type), plus the single
// CHAR→CHARACTER carve-out §9's open question #1 calls for. The general
// can_implicit_convert predicate also lists CHAR→STRING/CHARACTER→STRING
// and "any string-convertible→STRING", but applying those wholesale to
// initializers would accept `string x = 42;`, which scenario 5 (§8)
// requires to be a type-mismatch error; only the CHAR/CHARACTER carve-out
// is applied here, per the open question's narrower wording.
func initializerCompatible(from, to token.Kind) bool {
	if isCompatibleType(from, to) {
		return true
	}
	return from == token.CHAR && to == token.CHARACTER
}

// canImplicitConvert is the general implicit-conversion predicate (§4.5).
// The analyzer does not call it: initializers are checked with
// initializerCompatible and assignments with isCompatibleType.
func canImplicitConvert(from, to token.Kind) bool {
	if from == to {
		return true
	}
	switch {
	case from == token.BYTE && to == token.NUMBER:
		return true
	case from == token.WORD && to == token.NUMBER:
		return true
	case from == token.CHAR && to == token.CHARACTER:
		return true
	case from == token.CHAR && to == token.STRING:
		return true
	case from == token.CHARACTER && to == token.STRING:
		return true
	case to == token.STRING && isStringConvertible(from):
		return true
	}
	return false
}
