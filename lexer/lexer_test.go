package lexer_test

import (
	"testing"

	"github.com/collielang/collie-sub000/internal/require"
	"github.com/collielang/collie-sub000/lexer"
	"github.com/collielang/collie-sub000/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestBasicLex(t *testing.T) {
	toks := lexer.Tokenize([]byte("number x = 42;"), lexer.UTF8)
	require.Equal(t, []token.Kind{
		token.NUMBER, token.IDENTIFIER, token.ASSIGN, token.NUMBER_LITERAL,
		token.SEMICOLON, token.EOF,
	}, kinds(toks))
	require.Equal(t, "42", toks[3].Lexeme)
}

func TestUnicodeIdentifier(t *testing.T) {
	toks := lexer.Tokenize([]byte("变量名 = 42;"), lexer.UTF8)
	require.Equal(t, token.IDENTIFIER, toks[0].Kind)
	require.Equal(t, "变量名", toks[0].Lexeme)
}

func TestMultilineString(t *testing.T) {
	src := "const text = \"\"\"\n    Hello,\n    World!\n    \"\"\";"
	toks := lexer.Tokenize([]byte(src), lexer.UTF8)
	var str token.Token
	for _, tok := range toks {
		if tok.Kind == token.STRING_LITERAL {
			str = tok
		}
	}
	require.Equal(t, "Hello,\nWorld!\n", str.Lexeme)
}

func TestNestedBlockComment(t *testing.T) {
	src := "/* outer /* inner */ still-comment */ number x;"
	toks := lexer.Tokenize([]byte(src), lexer.UTF8)
	require.Equal(t, token.NUMBER, toks[0].Kind)
}

func TestLongestMatchPunctuation(t *testing.T) {
	toks := lexer.Tokenize([]byte("x <<= 1"), lexer.UTF8)
	require.Equal(t, token.SHL_ASSIGN, toks[1].Kind)
}

func TestScientificNotationMissingExponent(t *testing.T) {
	toks := lexer.Tokenize([]byte("1e;"), lexer.UTF8)
	require.Equal(t, token.INVALID, toks[0].Kind)
}

func TestInvalidEscape(t *testing.T) {
	toks := lexer.Tokenize([]byte(`"\q"`), lexer.UTF8)
	require.Equal(t, token.INVALID, toks[0].Kind)
}

func TestPeekIdempotence(t *testing.T) {
	l := lexer.New([]byte("number x;"), lexer.UTF8)
	peeked := l.PeekToken()
	next := l.NextToken()
	require.Equal(t, peeked.Kind, next.Kind)
	require.Equal(t, peeked.Lexeme, next.Lexeme)
	require.Equal(t, peeked.Line, next.Line)
	require.Equal(t, peeked.Column, next.Column)
}

func TestTotalityOnGarbage(t *testing.T) {
	toks := lexer.Tokenize([]byte{0xFF, 0xFE, 0x80, 0x00, 'x'}, lexer.UTF8)
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestUTF16CharacterSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a UTF-16 surrogate pair, little-endian.
	units := []uint16{'\'', 0xD83D, 0xDE00, '\''}
	buf := make([]byte, 0, len(units)*2)
	for _, u := range units {
		buf = append(buf, byte(u&0xFF), byte(u>>8))
	}
	toks := lexer.Tokenize(buf, lexer.UTF16)
	require.Equal(t, token.CHARACTER_LITERAL, toks[0].Kind)
}
