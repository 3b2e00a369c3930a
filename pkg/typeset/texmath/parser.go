package texmath

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	texLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Command", Pattern: `\\[a-zA-Z]+`},
		{Name: "Escaped", Pattern: `\\[{}$%&#_ ]`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Letter", Pattern: `[A-Za-z]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
		{Name: "Script", Pattern: `[_^]`},
		{Name: "Symbol", Pattern: `[][()+\-*/=<>!|',.;:?]`},
	})

	exprParser = participle.MustBuild[Expression](
		participle.Lexer(texLexer),
		participle.Elide("Whitespace"),
	)
)

// Expression is the root AST node: a juxtaposed run of scripted terms.
type Expression struct {
	Pos   lexer.Position `parser:""`
	Terms []*Term        `parser:"@@*"`
}

// Term is one atom together with any attached scripts.
type Term struct {
	Atom    *Atom     `parser:"@@"`
	Scripts []*Script `parser:"@@*"`
}

// Script is a single subscript or superscript argument.
type Script struct {
	Sub *Atom `parser:"  '_' @@"`
	Sup *Atom `parser:"| '^' @@"`
}

// Atom is a primary node: a control sequence, a literal token, or a
// braced group.
type Atom struct {
	Pos     lexer.Position `parser:""`
	Command *Command       `parser:"  @@"`
	Number  *string        `parser:"| @Number"`
	Letter  *string        `parser:"| @Letter"`
	Group   *Group         `parser:"| @@"`
	Escaped *string        `parser:"| @Escaped"`
	Symbol  *string        `parser:"| @Symbol"`
}

// Group is a braced subexpression. The positions span the braces so raw
// source can be recovered for text-mode content.
type Group struct {
	Pos    lexer.Position `parser:""`
	EndPos lexer.Position `parser:""`
	Expr   *Expression    `parser:"'{' @@ '}'"`
}

// Command is a control sequence with the brace groups that follow it.
// Argument arity is a rendering concern; the grammar attaches every
// adjacent group.
type Command struct {
	Name string   `parser:"@Command"`
	Args []*Group `parser:"@@*"`
}

// Parse parses a TeX math expression from an io.Reader.
func Parse(r io.Reader) (*Expression, error) {
	return exprParser.Parse("", r)
}

// ParseString parses a TeX math expression from a string.
func ParseString(input string) (*Expression, error) {
	return exprParser.ParseString("", input)
}

// commandWord strips the backslash off a control sequence name.
func commandWord(c *Command) string {
	return strings.TrimPrefix(c.Name, `\`)
}

// splitScripts resolves a term's script chain into at most one subscript
// and one superscript, in either order.
func splitScripts(t *Term) (sub, sup *Atom, err error) {
	for _, s := range t.Scripts {
		switch {
		case s.Sub != nil:
			if sub != nil {
				return nil, nil, fmt.Errorf("double subscript")
			}
			sub = s.Sub
		case s.Sup != nil:
			if sup != nil {
				return nil, nil, fmt.Errorf("double superscript")
			}
			sup = s.Sup
		}
	}
	return sub, sup, nil
}

// oneArg returns a command's first brace argument.
func oneArg(c *Command) (*Group, error) {
	if len(c.Args) < 1 {
		return nil, fmt.Errorf("\\%s needs an argument", commandWord(c))
	}
	return c.Args[0], nil
}

// twoArgs returns a command's first two brace arguments.
func twoArgs(c *Command) (*Group, *Group, error) {
	if len(c.Args) < 2 {
		return nil, nil, fmt.Errorf("\\%s needs two arguments", commandWord(c))
	}
	return c.Args[0], c.Args[1], nil
}

// textContent recovers the raw source a brace group spans, with
// whitespace runs collapsed the way TeX text mode collapses them. The
// elided token stream cannot carry the spacing, so the group's positions
// slice it back out of the input. Leading and trailing spaces survive as
// single spaces; \text{if } still separates from what follows.
func textContent(src string, g *Group) string {
	if g == nil {
		return ""
	}
	start := g.Pos.Offset + 1
	end := g.EndPos.Offset - 1
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	raw := src[start:end]
	collapsed := strings.Join(strings.Fields(raw), " ")
	if collapsed == "" {
		if raw != "" {
			return " "
		}
		return ""
	}
	if raw != strings.TrimLeft(raw, " \t\r\n") {
		collapsed = " " + collapsed
	}
	if raw != strings.TrimRight(raw, " \t\r\n") {
		collapsed += " "
	}
	return collapsed
}
