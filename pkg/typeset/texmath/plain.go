package texmath

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// renderPlain flattens a parsed expression to unicode text: Greek
// letters and operators by symbol, scripts through their dedicated
// superscript and subscript forms where those exist.
func renderPlain(src string, root *Expression) (string, error) {
	w := &plainWriter{src: src}
	if err := w.expression(root); err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(w.b.String()), " "), nil
}

type plainWriter struct {
	src string
	b   strings.Builder
}

func (w *plainWriter) expression(e *Expression) error {
	if e == nil {
		return nil
	}
	for _, t := range e.Terms {
		if err := w.term(t); err != nil {
			return err
		}
	}
	return nil
}

func (w *plainWriter) term(t *Term) error {
	sub, sup, err := splitScripts(t)
	if err != nil {
		return err
	}
	if err := w.atom(t.Atom); err != nil {
		return err
	}
	if sub != nil {
		s, err := w.scriptText(sub, subscriptRunes, "_")
		if err != nil {
			return err
		}
		w.b.WriteString(s)
	}
	if sup != nil {
		s, err := w.scriptText(sup, superscriptRunes, "^")
		if err != nil {
			return err
		}
		w.b.WriteString(s)
	}
	return nil
}

// scriptText renders a script argument with dedicated unicode forms when
// every rune has one, and marker notation otherwise.
func (w *plainWriter) scriptText(a *Atom, table map[rune]rune, marker string) (string, error) {
	inner, err := w.nestedAtom(a)
	if err != nil {
		return "", err
	}
	if mapped, ok := mapRunes(inner, table); ok {
		return mapped, nil
	}
	if utf8.RuneCountInString(inner) <= 1 {
		return marker + inner, nil
	}
	return marker + "(" + inner + ")", nil
}

func (w *plainWriter) atom(a *Atom) error {
	switch {
	case a == nil:
		return nil
	case a.Command != nil:
		return w.command(a.Command)
	case a.Number != nil:
		w.b.WriteString(*a.Number)
	case a.Letter != nil:
		w.b.WriteString(*a.Letter)
	case a.Group != nil:
		return w.expression(a.Group.Expr)
	case a.Escaped != nil:
		w.b.WriteString(strings.TrimPrefix(*a.Escaped, `\`))
	case a.Symbol != nil:
		w.symbol(*a.Symbol)
	}
	return nil
}

func (w *plainWriter) command(c *Command) error {
	word := commandWord(c)
	switch {
	case word == "frac":
		num, den, err := twoArgs(c)
		if err != nil {
			return err
		}
		n, err := w.nestedGroup(num)
		if err != nil {
			return err
		}
		d, err := w.nestedGroup(den)
		if err != nil {
			return err
		}
		w.b.WriteString(n + "/" + d)
		return w.extraArgs(c, 2)
	case word == "sqrt":
		arg, err := oneArg(c)
		if err != nil {
			return err
		}
		s, err := w.nestedGroup(arg)
		if err != nil {
			return err
		}
		w.b.WriteString("√" + s)
		return w.extraArgs(c, 1)
	case word == "text":
		arg, err := oneArg(c)
		if err != nil {
			return err
		}
		w.b.WriteString(textContent(w.src, arg))
		return w.extraArgs(c, 1)
	case word == "mathbb":
		arg, err := oneArg(c)
		if err != nil {
			return err
		}
		inner, err := renderPlain(w.src, arg.Expr)
		if err != nil {
			return err
		}
		w.b.WriteString(doubleStruckString(inner))
		return w.extraArgs(c, 1)
	case greekLetters[word] != "":
		w.b.WriteString(greekLetters[word])
		return w.extraArgs(c, 0)
	case operatorSymbols[word] != "":
		w.symbol(operatorSymbols[word])
		return w.extraArgs(c, 0)
	case functionNames[word]:
		w.b.WriteString(word + " ")
		return w.extraArgs(c, 0)
	default:
		return fmt.Errorf("undefined control sequence \\%s", word)
	}
}

func (w *plainWriter) extraArgs(c *Command, arity int) error {
	for _, g := range c.Args[arity:] {
		if err := w.expression(g.Expr); err != nil {
			return err
		}
	}
	return nil
}

// symbol writes one operator, spacing binary operators that have
// something to their left.
func (w *plainWriter) symbol(s string) {
	switch {
	case binaryOperators[s] && w.hasLeft():
		w.b.WriteString(" " + s + " ")
	case s == "," || s == ";":
		w.b.WriteString(s + " ")
	default:
		w.b.WriteString(s)
	}
}

// hasLeft reports whether the last written rune can act as a left
// operand, distinguishing binary minus from a leading sign.
func (w *plainWriter) hasLeft() bool {
	out := strings.TrimRight(w.b.String(), " ")
	if out == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(out)
	switch last {
	case '(', '[', '{', '⟨', '⌊', '⌈':
		return false
	}
	return !binaryOperators[string(last)]
}

// nestedGroup renders a brace argument standalone, parenthesized when it
// holds more than one term.
func (w *plainWriter) nestedGroup(g *Group) (string, error) {
	nested := &plainWriter{src: w.src}
	if err := nested.expression(g.Expr); err != nil {
		return "", err
	}
	s := strings.TrimSpace(nested.b.String())
	if g.Expr != nil && len(g.Expr.Terms) > 1 {
		return "(" + s + ")", nil
	}
	return s, nil
}

// nestedAtom renders a script argument standalone.
func (w *plainWriter) nestedAtom(a *Atom) (string, error) {
	nested := &plainWriter{src: w.src}
	if err := nested.atom(a); err != nil {
		return "", err
	}
	return strings.TrimSpace(nested.b.String()), nil
}

func mapRunes(s string, table map[rune]rune) (string, bool) {
	if s == "" {
		return "", false
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			return "", false
		}
		out = append(out, m)
	}
	return string(out), true
}
