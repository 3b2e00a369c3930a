package texmath

import (
	"fmt"
	"strings"
)

// mathMLNamespace is carried on every <math> root element.
const mathMLNamespace = "http://www.w3.org/1998/Math/MathML"

var mlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// renderMathML serializes a parsed expression as a complete <math>
// element. src is the macro-expanded input, needed to recover raw \text
// content.
func renderMathML(src string, root *Expression, display bool, scale float64) (string, error) {
	w := &mmlWriter{src: src}
	mode := "inline"
	if display {
		mode = "block"
	}
	w.b.WriteString(`<math xmlns="` + mathMLNamespace + `" display="` + mode + `"`)
	if scale > 0 && scale != 1 {
		fmt.Fprintf(&w.b, ` style="font-size:%.2fem"`, scale)
	}
	w.b.WriteString(">")
	if err := w.expression(root); err != nil {
		return "", err
	}
	w.b.WriteString("</math>")
	return w.b.String(), nil
}

type mmlWriter struct {
	src string
	b   strings.Builder
}

func (w *mmlWriter) expression(e *Expression) error {
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

func (w *mmlWriter) term(t *Term) error {
	sub, sup, err := splitScripts(t)
	if err != nil {
		return err
	}
	switch {
	case sub != nil && sup != nil:
		return w.scripted("msubsup", t.Atom, sub, sup)
	case sub != nil:
		return w.scripted("msub", t.Atom, sub)
	case sup != nil:
		return w.scripted("msup", t.Atom, sup)
	default:
		return w.atom(t.Atom)
	}
}

func (w *mmlWriter) scripted(element string, atoms ...*Atom) error {
	w.b.WriteString("<" + element + ">")
	for _, a := range atoms {
		if err := w.atom(a); err != nil {
			return err
		}
	}
	w.b.WriteString("</" + element + ">")
	return nil
}

func (w *mmlWriter) atom(a *Atom) error {
	switch {
	case a == nil:
		return nil
	case a.Command != nil:
		return w.command(a.Command)
	case a.Number != nil:
		w.tag("mn", *a.Number)
	case a.Letter != nil:
		w.tag("mi", *a.Letter)
	case a.Group != nil:
		return w.row(a.Group)
	case a.Escaped != nil:
		lit := strings.TrimPrefix(*a.Escaped, `\`)
		if lit == " " {
			w.b.WriteString(`<mspace width="0.25em"/>`)
		} else {
			w.tag("mo", lit)
		}
	case a.Symbol != nil:
		w.tag("mo", *a.Symbol)
	}
	return nil
}

func (w *mmlWriter) command(c *Command) error {
	word := commandWord(c)
	switch {
	case word == "frac":
		num, den, err := twoArgs(c)
		if err != nil {
			return err
		}
		w.b.WriteString("<mfrac>")
		if err := w.row(num); err != nil {
			return err
		}
		if err := w.row(den); err != nil {
			return err
		}
		w.b.WriteString("</mfrac>")
		return w.extraArgs(c, 2)
	case word == "sqrt":
		arg, err := oneArg(c)
		if err != nil {
			return err
		}
		w.b.WriteString("<msqrt>")
		if err := w.row(arg); err != nil {
			return err
		}
		w.b.WriteString("</msqrt>")
		return w.extraArgs(c, 1)
	case word == "text":
		arg, err := oneArg(c)
		if err != nil {
			return err
		}
		w.tag("mtext", textContent(w.src, arg))
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
		w.tag("mi", doubleStruckString(inner))
		return w.extraArgs(c, 1)
	case greekLetters[word] != "":
		w.tag("mi", greekLetters[word])
		return w.extraArgs(c, 0)
	case operatorSymbols[word] != "":
		w.tag("mo", operatorSymbols[word])
		return w.extraArgs(c, 0)
	case functionNames[word]:
		w.tag("mi", word)
		return w.extraArgs(c, 0)
	default:
		return fmt.Errorf("undefined control sequence \\%s", word)
	}
}

// extraArgs renders brace groups beyond a command's arity as ordinary
// rows, so \alpha{x} reads the same as \alpha x.
func (w *mmlWriter) extraArgs(c *Command, arity int) error {
	for _, g := range c.Args[arity:] {
		if err := w.row(g); err != nil {
			return err
		}
	}
	return nil
}

func (w *mmlWriter) row(g *Group) error {
	w.b.WriteString("<mrow>")
	if err := w.expression(g.Expr); err != nil {
		return err
	}
	w.b.WriteString("</mrow>")
	return nil
}

func (w *mmlWriter) tag(name, text string) {
	w.b.WriteString("<" + name + ">")
	w.b.WriteString(mlEscaper.Replace(text))
	w.b.WriteString("</" + name + ">")
}
