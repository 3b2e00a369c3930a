package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/mathview/pkg/typeset"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render one TeX expression",
		Long: `Render a single TeX expression through the configured engine's
conversion functions.

Output is plain unicode text by default; --mml switches to MathML.
The conversion function, display style and scale configured in
mathview.yaml apply unless flags override them.

Flags:
  --mml        Emit MathML instead of plain text
  --display    Request display (block) style output`,
		Usage: "mathview render [--mml] [--display] <tex>",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	var display, mml bool
	var rest []string
	for _, arg := range args {
		switch arg {
		case "--display":
			display = true
		case "--mml":
			mml = true
		default:
			rest = append(rest, arg)
		}
	}
	if len(rest) == 0 {
		return fmt.Errorf("an expression is required\n\nUsage: mathview render [--mml] [--display] <tex>")
	}
	tex := strings.Join(rest, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := engineFromConfig(cfg, mml)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	if !typeset.SupportsConvert(engine) {
		return fmt.Errorf("engine %s cannot convert; render needs the version-3 document API", engine.Version())
	}
	doc := engine.(typeset.DocumentEngine)

	spec := cfg.ConversionSpec()
	fn := spec.Function
	switch {
	case mml:
		fn = "tex2mml"
	case fn == "":
		fn = "tex2plain"
	}
	options := spec.Options
	if display {
		options.Display = true
	}

	out, err := awaitConvert(doc.Convert(fn, tex, options))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
