package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/mathview/pkg/typeset"
)

func init() {
	RegisterCommand(&Command{
		Name:  "scan",
		Short: "Typeset a document's embedded math",
		Long: `Read a document from a file or stdin, typeset every delimited math
span, and print the rewritten text.

The default delimiters are \( \) for inline math and $$ $$ or \[ \]
for display math; mathview.yaml can add more. Display equations are
numbered sequentially.

Flags:
  --mml        Emit MathML for math spans instead of plain text`,
		Usage: "mathview scan [--mml] [file]",
		Run:   runScan,
	})
}

func runScan(args []string) error {
	var mml bool
	var paths []string
	for _, arg := range args {
		switch arg {
		case "--mml":
			mml = true
		default:
			paths = append(paths, arg)
		}
	}
	if len(paths) > 1 {
		return fmt.Errorf("scan reads a single file or stdin\n\nUsage: mathview scan [--mml] [file]")
	}

	var data []byte
	var err error
	if len(paths) == 0 {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(paths[0])
	}
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := engineFromConfig(cfg, mml)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	fragment := typeset.NewFragment(string(data))
	if err := typesetFragment(engine, fragment); err != nil {
		return err
	}

	out := fragment.PlainText()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Print(out)
	return nil
}
