package cmd

import (
	"fmt"

	"github.com/go-drift/mathview/pkg/typeset"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show CLI and engine versions",
		Long: `Show the CLI version, then load the configured engine and report its
version and which generation of the typesetting interface it speaks.`,
		Usage: "mathview version",
		Run:   runVersion,
	})
}

func runVersion(args []string) error {
	fmt.Printf("mathview CLI version %s (built %s)\n", Version, BuildTime)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := engineFromConfig(cfg, false)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	generation := "document API, promise completions"
	if typeset.Major(engine) < 3 {
		generation = "queued API, FIFO completions"
	}
	fmt.Printf("engine %s (%s)\n", engine.Version(), generation)
	return nil
}
