// Package cmd implements the mathview CLI commands.
//
// The command structure follows standard Go CLI patterns with a root
// command that dispatches to subcommands (render, scan, version).
package cmd

import (
	"fmt"
	"os"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "mathview",
	Short: "mathview - TeX math rendering from the terminal",
	Long: `mathview converts TeX math to MathML or plain unicode text and scans
documents for delimited math the way the mathview widget does.

Use "mathview <command> --help" for more information about a command.`,
	Usage: "mathview <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// configDir is where mathview.yaml is looked up; the working directory
// unless --config overrides it.
var configDir = "."

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags and extract --config
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				fmt.Printf("mathview CLI version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--config":
			if i+1 < len(args) {
				configDir = args[i+1]
				i++
			} else {
				return fmt.Errorf("--config requires a directory path")
			}
		default:
			if strings.HasPrefix(arg, "--config=") {
				configDir = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-10s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show CLI version information")
	fmt.Println("  --config DIR         Directory holding mathview.yaml (default: .)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  mathview render 'E=mc^2'             Render one expression as text")
	fmt.Println("  mathview render --mml '\\frac{a}{b}'  Render one expression as MathML")
	fmt.Println("  mathview scan README.tex             Typeset a document's math spans")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
