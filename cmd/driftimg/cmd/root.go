// Package cmd implements the driftimg CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (srcset, blur, render, validate).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/go-drift/driftimg/pkg/config"
	"github.com/go-drift/driftimg/pkg/errors"
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
	Run         func(env *Env, args []string) error
	SubCommands []*Command
}

// Env carries the process-wide state a command runs with.
type Env struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Verbose bool
	LogFile string
}

var rootCmd = &Command{
	Name:  "driftimg",
	Short: "driftimg - optimized image rendering for Drift",
	Long: `driftimg inspects and renders optimized images: responsive
candidate URLs, blur-up placeholders and the final <img> markup.

Use "driftimg <command> --help" for more information about a command.`,
	Usage: "driftimg <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run runs the CLI with the given arguments and output streams.
func Run(args []string, stdout, stderr io.Writer) error {
	env := &Env{Stdout: stdout, Stderr: stderr}

	if len(args) == 0 {
		printHelp(stdout, rootCmd)
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(stdout, rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "driftimg version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			env.Verbose = true
		case "--log-file":
			if i+1 >= len(args) {
				return fmt.Errorf("--log-file requires a file path")
			}
			env.LogFile = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--log-file=") {
				env.LogFile = strings.TrimPrefix(arg, "--log-file=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(stdout, rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(stderr, rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}

	if err := loadEnvironment(); err != nil {
		return err
	}

	logger, err := newLogger(env)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	prev := errors.DefaultHandler
	errors.SetHandler(errors.NewZapHandler(logger))
	defer errors.SetHandler(prev)

	return cmd.Run(env, cmdArgs)
}

// loadEnvironment reads .env from the working directory if present and
// applies environment overrides to the global configuration.
func loadEnvironment() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.FromEnv(config.Get())
	if err != nil {
		return err
	}
	config.Configure(cfg)
	return nil
}

func printHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --verbose            Log debug output and stack traces")
	fmt.Fprintln(w, "  --log-file PATH      Also write logs to PATH (rotated)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-20s Enable developer diagnostics (true/false)\n", config.EnvEnableWarnings)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  driftimg srcset --src /a.jpg --width 400   Print candidate URLs")
	fmt.Fprintln(w, "  driftimg blur photo.jpg                    Print a blur placeholder")
	fmt.Fprintln(w, "  driftimg render                            Render images from driftimg.yaml")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}

// flagValue reads the value of a "--name VALUE" or "--name=VALUE" flag at
// args[*i], advancing *i past a separate value. ok is false when args[*i]
// is not the named flag.
func flagValue(args []string, i *int, name string) (value string, ok bool, err error) {
	arg := args[*i]
	if v, found := strings.CutPrefix(arg, name+"="); found {
		return v, true, nil
	}
	if arg != name {
		return "", false, nil
	}
	if *i+1 >= len(args) {
		return "", true, fmt.Errorf("%s requires a value", name)
	}
	*i++
	return args[*i], true, nil
}
