package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/akrennmair/spi/config"
	"github.com/akrennmair/spi/interp"
	"github.com/akrennmair/spi/parser"
	"github.com/akrennmair/spi/semantic"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "spi.toml"

var (
	cfgFile string
	trace   bool

	// loadedConfig is the config of the running command, nil until it was loaded.
	loadedConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "spi",
	Short: "spi - a simple Pascal interpreter",
	Long: `spi lexes, parses, checks and runs programs written in a small
subset of Pascal: INTEGER and REAL variables, nested procedures with
value parameters, assignments and arithmetic expressions.

Commands:
  run        Run a program and print its variables
  check      Parse and check a program without running it
  tokens     List the tokens of a program
  ast        Dump the syntax tree of a program
  translate  Render a program or expression in another notation
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&trace, "trace", "t", false, "trace parser, analyzer and interpreter to stderr")

	rootCmd.AddCommand(runCmd, checkCmd, tokensCmd, astCmd, translateCmd)
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOptional(defaultConfigFile)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if trace {
		cfg.Trace.Parser = true
		cfg.Trace.Analyzer = true
		cfg.Trace.Interpreter = true
	}

	loadedConfig = cfg
	return cfg, nil
}

func traceLogger(enabled bool, prefix string) *log.Logger {
	var w io.Writer = io.Discard
	if enabled {
		w = os.Stderr
	}
	return log.New(w, prefix, log.Lmsgprefix)
}

func readSource(file string) (string, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading file %s failed: %w", file, err)
	}
	return string(source), nil
}

// parseFile parses file and, unless it fails, runs the semantic analysis on it.
func parseFile(cfg *config.Config, file string, analyze bool) (*parser.Program, error) {
	source, err := readSource(file)
	if err != nil {
		return nil, err
	}

	p := parser.NewParser(file, source)
	if cfg.Trace.Parser {
		p.SetLogOutput(os.Stderr)
	}

	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}

	if !analyze {
		return prog, nil
	}

	analyzer := semantic.New(
		semantic.WithSourceName(file),
		semantic.WithLogger(traceLogger(cfg.Trace.Analyzer, "analyzer: ")),
	)
	if err := analyzer.Analyze(prog); err != nil {
		return nil, err
	}

	return prog, nil
}

func newInterpreter(cfg *config.Config, file string) *interp.Interpreter {
	return interp.New(
		interp.WithSourceName(file),
		interp.WithMaxCallDepth(cfg.Run.MaxCallDepth),
		interp.WithLogger(traceLogger(cfg.Trace.Interpreter, "interp: ")),
	)
}
