package main

import (
	"fmt"

	"github.com/akrennmair/spi/config"
	"github.com/akrennmair/spi/notation"
	"github.com/akrennmair/spi/parser"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	translateTo  string
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a program and print its variables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("format") {
			cfg.Run.Format = outputFormat
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		prog, err := parseFile(cfg, args[0], true)
		if err != nil {
			return err
		}

		interpreter := newInterpreter(cfg, args[0])
		if err := interpreter.Interpret(prog); err != nil {
			return err
		}

		return printBindings(cmd.OutOrStdout(), cfg, interpreter.Globals())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Parse and check a program without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		prog, err := parseFile(cfg, args[0], true)
		if err != nil {
			return err
		}

		printOK(cmd.OutOrStdout(), cfg, fmt.Sprintf("%s: program %s is valid", args[0], prog.Name))
		return nil
	},
}

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "List the tokens of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}

		lexer := parser.NewLexer(args[0], source)
		for {
			tok, err := lexer.NextToken()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			if tok.Kind == parser.TokenEOF {
				return nil
			}
		}
	},
}

var astCmd = &cobra.Command{
	Use:   "ast FILE",
	Short: "Dump the syntax tree of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		prog, err := parseFile(cfg, args[0], false)
		if err != nil {
			return err
		}

		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		dumper.Fdump(cmd.OutOrStdout(), prog)
		return nil
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate FILE",
	Short: "Render a program or expression in another notation",
	Long: `Render a program in canonical source form (--to source), or a single
arithmetic expression in postfix (--to postfix) or prefix (--to prefix)
notation. For postfix and prefix, FILE must contain only the expression.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}

		var out string

		switch translateTo {
		case "source":
			prog, err := parser.Parse(args[0], source)
			if err != nil {
				return err
			}
			if out, err = notation.Source(prog); err != nil {
				return err
			}
		case "postfix", "prefix":
			expr, err := parser.ParseExpression(args[0], source)
			if err != nil {
				return err
			}
			render := notation.Postfix
			if translateTo == "prefix" {
				render = notation.Prefix
			}
			if out, err = render(expr); err != nil {
				return err
			}
			out += "\n"
		default:
			return fmt.Errorf("unknown notation %q, expected source, postfix or prefix", translateTo)
		}

		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", config.FormatText, "output format of the variables: text or yaml")
	translateCmd.Flags().StringVar(&translateTo, "to", "source", "target notation: source, postfix or prefix")
}
