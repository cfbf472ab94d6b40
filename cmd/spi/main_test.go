package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akrennmair/spi/config"
	"github.com/akrennmair/spi/interp"
	"github.com/akrennmair/spi/parser"
	"github.com/akrennmair/spi/semantic"
	"github.com/stretchr/testify/require"
)

const testProgram = `PROGRAM Main;
VAR
   x, y : INTEGER;
   r    : REAL;

PROCEDURE Alpha(a : INTEGER; b : INTEGER);
BEGIN
   y := (a + b) * 2
END;

BEGIN
   x := 7 DIV 2;
   r := 1 / 4;
   Alpha(3 + 5, 7)
END.
`

func writeSource(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.pas")
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvTrace, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPrintBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Run.Color = false

	prog, err := parseFile(cfg, writeSource(t, testProgram), true)
	require.NoError(t, err)

	interpreter := newInterpreter(cfg, "main.pas")
	require.NoError(t, interpreter.Interpret(prog))

	var buf bytes.Buffer
	require.NoError(t, printBindings(&buf, cfg, interpreter.Globals()))
	require.Equal(t, "r = 0.25\nx = 3\ny = 30\n", buf.String())

	buf.Reset()
	cfg.Run.Format = config.FormatYAML
	require.NoError(t, printBindings(&buf, cfg, interpreter.Globals()))
	require.Equal(t, "program: Main\nvariables:\n  r: 0.25\n  x: 3\n  y: 30\n", buf.String())

	buf.Reset()
	require.NoError(t, printBindings(&buf, cfg, nil))
	require.Empty(t, buf.String())
}

func TestPrintError(t *testing.T) {
	testData := []struct {
		name string
		cfg  *config.Config
	}{
		{"no config", nil},
		{"color disabled", &config.Config{Run: config.RunConfig{Color: false}}},
	}

	for _, tt := range testData {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.cfg, errors.New("something broke"))
			require.Equal(t, "error: something broke\n", buf.String())
		})
	}

	var buf bytes.Buffer
	printError(&buf, &config.Config{Run: config.RunConfig{Color: true}}, errors.New("something broke"))
	require.Contains(t, buf.String(), "error:")
	require.Contains(t, buf.String(), "something broke\n")
}

func TestCommandErrorUsesLoadedConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "spi.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[run]\ncolor = false\n"), 0644))
	t.Cleanup(func() {
		cfgFile = ""
		loadedConfig = nil
	})

	_, err := execute(t, "run", "--config", cfgPath, writeSource(t, "PROGRAM Test; VAR a : INTEGER; BEGIN a := 1 DIV 0 END."))
	require.Error(t, err)
	require.NotNil(t, loadedConfig)
	require.False(t, loadedConfig.Run.Color)

	var buf bytes.Buffer
	printError(&buf, loadedConfig, err)
	require.Equal(t, "error: "+err.Error()+"\n", buf.String())
}

func TestCommands(t *testing.T) {
	file := writeSource(t, testProgram)
	exprFile := writeSource(t, "5 + ((1 + 2) * 4) - 3")

	out, err := execute(t, "translate", "--to", "postfix", exprFile)
	require.NoError(t, err)
	require.Equal(t, "5 1 2 + 4 * + 3 -\n", out)

	out, err = execute(t, "translate", "--to", "prefix", exprFile)
	require.NoError(t, err)
	require.Equal(t, "(- (+ 5 (* (+ 1 2) 4)) 3)\n", out)

	out, err = execute(t, "translate", "--to", "source", file)
	require.NoError(t, err)
	require.Contains(t, out, "PROCEDURE Alpha(a : INTEGER; b : INTEGER);\n")

	_, err = execute(t, "translate", "--to", "lisp", file)
	require.Error(t, err)

	out, err = execute(t, "tokens", exprFile)
	require.NoError(t, err)
	require.Contains(t, out, "Token(INTEGER_CONST, 5, position = 1:1)\n")
	require.Contains(t, out, "Token(EOF, position = 1:22)\n")

	out, err = execute(t, "ast", file)
	require.NoError(t, err)
	require.Contains(t, out, `Name: (string) (len=4) "Main"`)
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, "check", writeSource(t, "PROGRAM Test; BEGIN a := 1 END."))
	var semErr *semantic.SemanticError
	require.True(t, errors.As(err, &semErr), "expected SemanticError, got %v", err)
	require.Equal(t, parser.ErrIDNotFound, semErr.Code)

	_, err = execute(t, "run", writeSource(t, "PROGRAM Test; VAR a : INTEGER; BEGIN a := 1 DIV 0 END."))
	var rtErr *interp.RuntimeError
	require.True(t, errors.As(err, &rtErr), "expected RuntimeError, got %v", err)
	require.Equal(t, interp.ErrDivisionByZero, rtErr.Code)

	_, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.pas"))
	require.Error(t, err)

	out, err := execute(t, "check", writeSource(t, testProgram))
	require.NoError(t, err)
	require.Contains(t, out, "program Main is valid")
}
