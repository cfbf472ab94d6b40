package main

import (
	"fmt"
	"io"

	"github.com/akrennmair/spi/config"
	"github.com/akrennmair/spi/interp"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")

	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	valueStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// printError writes err to w. Without a loaded config the output is plain.
func printError(w io.Writer, cfg *config.Config, err error) {
	prefix := "error:"
	if cfg != nil && cfg.Run.Color {
		prefix = errorStyle.Render(prefix)
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}

func printOK(w io.Writer, cfg *config.Config, msg string) {
	if cfg.Run.Color {
		msg = successStyle.Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// printBindings writes the variables of ar sorted by name.
func printBindings(w io.Writer, cfg *config.Config, ar *interp.ActivationRecord) error {
	if ar == nil {
		return nil
	}

	if cfg.Run.Format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]interface{}{
			"program":   ar.Name,
			"variables": ar.Members(),
		}); err != nil {
			return fmt.Errorf("failed to encode variables: %w", err)
		}
		return enc.Close()
	}

	width := 0
	for _, name := range ar.Names() {
		if len(name) > width {
			width = len(name)
		}
	}

	for _, name := range ar.Names() {
		v, _ := ar.Get(name)
		key := fmt.Sprintf("%-*s", width, name)
		value := v.String()
		if cfg.Run.Color {
			key = nameStyle.Render(key)
			value = valueStyle.Render(value)
		}
		fmt.Fprintf(w, "%s = %s\n", key, value)
	}

	return nil
}
