package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTUIThemeSegmentPalette(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	tui := GetCurrentTUITheme()
	states := map[string]lipgloss.TerminalColor{
		"scheduled": tui.Scheduled,
		"processed": tui.Processed,
		"failed":    tui.Failed,
	}
	seen := map[lipgloss.TerminalColor]string{}
	for name, c := range states {
		if _, none := c.(lipgloss.NoColor); none {
			t.Errorf("%s has no color in the dark palette", name)
		}
		if other, dup := seen[c]; dup {
			t.Errorf("%s and %s share a color", name, other)
		}
		seen[c] = name
	}

	SetCurrentTheme(NoColorTheme)
	if _, ok := GetCurrentTUITheme().Failed.(lipgloss.NoColor); !ok {
		t.Error("failed segments must be colorless under NoColorTheme")
	}
}

func TestInitThemeDefault(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	InitTheme(false)
	if GetCurrentTheme().Name != "dark" {
		t.Errorf("default theme = %q, want dark", GetCurrentTheme().Name)
	}
}

func TestInitThemeNoColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("colors must be empty with noColor")
	}
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("TUI theme must be colorless with noColor")
	}
}

func TestInitThemeNoColorEnv(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR must select the none theme, got %q", GetCurrentTheme().Name)
	}
}

func TestColorFunctions(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	pairs := map[string][2]string{
		"Reset":     {ColorReset(), DarkTheme.Reset},
		"Red":       {ColorRed(), DarkTheme.Error},
		"Green":     {ColorGreen(), DarkTheme.Success},
		"Yellow":    {ColorYellow(), DarkTheme.Warning},
		"Blue":      {ColorBlue(), DarkTheme.Primary},
		"Magenta":   {ColorMagenta(), DarkTheme.Info},
		"Cyan":      {ColorCyan(), DarkTheme.Secondary},
		"Bold":      {ColorBold(), DarkTheme.Bold},
		"Underline": {ColorUnderline(), DarkTheme.Underline},
	}
	for name, p := range pairs {
		if p[0] != p[1] {
			t.Errorf("Color%s() = %q, want %q", name, p[0], p[1])
		}
	}
}
