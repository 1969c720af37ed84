// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio-cli/internal/config"
	"folio-cli/internal/testutil"
)

func TestFormat_Markdown(t *testing.T) {
	t.Parallel()

	out, err := Format(FormatOptions{
		Content:     "# Title\n\nSome *emphasized* text.",
		ColorScheme: config.ColorSchemeDark,
	})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("formatted output should contain heading text, got %q", out)
	}
	if !strings.Contains(out, "emphasized") {
		t.Errorf("formatted output should contain body text, got %q", out)
	}
}

func TestFormat_Code(t *testing.T) {
	t.Parallel()

	out, err := NewFormat().
		Content(`fmt.Println("hi")`).
		Code("go").
		ColorScheme(config.ColorSchemeDark).
		Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(out, "Println") {
		t.Errorf("formatted code should contain source text, got %q", out)
	}
}

func TestFormat_WordWrap(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 40)
	out, err := Format(FormatOptions{
		Content:     long,
		ColorScheme: config.ColorSchemeDark,
		Width:       40,
	})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(out, "\n") {
		t.Errorf("wrapped output should span multiple lines, got %q", out)
	}
}

func TestThemeOverride(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	if got := themeOverride(config.ColorSchemeDark); got != "" {
		t.Errorf("themeOverride() = %q before any theme is installed", got)
	}

	themesDir := filepath.Join(home, ".folio", "themes")
	testutil.MustMkdirAll(t, themesDir, 0o755)
	stylePath := filepath.Join(themesDir, "dark.json")
	if err := os.WriteFile(stylePath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := themeOverride(config.ColorSchemeDark); got != stylePath {
		t.Errorf("themeOverride() = %q, want %q", got, stylePath)
	}
	if got := themeOverride(config.ColorSchemeLight); got != "" {
		t.Errorf("themeOverride() = %q for a scheme with no installed theme", got)
	}
}

func TestFormat_UserTheme(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	themesDir := filepath.Join(home, ".folio", "themes")
	testutil.MustMkdirAll(t, themesDir, 0o755)
	if err := os.WriteFile(filepath.Join(themesDir, "dark.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := Format(FormatOptions{
		Content:     "installed theme",
		ColorScheme: config.ColorSchemeDark,
	})
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(out, "installed theme") {
		t.Errorf("formatted output should contain body text, got %q", out)
	}
}
