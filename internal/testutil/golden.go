package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/reqline/internal/terminal"
	"github.com/charmbracelet/x/ansi"
)

// FrameText returns the visible text of f with styling stripped, trailing
// blanks trimmed and one newline after every row.
func FrameText(f *terminal.Frame) string {
	var b strings.Builder
	for _, row := range f.Rows() {
		b.WriteString(strings.TrimRight(ansi.Strip(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// AssertGolden compares output with testdata/<goldenName> at the repository
// root. Set UPDATE_GOLDEN to rewrite the file first.
func AssertGolden(t *testing.T, goldenName, output string) {
	t.Helper()
	path := filepath.Join(repoRoot(t), "testdata", goldenName)
	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			t.Fatalf("failed to update golden: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden %s: %v", goldenName, err)
	}
	if string(data) != output {
		t.Fatalf("output mismatch for %s\nexpected:\n%s\nactual:\n%s", goldenName, string(data), output)
	}
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
