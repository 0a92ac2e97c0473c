// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/autoloader/internal/cli/output"
	roottestutil "github.com/leapstack-labs/autoloader/internal/testutil"
)

// SetupTestProject creates a temporary project with config files, two views
// and two models.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	return roottestutil.WriteProject(t, map[string]string{
		"autoloader.yaml":           "environment: local\nplatform: web\n",
		"src/config/config.json":    `{"local": {"api": {"endPoint": "http://localhost:3000/"}}, "all": {"spa": true}}`,
		"src/config/stage.json":     `{"width": 240, "height": 240, "fps": 60}`,
		"src/config/routing.json":   `{"top": {"requests": []}}`,
		"src/index.ts":              "import { packages } from \"@/Packages\";\nconsole.log(packages.length);\n",
		"src/view/top/TopView.ts":   "export class TopView { label = \"top-view\"; }\n",
		"src/view/home/HomeView.ts": "export class HomeView extends Object {}\n",
		"src/model/api/Repo.ts":     "export class Repo {}\n",
		"src/model/Counter.ts":      "export class Counter {}\n",
	})
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
