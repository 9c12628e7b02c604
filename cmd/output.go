package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kamusis/sdm-cli/internal/search"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout sdm's CLI output.
//
// Icon semantics:
//   ✓  success / healthy
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / state change

// printSection prints a top-level section header, e.g. "=== Catalog ===".
func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printBullet prints a grouped-section bullet, e.g. "● Required:".
func printBullet(title string) {
	fmt.Printf("\n● %s\n", title)
}

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) {
	if name == "" {
		fmt.Printf("  ✓  %s\n", msg)
	} else {
		fmt.Printf("  ✓  [%s] %s\n", name, msg)
	}
}

// printErr prints an error line to stderr.
func printErr(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ✗  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ✗  [%s] %s\n", name, msg)
	}
}

// printWarn prints a warning line.
func printWarn(name, msg string) {
	if name == "" {
		fmt.Printf("  ⚠  %s\n", msg)
	} else {
		fmt.Printf("  ⚠  [%s] %s\n", name, msg)
	}
}

// printSkip prints a skipped / not-applicable line.
func printSkip(name, msg string) {
	if name == "" {
		fmt.Printf("  ○  %s\n", msg)
	} else {
		fmt.Printf("  ○  [%s] %s\n", name, msg)
	}
}

// printMiss prints a not-found / missing line.
func printMiss(name, msg string) {
	if name == "" {
		fmt.Printf("  -  %s\n", msg)
	} else {
		fmt.Printf("  -  [%s] %s\n", name, msg)
	}
}

// printInfo prints a neutral informational / state-change line.
func printInfo(name, msg string) {
	if name == "" {
		fmt.Printf("  ~  %s\n", msg)
	} else {
		fmt.Printf("  ~  [%s] %s\n", name, msg)
	}
}

// ── Highlighting ──────────────────────────────────────────────────────────────

var (
	matchColor   = color.New(color.FgYellow, color.Bold)
	checkedColor = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
)

// highlight renders spans with matched runs in bold yellow.
func highlight(spans []search.MatchSpan) string {
	var b strings.Builder
	for _, s := range spans {
		if s.IsMatch {
			b.WriteString(matchColor.Sprint(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// highlightMatches is highlight(search.Segment(text, pattern)). Empty text
// renders as empty.
func highlightMatches(text, pattern string) string {
	return highlight(search.Segment(text, pattern))
}

// checkMark returns the selection marker for a property row.
func checkMark(checked bool) string {
	if checked {
		return checkedColor.Sprint("[x]")
	}
	return "[ ]"
}

// fprintDim writes a faint line, used for hints below tables.
func fprintDim(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, dimColor.Sprintf(format, args...))
}
