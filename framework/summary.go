package framework

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const summaryRule = 50

// WriteResults writes the human-readable run summary: totals, the success
// rate, and an enumeration of every failed check.
func WriteResults(w io.Writer, results Results) {
	total := len(results.Tests)
	failed := len(results.Failures)
	passed := total - failed

	rule := strings.Repeat("=", summaryRule)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "TEST SUMMARY")
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "Total checks: %d\n", total)
	fmt.Fprintf(w, "Passed: %d\n", passed)
	fmt.Fprintf(w, "Failed: %d\n", failed)
	if total == 0 {
		fmt.Fprintln(w, "No tests run")
	} else {
		fmt.Fprintf(w, "Success rate: %.1f%%\n", float64(passed)/float64(total)*100)
	}

	if failed > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "FAILED CHECKS:")
		for _, result := range results.Failures {
			fmt.Fprintf(w, "  * %s: %s\n", result.ID, result.Message)
		}
	}
}

// PrintResults writes the summary to standard output with a colored verdict line.
func PrintResults(results Results) {
	WriteResults(os.Stdout, results)
	fmt.Println()
	if results.OK() {
		color.Green("All checks passed")
	} else {
		color.Red("Some checks failed")
	}
}
