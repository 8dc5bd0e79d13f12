package framework

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	passMarker = color.New(color.FgGreen).Sprint("PASS")
	failMarker = color.New(color.FgRed).Sprint("FAIL")
	skipMarker = color.New(color.FgYellow).Sprint("SKIP")
)

// ConsoleTestLogger prints check progress to standard output as the run
// executes. Debug output captured during a check is shown afterward depending
// on the two flags.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, result TestResult, debugOutput CapturedOutput) {
	if result.Passed {
		fmt.Printf("  %s %s: %s\n", passMarker, id, result.Message)
	} else {
		fmt.Printf("  %s %s: %s\n", failMarker, id, result.Message)
		for k, v := range result.Details {
			fmt.Printf("    %s: %v\n", k, v)
		}
	}
	if len(debugOutput) > 0 &&
		((!result.Passed && c.DebugOutputOnFailure) || (result.Passed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		fmt.Printf("  %s %s\n", skipMarker, id)
	} else {
		fmt.Printf("  %s %s (%s)\n", skipMarker, id, reason)
	}
}
