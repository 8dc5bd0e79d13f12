package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context tracks the state of a single check, or a group of checks, while it
// is running. It is created by Run and by the Run method of a parent Context.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	hasChildren bool
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	passMessage string
	details     map[string]interface{}
}

// Run executes a tree of checks and returns the accumulated results. The
// action receives the root Context, whose Run method starts each named check.
// A nil filter runs everything; a nil testLogger discards progress output.
func Run(
	filter func(TestID) bool,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("check failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in check: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		c.recordResult()
	}()

	action(c)
}

// recordResult appends the TestResult for this Context. Only leaf checks are
// recorded: a Context that started subtests is just a grouping node, and the
// root Context has no identity of its own.
func (c *Context) recordResult() {
	if c.hasChildren || len(c.id.Path) == 0 {
		return
	}
	result := TestResult{
		ID:        c.id,
		Passed:    !c.failed,
		Message:   c.resultMessage(),
		Details:   c.details,
		Timestamp: time.Now(),
	}
	c.env.results.Tests = append(c.env.results.Tests, result)
	if c.failed {
		c.env.results.Failures = append(c.env.results.Failures, result)
	}
}

func (c *Context) resultMessage() string {
	if c.failed {
		var messages []string
		for _, err := range c.errors {
			messages = append(messages, err.Error())
		}
		return strings.Join(messages, "; ")
	}
	if c.passMessage != "" {
		return c.passMessage
	}
	return "ok"
}

func (c *Context) ID() TestID {
	return c.id
}

// Run executes a named child check. The child gets a fresh Context; its
// outcome is recorded independently of any sibling's.
func (c *Context) Run(name string, action func(*Context)) {
	c.hasChildren = true
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else if !c1.hasChildren {
		c.env.testLogger.TestFinished(id, c1.lastResult(), c1.debugLogger.Output())
	}
}

func (c *Context) lastResult() TestResult {
	return c.env.results.Tests[len(c.env.results.Tests)-1]
}

// ReportSkipped announces a child check that will not run at all, without
// recording a result for it. Suites use this when a gate check has failed and
// the dependent checks would be meaningless.
func (c *Context) ReportSkipped(name string, reason string) {
	c.env.testLogger.TestSkipped(c.id.Plus(name), reason)
}

// Errorf is called by assertions to record a check failure. It does not cause
// an immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow aborts the current check immediately. The methods in the require
// package call FailNow.
func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Passf sets the message reported with the check's result if it passes.
// Failure messages always come from the accumulated errors instead.
func (c *Context) Passf(format string, args ...interface{}) {
	c.passMessage = fmt.Sprintf(format, args...)
}

// Detail attaches one diagnostic key/value pair to the check's result.
func (c *Context) Detail(key string, value interface{}) {
	if c.details == nil {
		c.details = make(map[string]interface{})
	}
	c.details[key] = value
}

// Debug logs some debug output for the check. The output is passed to the
// test logger when the check finishes.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
