package smoketests

import (
	"context"
	"time"

	"github.com/smartinprabhu/chatbot-soc/apiclient"
	"github.com/smartinprabhu/chatbot-soc/config"
	"github.com/smartinprabhu/chatbot-soc/framework"
	"github.com/smartinprabhu/chatbot-soc/gateway"
)

// gate is the run state of a suite's gate check. Dependent checks only run
// once the gate has passed; on a failed gate they are announced as skipped
// and produce no results.
type gate int

const (
	gatePending gate = iota
	gatePassed
	gateFailed
)

type environment struct {
	app           *apiclient.Client
	gateway       *gateway.Client
	reportTimeout time.Duration
	probeTimeout  time.Duration
}

// Environment holds the clients and timeouts shared by every check in a run.
type Environment struct {
	env *environment
}

// NewEnvironment builds the app and gateway clients from configuration.
func NewEnvironment(cfg *config.Config) *Environment {
	return &Environment{env: &environment{
		app: apiclient.New(cfg.AppBaseURL),
		gateway: gateway.New(gateway.Options{
			BaseURL: cfg.GatewayBaseURL,
			APIKey:  cfg.GatewayAPIKey,
			Model:   cfg.GatewayModel,
			Referer: cfg.GatewayReferer,
			Title:   cfg.GatewayTitle,
		}),
		reportTimeout: cfg.ReportTimeout,
		probeTimeout:  cfg.ProbeTimeout,
	}}
}

// T represents a check, or group of checks, in the smoke-test suites.
//
// It implements the same basic functionality as Go's testing.T, but outside
// of the Go test runner, on top of the lower-level framework package. To make
// assertions, pass the *T to the assert and require packages as if it were a
// *testing.T.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to record a check failure. It does not cause
// an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a check should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a named child check, equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Passf sets the message reported with this check's result if it passes.
func (t *T) Passf(format string, args ...interface{}) {
	t.context.Passf(format, args...)
}

// Detail attaches a diagnostic key/value pair to this check's result.
func (t *T) Detail(key string, value interface{}) {
	t.context.Detail(key, value)
}

// Debug logs debug output for the check; the console logger shows it at the
// end of the check depending on the debug flags.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// skipRemaining announces the named sibling checks as skipped. Used when a
// suite's gate check has failed.
func (t *T) skipRemaining(reason string, names ...string) {
	for _, name := range names {
		t.context.ReportSkipped(name, reason)
	}
}

// reportContext returns a context bounded by the functional-check timeout.
func (t *T) reportContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), t.env.reportTimeout)
}

// probeContext returns a context bounded by the shorter probe timeout, used
// by the availability, key-validation, and negative checks.
func (t *T) probeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), t.env.probeTimeout)
}

// Selection chooses which suites a run executes.
type Selection struct {
	Backend bool
	Gateway bool
}

// RunSuites executes the selected suites and returns the accumulated results.
func RunSuites(
	env *Environment,
	selection Selection,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env.env}
		if selection.Backend {
			t.Run("backend", DoBackendSuite)
		}
		if selection.Gateway {
			t.Run("gateway", DoGatewaySuite)
		}
	})
}
