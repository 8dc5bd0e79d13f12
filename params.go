package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/smartinprabhu/chatbot-soc/config"
	"github.com/smartinprabhu/chatbot-soc/framework"
	"github.com/smartinprabhu/chatbot-soc/smoketests"
)

type commandParams struct {
	appURL     string
	gatewayURL string
	model      string
	suite      string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.appURL, "app-url", "", "base URL of the application under test (overrides APP_BASE_URL)")
	fs.StringVar(&c.gatewayURL, "gateway-url", "", "base URL of the LLM gateway (overrides GATEWAY_BASE_URL)")
	fs.StringVar(&c.model, "model", "", "model to request from the gateway (overrides GATEWAY_MODEL)")
	fs.StringVar(&c.suite, "suite", "all", `which suite to run: "backend", "gateway", or "all"`)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select checks to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select checks not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed checks")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all checks")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if _, ok := c.selection(); !ok {
		fmt.Fprintf(os.Stderr, "unknown suite %q\n", c.suite)
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) selection() (smoketests.Selection, bool) {
	switch c.suite {
	case "backend":
		return smoketests.Selection{Backend: true}, true
	case "gateway":
		return smoketests.Selection{Gateway: true}, true
	case "all":
		return smoketests.Selection{Backend: true, Gateway: true}, true
	}
	return smoketests.Selection{}, false
}

// applyOverrides copies any command-line URL/model overrides onto the
// environment-derived configuration.
func (c *commandParams) applyOverrides(cfg *config.Config) {
	if c.appURL != "" {
		cfg.AppBaseURL = c.appURL
	}
	if c.gatewayURL != "" {
		cfg.GatewayBaseURL = c.gatewayURL
	}
	if c.model != "" {
		cfg.GatewayModel = c.model
	}
}
