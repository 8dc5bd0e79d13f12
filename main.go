package main

import (
	"context"
	"fmt"
	"os"

	"github.com/smartinprabhu/chatbot-soc/config"
	"github.com/smartinprabhu/chatbot-soc/framework"
	"github.com/smartinprabhu/chatbot-soc/smoketests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	params.applyOverrides(cfg)

	selection, _ := params.selection()
	env := smoketests.NewEnvironment(cfg)

	fmt.Println()
	framework.PrintFilterDescription(params.filters)
	fmt.Printf("Running smoke tests against %s\n", cfg.AppBaseURL)

	testLogger := &framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := smoketests.RunSuites(env, selection, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		os.Exit(1)
	}
}
