package smoketests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smartinprabhu/chatbot-soc/config"
	"github.com/smartinprabhu/chatbot-soc/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportText satisfies every report heuristic: forecasting terms and
// business terms present, jargon absent.
const reportText = "Sales show an upward trend and steady growth pattern. " +
	"The forecast model confidence and accuracy (MAPE 8.2%) look strong for next month."

// completionText satisfies every gateway heuristic at once.
const completionText = "Your data quality shows a clear upward trend and growth pattern " +
	"with seasonal performance insights. The forecast model prediction accuracy and " +
	"confidence improve with validation. Which horizon would you like?"

type skipRecordingLogger struct {
	skipped map[string]string
}

func newSkipRecordingLogger() *skipRecordingLogger {
	return &skipRecordingLogger{skipped: make(map[string]string)}
}

func (l *skipRecordingLogger) TestStarted(framework.TestID) {}

func (l *skipRecordingLogger) TestError(framework.TestID, error) {}
func (l *skipRecordingLogger) TestFinished(framework.TestID, framework.TestResult, framework.CapturedOutput) {
}
func (l *skipRecordingLogger) TestSkipped(id framework.TestID, reason string) {
	l.skipped[id.String()] = reason
}

func testEnvironment(appURL, gatewayURL string) *Environment {
	return NewEnvironment(&config.Config{
		AppBaseURL:     appURL,
		GatewayBaseURL: gatewayURL,
		GatewayAPIKey:  "test-key",
		GatewayModel:   "openai/gpt-4o-mini",
		ReportTimeout:  5 * time.Second,
		ProbeTimeout:   2 * time.Second,
	})
}

// stubApp mimics the application under test. When rejectInvalid is false it
// accepts any payload, which is how a backend with broken validation behaves.
func stubApp(reportBody string, rejectInvalid bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate-report", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		history, historyOK := payload["conversationHistory"].(string)
		analysisContext, contextOK := payload["analysisContext"].(string)
		if rejectInvalid && (!historyOK || !contextOK || history == "" || analysisContext == "") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"report": reportBody})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func stubGateway(content string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/models", httphelpers.HandlerWithJSONResponse(map[string]interface{}{
		"object": "list",
		"data": []map[string]interface{}{
			{"id": "openai/gpt-4o-mini", "object": "model"},
		},
	}, nil))
	mux.Handle("/chat/completions", httphelpers.HandlerWithJSONResponse(map[string]interface{}{
		"id":     "cmpl-1",
		"object": "chat.completion",
		"model":  "openai/gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}, nil))
	return mux
}

func findResult(t *testing.T, results framework.Results, id string) framework.TestResult {
	for _, result := range results.Tests {
		if result.ID.String() == id {
			return result
		}
	}
	t.Fatalf("no result recorded for %q", id)
	return framework.TestResult{}
}

func TestBackendSuiteAllChecksPassAgainstHealthyApp(t *testing.T) {
	httphelpers.WithServer(stubApp(reportText, true), func(server *httptest.Server) {
		env := testEnvironment(server.URL, "")
		results := RunSuites(env, Selection{Backend: true}, nil, nil)

		require.Len(t, results.Tests, 6)
		assert.True(t, results.OK(), "failures: %+v", results.Failures)

		expected := []string{
			"backend/server availability",
			"backend/generate report/simple EDA",
			"backend/generate report/forecasting parameters",
			"backend/generate report/business question",
			"backend/invalid requests/missing fields",
			"backend/invalid requests/wrong data types",
		}
		for i, id := range expected {
			assert.Equal(t, id, results.Tests[i].ID.String())
		}
		for i := 1; i < len(results.Tests); i++ {
			assert.False(t, results.Tests[i].Timestamp.Before(results.Tests[i-1].Timestamp))
		}

		availability := findResult(t, results, "backend/server availability")
		assert.Equal(t, 200, availability.Details["status_code"])
	})
}

func TestBackendSuiteGateFailureSkipsDependentChecks(t *testing.T) {
	// a server that is already closed gives a fast connection failure
	server := httptest.NewServer(stubApp(reportText, true))
	deadURL := server.URL
	server.Close()

	logger := newSkipRecordingLogger()
	env := testEnvironment(deadURL, "")
	results := RunSuites(env, Selection{Backend: true}, nil, logger)

	require.Len(t, results.Tests, 1)
	gateResult := results.Tests[0]
	assert.Equal(t, "backend/server availability", gateResult.ID.String())
	assert.False(t, gateResult.Passed)
	assert.Contains(t, gateResult.Message, "cannot connect")

	assert.Equal(t, "server availability check failed", logger.skipped["backend/generate report"])
	assert.Equal(t, "server availability check failed", logger.skipped["backend/invalid requests"])
}

func TestBackendSuiteGateExcludedByFilterSkipsDependentChecks(t *testing.T) {
	httphelpers.WithServer(stubApp(reportText, true), func(server *httptest.Server) {
		logger := newSkipRecordingLogger()
		env := testEnvironment(server.URL, "")
		filter := func(id framework.TestID) bool {
			return id.String() != "backend/server availability"
		}
		results := RunSuites(env, Selection{Backend: true}, filter, logger)

		assert.Empty(t, results.Tests)
		assert.Equal(t, "excluded by filter parameters", logger.skipped["backend/server availability"])
		assert.Equal(t, "server availability check did not run", logger.skipped["backend/generate report"])
		assert.Equal(t, "server availability check did not run", logger.skipped["backend/invalid requests"])
	})
}

func TestGatewaySuiteGateExcludedByFilterSkipsDependentChecks(t *testing.T) {
	httphelpers.WithServer(stubGateway(completionText), func(server *httptest.Server) {
		logger := newSkipRecordingLogger()
		env := testEnvironment("", server.URL)
		filter := func(id framework.TestID) bool {
			return id.String() != "gateway/API key validation"
		}
		results := RunSuites(env, Selection{Gateway: true}, filter, logger)

		assert.Empty(t, results.Tests)
		assert.Equal(t, "API key validation did not run", logger.skipped["gateway/simple EDA response"])
		assert.Equal(t, "API key validation did not run", logger.skipped["gateway/forecasting parameters"])
		assert.Equal(t, "API key validation did not run", logger.skipped["gateway/business pattern analysis"])
	})
}

func TestBackendSuiteFlagsMissingValidation(t *testing.T) {
	// the app answers 200 to everything, so the negative checks must fail
	httphelpers.WithServer(stubApp(reportText, false), func(server *httptest.Server) {
		env := testEnvironment(server.URL, "")
		results := RunSuites(env, Selection{Backend: true}, nil, nil)

		require.Len(t, results.Tests, 6)
		assert.False(t, results.OK())
		require.Len(t, results.Failures, 2)

		missingFields := findResult(t, results, "backend/invalid requests/missing fields")
		assert.False(t, missingFields.Passed)
		assert.Contains(t, missingFields.Message, "expected HTTP 400")
		assert.Equal(t, 200, missingFields.Details["status_code"])
	})
}

func TestBackendSuiteFlagsMissingReportContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/api/generate-report",
		httphelpers.HandlerWithJSONResponse(map[string]string{"unexpected": "shape"}, nil))
	mux.Handle("/", httphelpers.HandlerWithStatus(http.StatusOK))

	httphelpers.WithServer(mux, func(server *httptest.Server) {
		env := testEnvironment(server.URL, "")
		results := RunSuites(env, Selection{Backend: true}, nil, nil)

		simpleEDA := findResult(t, results, "backend/generate report/simple EDA")
		assert.False(t, simpleEDA.Passed)
		assert.Contains(t, simpleEDA.Message, "missing expected report content")
	})
}

func TestGatewaySuiteAllChecksPassAgainstHealthyGateway(t *testing.T) {
	httphelpers.WithServer(stubGateway(completionText), func(server *httptest.Server) {
		env := testEnvironment("", server.URL)
		results := RunSuites(env, Selection{Gateway: true}, nil, nil)

		require.Len(t, results.Tests, 4)
		assert.True(t, results.OK(), "failures: %+v", results.Failures)

		keyCheck := findResult(t, results, "gateway/API key validation")
		assert.Equal(t, 1, keyCheck.Details["model_count"])

		eda := findResult(t, results, "gateway/simple EDA response")
		assert.Equal(t, "openai/gpt-4o-mini", eda.Details["model_used"])
	})
}

func TestGatewaySuiteGateFailureOnRejectedKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/models", httphelpers.HandlerWithStatus(http.StatusUnauthorized))

	httphelpers.WithServer(mux, func(server *httptest.Server) {
		logger := newSkipRecordingLogger()
		env := testEnvironment("", server.URL)
		results := RunSuites(env, Selection{Gateway: true}, nil, logger)

		require.Len(t, results.Tests, 1)
		assert.False(t, results.Tests[0].Passed)

		for _, name := range []string{
			"gateway/simple EDA response",
			"gateway/forecasting parameters",
			"gateway/business pattern analysis",
		} {
			assert.Equal(t, "API key validation failed", logger.skipped[name])
		}
	})
}

func TestGatewaySuiteFlagsTechnicalResponse(t *testing.T) {
	technical := "The regression coefficient and p-value confirm heteroscedasticity " +
		"and autocorrelation in the residual series."
	httphelpers.WithServer(stubGateway(technical), func(server *httptest.Server) {
		env := testEnvironment("", server.URL)
		results := RunSuites(env, Selection{Gateway: true}, nil, nil)

		pattern := findResult(t, results, "gateway/business pattern analysis")
		assert.False(t, pattern.Passed)
		assert.Contains(t, pattern.Message, "too technical")
	})
}

func TestRunSuitesSelectionControlsWhichSuitesRun(t *testing.T) {
	httphelpers.WithServer(stubApp(reportText, true), func(appServer *httptest.Server) {
		httphelpers.WithServer(stubGateway(completionText), func(gatewayServer *httptest.Server) {
			env := testEnvironment(appServer.URL, gatewayServer.URL)

			backendOnly := RunSuites(env, Selection{Backend: true}, nil, nil)
			assert.Len(t, backendOnly.Tests, 6)

			both := RunSuites(env, Selection{Backend: true, Gateway: true}, nil, nil)
			assert.Len(t, both.Tests, 10)
			assert.True(t, both.OK(), "failures: %+v", both.Failures)
		})
	})
}
