package smoketests

import (
	"github.com/smartinprabhu/chatbot-soc/gateway"
)

// DoGatewaySuite runs the checks that call the LLM gateway directly. The
// key-validation check gates the rest: with a bad key every completion call
// would fail the same way, which tells us nothing new.
func DoGatewaySuite(t *T) {
	state := gatePending
	t.Run("API key validation", func(t *T) {
		state = checkAPIKey(t)
	})
	if state != gatePassed {
		reason := "API key validation failed"
		if state == gatePending {
			reason = "API key validation did not run"
		}
		t.skipRemaining(reason,
			"simple EDA response", "forecasting parameters", "business pattern analysis")
		return
	}
	t.Run("simple EDA response", DoGatewayEDACheck)
	t.Run("forecasting parameters", DoGatewayForecastingCheck)
	t.Run("business pattern analysis", DoGatewayPatternCheck)
}

func checkAPIKey(t *T) gate {
	ctx, cancel := t.probeContext()
	defer cancel()
	models, err := t.env.gateway.ListModels(ctx)
	if err != nil {
		t.Errorf("API key validation failed: %s", err)
		return gateFailed
	}
	t.Detail("model_count", len(models))
	if len(models) == 0 {
		t.Errorf("API key accepted but no models returned")
		return gateFailed
	}
	t.Passf("API key is valid, %d models available", len(models))
	return gatePassed
}

// DoGatewayEDACheck asks for a data-quality analysis with a prompt that
// demands plain business language, then checks the reply follows it.
func DoGatewayEDACheck(t *T) {
	content, model := complete(t, gateway.CompletionRequest{
		SystemPrompt: "You are a business intelligence analyst. Provide simple, business-friendly responses without technical jargon.",
		UserPrompt:   "analyze my data quality",
		MaxTokens:    200,
		Temperature:  0.7,
	})
	t.Detail("response_length", len(content))
	t.Detail("model_used", model)

	businessHits := countTerms(content, edaBusinessTerms)
	jargonHits := countTerms(content, edaJargonTerms)
	if businessHits == 0 || jargonHits > 1 {
		t.Detail("business_terms", businessHits)
		t.Detail("technical_terms", jargonHits)
		t.Detail("content_preview", preview([]byte(content)))
		t.Errorf("response not optimized for business users")
		return
	}
	t.Passf("returned business-friendly response for data-quality query")
}

// DoGatewayForecastingCheck asks for a forecasting plan and expects the reply
// to stay on topic and to invite a follow-up question, since the prompt asks
// for one.
func DoGatewayForecastingCheck(t *T) {
	content, model := complete(t, gateway.CompletionRequest{
		SystemPrompt: "You are a forecasting specialist. When users ask about forecasting with specific parameters, provide detailed technical information and suggest follow-up questions about model selection, confidence levels, and validation methods.",
		UserPrompt:   "forecast sales for next 30 days using different models",
		MaxTokens:    300,
		Temperature:  0.5,
	})
	t.Detail("response_length", len(content))
	t.Detail("model_used", model)

	forecastHits := countTerms(content, forecastTerms)
	suggestsFollowUp := containsAnyTerm(content, followUpCues)
	t.Detail("forecasting_terms_found", forecastHits)
	t.Detail("suggests_follow_up", suggestsFollowUp)
	if forecastHits < 3 || !suggestsFollowUp {
		t.Detail("content_preview", preview([]byte(content)))
		t.Errorf("response lacks forecasting context or follow-up suggestions")
		return
	}
	t.Passf("returned contextual forecasting response with follow-up suggestions")
}

// DoGatewayPatternCheck asks for a pattern analysis aimed at non-technical
// users and scores the reply's vocabulary against the business and jargon
// term lists.
func DoGatewayPatternCheck(t *T) {
	content, model := complete(t, gateway.CompletionRequest{
		SystemPrompt: "You are a business analyst. Explain data patterns in simple business terms that non-technical users can understand. Avoid statistical jargon and focus on business implications.",
		UserPrompt:   "what patterns do you see in my data?",
		MaxTokens:    250,
		Temperature:  0.6,
	})
	t.Detail("response_length", len(content))
	t.Detail("model_used", model)

	businessHits := countTerms(content, patternTerms)
	jargonHits := countTerms(content, patternJargonTerms)
	t.Detail("business_terms", businessHits)
	t.Detail("technical_terms", jargonHits)
	if businessHits < 2 || jargonHits > 1 {
		t.Detail("content_preview", preview([]byte(content)))
		t.Errorf("response too technical or lacks business context")
		return
	}
	t.Passf("returned business-friendly pattern analysis")
}

func complete(t *T, req gateway.CompletionRequest) (content string, model string) {
	ctx, cancel := t.reportContext()
	defer cancel()
	t.Debug("sending chat completion, system prompt: %s", req.SystemPrompt)
	completion, err := t.env.gateway.Complete(ctx, req)
	if err != nil {
		t.Errorf("chat completion request failed: %s", err)
		t.FailNow()
	}
	t.Debug("gateway replied using model %s: %s", completion.Model, completion.Content)
	return completion.Content, completion.Model
}
