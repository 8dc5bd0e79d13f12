package apiclient

import "encoding/json"

// Message is one turn of the conversation passed along with a report request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type BusinessUnit struct {
	Name string `json:"name"`
}

type LineOfBusiness struct {
	Name        string `json:"name"`
	HasData     bool   `json:"hasData"`
	RecordCount int    `json:"recordCount"`
}

// AnalysisContext mirrors the analysis state the frontend sends when asking
// for a report.
type AnalysisContext struct {
	SelectedBU            BusinessUnit   `json:"selectedBu"`
	SelectedLOB           LineOfBusiness `json:"selectedLob"`
	UserQuery             string         `json:"userQuery"`
	QueryType             string         `json:"queryType"`
	ShouldTriggerFollowUp bool           `json:"shouldTriggerFollowUp,omitempty"`
}

// ReportRequest is the wire format of POST /api/generate-report. The endpoint
// takes both fields as JSON-encoded strings rather than nested objects.
type ReportRequest struct {
	ConversationHistory string `json:"conversationHistory"`
	AnalysisContext     string `json:"analysisContext"`
}

// NewReportRequest builds a ReportRequest, serializing the conversation and
// the analysis context into the string-embedded JSON the endpoint expects.
func NewReportRequest(history []Message, analysisContext AnalysisContext) (ReportRequest, error) {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return ReportRequest{}, err
	}
	contextJSON, err := json.Marshal(analysisContext)
	if err != nil {
		return ReportRequest{}, err
	}
	return ReportRequest{
		ConversationHistory: string(historyJSON),
		AnalysisContext:     string(contextJSON),
	}, nil
}
