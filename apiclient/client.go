// Package apiclient is the HTTP client for the application under test. It
// only issues requests and reports what came back; classifying a response as
// pass or fail is the caller's business.
package apiclient

import (
	"context"

	"github.com/go-resty/resty/v2"
)

const reportPath = "/api/generate-report"

// Client talks to the BI application's HTTP API.
type Client struct {
	http *resty.Client
}

// New creates a Client for the application at baseURL. Retries stay disabled:
// a flaky endpoint should show up as a failed check, not be papered over.
func New(baseURL string) *Client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetHeader("Content-Type", "application/json")
	c.SetRetryCount(0)
	return &Client{http: c}
}

// Ping probes the application root. It returns the status code of whatever
// response arrived; a transport failure is the only error case.
func (c *Client) Ping(ctx context.Context) (int, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

// GenerateReport posts a well-formed report request and returns the status
// code and raw response body.
func (c *Client) GenerateReport(ctx context.Context, req ReportRequest) (int, []byte, error) {
	return c.post(ctx, req)
}

// PostRaw posts an arbitrary payload to the report endpoint, for checks that
// deliberately send malformed requests.
func (c *Client) PostRaw(ctx context.Context, payload interface{}) (int, []byte, error) {
	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, body interface{}) (int, []byte, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(reportPath)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}
