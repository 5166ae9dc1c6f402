// Package api is the typed client for the Covered verification backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/covered-news/covered/internal/utils"
	"github.com/covered-news/covered/pkg/whttp"
)

const (
	// DefaultHistoryLimit is what GET /historial returns when the caller does
	// not ask for a specific batch size. The drawer asks for 5.
	DefaultHistoryLimit = 10

	requestTimeout = 30 * time.Second
)

type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    whttp.NewClient(requestTimeout),
	}
}

// Verify submits one piece of content and blocks until the backend answers.
// No retries: a failure is surfaced once to the caller.
func (c *Client) Verify(ctx context.Context, req VerificationRequest) (*VerificationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	url := c.baseURL + "/verificar/movil"
	utils.Log.Debug("POST ", url)

	res, err := whttp.Send(ctx, &whttp.Request{Method: "POST", URL: url, Body: body}, c.http)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	if res.StatusCode >= 300 {
		return nil, apiErrorFromBody(res)
	}

	var result VerificationResult
	if err := json.Unmarshal(res.Body, &result); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &result, nil
}

// History fetches one batch of past verifications, newest first.
func (c *Client) History(ctx context.Context, limit, offset int) (*HistoryPage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	url := fmt.Sprintf("%s/historial?limit=%d&offset=%d", c.baseURL, limit, offset)
	utils.Log.Debug("GET ", url)

	res, err := whttp.Send(ctx, &whttp.Request{Method: "GET", URL: url}, c.http)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	if res.StatusCode >= 300 {
		return nil, apiErrorFromBody(res)
	}

	var page HistoryPage
	if err := json.Unmarshal(res.Body, &page); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &page, nil
}

// Statistics fetches the global service counters.
func (c *Client) Statistics(ctx context.Context) (*Statistics, error) {
	url := c.baseURL + "/estadisticas"
	utils.Log.Debug("GET ", url)

	res, err := whttp.Send(ctx, &whttp.Request{Method: "GET", URL: url}, c.http)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	if res.StatusCode >= 300 {
		return nil, apiErrorFromBody(res)
	}

	var stats Statistics
	if err := json.Unmarshal(res.Body, &stats); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &stats, nil
}

// apiErrorFromBody pulls the backend's "detail" message out of an error body.
// FastAPI-style backends put the human message there; anything else is kept raw.
func apiErrorFromBody(res *whttp.Response) error {
	msg := gjson.GetBytes(res.Body, "detail").String()
	if msg == "" {
		msg = gjson.GetBytes(res.Body, "message").String()
	}
	return &APIError{StatusCode: res.StatusCode, Message: msg}
}
