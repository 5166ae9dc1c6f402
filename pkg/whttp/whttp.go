// Package whttp is a thin wrapper over retryablehttp shared by the API,
// identity and preview clients.
package whttp

import (
	"bytes"
	"context"
	"io"
	"log"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "Covered/1.0 (terminal)"

type Header struct {
	Name  string
	Value string
}

type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    []byte
}

type Response struct {
	StatusCode int
	Body       []byte
}

// NewClient returns the client used against the Covered backends: fixed
// timeout, no automatic retries. A failure is surfaced once to the caller.
func NewClient(timeout time.Duration) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.Logger = log.New(io.Discard, "", 0)
	c.RetryMax = 0
	c.HTTPClient.Timeout = timeout
	return c
}

// Send performs a single HTTP request and reads the whole body.
func Send(ctx context.Context, wReq *Request, client *retryablehttp.Client) (*Response, error) {
	var body io.Reader
	if len(wReq.Body) > 0 {
		body = bytes.NewReader(wReq.Body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, wReq.Method, wReq.URL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "es")
	if len(wReq.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range wReq.Headers {
		req.Header.Set(h.Name, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Body: bodyBytes}, nil
}
