// Package httpclient provides basic http functions
package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps an http.Client with the defaults shared by the external API
// callers: a request timeout and a User-Agent header.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New creates a Client with the given timeout and User-Agent header
func New(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// GetJSON performs a GET request against endpoint with params as the query
// string and decodes the JSON response body into target. Non-2xx responses
// are returned as errors with the response status.
func (c *Client) GetJSON(endpoint string, params url.Values, target interface{}) error {
	requestURL := endpoint
	if len(params) > 0 {
		requestURL = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		//read a little of the body so failures are diagnosable from logs
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s returned %s: %s", endpoint, resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
