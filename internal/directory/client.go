package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/errors"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/middleware"
)

// Client talks to the remote user directory over its REST surface. It is
// policy-free: every non-2xx response comes back as *errors.UpstreamError
// and every transport failure as a plain error; the service layer above
// decides what a failure means per operation.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a directory client rooted at baseURL. A nil httpClient
// falls back to http.DefaultClient; the client adds no timeout, retry, or
// backoff of its own.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// do performs one round trip and returns the response body. payload, when
// non-nil, is marshaled as the JSON request body.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.RecordDirectoryRequest(op, 0, time.Since(start))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	middleware.RecordDirectoryRequest(op, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, errors.NewUpstreamError(resp.StatusCode, snippet(data))
	}
	return data, nil
}

// snippet truncates a response body for error messages and logs.
func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 240 {
		s = s[:240]
	}
	return s
}

// flexInt decodes a JSON number that may arrive as a string; anything
// unparsable counts as absent rather than failing the decode.
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		f.value, f.set = n, true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, perr := strconv.Atoi(s); perr == nil {
			f.value, f.set = parsed, true
		}
	}
	return nil
}
