package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// TestContext holds per-scenario HTTP state against a running govdesk server.
type TestContext struct {
	BaseURL string
	client  *http.Client

	lastStatus int
	lastBody   []byte
	lastJSON   any

	vars map[string]string
}

// NewTestContext targets E2E_BASE_URL, defaulting to a local server.
func NewTestContext() *TestContext {
	base := os.Getenv("E2E_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &TestContext{
		BaseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		vars:    map[string]string{},
	}
}

// Reset clears response state and saved values between scenarios.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastJSON = nil
	tc.vars = map[string]string{}
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) POST(path string, body any) error {
	return tc.do(http.MethodPost, path, body, nil)
}

func (tc *TestContext) PATCH(path string, body any) error {
	return tc.do(http.MethodPatch, path, body, nil)
}

func (tc *TestContext) do(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+tc.Expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastJSON = nil
	if len(tc.lastBody) > 0 {
		_ = json.Unmarshal(tc.lastBody, &tc.lastJSON)
	}
	return nil
}

func (tc *TestContext) GetLastStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastBody() string {
	return string(tc.lastBody)
}

// GetResponseField walks a dotted path such as "submission.status" or
// "submissions.0.id" through the last JSON body.
func (tc *TestContext) GetResponseField(path string) (any, error) {
	cur := tc.lastJSON
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, tc.lastBody)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %q", part, path)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %q of %q", part, path)
		}
	}
	return cur, nil
}

// Save stores a value for later ${name} expansion.
func (tc *TestContext) Save(name, value string) {
	tc.vars[name] = value
}

func (tc *TestContext) Get(name string) string {
	return tc.vars[name]
}

// Expand replaces ${name} placeholders with saved values.
func (tc *TestContext) Expand(s string) string {
	for k, v := range tc.vars {
		s = strings.ReplaceAll(s, "${"+k+"}", v)
	}
	return s
}
