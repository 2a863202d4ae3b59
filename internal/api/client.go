package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	RequestIdHeader = "X-Request-Id"
	maxErrorBody    = 64 << 10
)

var ErrUnauthorized = errors.New("upstream rejected the credential")
var ErrNotFound = errors.New("upstream resource not found")
var ErrNoToken = errors.New("no bearer token available for an authenticated request")

// Error is a non-2xx answer of the budgeting API. Code carries the API's
// machine readable code when there is one (e.g. BUDGET_NOT_FOUND).
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("budgeting API returned %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("budgeting API returned %d: %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// CodeOf returns the API error code carried by err, or "".
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// TokenProvider returns the bearer credential of the caller found in ctx.
type TokenProvider func(ctx context.Context) (string, error)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Anonymous requests are sent without a bearer credential.
	Anonymous bool
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenProvider
}

func NewClient(baseURL string, timeout time.Duration, token TokenProvider) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, token)
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client, token TokenProvider) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
	}
}

// Do sends req and decodes a successful JSON answer into out. out may be nil
// when the answer has no interesting body.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	requestId := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIdHeader, requestId)

	client, err := c.clientFor(ctx, req.Anonymous)
	if err != nil {
		return err
	}

	log.Debugf("[%s] %s %s", requestId, req.Method, req.Path)
	resp, err := client.Do(httpReq)
	if err != nil {
		log.Errorf("[%s] Failed to execute request: %v", requestId, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		if resp.StatusCode >= 500 {
			log.Errorf("[%s] %v", requestId, apiErr)
		} else {
			log.Debugf("[%s] %v", requestId, apiErr)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		log.Errorf("[%s] Failed to decode response: %v", requestId, err)
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}

// clientFor returns an HTTP client that adds the caller's bearer credential.
func (c *Client) clientFor(ctx context.Context, anonymous bool) (*http.Client, error) {
	if anonymous {
		return c.httpClient, nil
	}
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoToken
	}
	base := context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	client := oauth2.NewClient(base, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	client.Timeout = c.httpClient.Timeout
	return client, nil
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
