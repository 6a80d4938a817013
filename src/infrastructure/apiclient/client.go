package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-campzeo-client/src/domain/alert"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"

	uuid "github.com/gofrs/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	userAgent = "go-campzeo-client"

	// MaxResponseBytes caps any response body read from the API
	MaxResponseBytes = 32 << 20
	maxMessageRunes  = 200
)

// TokenCheck rejects tokens that cannot be used before any request is sent
type TokenCheck func(token string) error

// Client sends requests to the Campzeo REST API. It attaches the bearer
// token to every request and never retries or caches.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenGetter
	checkToken TokenCheck
	maxBody    int64
	Logger     *logger.Logger
}

// NewClient builds a client for baseURL. A zero timeout disables the timeout.
func NewClient(baseURL string, timeout time.Duration, tokens TokenGetter, checkToken TokenCheck, loggerInstance *logger.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		checkToken: checkToken,
		maxBody:    MaxResponseBytes,
		Logger:     loggerInstance,
	}, nil
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a JSON request and decodes a JSON response into out (when non-nil)
func (c *Client) Do(ctx context.Context, method string, path string, query url.Values, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case []byte:
			reader = bytes.NewReader(b)
		case json.RawMessage:
			reader = bytes.NewReader(b)
		default:
			payload, err := json.Marshal(body)
			if err != nil {
				return domainErrors.NewAppError(fmt.Errorf("encoding request body: %w", err), domainErrors.UnknownError)
			}
			reader = bytes.NewReader(payload)
		}
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	respBody, _, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.Logger.Error("Couldn't decode API response", zap.Error(err), zap.String("method", method), zap.String("path", path))
		return domainErrors.NewAppError(fmt.Errorf("unexpected response from %s %s: %w", method, path, err), domainErrors.BackendError)
	}
	return nil
}

// DoRaw sends a request and returns the raw body and its content type
func (c *Client) DoRaw(ctx context.Context, method string, path string, query url.Values) ([]byte, string, error) {
	req, err := c.newRequest(ctx, method, path, query, nil)
	if err != nil {
		return nil, "", err
	}
	return c.send(req)
}

// PutBytes uploads data to an absolute upload URL using the upload client token
func (c *Client) PutBytes(ctx context.Context, uploadURL string, clientToken string, contentType string, data []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	req.Header.Set("Authorization", "Bearer "+clientToken)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)
	req.ContentLength = int64(len(data))

	respBody, _, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return domainErrors.NewAppError(fmt.Errorf("unexpected upload response: %w", err), domainErrors.BackendError)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string, query url.Values, body io.Reader) (*http.Request, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)
	if id, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-ID", id.String())
	}
	return req, nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", domainErrors.NewMissingDependency("no auth token source configured", alert.ScreenSignIn)
	}
	token, err := c.tokens(ctx)
	if err != nil {
		c.Logger.Error("Couldn't obtain auth token", zap.Error(err))
		return "", domainErrors.NewMissingDependency("couldn't obtain auth token: "+err.Error(), alert.ScreenSignIn)
	}
	if token == "" {
		return "", domainErrors.NewMissingDependency("missing auth token, please sign in", alert.ScreenSignIn)
	}
	if c.checkToken != nil {
		if err := c.checkToken(token); err != nil {
			return "", err
		}
	}
	return token, nil
}

func (c *Client) send(req *http.Request) ([]byte, string, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.Logger.Error("API request failed",
			zap.Error(err),
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()))
		return nil, "", domainErrors.NewAppError(fmt.Errorf("couldn't reach server: %w", err), domainErrors.BackendError)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, "", domainErrors.NewAppError(fmt.Errorf("reading response: %w", err), domainErrors.BackendError)
	}
	if int64(len(body)) > c.maxBody {
		c.Logger.Error("API response too large",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int64("limit", c.maxBody))
		return nil, "", domainErrors.NewAppError(fmt.Errorf("response from %s exceeds %d bytes", req.URL.Path, c.maxBody), domainErrors.BackendError)
	}

	c.Logger.Debug("API request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ServerMessage(body)
		c.Logger.Error("API request returned an error status",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message))
		return nil, "", domainErrors.NewBackendError(resp.StatusCode, message)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// ServerMessage extracts the best-effort error message from an error body
func ServerMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		text := []rune(strings.TrimSpace(string(body)))
		if len(text) > maxMessageRunes {
			text = text[:maxMessageRunes]
		}
		return string(text)
	}
	for _, path := range []string{"message", "error.message", "error", "errors.0.message", "errors.0"} {
		if r := gjson.GetBytes(body, path); r.Exists() && r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return ""
}
