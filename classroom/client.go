// Package classroom is the data-access core of the dashboard: a typed
// client for the Classroom REST API plus the role-resolution logic
// built on top of it. All state of record lives in the remote service;
// this package only fetches, normalizes, and requests mutations.
//
// Operations come in two flavors. Hard-fail operations return an
// *APIError on any failure. Soft-fail operations populate secondary
// tabs where partial data beats a blank page: they log a warning and
// return an empty default instead of an error, so one broken
// sub-resource never aborts a whole page render.
package classroom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the Classroom API root.
	DefaultBaseURL = "https://classroom.googleapis.com/v1"

	// DefaultUserinfoURL is the fallback email source used only when
	// the Classroom profile withholds the email address.
	DefaultUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// Client issues authenticated calls on behalf of one signed-in user.
// The token is the opaque bearer token from the OAuth redirect flow;
// a 401 from upstream means it is invalid or expired and the user must
// log in again (there is no refresh flow).
type Client struct {
	BaseURL     string
	UserinfoURL string
	Token       string
	HTTPClient  *http.Client
	Log         *logrus.Logger
}

// NewClient returns a client against the production endpoints.
func NewClient(token string) *Client {
	return &Client{
		BaseURL:     DefaultBaseURL,
		UserinfoURL: DefaultUserinfoURL,
		Token:       token,
		HTTPClient:  http.DefaultClient,
		Log:         logrus.StandardLogger(),
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) log() *logrus.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

// APIError is the uniform failure shape for every remote operation.
// Op names the logical operation with its ids filled in, e.g.
// "turnIn(c1, w1, s1)". StatusCode is zero when the request never
// reached the server. Message carries the upstream service's own error
// text when present, else the transport error.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("[%s] %s", e.Op, e.Message)
	}
	return fmt.Sprintf("[%s] status %d: %s", e.Op, e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is an APIError for HTTP 401: the
// token is invalid or expired and the caller should force a fresh
// login rather than show a generic error.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether err is an APIError for HTTP 403, which
// on course listing usually means the Classroom API is not enabled for
// the project or a scope is missing. Callers show a permissions
// diagnostic instead of a generic error.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// googleError is the error envelope Google APIs wrap failures in.
type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func upstreamMessage(raw []byte, fallback string) string {
	var ge googleError
	if err := json.Unmarshal(raw, &ge); err == nil && ge.Error.Message != "" {
		return ge.Error.Message
	}
	return fallback
}

// do runs one authenticated request. upload, when non-nil, is sent as
// a JSON body; download, when non-nil, receives the decoded response.
// Failures are logged in full here so callers only ever see the
// composite APIError.
func (c *Client) do(ctx context.Context, op, method, url string, upload, download interface{}) error {
	var body io.Reader
	if upload != nil {
		raw, err := json.Marshal(upload)
		if err != nil {
			return &APIError{Op: op, Message: fmt.Sprintf("encoding request: %v", err)}
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &APIError{Op: op, Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.log().WithFields(logrus.Fields{"op": op, "method": method}).Errorf("request failed: %v", err)
		return &APIError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		c.log().WithFields(logrus.Fields{
			"op":     op,
			"method": method,
			"status": resp.StatusCode,
			"body":   string(raw),
		}).Error("api call failed")
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: upstreamMessage(raw, resp.Status)}
	}

	if download != nil {
		if err := json.NewDecoder(resp.Body).Decode(download); err != nil {
			return &APIError{Op: op, StatusCode: resp.StatusCode, Message: fmt.Sprintf("decoding response: %v", err)}
		}
	}
	return nil
}

func (c *Client) getObject(ctx context.Context, op, path string, download interface{}) error {
	return c.do(ctx, op, http.MethodGet, c.BaseURL+path, nil, download)
}

func (c *Client) postObject(ctx context.Context, op, path string, upload, download interface{}) error {
	return c.do(ctx, op, http.MethodPost, c.BaseURL+path, upload, download)
}

func (c *Client) patchObject(ctx context.Context, op, path string, upload, download interface{}) error {
	return c.do(ctx, op, http.MethodPatch, c.BaseURL+path, upload, download)
}

func (c *Client) deleteObject(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, c.BaseURL+path, nil, nil)
}

// softFail logs a failed soft operation. The caller returns its empty
// default; "no data" and "fetch failed" are indistinguishable to the
// consumer by design.
func (c *Client) softFail(op string, err error) {
	c.log().WithField("op", op).Warnf("soft-fail, returning empty result: %v", err)
}
