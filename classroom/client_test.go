package classroom

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// newTestClient points a client at a stub upstream and silences its
// logging.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Client{
		BaseURL:     srv.URL,
		UserinfoURL: srv.URL + "/userinfo",
		Token:       "test-token",
		HTTPClient:  srv.Client(),
		Log:         logger,
	}
}

func jsonReply(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func TestAPIErrorFormat(t *testing.T) {
	err := &APIError{Op: "turnIn(c1, w1, s1)", StatusCode: 400, Message: "ProjectPermissionDenied"}
	expected := "[turnIn(c1, w1, s1)] status 400: ProjectPermissionDenied"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	transport := &APIError{Op: "getCourses", Message: "connection refused"}
	if transport.Error() != "[getCourses] connection refused" {
		t.Errorf("transport errors should omit the status, got %q", transport.Error())
	}
}

func TestStatusHelpers(t *testing.T) {
	unauth := &APIError{Op: "getCourses", StatusCode: http.StatusUnauthorized, Message: "invalid credentials"}
	forbidden := &APIError{Op: "getCourses", StatusCode: http.StatusForbidden, Message: "API not enabled"}
	other := &APIError{Op: "getCourses", StatusCode: http.StatusInternalServerError, Message: "boom"}

	if !IsUnauthorized(unauth) || IsUnauthorized(forbidden) || IsUnauthorized(other) {
		t.Errorf("IsUnauthorized misclassified")
	}
	if !IsForbidden(forbidden) || IsForbidden(unauth) || IsForbidden(other) {
		t.Errorf("IsForbidden misclassified")
	}

	// wrapped errors still classify
	wrapped := fmt.Errorf("loading dashboard: %w", unauth)
	if !IsUnauthorized(wrapped) {
		t.Errorf("IsUnauthorized should see through wrapping")
	}
	if IsUnauthorized(fmt.Errorf("plain error")) || IsForbidden(nil) {
		t.Errorf("non-API errors should not classify")
	}
}

func TestUpstreamErrorEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		jsonReply(w, `{"error":{"code":403,"message":"Classroom API has not been used in project 12345","status":"PERMISSION_DENIED"}}`)
	}))

	_, err := client.ListCourses(context.Background())
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !IsForbidden(err) {
		t.Errorf("expected a 403 classification: %v", err)
	}
	if !strings.Contains(err.Error(), "Classroom API has not been used") {
		t.Errorf("expected the upstream message to surface, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "[getCourses]") {
		t.Errorf("expected the operation label, got %q", err.Error())
	}
}

func TestUpstreamErrorFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>gateway timeout</html>")
	}))

	_, err := client.ListCourses(context.Background())
	if err == nil {
		t.Fatalf("expected an error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "502") {
		t.Errorf("non-JSON bodies should fall back to the HTTP status, got %q", apiErr.Message)
	}
}

func TestTransportErrorHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := &Client{BaseURL: srv.URL, Token: "t", Log: logger}

	_, err := client.ListCourses(context.Background())
	if err == nil {
		t.Fatalf("expected an error from a dead server")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("a request that never reached the server should have status 0, got %d", apiErr.StatusCode)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var got string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		jsonReply(w, `{"courses":[]}`)
	}))

	if _, err := client.ListCourses(context.Background()); err != nil {
		t.Fatalf("%v", err)
	}
	if got != "Bearer test-token" {
		t.Errorf("expected bearer auth, got %q", got)
	}
}

func TestListCoursesEmptyReply(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonReply(w, `{}`)
	}))

	courses, err := client.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("%v", err)
	}
	if courses == nil || len(courses) != 0 {
		t.Errorf("a reply with no courses key should yield an empty slice, got %#v", courses)
	}
}

func TestSoftFailReturnsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		jsonReply(w, `{"error":{"message":"backend unavailable"}}`)
	}))

	teachers := client.ListTeachers(context.Background(), "c1")
	if teachers == nil || len(teachers) != 0 {
		t.Errorf("a failed roster fetch should yield an empty slice, got %#v", teachers)
	}
	announcements := client.ListAnnouncements(context.Background(), "c1")
	if announcements == nil || len(announcements) != 0 {
		t.Errorf("a failed announcement fetch should yield an empty slice, got %#v", announcements)
	}
	materials := client.ListCourseMaterials(context.Background(), "c1")
	if materials == nil || len(materials) != 0 {
		t.Errorf("a failed materials fetch should yield an empty slice, got %#v", materials)
	}
}
