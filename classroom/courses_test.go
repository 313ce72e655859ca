package classroom

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestGetCourse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/courses/c1" {
			t.Errorf("hit %s", r.URL.Path)
		}
		jsonReply(w, `{"id":"c1","name":"Algebra","section":"Period 3","courseState":"ACTIVE"}`)
	}))

	course, err := client.GetCourse(context.Background(), "c1")
	if err != nil {
		t.Fatalf("%v", err)
	}
	if course.Name != "Algebra" || !course.IsActive() {
		t.Errorf("wrong course: %#v", course)
	}
}

func TestCreateCourse(t *testing.T) {
	var gotBody []byte
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/courses" {
			t.Errorf("hit %s %s", r.Method, r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		jsonReply(w, `{"id":"c9","name":"Algebra","enrollmentCode":"abc123","courseState":"PROVISIONED"}`)
	}))

	created, err := client.CreateCourse(context.Background(), NewCourse{Name: "Algebra", Section: "Period 3"})
	if err != nil {
		t.Fatalf("%v", err)
	}
	if !strings.Contains(string(gotBody), `"name":"Algebra"`) {
		t.Errorf("wrong request body: %s", gotBody)
	}
	if created.ID != "c9" || created.EnrollmentCode != "abc123" {
		t.Errorf("expected the created course back, got %#v", created)
	}
}

func TestUpdateCourse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/courses/c1" {
			t.Errorf("hit %s %s", r.Method, r.URL.Path)
		}
		jsonReply(w, `{"id":"c1","name":"Algebra II"}`)
	}))

	updated, err := client.UpdateCourse(context.Background(), "c1", CoursePatch{Name: "Algebra II"})
	if err != nil {
		t.Fatalf("%v", err)
	}
	if updated.Name != "Algebra II" {
		t.Errorf("expected the updated course back, got %#v", updated)
	}
}
