package classroom

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestStatsDeduplicatesPeople(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/courses":
			jsonReply(w, `{"courses":[{"id":"c1","name":"A"},{"id":"c2","name":"B"}]}`)
		case r.URL.Path == "/courses/c1/teachers":
			jsonReply(w, `{"teachers":[{"courseId":"c1","userId":"t1"}]}`)
		case r.URL.Path == "/courses/c2/teachers":
			// t1 also teaches c2 and must count once
			jsonReply(w, `{"teachers":[{"courseId":"c2","userId":"t1"},{"courseId":"c2","userId":"t2"}]}`)
		case r.URL.Path == "/courses/c1/students":
			jsonReply(w, `{"students":[{"courseId":"c1","userId":"s1"},{"courseId":"c1","userId":"s2"}]}`)
		case r.URL.Path == "/courses/c2/students":
			jsonReply(w, `{"students":[{"courseId":"c2","userId":"s2"},{"courseId":"c2","userId":"s3"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))

	stats, err := client.Stats(context.Background())
	if err != nil {
		t.Fatalf("%v", err)
	}
	if stats.TotalCourses != 2 {
		t.Errorf("expected 2 courses, got %d", stats.TotalCourses)
	}
	if stats.TotalTeachers != 2 {
		t.Errorf("expected 2 distinct teachers, got %d", stats.TotalTeachers)
	}
	if stats.TotalStudents != 3 {
		t.Errorf("expected 3 distinct students, got %d", stats.TotalStudents)
	}
	if len(stats.Courses) != 2 {
		t.Errorf("expected the course list to ride along, got %d", len(stats.Courses))
	}
}

func TestStatsCourseListingFailureAborts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		jsonReply(w, `{"error":{"message":"denied"}}`)
	}))

	if _, err := client.Stats(context.Background()); err == nil {
		t.Fatalf("a failed course listing must abort stats")
	}
}

func TestStatsBrokenRosterSkews(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/courses":
			jsonReply(w, `{"courses":[{"id":"c1","name":"A"},{"id":"c2","name":"B"}]}`)
		case strings.HasPrefix(r.URL.Path, "/courses/c2/"):
			w.WriteHeader(http.StatusInternalServerError)
			jsonReply(w, `{"error":{"message":"boom"}}`)
		case r.URL.Path == "/courses/c1/teachers":
			jsonReply(w, `{"teachers":[{"courseId":"c1","userId":"t1"}]}`)
		case r.URL.Path == "/courses/c1/students":
			jsonReply(w, `{"students":[{"courseId":"c1","userId":"s1"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))

	stats, err := client.Stats(context.Background())
	if err != nil {
		t.Fatalf("one broken roster should not abort stats: %v", err)
	}
	if stats.TotalCourses != 2 || stats.TotalTeachers != 1 || stats.TotalStudents != 1 {
		t.Errorf("expected skewed-but-complete stats, got %#v", stats)
	}
}
