package classroom

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/pulkit-saini/classroom-connect/types"
)

func TestHydrateSubmissions(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()
		defer func() {
			mu.Lock()
			inFlight--
			mu.Unlock()
		}()

		parts := strings.Split(r.URL.Path, "/")
		workID := parts[4]
		switch workID {
		case "w2":
			// no submission for this one
			jsonReply(w, `{"studentSubmissions":[]}`)
		case "w3":
			w.WriteHeader(http.StatusInternalServerError)
			jsonReply(w, `{"error":{"message":"boom"}}`)
		default:
			jsonReply(w, `{"studentSubmissions":[{"id":"sub-`+workID+`","courseWorkId":"`+workID+`","state":"TURNED_IN"}]}`)
		}
	}))

	work := []*types.CourseWork{}
	for _, id := range []string{"w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8"} {
		work = append(work, &types.CourseWork{ID: id, CourseID: "c1", Title: id})
	}
	client.HydrateSubmissions(context.Background(), "c1", work)

	// order is untouched, gaps and failures stay nil
	for i, id := range []string{"w1", "w2", "w3", "w4", "w5", "w6", "w7", "w8"} {
		if work[i].ID != id {
			t.Fatalf("item order changed: %v at %d", work[i].ID, i)
		}
	}
	if work[0].Submission == nil || work[0].Submission.ID != "sub-w1" {
		t.Errorf("w1 should be hydrated, got %#v", work[0].Submission)
	}
	if work[1].Submission != nil {
		t.Errorf("w2 has no submission and should stay nil")
	}
	if work[2].Submission != nil {
		t.Errorf("w3's failed fetch should leave it nil")
	}
	if work[7].Submission == nil || work[7].Submission.ID != "sub-w8" {
		t.Errorf("w8 should be hydrated, got %#v", work[7].Submission)
	}
	if peak > hydrateConcurrency {
		t.Errorf("hydration exceeded its concurrency bound: peak %d", peak)
	}
}

func TestCreateCourseWorkDefaults(t *testing.T) {
	var gotBody []byte
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		gotBody = body
		jsonReply(w, `{"id":"w1","courseId":"c1","title":"Essay","state":"PUBLISHED"}`)
	}))

	created, err := client.CreateCourseWork(context.Background(), "c1", NewCourseWork{
		Title:    "Essay",
		WorkType: types.WorkTypeAssignment,
	})
	if err != nil {
		t.Fatalf("%v", err)
	}
	if !strings.Contains(string(gotBody), `"state":"PUBLISHED"`) {
		t.Errorf("state should default to PUBLISHED, got %s", gotBody)
	}
	if created.ID != "w1" {
		t.Errorf("expected the created item back, got %#v", created)
	}
}

func TestListCourseWorkHardFail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		jsonReply(w, `{"error":{"message":"denied"}}`)
	}))

	if _, err := client.ListCourseWork(context.Background(), "c1"); err == nil {
		t.Fatalf("coursework listing failures must surface, not soft-fail")
	}
}
