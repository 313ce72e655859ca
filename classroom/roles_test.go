package classroom

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/pulkit-saini/classroom-connect/types"
)

// roleFixture stubs the subset of the API role detection touches and
// counts the requests it receives.
type roleFixture struct {
	mu           sync.Mutex
	profile      string
	userinfo     string
	courses      string
	teachersBy   map[string]string
	failProfile  bool
	failCourses  bool
	rosterCalls  []string
	courseCalls  int
	profileCalls int
}

func (f *roleFixture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/userProfiles/me":
		f.profileCalls++
		if f.failProfile {
			w.WriteHeader(http.StatusUnauthorized)
			jsonReply(w, `{"error":{"message":"invalid credentials"}}`)
			return
		}
		jsonReply(w, f.profile)
	case r.URL.Path == "/userinfo":
		jsonReply(w, f.userinfo)
	case r.URL.Path == "/courses":
		f.courseCalls++
		if f.failCourses {
			w.WriteHeader(http.StatusInternalServerError)
			jsonReply(w, `{"error":{"message":"boom"}}`)
			return
		}
		jsonReply(w, f.courses)
	case strings.HasSuffix(r.URL.Path, "/teachers"):
		courseID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/courses/"), "/teachers")
		f.rosterCalls = append(f.rosterCalls, courseID)
		if reply, ok := f.teachersBy[courseID]; ok {
			jsonReply(w, reply)
			return
		}
		jsonReply(w, `{"teachers":[]}`)
	case strings.HasSuffix(r.URL.Path, "/students"):
		jsonReply(w, `{"students":[]}`)
	default:
		http.NotFound(w, r)
	}
}

func TestDetectRoleAdminShortCircuits(t *testing.T) {
	fixture := &roleFixture{
		profile: `{"id":"u1","emailAddress":"Principal@School.edu","name":{"fullName":"Pat Principal"}}`,
		courses: `{"courses":[{"id":"c1","name":"Algebra"}]}`,
	}
	client := newTestClient(t, fixture)

	role := client.DetectRole(context.Background(), []string{" principal@school.edu "})
	if role != types.RoleAdmin {
		t.Fatalf("expected admin, got %s", role)
	}
	if fixture.courseCalls != 0 || len(fixture.rosterCalls) != 0 {
		t.Errorf("admin detection should not touch courses (%d) or rosters (%d)", fixture.courseCalls, len(fixture.rosterCalls))
	}
}

func TestDetectRoleTeacherFirstMatch(t *testing.T) {
	fixture := &roleFixture{
		profile: `{"id":"u1","emailAddress":"t@school.edu"}`,
		courses: `{"courses":[{"id":"c1","name":"A"},{"id":"c2","name":"B"},{"id":"c3","name":"C"}]}`,
		teachersBy: map[string]string{
			"c1": `{"teachers":[{"courseId":"c1","userId":"other"}]}`,
			"c2": `{"teachers":[{"courseId":"c2","userId":"other"},{"courseId":"c2","userId":"u1"}]}`,
			"c3": `{"teachers":[{"courseId":"c3","userId":"u1"}]}`,
		},
	}
	client := newTestClient(t, fixture)

	role := client.DetectRole(context.Background(), nil)
	if role != types.RoleTeacher {
		t.Fatalf("expected teacher, got %s", role)
	}
	// c2 is the first match, so c3 must never be fetched
	if len(fixture.rosterCalls) != 2 {
		t.Errorf("expected 2 roster fetches, got %v", fixture.rosterCalls)
	}
	for _, courseID := range fixture.rosterCalls {
		if courseID == "c3" {
			t.Errorf("detection kept going past the first teacher match")
		}
	}
}

func TestDetectRoleStudentWhenOnNoTeacherRoster(t *testing.T) {
	fixture := &roleFixture{
		profile: `{"id":"u9","emailAddress":"s@school.edu"}`,
		courses: `{"courses":[{"id":"c1","name":"A"}]}`,
		teachersBy: map[string]string{
			"c1": `{"teachers":[{"courseId":"c1","userId":"other"}]}`,
		},
	}
	client := newTestClient(t, fixture)

	if role := client.DetectRole(context.Background(), []string{"admin@school.edu"}); role != types.RoleStudent {
		t.Errorf("expected student, got %s", role)
	}
}

func TestDetectRoleFailureDefaultsToStudent(t *testing.T) {
	byProfile := &roleFixture{failProfile: true}
	client := newTestClient(t, byProfile)
	if role := client.DetectRole(context.Background(), []string{"admin@school.edu"}); role != types.RoleStudent {
		t.Errorf("profile failure should default to student, got %s", role)
	}

	byCourses := &roleFixture{
		profile:     `{"id":"u1","emailAddress":"t@school.edu"}`,
		failCourses: true,
	}
	client = newTestClient(t, byCourses)
	if role := client.DetectRole(context.Background(), nil); role != types.RoleStudent {
		t.Errorf("course listing failure should default to student, got %s", role)
	}
}

func TestDetectRoleUserinfoFallback(t *testing.T) {
	fixture := &roleFixture{
		// the Classroom profile withholds the email
		profile:  `{"id":"u1","name":{"fullName":"Pat Principal"}}`,
		userinfo: `{"email":"principal@school.edu"}`,
		courses:  `{"courses":[]}`,
	}
	client := newTestClient(t, fixture)

	if role := client.DetectRole(context.Background(), []string{"principal@school.edu"}); role != types.RoleAdmin {
		t.Errorf("expected admin via userinfo fallback, got %s", role)
	}
}

func TestRoleInCoursePrefersTeacher(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/userProfiles/me":
			jsonReply(w, `{"id":"u1"}`)
		case strings.HasSuffix(r.URL.Path, "/teachers"):
			jsonReply(w, `{"teachers":[{"courseId":"c1","userId":"u1"}]}`)
		case strings.HasSuffix(r.URL.Path, "/students"):
			// listed on both rosters; teacher wins
			jsonReply(w, `{"students":[{"courseId":"c1","userId":"u1"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))

	if role := client.RoleInCourse(context.Background(), "c1"); role != types.RoleTeacher {
		t.Errorf("expected teacher, got %s", role)
	}
}

func TestRoleInCourseUnknown(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/userProfiles/me":
			jsonReply(w, `{"id":"stranger"}`)
		case strings.HasSuffix(r.URL.Path, "/teachers"):
			jsonReply(w, `{"teachers":[{"courseId":"c1","userId":"u1"}]}`)
		case strings.HasSuffix(r.URL.Path, "/students"):
			jsonReply(w, `{"students":[{"courseId":"c1","userId":"u2"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))

	if role := client.RoleInCourse(context.Background(), "c1"); role != types.RoleUnknown {
		t.Errorf("expected unknown for a non-member, got %s", role)
	}
}

func TestRoleInCourseProfileFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/userProfiles/me" {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{}`)
			return
		}
		jsonReply(w, `{"teachers":[],"students":[]}`)
	}))

	if role := client.RoleInCourse(context.Background(), "c1"); role != types.RoleUnknown {
		t.Errorf("expected unknown when the profile cannot be fetched, got %s", role)
	}
}
