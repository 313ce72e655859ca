// The classroom-connect gateway: the HTTP surface the web dashboard
// talks to. It holds no state of record; every route delegates to the
// Classroom and Drive APIs using the token carried in the signed
// session cookie.
package main

import (
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-martini/martini"
	"github.com/martini-contrib/binding"
	mgzip "github.com/martini-contrib/gzip"
	"github.com/martini-contrib/render"

	"github.com/pulkit-saini/classroom-connect/classroom"
	"github.com/pulkit-saini/classroom-connect/drive"
	"github.com/pulkit-saini/classroom-connect/types"
)

// Config holds site-specific configuration data, all supplied through
// the environment. AdminEmails is the deployment's authorization
// policy for the admin view; it is never compiled in.
var Config struct {
	SessionSecret string   // random string used to sign cookie sessions: `head -c 32 /dev/urandom | base64`
	AdminEmails   []string // comma-separated allow-list of admin account emails

	// endpoint overrides, for testing against stub upstreams
	ClassroomBase   string
	UserinfoBase    string
	DriveUploadBase string
	DriveAPIBase    string
}

var port string

func main() {
	log.SetFlags(log.Lshortfile)

	port = ":" + os.Getenv("PORT")
	if port == ":" {
		port = ":8080"
	}
	log.Printf("port set to %s", port)

	Config.SessionSecret = os.Getenv("CLASSCONNECT_SESSIONSECRET")
	Config.AdminEmails = splitEmails(os.Getenv("CLASSCONNECT_ADMIN_EMAILS"))
	Config.ClassroomBase = os.Getenv("CLASSCONNECT_CLASSROOM_BASE")
	Config.UserinfoBase = os.Getenv("CLASSCONNECT_USERINFO_BASE")
	Config.DriveUploadBase = os.Getenv("CLASSCONNECT_DRIVE_UPLOAD_BASE")
	Config.DriveAPIBase = os.Getenv("CLASSCONNECT_DRIVE_API_BASE")

	if Config.SessionSecret == "" {
		log.Fatalf("cannot run with no CLASSCONNECT_SESSIONSECRET in the environment")
	}
	if len(Config.AdminEmails) == 0 {
		log.Printf("CLASSCONNECT_ADMIN_EMAILS is empty; no one will get the admin view")
	}

	m := setupMartini()
	log.Printf("accepting http connections on %s", port)
	if err := http.ListenAndServe(port, m); err != nil {
		log.Fatalf("ListenAndServe: %v", err)
	}
}

func setupMartini() *martini.Martini {
	r := martini.NewRouter()
	m := martini.New()
	m.Logger(log.New(os.Stderr, "", log.Lshortfile))
	m.Use(martini.Recovery())
	m.MapTo(r, (*martini.Routes)(nil))
	m.Action(r.Handle)
	m.Use(mgzip.All())
	m.Use(render.Renderer(render.Options{IndentJSON: false}))

	counter := func(w http.ResponseWriter, r *http.Request, c martini.Context) {
		start := time.Now()
		c.Next()
		now := time.Now()
		seconds := now.Sub(start).Seconds()
		hits++
		hitsCounter.Add(1)
		if seconds > slowest {
			slowest = seconds
			slowestCounter.Set(seconds)
			slowestTimeCounter.Set(now.Format(time.RFC1123))
			slowestPathCounter.Set(r.URL.Path)
		}
		totalSeconds += seconds
		totalSecondsCounter.Add(seconds)
		averageSecondsCounter.Set(totalSeconds / float64(hits))
		rw := w.(martini.ResponseWriter)
		if rw.Status() >= 400 {
			errorsCounter.Add(1)
		}
		goroutineCounter.Set(int64(runtime.NumGoroutine()))
	}

	// version
	r.Get("/v1/version", counter, func(w http.ResponseWriter, render render.Render) {
		render.JSON(http.StatusOK, &types.CurrentVersion)
	})

	// sessions
	r.Post("/v1/sessions", counter, binding.Json(loginRequest{}), PostSession)
	r.Get("/v1/sessions/current", counter, withSession, GetCurrentSession)
	r.Delete("/v1/sessions/current", counter, DeleteSession)

	// courses
	r.Get("/v1/courses", counter, withSession, GetCourses)
	r.Post("/v1/courses", counter, withSession, teacherOnly, binding.Json(classroom.NewCourse{}), PostCourse)
	r.Get("/v1/courses/:course_id", counter, withSession, GetCourse)
	r.Patch("/v1/courses/:course_id", counter, withSession, teacherOnly, binding.Json(classroom.CoursePatch{}), PatchCourse)
	r.Get("/v1/courses/:course_id/role", counter, withSession, GetCourseRole)

	// coursework and submissions
	r.Get("/v1/courses/:course_id/coursework", counter, withSession, GetCourseWorkList)
	r.Post("/v1/courses/:course_id/coursework", counter, withSession, teacherOnly, binding.Json(classroom.NewCourseWork{}), PostCourseWork)
	r.Get("/v1/courses/:course_id/coursework/:coursework_id", counter, withSession, GetCourseWorkItem)
	r.Get("/v1/courses/:course_id/coursework/:coursework_id/submissions", counter, withSession, teacherOnly, GetSubmissions)
	r.Get("/v1/courses/:course_id/coursework/:coursework_id/submissions/me", counter, withSession, GetMySubmission)
	r.Post("/v1/courses/:course_id/coursework/:coursework_id/submissions/:submission_id/attachments", counter, withSession, binding.Json(attachmentRequest{}), PostAttachment)
	r.Post("/v1/courses/:course_id/coursework/:coursework_id/submissions/:submission_id/turnin", counter, withSession, PostTurnIn)
	r.Post("/v1/courses/:course_id/coursework/:coursework_id/submissions/:submission_id/reclaim", counter, withSession, PostReclaim)
	r.Post("/v1/courses/:course_id/coursework/:coursework_id/submissions/:submission_id/return", counter, withSession, teacherOnly, PostReturn)
	r.Patch("/v1/courses/:course_id/coursework/:coursework_id/submissions/:submission_id/grade", counter, withSession, teacherOnly, binding.Json(gradeRequest{}), PatchGrade)

	// stream and materials
	r.Get("/v1/courses/:course_id/announcements", counter, withSession, GetAnnouncements)
	r.Post("/v1/courses/:course_id/announcements", counter, withSession, teacherOnly, binding.Json(announcementRequest{}), PostAnnouncement)
	r.Get("/v1/courses/:course_id/materials", counter, withSession, GetMaterials)

	// rosters
	r.Get("/v1/courses/:course_id/teachers", counter, withSession, GetTeachers)
	r.Post("/v1/courses/:course_id/teachers", counter, withSession, teacherOnly, binding.Json(singleInviteRequest{}), PostTeacher)
	r.Post("/v1/courses/:course_id/teachers/bulk", counter, withSession, teacherOnly, binding.Json(bulkInviteRequest{}), PostTeachersBulk)
	r.Delete("/v1/courses/:course_id/teachers/:user_id", counter, withSession, teacherOnly, DeleteTeacher)
	r.Get("/v1/courses/:course_id/students", counter, withSession, GetStudents)
	r.Post("/v1/courses/:course_id/students", counter, withSession, teacherOnly, binding.Json(singleInviteRequest{}), PostStudent)
	r.Post("/v1/courses/:course_id/students/bulk", counter, withSession, teacherOnly, binding.Json(bulkInviteRequest{}), PostStudentsBulk)

	// files
	r.Post("/v1/files", counter, withSession, PostFile)
	r.Delete("/v1/files/:file_id", counter, withSession, DeleteFile)

	// admin
	r.Get("/v1/stats", counter, withSession, adminOnly, GetStats)
	r.Get("/v1/stats/server", counter, withSession, adminOnly, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		fmt.Fprintf(w, "{\n")
		first := true
		expvar.Do(func(kv expvar.KeyValue) {
			if !first {
				fmt.Fprintf(w, ",\n")
			}
			first = false
			fmt.Fprintf(w, "%q: %s", kv.Key, kv.Value)
		})
		fmt.Fprintf(w, "\n}\n")
	})

	return m
}

// withSession decodes and validates the session cookie, then maps the
// API clients and the cached global role into the request context.
func withSession(c martini.Context, w http.ResponseWriter, r *http.Request) {
	session, err := GetSession(r)
	if err != nil {
		loggedHTTPErrorf(w, http.StatusUnauthorized, "authentication failed: try logging in again")
		log.Printf("%v", err)
		return
	}
	c.Map(newClassroomClient(session.Token))
	c.Map(newDriveClient(session.Token))
	c.Map(session.Role)
}

// teacherOnly requires the cached global role to grant teacher-level
// actions. Per-course standing is the remote service's to enforce; this
// gate only keeps the student view from reaching mutating routes.
func teacherOnly(w http.ResponseWriter, role types.Role) {
	if !role.CanTeach() {
		loggedHTTPErrorf(w, http.StatusForbidden, "this action requires the teacher view")
		return
	}
}

func adminOnly(w http.ResponseWriter, role types.Role) {
	if role != types.RoleAdmin {
		loggedHTTPErrorf(w, http.StatusForbidden, "this action requires the admin view")
		return
	}
}

func newClassroomClient(token string) *classroom.Client {
	client := classroom.NewClient(token)
	if Config.ClassroomBase != "" {
		client.BaseURL = Config.ClassroomBase
	}
	if Config.UserinfoBase != "" {
		client.UserinfoURL = Config.UserinfoBase
	}
	return client
}

func newDriveClient(token string) *drive.Client {
	client := drive.NewClient(token)
	if Config.DriveUploadBase != "" {
		client.UploadURL = Config.DriveUploadBase
	}
	if Config.DriveAPIBase != "" {
		client.APIURL = Config.DriveAPIBase
	}
	return client
}

// apiError relays an access-layer failure to the dashboard. The two
// specially-cased statuses keep their meaning (401 forces re-login,
// 403 shows the API-enablement diagnostic); everything else collapses
// into a generic upstream failure.
func apiError(w http.ResponseWriter, err error) {
	switch {
	case classroom.IsUnauthorized(err):
		loggedHTTPErrorf(w, http.StatusUnauthorized, "%v", err)
	case classroom.IsForbidden(err):
		loggedHTTPErrorf(w, http.StatusForbidden, "%v", err)
	default:
		loggedHTTPErrorf(w, http.StatusBadGateway, "%v", err)
	}
}

func splitEmails(raw string) []string {
	var emails []string
	for _, elt := range strings.Split(raw, ",") {
		if elt = strings.TrimSpace(elt); elt != "" {
			emails = append(emails, elt)
		}
	}
	return emails
}

func loggedHTTPErrorf(w http.ResponseWriter, status int, format string, params ...interface{}) error {
	msg := fmt.Sprintf(format, params...)
	log.Print(logPrefix() + msg)
	http.Error(w, msg, status)
	return fmt.Errorf("%s", msg)
}

func logPrefix() string {
	prefix := ""
	if _, file, line, ok := runtime.Caller(2); ok {
		if slash := strings.LastIndex(file, "/"); slash >= 0 {
			file = file[slash+1:]
		}
		prefix = fmt.Sprintf("%s:%d: ", file, line)
	}
	return prefix
}

var (
	hits                  int
	hitsCounter           = expvar.NewInt("hits")
	slowest               float64
	slowestCounter        = expvar.NewFloat("slowestSeconds")
	slowestPathCounter    = expvar.NewString("slowestPath")
	slowestTimeCounter    = expvar.NewString("slowestTime")
	totalSeconds          float64
	totalSecondsCounter   = expvar.NewFloat("totalSeconds")
	averageSecondsCounter = expvar.NewFloat("averageSeconds")
	errorsCounter         = expvar.NewInt("errors")
	goroutineCounter      = expvar.NewInt("goroutines")
)
