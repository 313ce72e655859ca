package main

import (
	"net/http"

	"github.com/go-martini/martini"
	"github.com/martini-contrib/render"
	"github.com/russross/blackfriday/v2"

	"github.com/pulkit-saini/classroom-connect/classroom"
	"github.com/pulkit-saini/classroom-connect/types"
)

// markdownToHTML renders announcement and description text for the
// dashboard's rich display.
func markdownToHTML(text string) string {
	var extensions blackfriday.Extensions
	extensions |= blackfriday.NoIntraEmphasis
	extensions |= blackfriday.Tables
	extensions |= blackfriday.FencedCode
	extensions |= blackfriday.Autolink
	extensions |= blackfriday.Strikethrough
	extensions |= blackfriday.SpaceHeadings

	return string(blackfriday.Run([]byte(text), blackfriday.WithExtensions(extensions)))
}

func GetCourses(w http.ResponseWriter, r *http.Request, client *classroom.Client, render render.Render) {
	courses, err := client.ListCourses(r.Context())
	if err != nil {
		apiError(w, err)
		return
	}
	if r.FormValue("state") == "active" {
		active := []*types.Course{}
		for _, course := range courses {
			if course.IsActive() {
				active = append(active, course)
			}
		}
		courses = active
	}
	render.JSON(http.StatusOK, courses)
}

func GetCourse(w http.ResponseWriter, r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	course, err := client.GetCourse(r.Context(), params["course_id"])
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, course)
}

func PostCourse(w http.ResponseWriter, r *http.Request, req classroom.NewCourse, client *classroom.Client, render render.Render) {
	if req.Name == "" {
		loggedHTTPErrorf(w, http.StatusBadRequest, "course name is required")
		return
	}
	created, err := client.CreateCourse(r.Context(), req)
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, created)
}

func PatchCourse(w http.ResponseWriter, r *http.Request, params martini.Params, req classroom.CoursePatch, client *classroom.Client, render render.Render) {
	updated, err := client.UpdateCourse(r.Context(), params["course_id"], req)
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, updated)
}

// GetCourseRole re-derives the caller's standing within one course.
// This is deliberately not cached: a user's standing in a single
// course can differ from the session's global role.
func GetCourseRole(r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	role := client.RoleInCourse(r.Context(), params["course_id"])
	render.JSON(http.StatusOK, map[string]types.Role{"role": role})
}

// GetCourseWorkList returns a course's assignments. With
// ?submissions=me the caller's own submission is hydrated onto each
// item, the shape the student classwork tab renders from.
func GetCourseWorkList(w http.ResponseWriter, r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	courseID := params["course_id"]
	work, err := client.ListCourseWork(r.Context(), courseID)
	if err != nil {
		apiError(w, err)
		return
	}
	if r.FormValue("submissions") == "me" {
		client.HydrateSubmissions(r.Context(), courseID, work)
	}
	render.JSON(http.StatusOK, work)
}

func GetCourseWorkItem(w http.ResponseWriter, r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	work, err := client.GetCourseWork(r.Context(), params["course_id"], params["coursework_id"])
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, work)
}

func PostCourseWork(w http.ResponseWriter, r *http.Request, params martini.Params, req classroom.NewCourseWork, client *classroom.Client, render render.Render) {
	if req.Title == "" {
		loggedHTTPErrorf(w, http.StatusBadRequest, "coursework title is required")
		return
	}
	if req.WorkType == "" {
		req.WorkType = types.WorkTypeAssignment
	}
	created, err := client.CreateCourseWork(r.Context(), params["course_id"], req)
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, created)
}

type announcementRequest struct {
	Text string `json:"text"`
}

// announcementView decorates an announcement with the rendered HTML of
// its text.
type announcementView struct {
	*types.Announcement
	TextHTML string `json:"textHTML"`
}

func GetAnnouncements(r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	announcements := client.ListAnnouncements(r.Context(), params["course_id"])
	views := make([]*announcementView, 0, len(announcements))
	for _, elt := range announcements {
		views = append(views, &announcementView{Announcement: elt, TextHTML: markdownToHTML(elt.Text)})
	}
	render.JSON(http.StatusOK, views)
}

func PostAnnouncement(w http.ResponseWriter, r *http.Request, params martini.Params, req announcementRequest, client *classroom.Client, render render.Render) {
	if req.Text == "" {
		loggedHTTPErrorf(w, http.StatusBadRequest, "announcement text is required")
		return
	}
	created, err := client.CreateAnnouncement(r.Context(), params["course_id"], req.Text)
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, &announcementView{Announcement: created, TextHTML: markdownToHTML(created.Text)})
}

// materialView decorates a course material with rendered description
// HTML.
type materialView struct {
	*types.CourseMaterial
	DescriptionHTML string `json:"descriptionHTML,omitempty"`
}

func GetMaterials(r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	materials := client.ListCourseMaterials(r.Context(), params["course_id"])
	views := make([]*materialView, 0, len(materials))
	for _, elt := range materials {
		view := &materialView{CourseMaterial: elt}
		if elt.Description != "" {
			view.DescriptionHTML = markdownToHTML(elt.Description)
		}
		views = append(views, view)
	}
	render.JSON(http.StatusOK, views)
}
