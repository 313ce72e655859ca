package main

import (
	"net/http"

	"github.com/go-martini/martini"
	"github.com/martini-contrib/render"

	"github.com/pulkit-saini/classroom-connect/classroom"
)

type singleInviteRequest struct {
	Email string `json:"email"`
}

type bulkInviteRequest struct {
	Emails []string `json:"emails"`
}

func GetTeachers(r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	render.JSON(http.StatusOK, client.ListTeachers(r.Context(), params["course_id"]))
}

func GetStudents(r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	render.JSON(http.StatusOK, client.ListStudents(r.Context(), params["course_id"]))
}

func PostTeacher(w http.ResponseWriter, r *http.Request, params martini.Params, req singleInviteRequest, client *classroom.Client, render render.Render) {
	if req.Email == "" {
		loggedHTTPErrorf(w, http.StatusBadRequest, "email is required")
		return
	}
	added, err := client.InviteTeacher(r.Context(), params["course_id"], req.Email)
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, added)
}

func PostStudent(w http.ResponseWriter, r *http.Request, params martini.Params, req singleInviteRequest, client *classroom.Client, render render.Render) {
	if req.Email == "" {
		loggedHTTPErrorf(w, http.StatusBadRequest, "email is required")
		return
	}
	added, err := client.InviteStudent(r.Context(), params["course_id"], req.Email)
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, added)
}

// PostTeachersBulk invites every listed email and reports per-email
// outcomes; partial success is normal and nothing is rolled back.
func PostTeachersBulk(w http.ResponseWriter, r *http.Request, params martini.Params, req bulkInviteRequest, client *classroom.Client, render render.Render) {
	if len(req.Emails) == 0 {
		loggedHTTPErrorf(w, http.StatusBadRequest, "at least one email is required")
		return
	}
	render.JSON(http.StatusOK, client.BulkInviteTeachers(r.Context(), params["course_id"], req.Emails))
}

func PostStudentsBulk(w http.ResponseWriter, r *http.Request, params martini.Params, req bulkInviteRequest, client *classroom.Client, render render.Render) {
	if len(req.Emails) == 0 {
		loggedHTTPErrorf(w, http.StatusBadRequest, "at least one email is required")
		return
	}
	render.JSON(http.StatusOK, client.BulkInviteStudents(r.Context(), params["course_id"], req.Emails))
}

func DeleteTeacher(w http.ResponseWriter, r *http.Request, params martini.Params, client *classroom.Client) {
	if err := client.RemoveTeacher(r.Context(), params["course_id"], params["user_id"]); err != nil {
		apiError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func GetStats(w http.ResponseWriter, r *http.Request, client *classroom.Client, render render.Render) {
	stats, err := client.Stats(r.Context())
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, stats)
}
