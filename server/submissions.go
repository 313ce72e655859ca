package main

import (
	"net/http"

	"github.com/go-martini/martini"
	"github.com/martini-contrib/render"

	"github.com/pulkit-saini/classroom-connect/classroom"
	"github.com/pulkit-saini/classroom-connect/drive"
)

// maxUploadBytes caps browser uploads relayed to Drive.
const maxUploadBytes = 64 << 20

func GetSubmissions(r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	render.JSON(http.StatusOK, client.ListSubmissions(r.Context(), params["course_id"], params["coursework_id"]))
}

// GetMySubmission returns the caller's own submission, or a JSON null
// when none exists yet. The null is meaningful: it is what disables
// the turn-in control for unstarted work.
func GetMySubmission(r *http.Request, params martini.Params, client *classroom.Client, render render.Render) {
	render.JSON(http.StatusOK, client.GetMySubmission(r.Context(), params["course_id"], params["coursework_id"]))
}

type attachmentRequest struct {
	LinkURL     string `json:"linkUrl,omitempty"`
	DriveFileID string `json:"driveFileId,omitempty"`
}

// PostAttachment adds a link or an uploaded drive file to an existing
// submission. Exactly one of the two fields must be set.
func PostAttachment(w http.ResponseWriter, r *http.Request, params martini.Params, req attachmentRequest, client *classroom.Client) {
	courseID, workID, subID := params["course_id"], params["coursework_id"], params["submission_id"]
	var err error
	switch {
	case req.LinkURL != "" && req.DriveFileID != "":
		loggedHTTPErrorf(w, http.StatusBadRequest, "give either linkUrl or driveFileId, not both")
		return
	case req.LinkURL != "":
		err = client.AddLinkAttachment(r.Context(), courseID, workID, subID, req.LinkURL)
	case req.DriveFileID != "":
		err = client.AddDriveFileAttachment(r.Context(), courseID, workID, subID, req.DriveFileID)
	default:
		loggedHTTPErrorf(w, http.StatusBadRequest, "linkUrl or driveFileId is required")
		return
	}
	if err != nil {
		apiError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func PostTurnIn(w http.ResponseWriter, r *http.Request, params martini.Params, client *classroom.Client) {
	if err := client.TurnIn(r.Context(), params["course_id"], params["coursework_id"], params["submission_id"]); err != nil {
		apiError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func PostReclaim(w http.ResponseWriter, r *http.Request, params martini.Params, client *classroom.Client) {
	if err := client.Reclaim(r.Context(), params["course_id"], params["coursework_id"], params["submission_id"]); err != nil {
		apiError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func PostReturn(w http.ResponseWriter, r *http.Request, params martini.Params, client *classroom.Client) {
	if err := client.Return(r.Context(), params["course_id"], params["coursework_id"], params["submission_id"]); err != nil {
		apiError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type gradeRequest struct {
	AssignedGrade float64 `json:"assignedGrade"`
}

func PatchGrade(w http.ResponseWriter, r *http.Request, params martini.Params, req gradeRequest, client *classroom.Client, render render.Render) {
	graded, err := client.GradeSubmission(r.Context(), params["course_id"], params["coursework_id"], params["submission_id"], req.AssignedGrade)
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, graded)
}

// PostFile relays a browser upload to Drive so the result can be
// attached to a submission by id. A failed permission grant leaves an
// orphaned file; the error names it so the user can retry or delete.
func PostFile(w http.ResponseWriter, r *http.Request, driveClient *drive.Client, render render.Render) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		loggedHTTPErrorf(w, http.StatusBadRequest, "parsing upload: %v", err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		loggedHTTPErrorf(w, http.StatusBadRequest, "upload needs a 'file' part: %v", err)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	uploaded, err := driveClient.UploadFile(r.Context(), header.Filename, mimeType, file)
	if err != nil {
		loggedHTTPErrorf(w, http.StatusBadGateway, "%v", err)
		return
	}
	render.JSON(http.StatusOK, uploaded)
}

func DeleteFile(w http.ResponseWriter, r *http.Request, params martini.Params, driveClient *drive.Client) {
	if err := driveClient.DeleteFile(r.Context(), params["file_id"]); err != nil {
		loggedHTTPErrorf(w, http.StatusBadGateway, "%v", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
