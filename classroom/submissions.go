package classroom

import (
	"context"
	"fmt"

	"github.com/pulkit-saini/classroom-connect/types"
)

// GetMySubmission returns the caller's own submission for one
// coursework item, or nil when none exists yet or the fetch fails.
// Soft-fail: turn-in controls stay disabled on nil, nothing aborts.
func (c *Client) GetMySubmission(ctx context.Context, courseID, courseWorkID string) *types.StudentSubmission {
	op := fmt.Sprintf("getSubmission(%s, %s)", courseID, courseWorkID)
	var reply struct {
		StudentSubmissions []*types.StudentSubmission `json:"studentSubmissions"`
	}
	path := "/courses/" + courseID + "/courseWork/" + courseWorkID + "/studentSubmissions?userId=me"
	if err := c.getObject(ctx, op, path, &reply); err != nil {
		c.softFail(op, err)
		return nil
	}
	if len(reply.StudentSubmissions) == 0 {
		return nil
	}
	return reply.StudentSubmissions[0]
}

// ListSubmissions returns every student's submission for one
// coursework item (teacher view). Soft-fail.
func (c *Client) ListSubmissions(ctx context.Context, courseID, courseWorkID string) []*types.StudentSubmission {
	op := fmt.Sprintf("getAllStudentSubmissions(%s, %s)", courseID, courseWorkID)
	var reply struct {
		StudentSubmissions []*types.StudentSubmission `json:"studentSubmissions"`
	}
	path := "/courses/" + courseID + "/courseWork/" + courseWorkID + "/studentSubmissions"
	if err := c.getObject(ctx, op, path, &reply); err != nil {
		c.softFail(op, err)
		return []*types.StudentSubmission{}
	}
	if reply.StudentSubmissions == nil {
		return []*types.StudentSubmission{}
	}
	return reply.StudentSubmissions
}

// ListMySubmissions walks a course's coursework and collects the
// caller's existing submissions. Soft-fail: a broken coursework
// listing yields an empty slice, and items with no submission are
// simply skipped.
func (c *Client) ListMySubmissions(ctx context.Context, courseID string) []*types.StudentSubmission {
	op := fmt.Sprintf("getAllSubmissions(%s)", courseID)
	work, err := c.ListCourseWork(ctx, courseID)
	if err != nil {
		c.softFail(op, err)
		return []*types.StudentSubmission{}
	}
	submissions := []*types.StudentSubmission{}
	for _, item := range work {
		if sub := c.GetMySubmission(ctx, courseID, item.ID); sub != nil {
			submissions = append(submissions, sub)
		}
	}
	return submissions
}

func (c *Client) submissionPath(courseID, courseWorkID, submissionID string) string {
	return "/courses/" + courseID + "/courseWork/" + courseWorkID + "/studentSubmissions/" + submissionID
}

type attachmentRequest struct {
	AddAttachments []types.Attachment `json:"addAttachments"`
}

// AddLinkAttachment attaches a URL to an existing submission. The
// submission must already exist; coursework the student has not
// started has no submission record to attach to.
func (c *Client) AddLinkAttachment(ctx context.Context, courseID, courseWorkID, submissionID, linkURL string) error {
	op := fmt.Sprintf("addLink(%s, %s, %s)", courseID, courseWorkID, submissionID)
	body := attachmentRequest{
		AddAttachments: []types.Attachment{{Link: &types.LinkMaterial{URL: linkURL}}},
	}
	return c.postObject(ctx, op, c.submissionPath(courseID, courseWorkID, submissionID)+":modifyAttachments", &body, nil)
}

// AddDriveFileAttachment attaches an already-uploaded drive file by id.
func (c *Client) AddDriveFileAttachment(ctx context.Context, courseID, courseWorkID, submissionID, driveFileID string) error {
	op := fmt.Sprintf("addDriveFile(%s, %s, %s)", courseID, courseWorkID, submissionID)
	body := attachmentRequest{
		AddAttachments: []types.Attachment{{DriveFile: &types.SharedDriveFile{ID: driveFileID}}},
	}
	return c.postObject(ctx, op, c.submissionPath(courseID, courseWorkID, submissionID)+":modifyAttachments", &body, nil)
}

// TurnIn submits the student's work. The state transition itself is
// executed remotely; callers re-fetch the submission to observe it.
func (c *Client) TurnIn(ctx context.Context, courseID, courseWorkID, submissionID string) error {
	op := fmt.Sprintf("turnIn(%s, %s, %s)", courseID, courseWorkID, submissionID)
	return c.postObject(ctx, op, c.submissionPath(courseID, courseWorkID, submissionID)+":turnIn", struct{}{}, nil)
}

// Reclaim takes a turned-in submission back for further edits.
func (c *Client) Reclaim(ctx context.Context, courseID, courseWorkID, submissionID string) error {
	op := fmt.Sprintf("reclaim(%s, %s, %s)", courseID, courseWorkID, submissionID)
	return c.postObject(ctx, op, c.submissionPath(courseID, courseWorkID, submissionID)+":reclaim", struct{}{}, nil)
}

// Return hands a submission back to the student (teacher action).
func (c *Client) Return(ctx context.Context, courseID, courseWorkID, submissionID string) error {
	op := fmt.Sprintf("returnSubmission(%s, %s, %s)", courseID, courseWorkID, submissionID)
	return c.postObject(ctx, op, c.submissionPath(courseID, courseWorkID, submissionID)+":return", struct{}{}, nil)
}

// GradeSubmission sets the assigned grade (teacher action). The grade
// may be revised later; the submission keeps its state until Return.
func (c *Client) GradeSubmission(ctx context.Context, courseID, courseWorkID, submissionID string, points float64) (*types.StudentSubmission, error) {
	op := fmt.Sprintf("gradeSubmission(%s, %s, %s)", courseID, courseWorkID, submissionID)
	body := struct {
		AssignedGrade float64 `json:"assignedGrade"`
	}{AssignedGrade: points}
	graded := new(types.StudentSubmission)
	path := c.submissionPath(courseID, courseWorkID, submissionID) + "?updateMask=assignedGrade"
	if err := c.patchObject(ctx, op, path, &body, graded); err != nil {
		return nil, err
	}
	return graded, nil
}
