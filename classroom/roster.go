package classroom

import (
	"context"
	"fmt"

	"github.com/pulkit-saini/classroom-connect/types"
)

// ListTeachers returns a course's teacher roster. Soft-fail.
func (c *Client) ListTeachers(ctx context.Context, courseID string) []*types.Teacher {
	op := fmt.Sprintf("getTeachers(%s)", courseID)
	var reply struct {
		Teachers []*types.Teacher `json:"teachers"`
	}
	if err := c.getObject(ctx, op, "/courses/"+courseID+"/teachers", &reply); err != nil {
		c.softFail(op, err)
		return []*types.Teacher{}
	}
	if reply.Teachers == nil {
		return []*types.Teacher{}
	}
	return reply.Teachers
}

// ListStudents returns a course's student roster. Soft-fail.
func (c *Client) ListStudents(ctx context.Context, courseID string) []*types.Student {
	op := fmt.Sprintf("getStudents(%s)", courseID)
	var reply struct {
		Students []*types.Student `json:"students"`
	}
	if err := c.getObject(ctx, op, "/courses/"+courseID+"/students", &reply); err != nil {
		c.softFail(op, err)
		return []*types.Student{}
	}
	if reply.Students == nil {
		return []*types.Student{}
	}
	return reply.Students
}

type inviteRequest struct {
	UserID string `json:"userId"`
}

// InviteTeacher adds a co-teacher to a course by email address.
func (c *Client) InviteTeacher(ctx context.Context, courseID, email string) (*types.Teacher, error) {
	op := fmt.Sprintf("inviteTeacher(%s, %s)", courseID, email)
	added := new(types.Teacher)
	if err := c.postObject(ctx, op, "/courses/"+courseID+"/teachers", &inviteRequest{UserID: email}, added); err != nil {
		return nil, err
	}
	return added, nil
}

// InviteStudent enrolls a student in a course by email address.
func (c *Client) InviteStudent(ctx context.Context, courseID, email string) (*types.Student, error) {
	op := fmt.Sprintf("inviteStudent(%s, %s)", courseID, email)
	added := new(types.Student)
	if err := c.postObject(ctx, op, "/courses/"+courseID+"/students", &inviteRequest{UserID: email}, added); err != nil {
		return nil, err
	}
	return added, nil
}

// RemoveTeacher takes a teacher off a course roster.
func (c *Client) RemoveTeacher(ctx context.Context, courseID, userID string) error {
	op := fmt.Sprintf("removeTeacher(%s, %s)", courseID, userID)
	return c.deleteObject(ctx, op, "/courses/"+courseID+"/teachers/"+userID)
}

// InviteFailure pairs a failed invite with its captured error message.
type InviteFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// BulkResult reports the outcome of a bulk invite. Succeeded preserves
// attempt order. There is no rollback of partial success.
type BulkResult struct {
	Succeeded []string        `json:"success"`
	Failed    []InviteFailure `json:"failed"`
}

// BulkInviteTeachers invites each email in turn. One failure never
// aborts the remaining invites.
func (c *Client) BulkInviteTeachers(ctx context.Context, courseID string, emails []string) *BulkResult {
	return c.bulkInvite(emails, func(email string) error {
		_, err := c.InviteTeacher(ctx, courseID, email)
		return err
	})
}

// BulkInviteStudents invites each email in turn, isolating failures
// the same way as BulkInviteTeachers.
func (c *Client) BulkInviteStudents(ctx context.Context, courseID string, emails []string) *BulkResult {
	return c.bulkInvite(emails, func(email string) error {
		_, err := c.InviteStudent(ctx, courseID, email)
		return err
	})
}

func (c *Client) bulkInvite(emails []string, invite func(string) error) *BulkResult {
	result := &BulkResult{Succeeded: []string{}, Failed: []InviteFailure{}}
	for _, email := range emails {
		if err := invite(email); err != nil {
			result.Failed = append(result.Failed, InviteFailure{Email: email, Error: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, email)
	}
	return result
}
