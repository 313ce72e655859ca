package classroom

import (
	"context"
	"fmt"

	"github.com/pulkit-saini/classroom-connect/types"
)

// ListAnnouncements returns the course stream. Soft-fail: an empty
// stream and a failed fetch both render as "no announcements".
func (c *Client) ListAnnouncements(ctx context.Context, courseID string) []*types.Announcement {
	op := fmt.Sprintf("getAnnouncements(%s)", courseID)
	var reply struct {
		Announcements []*types.Announcement `json:"announcements"`
	}
	if err := c.getObject(ctx, op, "/courses/"+courseID+"/announcements", &reply); err != nil {
		c.softFail(op, err)
		return []*types.Announcement{}
	}
	if reply.Announcements == nil {
		return []*types.Announcement{}
	}
	return reply.Announcements
}

// CreateAnnouncement posts to the course stream (teacher action).
func (c *Client) CreateAnnouncement(ctx context.Context, courseID, text string) (*types.Announcement, error) {
	op := fmt.Sprintf("createAnnouncement(%s)", courseID)
	body := struct {
		Text  string `json:"text"`
		State string `json:"state"`
	}{Text: text, State: "PUBLISHED"}
	created := new(types.Announcement)
	if err := c.postObject(ctx, op, "/courses/"+courseID+"/announcements", &body, created); err != nil {
		return nil, err
	}
	return created, nil
}

// ListCourseMaterials returns the classwork-tab reference material.
// Soft-fail. Note the API's singular reply key.
func (c *Client) ListCourseMaterials(ctx context.Context, courseID string) []*types.CourseMaterial {
	op := fmt.Sprintf("getCourseMaterials(%s)", courseID)
	var reply struct {
		CourseWorkMaterial []*types.CourseMaterial `json:"courseWorkMaterial"`
	}
	if err := c.getObject(ctx, op, "/courses/"+courseID+"/courseWorkMaterials", &reply); err != nil {
		c.softFail(op, err)
		return []*types.CourseMaterial{}
	}
	if reply.CourseWorkMaterial == nil {
		return []*types.CourseMaterial{}
	}
	return reply.CourseWorkMaterial
}
