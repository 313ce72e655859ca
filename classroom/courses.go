package classroom

import (
	"context"
	"fmt"

	"github.com/pulkit-saini/classroom-connect/types"
)

// NewCourse is the caller-supplied part of a course; the service fills
// in the id, state, links, and timestamps on the returned entity.
type NewCourse struct {
	Name        string `json:"name"`
	Section     string `json:"section,omitempty"`
	Description string `json:"description,omitempty"`
	Room        string `json:"room,omitempty"`
}

// CoursePatch holds the fields updateCourse may change.
type CoursePatch struct {
	Name        string `json:"name,omitempty"`
	Section     string `json:"section,omitempty"`
	Description string `json:"description,omitempty"`
	Room        string `json:"room,omitempty"`
}

// ListCourses returns every course visible to the signed-in user, in
// the single page the API returns.
func (c *Client) ListCourses(ctx context.Context) ([]*types.Course, error) {
	var reply struct {
		Courses []*types.Course `json:"courses"`
	}
	if err := c.getObject(ctx, "getCourses", "/courses", &reply); err != nil {
		return nil, err
	}
	if reply.Courses == nil {
		reply.Courses = []*types.Course{}
	}
	return reply.Courses, nil
}

// GetCourse fetches a single course.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*types.Course, error) {
	op := fmt.Sprintf("getCourse(%s)", courseID)
	course := new(types.Course)
	if err := c.getObject(ctx, op, "/courses/"+courseID, course); err != nil {
		return nil, err
	}
	return course, nil
}

// CreateCourse asks the service to create a course and returns the
// canonical entity.
func (c *Client) CreateCourse(ctx context.Context, course NewCourse) (*types.Course, error) {
	created := new(types.Course)
	if err := c.postObject(ctx, "createCourse", "/courses", &course, created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateCourse patches course metadata and returns the updated entity.
func (c *Client) UpdateCourse(ctx context.Context, courseID string, patch CoursePatch) (*types.Course, error) {
	op := fmt.Sprintf("updateCourse(%s)", courseID)
	updated := new(types.Course)
	if err := c.patchObject(ctx, op, "/courses/"+courseID, &patch, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
