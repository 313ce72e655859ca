package classroom

import (
	"context"
	"fmt"
	"sync"

	"github.com/pulkit-saini/classroom-connect/types"
)

// hydrateConcurrency bounds the per-assignment submission fan-out so a
// long classwork list does not open one connection per item all at
// once.
const hydrateConcurrency = 5

// NewCourseWork is the caller-supplied part of an assignment. State
// defaults to PUBLISHED.
type NewCourseWork struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	WorkType    string           `json:"workType"`
	MaxPoints   float64          `json:"maxPoints,omitempty"`
	DueDate     *types.Date      `json:"dueDate,omitempty"`
	DueTime     *types.TimeOfDay `json:"dueTime,omitempty"`
	State       string           `json:"state,omitempty"`
}

// ListCourseWork returns all coursework for a course.
func (c *Client) ListCourseWork(ctx context.Context, courseID string) ([]*types.CourseWork, error) {
	op := fmt.Sprintf("getCourseWork(%s)", courseID)
	var reply struct {
		CourseWork []*types.CourseWork `json:"courseWork"`
	}
	if err := c.getObject(ctx, op, "/courses/"+courseID+"/courseWork", &reply); err != nil {
		return nil, err
	}
	if reply.CourseWork == nil {
		reply.CourseWork = []*types.CourseWork{}
	}
	return reply.CourseWork, nil
}

// GetCourseWork fetches a single coursework item.
func (c *Client) GetCourseWork(ctx context.Context, courseID, courseWorkID string) (*types.CourseWork, error) {
	op := fmt.Sprintf("getCourseWorkItem(%s, %s)", courseID, courseWorkID)
	work := new(types.CourseWork)
	if err := c.getObject(ctx, op, "/courses/"+courseID+"/courseWork/"+courseWorkID, work); err != nil {
		return nil, err
	}
	return work, nil
}

// CreateCourseWork posts a new assignment to a course.
func (c *Client) CreateCourseWork(ctx context.Context, courseID string, work NewCourseWork) (*types.CourseWork, error) {
	op := fmt.Sprintf("createCourseWork(%s)", courseID)
	if work.State == "" {
		work.State = types.CourseWorkStatePublished
	}
	created := new(types.CourseWork)
	if err := c.postObject(ctx, op, "/courses/"+courseID+"/courseWork", &work, created); err != nil {
		return nil, err
	}
	return created, nil
}

// HydrateSubmissions fills each item's Submission field with the
// caller's own submission, fetching at most hydrateConcurrency items
// at a time. A missing submission is legitimate (new assignment, not
// yet started) and leaves the field nil; so does a failed fetch, since
// the per-item lookup is a soft operation. Item order is preserved.
func (c *Client) HydrateSubmissions(ctx context.Context, courseID string, work []*types.CourseWork) {
	sem := make(chan struct{}, hydrateConcurrency)
	var wg sync.WaitGroup
	for _, item := range work {
		wg.Add(1)
		go func(item *types.CourseWork) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			item.Submission = c.GetMySubmission(ctx, courseID, item.ID)
		}(item)
	}
	wg.Wait()
}
