package classroom

import (
	"context"
	"sync"

	"github.com/pulkit-saini/classroom-connect/types"
)

// statsConcurrency bounds the per-course roster fan-out during stats
// aggregation.
const statsConcurrency = 5

// Stats is the admin overview: course count and people counts
// deduplicated by user id, so a teacher on three courses counts once.
type Stats struct {
	TotalCourses  int             `json:"totalCourses"`
	TotalTeachers int             `json:"totalTeachers"`
	TotalStudents int             `json:"totalStudents"`
	Courses       []*types.Course `json:"courses"`
}

// Stats aggregates rosters across every visible course. The course
// listing itself is hard-fail; individual roster fetches are soft, so
// one broken course skews the counts rather than aborting the batch.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	courses, err := c.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	teacherIDs := make(map[string]bool)
	studentIDs := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, statsConcurrency)

	for _, course := range courses {
		wg.Add(1)
		go func(courseID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			teachers := c.ListTeachers(ctx, courseID)
			students := c.ListStudents(ctx, courseID)
			mu.Lock()
			defer mu.Unlock()
			for _, t := range teachers {
				teacherIDs[t.UserID] = true
			}
			for _, s := range students {
				studentIDs[s.UserID] = true
			}
		}(course.ID)
	}
	wg.Wait()

	return &Stats{
		TotalCourses:  len(courses),
		TotalTeachers: len(teacherIDs),
		TotalStudents: len(studentIDs),
		Courses:       courses,
	}, nil
}
