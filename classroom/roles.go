package classroom

import (
	"context"
	"strings"

	"github.com/pulkit-saini/classroom-connect/types"
)

// RoleInCourse derives the caller's standing within one course by
// roster membership. The teacher roster is checked first, so a user
// somehow listed on both rosters resolves to teacher. Returns unknown
// when the caller is on neither roster or the profile cannot be
// fetched. Re-derived on every course open; never cached.
func (c *Client) RoleInCourse(ctx context.Context, courseID string) types.Role {
	teachers := c.ListTeachers(ctx, courseID)
	profile, err := c.GetMyProfile(ctx)
	if err != nil {
		c.softFail("getUserRoleInCourse("+courseID+")", err)
		return types.RoleUnknown
	}
	for _, t := range teachers {
		if t.UserID == profile.ID {
			return types.RoleTeacher
		}
	}
	for _, s := range c.ListStudents(ctx, courseID) {
		if s.UserID == profile.ID {
			return types.RoleStudent
		}
	}
	return types.RoleUnknown
}

// DetectRole determines the caller's global role for the session.
// The admin check on the allow-listed emails short-circuits before any
// course iteration; otherwise the first course whose teacher roster
// contains the caller yields teacher, with no further courses checked.
// Any failure along the way falls back to student, never to admin or
// teacher.
func (c *Client) DetectRole(ctx context.Context, adminEmails []string) types.Role {
	role, err := c.detectRole(ctx, adminEmails)
	if err != nil {
		c.log().Warnf("detectUserRole failed, defaulting to student: %v", err)
		return types.RoleStudent
	}
	return role
}

func (c *Client) detectRole(ctx context.Context, adminEmails []string) (types.Role, error) {
	adminSet := make(map[string]bool)
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			adminSet[email] = true
		}
	}

	profile, err := c.GetMyProfile(ctx)
	if err != nil {
		return "", err
	}

	// Prefer the Classroom profile's email; fall back to the userinfo
	// endpoint only when the profile withholds it and an allow-list
	// exists. A userinfo failure just disables email-based admin
	// detection.
	email := strings.ToLower(profile.EmailAddress)
	if email == "" && len(adminSet) > 0 {
		if fallback, err := c.userinfoEmail(ctx); err == nil {
			email = strings.ToLower(fallback)
		}
	}
	if email != "" && adminSet[email] {
		return types.RoleAdmin, nil
	}

	courses, err := c.ListCourses(ctx)
	if err != nil {
		return "", err
	}
	for _, course := range courses {
		for _, t := range c.ListTeachers(ctx, course.ID) {
			if t.UserID == profile.ID {
				return types.RoleTeacher, nil
			}
		}
	}
	return types.RoleStudent, nil
}
