package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/pulkit-saini/classroom-connect/types"
)

func CommandCourses(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		cmd.Help()
		return
	}
	all, _ := cmd.Flags().GetBool("all")
	_, _, client := mustLoadSession()

	courses, err := client.ListCourses(ctx())
	if err != nil {
		log.Fatalf("%v", err)
	}
	if !all {
		active := courses[:0]
		for _, course := range courses {
			if course.IsActive() {
				active = append(active, course)
			}
		}
		courses = active
	}
	if len(courses) == 0 {
		fmt.Println("no courses found")
		return
	}

	var longestID, longestName int
	for _, course := range courses {
		if len(course.ID) > longestID {
			longestID = len(course.ID)
		}
		if len(course.Name) > longestName {
			longestName = len(course.Name)
		}
	}
	for _, course := range courses {
		line := fmt.Sprintf("%-*s  %-*s", longestID, course.ID, longestName, course.Name)
		if course.Section != "" {
			line += "  " + course.Section
		}
		if !course.IsActive() {
			line += "  [" + course.CourseState + "]"
		}
		fmt.Println(line)
	}
}

func CommandCourse(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		cmd.Help()
		return
	}
	courseID := args[0]
	_, _, client := mustLoadSession()

	course, err := client.GetCourse(ctx(), courseID)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(course.Name)
	fmt.Println(dashes(len(course.Name)))
	if course.Section != "" {
		fmt.Printf("section: %s\n", course.Section)
	}
	if course.Room != "" {
		fmt.Printf("room:    %s\n", course.Room)
	}
	if course.EnrollmentCode != "" {
		fmt.Printf("code:    %s\n", course.EnrollmentCode)
	}
	fmt.Printf("your role in this course: %s\n", client.RoleInCourse(ctx(), courseID))

	work, err := client.ListCourseWork(ctx(), courseID)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(work) == 0 {
		fmt.Println("\nno classwork posted")
		return
	}
	client.HydrateSubmissions(ctx(), courseID, work)

	fmt.Println("\nclasswork:")
	for _, item := range work {
		due := ""
		if item.DueDate != nil {
			due = "due " + item.DueDate.String()
			if item.DueDate.IsPast() && !item.Submission.IsComplete() {
				due += " (past due)"
			}
		}
		fmt.Printf("  %s  %-18s %s\n", item.ID, item.Submission.DisplayStatus(), item.Title)
		if due != "" || item.MaxPoints > 0 {
			detail := "      "
			if due != "" {
				detail += due
			}
			if item.MaxPoints > 0 {
				if due != "" {
					detail += ", "
				}
				detail += fmt.Sprintf("%g points", item.MaxPoints)
			}
			if item.Submission != nil && item.Submission.AssignedGrade != nil {
				detail += fmt.Sprintf(", grade %g", *item.Submission.AssignedGrade)
			}
			fmt.Println(detail)
		}
	}
}

func CommandAnnouncements(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		cmd.Help()
		return
	}
	_, _, client := mustLoadSession()

	announcements := client.ListAnnouncements(ctx(), args[0])
	if len(announcements) == 0 {
		fmt.Println("no announcements")
		return
	}
	for i, elt := range announcements {
		if i > 0 {
			fmt.Println()
		}
		if elt.CreationTime != "" {
			fmt.Printf("[%s]\n", elt.CreationTime)
		}
		fmt.Println(elt.Text)
	}
}

func CommandMaterials(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		cmd.Help()
		return
	}
	_, _, client := mustLoadSession()

	materials := client.ListCourseMaterials(ctx(), args[0])
	if len(materials) == 0 {
		fmt.Println("no materials posted")
		return
	}
	for _, elt := range materials {
		fmt.Println(elt.Title)
		if elt.Description != "" {
			fmt.Printf("    %s\n", elt.Description)
		}
		for _, m := range elt.Materials {
			if title, url := m.Title(), m.URL(); title != "" || url != "" {
				fmt.Printf("    %s: %s (%s)\n", m.Kind(), title, url)
			}
		}
	}
}

func CommandPeople(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		cmd.Help()
		return
	}
	courseID := args[0]
	_, _, client := mustLoadSession()

	teachers := client.ListTeachers(ctx(), courseID)
	students := client.ListStudents(ctx(), courseID)

	fmt.Printf("%d teacher%s:\n", len(teachers), plural(len(teachers)))
	for _, elt := range teachers {
		fmt.Printf("  %s  %s\n", elt.UserID, rosterName(elt.Profile))
	}
	fmt.Printf("\n%d student%s:\n", len(students), plural(len(students)))
	for _, elt := range students {
		fmt.Printf("  %s  %s\n", elt.UserID, rosterName(elt.Profile))
	}
}

func rosterName(profile *types.UserProfile) string {
	if profile == nil {
		return "(profile unavailable)"
	}
	return profile.DisplayName()
}
