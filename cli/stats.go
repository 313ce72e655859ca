package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/pulkit-saini/classroom-connect/types"
)

func CommandStats(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		cmd.Help()
		return
	}
	_, state, client := mustLoadSession()
	if state.Role != types.RoleAdmin {
		log.Printf("warning: stats is an admin view; your detected role is %s", state.Role)
	}

	stats, err := client.Stats(ctx())
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("courses:  %d\n", stats.TotalCourses)
	fmt.Printf("teachers: %d\n", stats.TotalTeachers)
	fmt.Printf("students: %d\n", stats.TotalStudents)
	if len(stats.Courses) > 0 {
		fmt.Println("\ncourses:")
		for _, course := range stats.Courses {
			line := fmt.Sprintf("  %s  %s", course.ID, course.Name)
			if !course.IsActive() {
				line += "  [" + course.CourseState + "]"
			}
			fmt.Println(line)
		}
	}
}
