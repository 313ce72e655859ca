package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/gcfg.v1"

	"github.com/pulkit-saini/classroom-connect/classroom"
	"github.com/pulkit-saini/classroom-connect/types"
)

// courseConfig is the .cfg format accepted by create-course: the course
// details plus an optional starting roster.
//
//	[course]
//	name = Algebra I
//	section = Period 3
//	room = 204
//
//	[roster]
//	teacher = cochair@school.edu
//	student = alice@school.edu
//	student = bob@school.edu
type courseConfig struct {
	Course struct {
		Name        string
		Section     string
		Room        string
		Description string
	}
	Roster struct {
		Teacher []string
		Student []string
	}
}

func CommandCreateCourse(cmd *cobra.Command, args []string) {
	if len(args) > 1 {
		cmd.Help()
		return
	}
	_, _, client := mustLoadSession()

	course := classroom.NewCourse{}
	var roster courseConfig
	if len(args) == 1 {
		if err := gcfg.ReadFileInto(&roster, args[0]); err != nil {
			log.Fatalf("failed to parse %s: %v", args[0], err)
		}
		course.Name = roster.Course.Name
		course.Section = roster.Course.Section
		course.Room = roster.Course.Room
		course.Description = roster.Course.Description
	}
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		course.Name = name
	}
	if section, _ := cmd.Flags().GetString("section"); section != "" {
		course.Section = section
	}
	if room, _ := cmd.Flags().GetString("room"); room != "" {
		course.Room = room
	}
	if description, _ := cmd.Flags().GetString("description"); description != "" {
		course.Description = description
	}
	if course.Name == "" {
		log.Fatalf("a course needs a name; give --name or a .cfg file")
	}

	created, err := client.CreateCourse(ctx(), course)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("created course %s: %s\n", created.ID, created.Name)
	if created.EnrollmentCode != "" {
		fmt.Printf("enrollment code: %s\n", created.EnrollmentCode)
	}

	if len(roster.Roster.Teacher) > 0 {
		reportBulk("teacher", client.BulkInviteTeachers(ctx(), created.ID, roster.Roster.Teacher))
	}
	if len(roster.Roster.Student) > 0 {
		reportBulk("student", client.BulkInviteStudents(ctx(), created.ID, roster.Roster.Student))
	}
}

func CommandCreateWork(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		cmd.Help()
		return
	}
	courseID := args[0]
	_, _, client := mustLoadSession()

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		log.Fatalf("an assignment needs a --title")
	}
	description, _ := cmd.Flags().GetString("description")
	points, _ := cmd.Flags().GetFloat64("points")
	draft, _ := cmd.Flags().GetBool("draft")

	work := classroom.NewCourseWork{
		Title:       title,
		Description: description,
		WorkType:    types.WorkTypeAssignment,
		MaxPoints:   points,
	}
	if draft {
		work.State = types.CourseWorkStateDraft
	}

	if due, _ := cmd.Flags().GetString("due"); due != "" {
		parsed, err := time.Parse("2006-01-02", due)
		if err != nil {
			log.Fatalf("due date must look like 2026-03-05: %v", err)
		}
		work.DueDate = &types.Date{Year: parsed.Year(), Month: int(parsed.Month()), Day: parsed.Day()}
	}
	if dueTime, _ := cmd.Flags().GetString("due-time"); dueTime != "" {
		if work.DueDate == nil {
			log.Fatalf("--due-time requires --due")
		}
		parsed, err := time.Parse("15:04", dueTime)
		if err != nil {
			log.Fatalf("due time must look like 23:59: %v", err)
		}
		work.DueTime = &types.TimeOfDay{Hours: parsed.Hour(), Minutes: parsed.Minute()}
	}

	created, err := client.CreateCourseWork(ctx(), courseID, work)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("posted assignment %s: %s\n", created.ID, created.Title)
	if created.DueDate != nil {
		fmt.Printf("due %s\n", created.DueDate.String())
	}
}

func CommandAnnounce(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		cmd.Help()
		return
	}
	_, _, client := mustLoadSession()

	created, err := client.CreateAnnouncement(ctx(), args[0], args[1])
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("posted announcement %s\n", created.ID)
}

func CommandSubmissions(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		cmd.Help()
		return
	}
	courseID, workID := args[0], args[1]
	_, _, client := mustLoadSession()

	subs := client.ListSubmissions(ctx(), courseID, workID)
	if len(subs) == 0 {
		fmt.Println("no submissions")
		return
	}

	// roster lookup so the listing shows names, not just user ids
	names := make(map[string]string)
	for _, elt := range client.ListStudents(ctx(), courseID) {
		names[elt.UserID] = rosterName(elt.Profile)
	}

	for _, sub := range subs {
		name := names[sub.UserID]
		if name == "" {
			name = sub.UserID
		}
		grade := ""
		if sub.AssignedGrade != nil {
			grade = fmt.Sprintf("  grade %g", *sub.AssignedGrade)
		}
		fmt.Printf("%s  %-18s %s%s\n", sub.ID, sub.DisplayStatus(), name, grade)
	}
}

func CommandGrade(cmd *cobra.Command, args []string) {
	if len(args) != 4 {
		cmd.Help()
		return
	}
	points, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		log.Fatalf("points must be a number: %v", err)
	}
	_, _, client := mustLoadSession()

	graded, err := client.GradeSubmission(ctx(), args[0], args[1], args[2], points)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("graded submission %s", graded.ID)
	if graded.AssignedGrade != nil {
		fmt.Printf(": %g points", *graded.AssignedGrade)
	}
	fmt.Println()
	fmt.Println("note: the grade is a draft until the submission is returned")
}

func CommandReturn(cmd *cobra.Command, args []string) {
	if len(args) != 3 {
		cmd.Help()
		return
	}
	_, _, client := mustLoadSession()

	if err := client.Return(ctx(), args[0], args[1], args[2]); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("submission returned to the student")
}

func CommandInvite(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		cmd.Help()
		return
	}
	courseID, emails := args[0], args[1:]
	role, _ := cmd.Flags().GetString("role")
	role = strings.ToLower(role)
	if role != "teacher" && role != "student" {
		log.Fatalf("--role must be teacher or student")
	}
	_, _, client := mustLoadSession()

	if filename, _ := cmd.Flags().GetString("file"); filename != "" {
		var roster courseConfig
		if err := gcfg.ReadFileInto(&roster, filename); err != nil {
			log.Fatalf("failed to parse %s: %v", filename, err)
		}
		if role == "teacher" {
			emails = append(emails, roster.Roster.Teacher...)
		} else {
			emails = append(emails, roster.Roster.Student...)
		}
	}
	if len(emails) == 0 {
		cmd.Help()
		return
	}

	if role == "teacher" {
		reportBulk(role, client.BulkInviteTeachers(ctx(), courseID, emails))
	} else {
		reportBulk(role, client.BulkInviteStudents(ctx(), courseID, emails))
	}
}

func reportBulk(role string, result *classroom.BulkResult) {
	fmt.Printf("invited %d %s%s\n", len(result.Succeeded), role, plural(len(result.Succeeded)))
	for _, email := range result.Succeeded {
		fmt.Printf("  %s\n", email)
	}
	if len(result.Failed) > 0 {
		fmt.Printf("%d invite%s failed:\n", len(result.Failed), plural(len(result.Failed)))
		for _, elt := range result.Failed {
			fmt.Printf("  %s: %s\n", elt.Email, elt.Error)
		}
	}
}

func CommandRemoveTeacher(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		cmd.Help()
		return
	}
	_, _, client := mustLoadSession()

	if err := client.RemoveTeacher(ctx(), args[0], args[1]); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("teacher removed")
}
