// classdash is the command-line view of classroom-connect: the same
// student, teacher, and admin operations the web dashboard offers,
// driven directly against the Classroom and Drive APIs with a pasted
// OAuth access token.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/spf13/cobra"

	"github.com/pulkit-saini/classroom-connect/classroom"
	"github.com/pulkit-saini/classroom-connect/session"
	"github.com/pulkit-saini/classroom-connect/types"
)

func main() {
	log.SetFlags(0)

	cmdRoot := &cobra.Command{
		Use:   "classdash",
		Short: "Command-line interface to classroom-connect",
		Long: "A command-line tool for the classroom-connect dashboard:\n" +
			"browse courses, turn in and grade work, and manage rosters\n" +
			"in the student, teacher, or admin view.",
	}

	cmdVersion := &cobra.Command{
		Use:   "version",
		Short: "print the version number of classdash",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("classdash " + types.CurrentVersion.Version)
		},
	}
	cmdRoot.AddCommand(cmdVersion)

	cmdLogin := &cobra.Command{
		Use:   "login <access-token>",
		Short: "log in with an OAuth access token",
		Long: "Paste the access token from the dashboard's login page\n" +
			"(or any OAuth playground with the classroom and drive scopes).\n\n" +
			"Tokens expire after about an hour; when calls start failing\n" +
			"with status 401, log in again with a fresh token.",
		Run: CommandLogin,
	}
	cmdLogin.Flags().String("gateway", "", "dashboard gateway host for version checks")
	cmdRoot.AddCommand(cmdLogin)

	cmdLogout := &cobra.Command{
		Use:   "logout",
		Short: "forget the saved token and role",
		Run:   CommandLogout,
	}
	cmdRoot.AddCommand(cmdLogout)

	cmdWhoami := &cobra.Command{
		Use:   "whoami",
		Short: "show the signed-in user and detected role",
		Run:   CommandWhoami,
	}
	cmdRoot.AddCommand(cmdWhoami)

	cmdCourses := &cobra.Command{
		Use:   "courses",
		Short: "list your courses",
		Run:   CommandCourses,
	}
	cmdCourses.Flags().BoolP("all", "a", false, "include archived and provisioned courses")
	cmdRoot.AddCommand(cmdCourses)

	cmdCourse := &cobra.Command{
		Use:   "course <course id>",
		Short: "show one course: classwork and your submission status",
		Run:   CommandCourse,
	}
	cmdRoot.AddCommand(cmdCourse)

	cmdAnnouncements := &cobra.Command{
		Use:   "announcements <course id>",
		Short: "show the course stream",
		Run:   CommandAnnouncements,
	}
	cmdRoot.AddCommand(cmdAnnouncements)

	cmdMaterials := &cobra.Command{
		Use:   "materials <course id>",
		Short: "show the course's reference materials",
		Run:   CommandMaterials,
	}
	cmdRoot.AddCommand(cmdMaterials)

	cmdPeople := &cobra.Command{
		Use:   "people <course id>",
		Short: "show the course rosters",
		Run:   CommandPeople,
	}
	cmdRoot.AddCommand(cmdPeople)

	cmdTurnIn := &cobra.Command{
		Use:   "turnin <course id> <coursework id>",
		Short: "turn in your submission for an assignment",
		Run:   CommandTurnIn,
	}
	cmdRoot.AddCommand(cmdTurnIn)

	cmdReclaim := &cobra.Command{
		Use:   "reclaim <course id> <coursework id>",
		Short: "take a turned-in submission back for more edits",
		Run:   CommandReclaim,
	}
	cmdRoot.AddCommand(cmdReclaim)

	cmdAttachLink := &cobra.Command{
		Use:   "attach-link <course id> <coursework id> <url>",
		Short: "attach a link to your submission",
		Run:   CommandAttachLink,
	}
	cmdRoot.AddCommand(cmdAttachLink)

	cmdAttachFile := &cobra.Command{
		Use:   "attach-file <course id> <coursework id> <path>",
		Short: "upload a file to Drive and attach it to your submission",
		Run:   CommandAttachFile,
	}
	cmdRoot.AddCommand(cmdAttachFile)

	cmdSubmissions := &cobra.Command{
		Use:   "submissions <course id> <coursework id>",
		Short: "list every student's submission for an assignment (teachers)",
		Run:   CommandSubmissions,
	}
	cmdRoot.AddCommand(cmdSubmissions)

	cmdGrade := &cobra.Command{
		Use:   "grade <course id> <coursework id> <submission id> <points>",
		Short: "assign a grade to a submission (teachers)",
		Run:   CommandGrade,
	}
	cmdRoot.AddCommand(cmdGrade)

	cmdReturn := &cobra.Command{
		Use:   "return <course id> <coursework id> <submission id>",
		Short: "return a submission to the student (teachers)",
		Run:   CommandReturn,
	}
	cmdRoot.AddCommand(cmdReturn)

	cmdCreateCourse := &cobra.Command{
		Use:   "create-course [filename]",
		Short: "create a course from flags or a .cfg file (teachers)",
		Long: fmt.Sprintf("Give course details as flags:\n\n"+
			"   Example: '%s create-course --name \"Algebra I\" --section \"Period 3\"'\n\n"+
			"or give a .cfg file that also lists a starting roster:\n\n"+
			"   Example: '%s create-course algebra.cfg'\n\n"+
			"Roster entries are invited one at a time; failures are\n"+
			"reported per email and never abort the rest.", os.Args[0], os.Args[0]),
		Run: CommandCreateCourse,
	}
	cmdCreateCourse.Flags().String("name", "", "course name")
	cmdCreateCourse.Flags().String("section", "", "section label")
	cmdCreateCourse.Flags().String("room", "", "room")
	cmdCreateCourse.Flags().String("description", "", "course description")
	cmdRoot.AddCommand(cmdCreateCourse)

	cmdCreateWork := &cobra.Command{
		Use:   "create-work <course id>",
		Short: "post an assignment (teachers)",
		Run:   CommandCreateWork,
	}
	cmdCreateWork.Flags().String("title", "", "assignment title (required)")
	cmdCreateWork.Flags().String("description", "", "assignment description")
	cmdCreateWork.Flags().Float64("points", 0, "maximum points")
	cmdCreateWork.Flags().String("due", "", "due date, e.g. 2026-03-05")
	cmdCreateWork.Flags().String("due-time", "", "due time of day, e.g. 23:59")
	cmdCreateWork.Flags().Bool("draft", false, "create as a draft instead of publishing")
	cmdRoot.AddCommand(cmdCreateWork)

	cmdAnnounce := &cobra.Command{
		Use:   "announce <course id> <text>",
		Short: "post an announcement (teachers)",
		Run:   CommandAnnounce,
	}
	cmdRoot.AddCommand(cmdAnnounce)

	cmdInvite := &cobra.Command{
		Use:   "invite <course id> [email1] [email2] [...]",
		Short: "invite teachers or students, singly or in bulk (teachers)",
		Long: fmt.Sprintf("Invite by listing emails:\n\n"+
			"   Example: '%s invite 12345 a@school.edu b@school.edu'\n\n"+
			"or by giving a roster .cfg file with --file.\n"+
			"Each invite stands alone: one bad email never aborts the rest.", os.Args[0]),
		Run: CommandInvite,
	}
	cmdInvite.Flags().String("role", "student", "role to invite: teacher or student")
	cmdInvite.Flags().String("file", "", "roster .cfg file listing teacher/student emails")
	cmdRoot.AddCommand(cmdInvite)

	cmdRemoveTeacher := &cobra.Command{
		Use:   "remove-teacher <course id> <user id>",
		Short: "remove a teacher from a course (teachers)",
		Run:   CommandRemoveTeacher,
	}
	cmdRoot.AddCommand(cmdRemoveTeacher)

	cmdStats := &cobra.Command{
		Use:   "stats",
		Short: "show course and people totals across the domain (admins)",
		Run:   CommandStats,
	}
	cmdRoot.AddCommand(cmdStats)

	cmdRoot.Execute()
}

// adminEmails reads the deployment's admin allow-list. The same
// variable configures the gateway, so both surfaces agree on who gets
// the admin view.
func adminEmails() []string {
	var emails []string
	for _, elt := range strings.Split(os.Getenv("CLASSCONNECT_ADMIN_EMAILS"), ",") {
		if elt = strings.TrimSpace(elt); elt != "" {
			emails = append(emails, elt)
		}
	}
	return emails
}

func mustStore() *session.Store {
	store, err := session.NewStore("", adminEmails())
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := store.Init(); err != nil {
		log.Fatalf("%v", err)
	}
	return store
}

// mustLoadSession loads the saved session and builds an API client,
// checking the gateway's version requirements when one is configured.
func mustLoadSession() (*session.Store, session.State, *classroom.Client) {
	store := mustStore()
	state := store.Current()
	if !state.LoggedIn() {
		log.Fatalf("not logged in; run '%s login <access-token>' first", os.Args[0])
	}
	checkVersion(state.Gateway)
	return store, state, store.Client()
}

// checkVersion compares this build against the gateway's published
// requirements, mirroring the web dashboard's own version handshake.
func checkVersion(gateway string) {
	if gateway == "" {
		return
	}
	url := gateway
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	resp, err := http.Get(url + "/v1/version")
	if err != nil {
		log.Printf("warning: unable to check gateway version: %v", err)
		return
	}
	defer resp.Body.Close()
	server := new(types.Version)
	if err := json.NewDecoder(resp.Body).Decode(server); err != nil {
		log.Printf("warning: unable to parse gateway version: %v", err)
		return
	}

	current := semver.MustParse(types.CurrentVersion.Version)
	required, err := semver.Parse(server.ClassdashVersionRequired)
	if err == nil && required.GT(current) {
		log.Printf("this is classdash version %s, but the gateway requires %s or higher", types.CurrentVersion.Version, server.ClassdashVersionRequired)
		log.Fatalf("  you must upgrade to continue")
	}
	recommended, err := semver.Parse(server.ClassdashVersionRecommended)
	if err == nil && recommended.GT(current) {
		log.Printf("this is classdash version %s, but the gateway recommends %s or higher", types.CurrentVersion.Version, server.ClassdashVersionRecommended)
		log.Printf("  please upgrade as soon as possible")
	}
}

func ctx() context.Context {
	return context.Background()
}

func dashes(n int) string {
	return strings.Repeat("-", n)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
