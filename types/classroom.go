package types

// Course states as reported by the Classroom API.
const (
	CourseStateActive      = "ACTIVE"
	CourseStateArchived    = "ARCHIVED"
	CourseStateProvisioned = "PROVISIONED"
	CourseStateDeclined    = "DECLINED"
	CourseStateSuspended   = "SUSPENDED"
)

// CourseWork states.
const (
	CourseWorkStatePublished = "PUBLISHED"
	CourseWorkStateDraft     = "DRAFT"
)

// CourseWork types.
const (
	WorkTypeAssignment     = "ASSIGNMENT"
	WorkTypeShortAnswer    = "SHORT_ANSWER_QUESTION"
	WorkTypeMultipleChoice = "MULTIPLE_CHOICE_QUESTION"
)

// StudentSubmission states. TurnedIn and Returned are the only two
// states counted as complete; a reclaimed submission is functionally
// back to Created.
const (
	SubmissionNew       = "NEW"
	SubmissionCreated   = "CREATED"
	SubmissionTurnedIn  = "TURNED_IN"
	SubmissionReturned  = "RETURNED"
	SubmissionReclaimed = "RECLAIMED_BY_STUDENT"
)

// DriveFolder is the course's teacher folder reference.
type DriveFolder struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	AlternateLink string `json:"alternateLink"`
}

// Course represents a single course as the Classroom API reports it.
// The service owns every field; the dashboard never originates an id.
type Course struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Section            string       `json:"section,omitempty"`
	DescriptionHeading string       `json:"descriptionHeading,omitempty"`
	Description        string       `json:"description,omitempty"`
	Room               string       `json:"room,omitempty"`
	OwnerID            string       `json:"ownerId,omitempty"`
	CourseState        string       `json:"courseState,omitempty"`
	AlternateLink      string       `json:"alternateLink,omitempty"`
	EnrollmentCode     string       `json:"enrollmentCode,omitempty"`
	CreationTime       string       `json:"creationTime,omitempty"`
	UpdateTime         string       `json:"updateTime,omitempty"`
	TeacherFolder      *DriveFolder `json:"teacherFolder,omitempty"`
}

// IsActive reports whether the course belongs in active-course views.
// Some courses come back with no courseState at all; those count as
// active.
func (c *Course) IsActive() bool {
	return c.CourseState == "" || c.CourseState == CourseStateActive
}

// CourseWork is one assignment or question posted to a course.
// Submission is not part of the wire format: it is filled in locally
// when the caller's own submission is hydrated onto the item, and stays
// nil for work the student has not started.
type CourseWork struct {
	ID            string             `json:"id"`
	CourseID      string             `json:"courseId"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	Materials     []Material         `json:"materials,omitempty"`
	State         string             `json:"state,omitempty"`
	AlternateLink string             `json:"alternateLink,omitempty"`
	CreationTime  string             `json:"creationTime,omitempty"`
	UpdateTime    string             `json:"updateTime,omitempty"`
	DueDate       *Date              `json:"dueDate,omitempty"`
	DueTime       *TimeOfDay         `json:"dueTime,omitempty"`
	MaxPoints     float64            `json:"maxPoints,omitempty"`
	WorkType      string             `json:"workType,omitempty"`
	Submission    *StudentSubmission `json:"submission,omitempty"`
}

// AssignmentSubmission holds the attachments a student has added.
type AssignmentSubmission struct {
	Attachments []Attachment `json:"attachments,omitempty"`
}

// StudentSubmission is one student's standing on one piece of
// coursework. AssignedGrade is a pointer so that "not graded yet" is
// distinguishable from a grade of zero.
type StudentSubmission struct {
	ID                   string                `json:"id"`
	CourseID             string                `json:"courseId"`
	CourseWorkID         string                `json:"courseWorkId"`
	UserID               string                `json:"userId"`
	CreationTime         string                `json:"creationTime,omitempty"`
	UpdateTime           string                `json:"updateTime,omitempty"`
	State                string                `json:"state"`
	Late                 bool                  `json:"late,omitempty"`
	AssignedGrade        *float64              `json:"assignedGrade,omitempty"`
	AlternateLink        string                `json:"alternateLink,omitempty"`
	AssignmentSubmission *AssignmentSubmission `json:"assignmentSubmission,omitempty"`
}

// IsComplete reports whether the submission is in one of the two
// states treated as done: turned in, or returned by the teacher.
func (s *StudentSubmission) IsComplete() bool {
	if s == nil {
		return false
	}
	return s.State == SubmissionTurnedIn || s.State == SubmissionReturned
}

// DisplayStatus maps the submission state onto the label the dashboard
// shows. A nil submission means the student has not started the work,
// which displays the same as a fresh or reclaimed submission.
func (s *StudentSubmission) DisplayStatus() string {
	if s == nil {
		return "Assigned"
	}
	switch s.State {
	case SubmissionTurnedIn:
		if s.Late {
			return "Turned In (Late)"
		}
		return "Turned In"
	case SubmissionReturned:
		if s.AssignedGrade != nil {
			return "Graded"
		}
		return "Returned"
	default:
		return "Assigned"
	}
}

// Attachment is one item attached to a student submission. Unlike
// Material, the drive file here is the flat file reference.
type Attachment struct {
	DriveFile    *SharedDriveFile `json:"driveFile,omitempty"`
	YouTubeVideo *YouTubeMaterial `json:"youTubeVideo,omitempty"`
	Link         *LinkMaterial    `json:"link,omitempty"`
	Form         *FormMaterial    `json:"form,omitempty"`
}

// Announcement is a post on the course stream. Display-only: the
// dashboard creates announcements but never edits or deletes them.
type Announcement struct {
	ID            string     `json:"id"`
	CourseID      string     `json:"courseId"`
	Text          string     `json:"text"`
	State         string     `json:"state,omitempty"`
	AlternateLink string     `json:"alternateLink,omitempty"`
	CreationTime  string     `json:"creationTime,omitempty"`
	UpdateTime    string     `json:"updateTime,omitempty"`
	CreatorUserID string     `json:"creatorUserId,omitempty"`
	Materials     []Material `json:"materials,omitempty"`
}

// CourseMaterial is a courseWorkMaterial entry: reference material
// posted to the classwork tab with no submission attached.
type CourseMaterial struct {
	ID            string     `json:"id"`
	CourseID      string     `json:"courseId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Materials     []Material `json:"materials,omitempty"`
	State         string     `json:"state,omitempty"`
	AlternateLink string     `json:"alternateLink,omitempty"`
	CreationTime  string     `json:"creationTime,omitempty"`
	UpdateTime    string     `json:"updateTime,omitempty"`
}

// Name is the structured name on a user profile.
type Name struct {
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
	FullName   string `json:"fullName"`
}

// UserProfile identifies a Classroom user. ID is the stable identity
// used for roster membership checks; EmailAddress may be withheld by
// the domain's privacy settings.
type UserProfile struct {
	ID           string `json:"id"`
	Name         *Name  `json:"name,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	PhotoURL     string `json:"photoUrl,omitempty"`
}

// DisplayName returns the best human-readable name available.
func (p *UserProfile) DisplayName() string {
	if p.Name != nil && p.Name.FullName != "" {
		return p.Name.FullName
	}
	if p.EmailAddress != "" {
		return p.EmailAddress
	}
	return p.ID
}

// Teacher is a course roster entry. UserID joins against
// UserProfile.ID for role checks.
type Teacher struct {
	CourseID string       `json:"courseId"`
	UserID   string       `json:"userId"`
	Profile  *UserProfile `json:"profile,omitempty"`
}

// Student is a course roster entry.
type Student struct {
	CourseID string       `json:"courseId"`
	UserID   string       `json:"userId"`
	Profile  *UserProfile `json:"profile,omitempty"`
}
