package types

// CookieName is the session cookie the dashboard gateway sets.
const CookieName = "classroomconnect"

type Version struct {
	Version                     string `json:"version"`
	ClassdashVersionRequired    string `json:"classdashVersionRequired"`
	ClassdashVersionRecommended string `json:"classdashVersionRecommended"`
}

var CurrentVersion = Version{
	Version:                     "1.2.0",
	ClassdashVersionRequired:    "1.0.0",
	ClassdashVersionRecommended: "1.2.0",
}
