package types

import (
	"encoding/json"
	"fmt"
)

// MaterialKind tags the payload carried by a Material.
type MaterialKind string

const (
	MaterialNone         MaterialKind = ""
	MaterialDriveFile    MaterialKind = "driveFile"
	MaterialYouTubeVideo MaterialKind = "youtubeVideo"
	MaterialLink         MaterialKind = "link"
	MaterialForm         MaterialKind = "form"
)

// SharedDriveFile is the drive file reference used inside materials
// and attachments.
type SharedDriveFile struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	AlternateLink string `json:"alternateLink"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
}

// DriveFileMaterial wraps a shared drive file with its share mode.
type DriveFileMaterial struct {
	DriveFile SharedDriveFile `json:"driveFile"`
	ShareMode string          `json:"shareMode,omitempty"`
}

// YouTubeMaterial is an attached YouTube video.
type YouTubeMaterial struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	AlternateLink string `json:"alternateLink"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
}

// LinkMaterial is a plain URL attachment.
type LinkMaterial struct {
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// FormMaterial is an attached Google Form.
type FormMaterial struct {
	FormURL      string `json:"formUrl"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Material is one attachment on coursework, an announcement, or a
// course material entry. The wire format is an object with four
// mutually exclusive optional fields; Material holds exactly one
// payload so that a doubled-up attachment cannot be built. Build
// values with the New*Material constructors. A Material decoded from
// an unrecognized wire shape has kind MaterialNone and should be
// skipped by renderers.
type Material struct {
	kind      MaterialKind
	driveFile *DriveFileMaterial
	youtube   *YouTubeMaterial
	link      *LinkMaterial
	form      *FormMaterial
}

func NewDriveFileMaterial(df DriveFileMaterial) Material {
	return Material{kind: MaterialDriveFile, driveFile: &df}
}

func NewYouTubeMaterial(v YouTubeMaterial) Material {
	return Material{kind: MaterialYouTubeVideo, youtube: &v}
}

func NewLinkMaterial(l LinkMaterial) Material {
	return Material{kind: MaterialLink, link: &l}
}

func NewFormMaterial(f FormMaterial) Material {
	return Material{kind: MaterialForm, form: &f}
}

// Kind reports which payload the material carries.
func (m Material) Kind() MaterialKind { return m.kind }

// DriveFile returns the drive file payload, or nil for other kinds.
func (m Material) DriveFile() *DriveFileMaterial { return m.driveFile }

// YouTubeVideo returns the video payload, or nil for other kinds.
func (m Material) YouTubeVideo() *YouTubeMaterial { return m.youtube }

// Link returns the link payload, or nil for other kinds.
func (m Material) Link() *LinkMaterial { return m.link }

// Form returns the form payload, or nil for other kinds.
func (m Material) Form() *FormMaterial { return m.form }

// Title returns the display title of whichever payload is present.
func (m Material) Title() string {
	switch m.kind {
	case MaterialDriveFile:
		return m.driveFile.DriveFile.Title
	case MaterialYouTubeVideo:
		return m.youtube.Title
	case MaterialLink:
		if m.link.Title != "" {
			return m.link.Title
		}
		return m.link.URL
	case MaterialForm:
		if m.form.Title != "" {
			return m.form.Title
		}
		return m.form.FormURL
	}
	return ""
}

// URL returns the link a viewer should open for this material.
func (m Material) URL() string {
	switch m.kind {
	case MaterialDriveFile:
		return m.driveFile.DriveFile.AlternateLink
	case MaterialYouTubeVideo:
		return m.youtube.AlternateLink
	case MaterialLink:
		return m.link.URL
	case MaterialForm:
		return m.form.FormURL
	}
	return ""
}

type materialWire struct {
	DriveFile    *DriveFileMaterial `json:"driveFile,omitempty"`
	YouTubeVideo *YouTubeMaterial   `json:"youtubeVideo,omitempty"`
	Link         *LinkMaterial      `json:"link,omitempty"`
	Form         *FormMaterial      `json:"form,omitempty"`
}

func (m Material) MarshalJSON() ([]byte, error) {
	return json.Marshal(materialWire{
		DriveFile:    m.driveFile,
		YouTubeVideo: m.youtube,
		Link:         m.link,
		Form:         m.form,
	})
}

func (m *Material) UnmarshalJSON(raw []byte) error {
	var wire materialWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}
	count := 0
	if wire.DriveFile != nil {
		count++
	}
	if wire.YouTubeVideo != nil {
		count++
	}
	if wire.Link != nil {
		count++
	}
	if wire.Form != nil {
		count++
	}
	if count > 1 {
		return fmt.Errorf("material carries %d payloads, expected at most one", count)
	}
	switch {
	case wire.DriveFile != nil:
		*m = Material{kind: MaterialDriveFile, driveFile: wire.DriveFile}
	case wire.YouTubeVideo != nil:
		*m = Material{kind: MaterialYouTubeVideo, youtube: wire.YouTubeVideo}
	case wire.Link != nil:
		*m = Material{kind: MaterialLink, link: wire.Link}
	case wire.Form != nil:
		*m = Material{kind: MaterialForm, form: wire.Form}
	default:
		*m = Material{}
	}
	return nil
}
