package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMaterialMarshalOneOf(t *testing.T) {
	m := NewLinkMaterial(LinkMaterial{URL: "https://example.com", Title: "Example"})
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(raw), `"link"`) {
		t.Errorf("expected a link key in %s", raw)
	}
	for _, key := range []string{"driveFile", "youtubeVideo", "form"} {
		if strings.Contains(string(raw), key) {
			t.Errorf("unexpected %s key in %s", key, raw)
		}
	}
}

func TestMaterialUnmarshal(t *testing.T) {
	var m Material
	raw := `{"driveFile":{"driveFile":{"id":"f1","title":"Notes","alternateLink":"https://drive/f1"},"shareMode":"VIEW"}}`
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m.Kind() != MaterialDriveFile {
		t.Fatalf("expected kind %q, got %q", MaterialDriveFile, m.Kind())
	}
	if m.DriveFile().DriveFile.ID != "f1" {
		t.Errorf("expected file id f1, got %q", m.DriveFile().DriveFile.ID)
	}
	if m.Link() != nil || m.YouTubeVideo() != nil || m.Form() != nil {
		t.Errorf("other payload accessors should return nil")
	}
	if m.Title() != "Notes" || m.URL() != "https://drive/f1" {
		t.Errorf("bad title/url: %q %q", m.Title(), m.URL())
	}
}

func TestMaterialUnmarshalUnknownShape(t *testing.T) {
	var m Material
	if err := json.Unmarshal([]byte(`{"somethingNew":{"id":"x"}}`), &m); err != nil {
		t.Fatalf("unknown material shapes should decode, got %v", err)
	}
	if m.Kind() != MaterialNone {
		t.Errorf("expected kind none, got %q", m.Kind())
	}
	if m.Title() != "" || m.URL() != "" {
		t.Errorf("empty material should have no title or url")
	}
}

func TestMaterialUnmarshalRejectsMultiplePayloads(t *testing.T) {
	var m Material
	raw := `{"link":{"url":"https://a"},"youtubeVideo":{"id":"v1","title":"t","alternateLink":"https://yt"}}`
	if err := json.Unmarshal([]byte(raw), &m); err == nil {
		t.Fatalf("expected an error for a material with two payloads")
	}
}

func TestMaterialRoundTrip(t *testing.T) {
	work := CourseWork{
		ID:       "w1",
		CourseID: "c1",
		Title:    "Essay",
		Materials: []Material{
			NewLinkMaterial(LinkMaterial{URL: "https://example.com"}),
			NewYouTubeMaterial(YouTubeMaterial{ID: "v1", Title: "Lecture", AlternateLink: "https://yt/v1"}),
		},
	}
	raw, err := json.Marshal(&work)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded CourseWork
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(decoded.Materials))
	}
	if decoded.Materials[0].Kind() != MaterialLink || decoded.Materials[1].Kind() != MaterialYouTubeVideo {
		t.Errorf("material kinds did not survive the round trip")
	}
	if decoded.Materials[1].Title() != "Lecture" {
		t.Errorf("expected title Lecture, got %q", decoded.Materials[1].Title())
	}
}

func TestLinkMaterialTitleFallsBackToURL(t *testing.T) {
	m := NewLinkMaterial(LinkMaterial{URL: "https://example.com"})
	if m.Title() != "https://example.com" {
		t.Errorf("untitled link should display its url, got %q", m.Title())
	}
}
