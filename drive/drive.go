// Package drive uploads submission attachments to the Drive API.
// Uploading is a two-phase protocol: create the file, then grant
// anyone-with-the-link read access. A file that skips the second phase
// exists but is useless as a classroom attachment, since whoever opens
// the link is denied.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/sirupsen/logrus"
)

const (
	DefaultUploadURL = "https://www.googleapis.com/upload/drive/v3/files"
	DefaultAPIURL    = "https://www.googleapis.com/drive/v3/files"

	uploadFields = "id,name,mimeType,webViewLink"
	fullFields   = "id,name,mimeType,webViewLink,thumbnailLink,iconLink"
)

// File is uploaded-file metadata, usable as a classroom attachment by
// id. Immutable once created; deletion is a separate explicit call.
type File struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	WebViewLink   string `json:"webViewLink"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	IconLink      string `json:"iconLink,omitempty"`
}

// Client talks to the Drive API with the same bearer token the
// classroom client holds.
type Client struct {
	UploadURL  string
	APIURL     string
	Token      string
	HTTPClient *http.Client
	Log        *logrus.Logger
}

func NewClient(token string) *Client {
	return &Client{
		UploadURL:  DefaultUploadURL,
		APIURL:     DefaultAPIURL,
		Token:      token,
		HTTPClient: http.DefaultClient,
		Log:        logrus.StandardLogger(),
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) log() *logrus.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

// NotShareableError reports a file that was created but could not be
// opened to anyone-with-the-link readers. The file id and name are
// carried so the caller can retry the permission grant or delete the
// orphan; no compensating deletion happens automatically.
type NotShareableError struct {
	FileID   string
	FileName string
	Err      error
}

func (e *NotShareableError) Error() string {
	return fmt.Sprintf("file %q (id %s) was uploaded but could not be made shareable: %v", e.FileName, e.FileID, e.Err)
}

func (e *NotShareableError) Unwrap() error { return e.Err }

// UploadFile creates the file from contents, grants anyone-with-the-
// link read access, and re-fetches the full metadata (thumbnail and
// icon links) for display. Failure in the permission phase returns a
// *NotShareableError naming the orphaned file.
func (c *Client) UploadFile(ctx context.Context, name, mimeType string, contents io.Reader) (*File, error) {
	created, err := c.createFile(ctx, name, mimeType, contents)
	if err != nil {
		return nil, err
	}

	permission := struct {
		Role string `json:"role"`
		Type string `json:"type"`
	}{Role: "reader", Type: "anyone"}
	if err := c.doJSON(ctx, http.MethodPost, c.APIURL+"/"+created.ID+"/permissions", &permission, nil); err != nil {
		return nil, &NotShareableError{FileID: created.ID, FileName: created.Name, Err: err}
	}

	full := new(File)
	if err := c.doJSON(ctx, http.MethodGet, c.APIURL+"/"+created.ID+"?fields="+fullFields, nil, full); err != nil {
		return nil, err
	}
	return full, nil
}

// DeleteFile removes an uploaded file, e.g. to clean up an orphan left
// by a failed permission grant.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.doJSON(ctx, http.MethodDelete, c.APIURL+"/"+fileID, nil, nil)
}

// createFile runs the multipart upload: a JSON metadata part followed
// by the binary payload, as the upload endpoint requires.
func (c *Client) createFile(ctx context.Context, name, mimeType string, contents io.Reader) (*File, error) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	metaHeader := make(textproto.MIMEHeader)
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := mw.CreatePart(metaHeader)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %v", err)
	}
	metadata := struct {
		Name     string `json:"name"`
		MimeType string `json:"mimeType"`
	}{Name: name, MimeType: mimeType}
	if err := json.NewEncoder(metaPart).Encode(&metadata); err != nil {
		return nil, fmt.Errorf("building upload request: %v", err)
	}

	fileHeader := make(textproto.MIMEHeader)
	fileHeader.Set("Content-Type", mimeType)
	filePart, err := mw.CreatePart(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %v", err)
	}
	if _, err := io.Copy(filePart, contents); err != nil {
		return nil, fmt.Errorf("reading file contents: %v", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building upload request: %v", err)
	}

	url := c.UploadURL + "?uploadType=multipart&fields=" + uploadFields
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	created := new(File)
	if err := c.finish(req, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, upload, download interface{}) error {
	var body io.Reader
	if upload != nil {
		raw, err := json.Marshal(upload)
		if err != nil {
			return fmt.Errorf("encoding request: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("building request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if upload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.finish(req, download)
}

func (c *Client) finish(req *http.Request, download interface{}) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.log().WithField("url", req.URL.String()).Errorf("drive request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		c.log().WithFields(logrus.Fields{
			"url":    req.URL.String(),
			"status": resp.StatusCode,
			"body":   string(raw),
		}).Error("drive call failed")
		return fmt.Errorf("%s", upstreamMessage(raw, resp.Status))
	}

	if download != nil {
		if err := json.NewDecoder(resp.Body).Decode(download); err != nil {
			return fmt.Errorf("decoding response: %v", err)
		}
	}
	return nil
}

func upstreamMessage(raw []byte, fallback string) string {
	var ge struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &ge); err == nil && ge.Error.Message != "" {
		return ge.Error.Message
	}
	return fallback
}
