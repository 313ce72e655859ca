package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/martini-contrib/render"

	"github.com/pulkit-saini/classroom-connect/classroom"
	"github.com/pulkit-saini/classroom-connect/types"
)

// sessionLifetime matches the upstream access token's lifetime. There
// is no refresh flow: when the cookie (or the token inside it) expires
// the dashboard forces a full relogin.
const sessionLifetime = time.Hour

type CookieSession struct {
	ExpiresAt time.Time
	Token     string
	Role      types.Role
	path      string
}

func NewSession(token string, role types.Role) *CookieSession {
	return &CookieSession{
		ExpiresAt: time.Now().Add(sessionLifetime),
		Token:     token,
		Role:      role,
		path:      "/",
	}
}

func GetSession(r *http.Request) (*CookieSession, error) {
	cookie, err := r.Cookie(types.CookieName)
	if err != nil {
		return nil, fmt.Errorf("unable to read session cookie")
	}

	// decode and verify signature
	session := new(CookieSession)
	secure := securecookie.New([]byte(Config.SessionSecret), nil)
	secure.MaxAge(0)
	if err = secure.Decode(types.CookieName, cookie.Value, session); err != nil {
		return nil, fmt.Errorf("unable to decode session cookie")
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("session is expired; must log in again to continue")
	}
	if session.Token == "" {
		return nil, fmt.Errorf("session does not contain an access token")
	}
	session.path = "/"

	return session, nil
}

func (session *CookieSession) Save(w http.ResponseWriter) string {
	// encode and sign
	secure := securecookie.New([]byte(Config.SessionSecret), nil)
	secure.MaxAge(0)
	encoded, err := secure.Encode(types.CookieName, session)
	if err != nil {
		loggedHTTPErrorf(w, http.StatusInternalServerError, "creating session: %v", err)
		return ""
	}

	cookie := &http.Cookie{
		Name:     types.CookieName,
		Value:    encoded,
		Path:     session.path,
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		Secure:   true,
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)
	return fmt.Sprintf("%s=%s", types.CookieName, encoded)
}

func (session *CookieSession) Delete(w http.ResponseWriter) {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	cookie := &http.Cookie{
		Name:    types.CookieName,
		Value:   "deleted",
		Path:    session.path,
		Expires: epoch,
		MaxAge:  -1,
		Secure:  true,
	}
	http.SetCookie(w, cookie)
}

type loginRequest struct {
	AccessToken string `json:"accessToken"`
}

type sessionReply struct {
	Profile   *types.UserProfile `json:"profile"`
	Role      types.Role         `json:"role"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// PostSession verifies the OAuth access token by fetching the user's
// profile, runs global role detection exactly once, and hands back a
// signed cookie carrying the token and the role for the rest of the
// session.
func PostSession(w http.ResponseWriter, r *http.Request, req loginRequest, render render.Render) {
	if req.AccessToken == "" {
		loggedHTTPErrorf(w, http.StatusBadRequest, "accessToken is required")
		return
	}

	client := newClassroomClient(req.AccessToken)
	profile, err := client.GetMyProfile(r.Context())
	if err != nil {
		if classroom.IsUnauthorized(err) {
			loggedHTTPErrorf(w, http.StatusUnauthorized, "access token rejected: %v", err)
			return
		}
		apiError(w, err)
		return
	}
	role := client.DetectRole(r.Context(), Config.AdminEmails)

	session := NewSession(req.AccessToken, role)
	if session.Save(w) == "" {
		return
	}
	render.JSON(http.StatusOK, &sessionReply{Profile: profile, Role: role, ExpiresAt: session.ExpiresAt})
}

// GetCurrentSession reports the profile and cached role for an active
// session, so a page reload does not repeat role detection.
func GetCurrentSession(w http.ResponseWriter, r *http.Request, client *classroom.Client, role types.Role, render render.Render) {
	session, err := GetSession(r)
	if err != nil {
		loggedHTTPErrorf(w, http.StatusUnauthorized, "%v", err)
		return
	}
	profile, err := client.GetMyProfile(r.Context())
	if err != nil {
		apiError(w, err)
		return
	}
	render.JSON(http.StatusOK, &sessionReply{Profile: profile, Role: role, ExpiresAt: session.ExpiresAt})
}

func DeleteSession(w http.ResponseWriter, r *http.Request) {
	if session, err := GetSession(r); err == nil {
		session.Delete(w)
	} else {
		(&CookieSession{path: "/"}).Delete(w)
	}
	w.WriteHeader(http.StatusNoContent)
}
