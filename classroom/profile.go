package classroom

import (
	"context"
	"net/http"

	"github.com/pulkit-saini/classroom-connect/types"
)

// GetMyProfile fetches the signed-in user's Classroom profile. The
// profile id is the identity used for every roster membership check.
func (c *Client) GetMyProfile(ctx context.Context) (*types.UserProfile, error) {
	profile := new(types.UserProfile)
	if err := c.getObject(ctx, "getUserProfile", "/userProfiles/me", profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// userinfoEmail asks the OAuth userinfo endpoint for the account
// email. Only consulted when the Classroom profile withholds the
// address and an admin allow-list is in play.
func (c *Client) userinfoEmail(ctx context.Context) (string, error) {
	var reply struct {
		Email string `json:"email"`
	}
	url := c.UserinfoURL
	if url == "" {
		url = DefaultUserinfoURL
	}
	if err := c.do(ctx, "userinfo", http.MethodGet, url, nil, &reply); err != nil {
		return "", err
	}
	return reply.Email, nil
}
