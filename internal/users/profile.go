package users

import (
	"net/url"
	"strings"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// DisplayProfile is the identity shape the dashboard renders: always a name
// and an avatar, even when the stored user carries neither.
type DisplayProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

// DeriveProfile builds a display profile. The name falls back to the email
// local-part; the avatar falls back to a generated one keyed by name.
func DeriveProfile(user User) DisplayProfile {
	name := strings.TrimSpace(user.FullName)
	if name == "" {
		name = emailLocalPart(user.Email)
	}
	avatar := strings.TrimSpace(user.PictureURL)
	if avatar == "" {
		avatar = avatarBaseURL + url.QueryEscape(name)
	}
	return DisplayProfile{
		Name:      name,
		Email:     user.Email,
		AvatarURL: avatar,
	}
}

func emailLocalPart(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
