package instagram

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// BaseURL is the base URL for Instagram.
	BaseURL = "https://www.instagram.com"

	// ProfileEndpoint serves public profile metadata without authentication.
	ProfileEndpoint = "/api/v1/users/web_profile_info/"

	// AppID identifies the web client to the profile endpoint.
	AppID = "936619743392459"
)

// ProfileURL constructs the URL for fetching a user's public metadata.
func ProfileURL(username string) string {
	params := url.Values{}
	params.Set("username", username)
	return fmt.Sprintf("%s%s?%s", BaseURL, ProfileEndpoint, params.Encode())
}

// UsernameFromInput normalizes raw user input into a handle. Profile URLs
// reduce to their last non-empty path segment; a leading @ is stripped; the
// result is lowercased. Normalizing an already-normalized handle is a no-op,
// and malformed URLs never fail: the last path segment is used as-is.
func UsernameFromInput(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if strings.HasPrefix(strings.ToLower(s), "http") {
		if u, err := url.Parse(s); err == nil && u.Path != "" {
			s = lastPathSegment(u.Path)
		} else {
			s = lastPathSegment(s)
		}
	}

	s = strings.TrimPrefix(s, "@")
	return strings.ToLower(strings.TrimSpace(s))
}

func lastPathSegment(path string) string {
	parts := strings.Split(strings.TrimRight(path, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// IsValidUsername reports whether a handle satisfies Instagram's username
// rules: at most 30 characters of letters, digits, periods and underscores.
func IsValidUsername(username string) bool {
	if username == "" || len(username) > 30 {
		return false
	}
	for _, char := range username {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '.' || char == '_') {
			return false
		}
	}
	return true
}
