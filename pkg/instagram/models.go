package instagram

// webProfileResponse is the top-level response from the profile endpoint.
type webProfileResponse struct {
	RequiresToLogin bool   `json:"requires_to_login"`
	Data            data   `json:"data"`
	Status          string `json:"status"`
}

type data struct {
	User user `json:"user"`
}

type user struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Biography   string `json:"biography"`
	ExternalURL string `json:"external_url"`
	IsPrivate   bool   `json:"is_private"`
}

// Profile is the public metadata of one Instagram profile.
type Profile struct {
	Username    string
	FullName    string
	Biography   string
	ExternalURL string
	IsPrivate   bool
}
