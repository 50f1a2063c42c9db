package domain

// UpstreamUser mirrors the demo API's /users payload, limited to the fields
// the profile page uses.
type UpstreamUser struct {
	ID       int          `json:"id"`
	Email    string       `json:"email"`
	Username string       `json:"username"`
	Name     UpstreamName `json:"name"`
	Phone    string       `json:"phone"`
}

type UpstreamName struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Session is the locally issued session after a successful upstream login.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
