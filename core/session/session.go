package session

// User is the signed-in account as returned by the auth service.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the client's credential state. The zero value is the initial,
// signed-out state. IsAuthenticated is stored, not derived from the tokens.
type Session struct {
	AccessToken     *string `json:"accessToken"`
	RefreshToken    *string `json:"refreshToken"`
	IsAuthenticated bool    `json:"isAuthenticated"`
	User            *User   `json:"user"`
}

// Clone returns a deep copy that shares no pointers with s.
func (s Session) Clone() Session {
	out := Session{IsAuthenticated: s.IsAuthenticated}
	if s.AccessToken != nil {
		out.AccessToken = ptr(*s.AccessToken)
	}
	if s.RefreshToken != nil {
		out.RefreshToken = ptr(*s.RefreshToken)
	}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// Token returns the access token or "".
func (s Session) Token() string {
	if s.AccessToken == nil {
		return ""
	}
	return *s.AccessToken
}

func ptr[T any](v T) *T { return &v }
