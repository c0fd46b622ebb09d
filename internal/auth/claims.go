package auth

// PilotClaims identifies the authenticated pilot for the duration of a
// request. Every lookup table and registry query is scoped by PilotID.
type PilotClaims interface {
	PilotID() int32
	Username() string
	Source() string
}

// SessionClaims are claims backed by a session cookie.
type SessionClaims struct {
	PilotIDVal  int32
	UsernameVal string
}

func (c *SessionClaims) PilotID() int32   { return c.PilotIDVal }
func (c *SessionClaims) Username() string { return c.UsernameVal }
func (c *SessionClaims) Source() string   { return "SESSION" }

// TokenClaims are claims backed by a JWT bearer token.
type TokenClaims struct {
	PilotIDVal  int32
	UsernameVal string
}

func (c *TokenClaims) PilotID() int32   { return c.PilotIDVal }
func (c *TokenClaims) Username() string { return c.UsernameVal }
func (c *TokenClaims) Source() string   { return "JWT" }
