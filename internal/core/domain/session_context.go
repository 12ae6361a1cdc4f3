package domain

// SessionContext is the identity seen by one request. It starts in
// StateLoading and settles once the session backend has been read.
type SessionContext struct {
	id      string
	state   SessionState
	session Session
	changed bool
}

// NewSessionContext returns a context in StateLoading for the given cookie id.
func NewSessionContext(id string) *SessionContext {
	return &SessionContext{id: id, state: StateLoading}
}

// Settle resolves the loading state from a stored record. Partial records
// settle as anonymous.
func (c *SessionContext) Settle(s Session) {
	if s.Complete() {
		c.state = StateAuthenticated
		c.session = s
		return
	}
	c.state = StateAnonymous
	c.session = Session{}
}

// Authenticate switches to s under a new id.
func (c *SessionContext) Authenticate(id string, s Session) {
	c.id = id
	c.session = s
	c.state = StateAuthenticated
	c.changed = true
}

// Clear drops the identity and the id.
func (c *SessionContext) Clear() {
	c.id = ""
	c.session = Session{}
	c.state = StateAnonymous
	c.changed = true
}

func (c *SessionContext) ID() string          { return c.id }
func (c *SessionContext) State() SessionState { return c.state }
func (c *SessionContext) Session() Session    { return c.session }
func (c *SessionContext) Role() Role          { return c.session.Role }

// Changed reports whether the id must be written back to the client.
func (c *SessionContext) Changed() bool { return c.changed }

func (c *SessionContext) IsLoading() bool       { return c.state == StateLoading }
func (c *SessionContext) IsAuthenticated() bool { return c.state == StateAuthenticated }
