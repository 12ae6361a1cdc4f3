package middleware

// Context keys used to share per-request state with handlers.
const (
	ContextKeySession   = "session"
	ContextKeyRequestID = "request_id"
)
