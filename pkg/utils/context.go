package utils

// Keys under which the auth middleware stores the operator of a request.
const (
	ContextOperatorID    = "operator_id"
	ContextOperatorName  = "operator_name"
	ContextOperatorRoles = "operator_roles"
	ContextSessionExpiry = "session_expires_at" // time.Time
)

// ContextRequestID is where the request logger stores the request id.
const ContextRequestID = "request_id"
