package handlers

const (
	SessionCookieName = "session_id"
	PlayerCookieName  = "player_id"

	ErrInvalidRequestBody  = "Invalid request body"
	ErrInvalidFormData     = "Invalid form data"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Forbidden"
	ErrNotFound            = "Not found"
	ErrInternalServerError = "Internal server error"
)
