package utils

import (
	"context"
)

type contextKey string

const ContextEmailKey contextKey = "sessionEmail"

// SessionData is the view of the active session that middleware hands to
// downstream handlers.
type SessionData struct {
	Email string
	Role  string
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	email := ctx.Value(ContextEmailKey)
	emailStr, ok := email.(string)
	return emailStr, ok
}
