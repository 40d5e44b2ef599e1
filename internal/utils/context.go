// Package utils provides small helpers shared across layers: type-safe
// context keys for the authenticated caller and JSON response writing.
package utils

import (
	"context"

	"github.com/tmaksat/newsauth/models"
)

// contextKey is a private type for context keys. A dedicated type prevents
// collisions with other packages that store string-keyed values.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// CurrentUserCtxKey is the key under which the authenticate middleware
// stores the loaded [models.User] for downstream handlers.
var CurrentUserCtxKey = contextKey("currentUser")

// WithCurrentUser returns a copy of ctx carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, CurrentUserCtxKey, user)
}

// GetCurrentUserFromContext retrieves the authenticated user from ctx.
//
// Returns the user and an ok flag:
//   - ok == true  — a user was attached by the authenticate middleware
//   - ok == false — no user (unauthenticated or optional-auth miss)
func GetCurrentUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(models.User)
	return user, ok
}
