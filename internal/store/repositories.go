package store

import "github.com/tmaksat/newsauth/internal/logger"

// Repositories aggregates every data-access contract the service layer
// depends on.
type Repositories struct {
	UserRepository                UserRepository
	PendingRegistrationRepository PendingRegistrationRepository
	PasswordResetRepository       PasswordResetRepository
	RefreshTokenRepository        RefreshTokenRepository
}

// NewRepositories wires all repositories to the shared database handle.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:                NewUserRepository(db, log),
		PendingRegistrationRepository: NewPendingRegistrationRepository(db, log),
		PasswordResetRepository:       NewPasswordResetRepository(db, log),
		RefreshTokenRepository:        NewRefreshTokenRepository(db, log),
	}
}
