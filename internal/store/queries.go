package store

const (
	createUser = `INSERT INTO users (email, full_name, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, email, full_name, password_hash, role, is_active, last_login, created_at;`

	findUserByEmail = `SELECT user_id, email, full_name, password_hash, role, is_active, last_login, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, full_name, password_hash, role, is_active, last_login, created_at
    FROM users
    WHERE user_id = $1;`

	updateUserLastLogin = `UPDATE users
    SET last_login = now()
    WHERE user_id = $1;`

	updateUserPasswordHash = `UPDATE users
    SET password_hash = $2
    WHERE user_id = $1;`

	// Last-request-wins: a repeated request for the same email replaces the
	// previous in-flight signup and resets the attempt counter.
	upsertPendingRegistration = `INSERT INTO pending_registrations (email, full_name, password_hash, otp, otp_expires_at, attempts)
    VALUES ($1, $2, $3, $4, $5, 0)
    ON CONFLICT (email) DO UPDATE
    SET full_name = EXCLUDED.full_name,
        password_hash = EXCLUDED.password_hash,
        otp = EXCLUDED.otp,
        otp_expires_at = EXCLUDED.otp_expires_at,
        attempts = 0;`

	findPendingRegistrationByEmail = `SELECT email, full_name, password_hash, otp, otp_expires_at, attempts, created_at
    FROM pending_registrations
    WHERE email = $1;`

	incrementPendingRegistrationAttempts = `UPDATE pending_registrations
    SET attempts = attempts + 1
    WHERE email = $1
    RETURNING attempts;`

	refreshPendingRegistrationOTP = `UPDATE pending_registrations
    SET otp = $2, otp_expires_at = $3, attempts = 0
    WHERE email = $1;`

	deletePendingRegistration = `DELETE FROM pending_registrations
    WHERE email = $1;`

	upsertPasswordReset = `INSERT INTO password_resets (email, otp, otp_expires_at, attempts, verified)
    VALUES ($1, $2, $3, 0, false)
    ON CONFLICT (email) DO UPDATE
    SET otp = EXCLUDED.otp,
        otp_expires_at = EXCLUDED.otp_expires_at,
        attempts = 0,
        verified = false;`

	findPasswordResetByEmail = `SELECT email, otp, otp_expires_at, attempts, verified, created_at
    FROM password_resets
    WHERE email = $1;`

	incrementPasswordResetAttempts = `UPDATE password_resets
    SET attempts = attempts + 1
    WHERE email = $1
    RETURNING attempts;`

	markPasswordResetVerified = `UPDATE password_resets
    SET verified = true
    WHERE email = $1;`

	deletePasswordReset = `DELETE FROM password_resets
    WHERE email = $1;`

	insertRefreshToken = `INSERT INTO refresh_tokens (token, user_id, expires_at)
    VALUES ($1, $2, $3);`

	// The conditional delete is the rotation authority: of two concurrent
	// rotations presenting the same token, exactly one sees the row.
	consumeRefreshToken = `DELETE FROM refresh_tokens
    WHERE token = $1
    RETURNING user_id, expires_at;`

	deleteRefreshToken = `DELETE FROM refresh_tokens
    WHERE token = $1;`

	deleteRefreshTokensForUser = `DELETE FROM refresh_tokens
    WHERE user_id = $1;`
)
