package store

// Column list shared by every users query so scans stay positional and
// uniform across the repository.
const userColumns = `id, name, email, password_hash, role, password_changed_at,
    password_reset_token_hash, password_reset_expires_at, active, created_at`

const (
	createUser = `INSERT INTO users (name, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1 AND active = TRUE;`

	findActiveUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1 AND active = TRUE;`

	updateProfile = `UPDATE users
    SET name = $1, email = $2
    WHERE id = $3 AND active = TRUE
    RETURNING ` + userColumns + `;`

	updatePassword = `UPDATE users
    SET password_hash = $1,
        password_changed_at = NOW(),
        password_reset_token_hash = NULL,
        password_reset_expires_at = NULL
    WHERE id = $2 AND active = TRUE
    RETURNING ` + userColumns + `;`

	setResetToken = `UPDATE users
    SET password_reset_token_hash = $1, password_reset_expires_at = $2
    WHERE id = $3 AND active = TRUE;`

	findUserByResetTokenDigest = `SELECT ` + userColumns + `
    FROM users
    WHERE password_reset_token_hash = $1
      AND password_reset_expires_at > NOW()
      AND active = TRUE;`

	deactivateUser = `UPDATE users
    SET active = FALSE
    WHERE id = $1 AND active = TRUE;`

	purgeExpiredResetTokens = `UPDATE users
    SET password_reset_token_hash = NULL, password_reset_expires_at = NULL
    WHERE password_reset_expires_at IS NOT NULL
      AND password_reset_expires_at < NOW();`
)
