package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/regondolajezreel/Proj/app/models"
)

func CreateResetToken(db *sql.DB, token *models.PasswordResetToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO password_reset_tokens (email, token, user_type, created_at, expires_at, used)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := db.QueryRow(query, token.Email, token.Token, token.UserType,
		toMillis(token.CreatedAt), toMillis(token.ExpiresAt), token.Used).Scan(&token.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return nil
}

// GetUnusedResetToken fetches a token that has not been consumed yet. A
// used token is indistinguishable from a missing one on purpose.
func GetUnusedResetToken(db *sql.DB, token string) (*models.PasswordResetToken, error) {
	t := &models.PasswordResetToken{}
	var createdAt, expiresAt int64
	query := `SELECT id, email, token, user_type, created_at, expires_at, used
			  FROM password_reset_tokens WHERE token = $1 AND used = FALSE`

	err := db.QueryRow(query, token).Scan(&t.ID, &t.Email, &t.Token, &t.UserType,
		&createdAt, &expiresAt, &t.Used)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reset token: %w", err)
	}
	t.CreatedAt = fromMillis(createdAt)
	t.ExpiresAt = fromMillis(expiresAt)
	return t, nil
}

// ConsumeResetToken overwrites the principal's password hash and marks the
// token used in a single transaction; either both happen or neither does.
func ConsumeResetToken(db *sql.DB, token *models.PasswordResetToken, hashedPassword string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	var table string
	switch token.UserType {
	case models.RoleStudent:
		table = "students"
	case models.RoleProfessor:
		table = "professors"
	default:
		return fmt.Errorf("unknown user type %q", token.UserType)
	}

	result, err := tx.Exec(`UPDATE `+table+` SET password = $1 WHERE email = $2`,
		hashedPassword, token.Email)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	result, err = tx.Exec(`UPDATE password_reset_tokens SET used = TRUE WHERE id = $1 AND used = FALSE`,
		token.ID)
	if err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// ClearResetTokens deletes every reset token. Debug/operational use only.
func ClearResetTokens(db *sql.DB) (int64, error) {
	result, err := db.Exec(`DELETE FROM password_reset_tokens`)
	if err != nil {
		return 0, fmt.Errorf("clear reset tokens: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// ListResetTokens returns every token, for the debug database dump.
func ListResetTokens(db *sql.DB) ([]*models.PasswordResetToken, error) {
	rows, err := db.Query(`SELECT id, email, token, user_type, created_at, expires_at, used
						   FROM password_reset_tokens ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list reset tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*models.PasswordResetToken
	for rows.Next() {
		t := &models.PasswordResetToken{}
		var createdAt, expiresAt int64
		if err := rows.Scan(&t.ID, &t.Email, &t.Token, &t.UserType,
			&createdAt, &expiresAt, &t.Used); err != nil {
			return nil, fmt.Errorf("scan token row: %w", err)
		}
		t.CreatedAt = fromMillis(createdAt)
		t.ExpiresAt = fromMillis(expiresAt)
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
