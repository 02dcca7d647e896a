package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/regondolajezreel/Proj/app/models"
)

func TestGetUnusedResetToken_UsedLooksMissing(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*email,\s*token,.*FROM\s+password_reset_tokens\s+WHERE\s+token\s*=\s*\$1\s+AND\s+used\s*=\s*FALSE`
	mock.ExpectQuery(q).WithArgs("spent-token").WillReturnError(sql.ErrNoRows)

	_, err := GetUnusedResetToken(db, "spent-token")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetUnusedResetToken_RestoresTimes(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := created.Add(time.Hour)

	q := `(?s)SELECT\s+id,\s*email,\s*token,.*FROM\s+password_reset_tokens\s+WHERE\s+token\s*=\s*\$1\s+AND\s+used\s*=\s*FALSE`
	rows := sqlmock.NewRows([]string{"id", "email", "token", "user_type", "created_at", "expires_at", "used"}).
		AddRow(1, "s@example.com", "tok-1", models.RoleStudent, created.UnixMilli(), expires.UnixMilli(), false)
	mock.ExpectQuery(q).WithArgs("tok-1").WillReturnRows(rows)

	got, err := GetUnusedResetToken(db, "tok-1")
	if err != nil {
		t.Fatalf("GetUnusedResetToken error: %v", err)
	}
	if !got.ExpiresAt.Equal(expires) {
		t.Fatalf("ExpiresAt = %v, want %v", got.ExpiresAt, expires)
	}
	if got.Expired(created.Add(30 * time.Minute)) {
		t.Fatal("token expired before its expiry")
	}
	if !got.Expired(expires.Add(time.Second)) {
		t.Fatal("token not expired after its expiry")
	}
}

func TestConsumeResetToken_UpdatesPasswordAndMarksUsed(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	token := &models.PasswordResetToken{ID: 7, Email: "s@example.com", UserType: models.RoleStudent}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+students\s+SET\s+password\s*=\s*\$1\s+WHERE\s+email\s*=\s*\$2`).
		WithArgs("newhash", "s@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE\s+password_reset_tokens\s+SET\s+used\s*=\s*TRUE\s+WHERE\s+id\s*=\s*\$1\s+AND\s+used\s*=\s*FALSE`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := ConsumeResetToken(db, token, "newhash"); err != nil {
		t.Fatalf("ConsumeResetToken error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConsumeResetToken_AlreadyUsedRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	token := &models.PasswordResetToken{ID: 7, Email: "s@example.com", UserType: models.RoleStudent}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+students\s+SET\s+password`).
		WithArgs("newhash", "s@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Token was consumed by a concurrent request; the password update
	// must not survive.
	mock.ExpectExec(`UPDATE\s+password_reset_tokens\s+SET\s+used\s*=\s*TRUE`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := ConsumeResetToken(db, token, "newhash")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConsumeResetToken_UnknownRole(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	token := &models.PasswordResetToken{ID: 1, Email: "x@example.com", UserType: "admin"}
	if err := ConsumeResetToken(db, token, "hash"); err == nil {
		t.Fatal("unknown role accepted")
	}
}
