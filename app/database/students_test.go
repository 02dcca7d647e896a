package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/regondolajezreel/Proj/app/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestGetStudentByEmail_Found(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*email,\s*password,.*FROM\s+students\s+WHERE\s+email\s*=\s*\$1`

	rows := sqlmock.NewRows([]string{"id", "email", "password", "first_name", "last_name", "student_id", "course", "year_level"}).
		AddRow(3, "s@example.com", "hash", "Sam", "Lee", "2021-001", "CS", "3")
	mock.ExpectQuery(q).WithArgs("s@example.com").WillReturnRows(rows)

	got, err := GetStudentByEmail(db, "s@example.com")
	if err != nil {
		t.Fatalf("GetStudentByEmail error: %v", err)
	}
	if got.ID != 3 || got.StudentID != "2021-001" {
		t.Fatalf("unexpected student: %+v", got)
	}
}

func TestGetStudentByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*email,\s*password,.*FROM\s+students\s+WHERE\s+email\s*=\s*\$1`
	mock.ExpectQuery(q).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	_, err := GetStudentByEmail(db, "ghost@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreateStudent_Success(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+students\s*\(email,\s*password,.*\)\s*VALUES\s*\(\$1,.*\)\s*RETURNING\s+id`
	mock.ExpectQuery(q).
		WithArgs("s@example.com", "hash", "Sam", "Lee", "2021-001", "CS", "3").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	student := &models.Student{
		Email: "s@example.com", Password: "hash", FirstName: "Sam", LastName: "Lee",
		StudentID: "2021-001", Course: "CS", YearLevel: "3",
	}
	if err := CreateStudent(db, student); err != nil {
		t.Fatalf("CreateStudent error: %v", err)
	}
	if student.ID != 11 {
		t.Fatalf("ID not set, got %d", student.ID)
	}
}

func TestCreateStudent_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+students.*RETURNING\s+id`
	mock.ExpectQuery(q).WillReturnError(errors.New("UNIQUE constraint failed: students.email"))

	err := CreateStudent(db, &models.Student{Email: "dup@example.com"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestUpdateStudentPassword_NoRow(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `UPDATE\s+students\s+SET\s+password\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2`
	mock.ExpectExec(q).WithArgs("newhash", 99).WillReturnResult(sqlmock.NewResult(0, 0))

	err := UpdateStudentPassword(db, 99, "newhash")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
