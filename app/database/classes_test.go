package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/regondolajezreel/Proj/app/models"
)

func TestCreateClass_SetsIDAndCreatedAt(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+classes\s*\(name,\s*description,\s*code,\s*created_at,\s*professor_id\)\s*VALUES.*RETURNING\s+id`
	mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	class := &models.Class{Name: "Algorithms", Code: "ABC123", ProfessorID: 2}
	if err := CreateClass(db, class); err != nil {
		t.Fatalf("CreateClass error: %v", err)
	}
	if class.ID != 5 {
		t.Fatalf("ID not set, got %d", class.ID)
	}
	if class.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}
}

func TestCreateClass_CodeCollision(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+classes.*RETURNING\s+id`
	mock.ExpectQuery(q).WillReturnError(&pq.Error{Code: "23505"})

	err := CreateClass(db, &models.Class{Name: "X", Code: "ABC123", ProfessorID: 1})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestGetClassByCode_RestoresCreatedAt(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	q := `(?s)SELECT\s+id,\s*name,\s*description,\s*code,\s*created_at,\s*professor_id\s+FROM\s+classes\s+WHERE\s+code\s*=\s*\$1`
	rows := sqlmock.NewRows([]string{"id", "name", "description", "code", "created_at", "professor_id"}).
		AddRow(4, "Algorithms", "intro", "ZZTOP1", created.UnixMilli(), 2)
	mock.ExpectQuery(q).WithArgs("ZZTOP1").WillReturnRows(rows)

	got, err := GetClassByCode(db, "ZZTOP1")
	if err != nil {
		t.Fatalf("GetClassByCode error: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestEnroll_DuplicatePair(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `INSERT\s+INTO\s+enrollments\s*\(student_id,\s*class_id\)\s*VALUES\s*\(\$1,\s*\$2\)`
	mock.ExpectExec(q).WithArgs(1, 2).WillReturnError(errors.New("UNIQUE constraint failed: enrollments.student_id, enrollments.class_id"))

	err := Enroll(db, 1, 2)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestUnenroll_MissingPair(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	q := `DELETE\s+FROM\s+enrollments\s+WHERE\s+student_id\s*=\s*\$1\s+AND\s+class_id\s*=\s*\$2`
	mock.ExpectExec(q).WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 0))

	err := Unenroll(db, 1, 2)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteClass_ClearsEnrollmentsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+professor_id\s+FROM\s+classes\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"professor_id"}).AddRow(2))
	mock.ExpectExec(`DELETE\s+FROM\s+enrollments\s+WHERE\s+class_id\s*=\s*\$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE\s+FROM\s+classes\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := DeleteClass(db, 4, 2); err != nil {
		t.Fatalf("DeleteClass error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteClass_NotOwnerRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+professor_id\s+FROM\s+classes\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"professor_id"}).AddRow(9))
	mock.ExpectRollback()

	err := DeleteClass(db, 4, 2)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCountProfessorClasses(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+classes\s+WHERE\s+professor_id\s*=\s*\$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`(?s)SELECT\s+COUNT\(\*\)\s+FROM\s+enrollments\s+e.*WHERE\s+c\.professor_id\s*=\s*\$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	classes, students, err := CountProfessorClasses(db, 2)
	if err != nil {
		t.Fatalf("CountProfessorClasses error: %v", err)
	}
	if classes != 3 || students != 17 {
		t.Fatalf("got (%d, %d), want (3, 17)", classes, students)
	}
}
