package database

import (
	"database/sql"
	"fmt"

	"github.com/regondolajezreel/Proj/app/models"
)

func GetStudentByEmail(db *sql.DB, email string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT id, email, password, first_name, last_name, student_id, course, year_level
			  FROM students WHERE email = $1`

	err := db.QueryRow(query, email).Scan(
		&student.ID, &student.Email, &student.Password, &student.FirstName,
		&student.LastName, &student.StudentID, &student.Course, &student.YearLevel,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student by email: %w", err)
	}
	return student, nil
}

func GetStudentByID(db *sql.DB, id int) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT id, email, password, first_name, last_name, student_id, course, year_level
			  FROM students WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&student.ID, &student.Email, &student.Password, &student.FirstName,
		&student.LastName, &student.StudentID, &student.Course, &student.YearLevel,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student by id: %w", err)
	}
	return student, nil
}

// GetStudentByStudentID looks a student up by the external (school-issued)
// student id, not the row id.
func GetStudentByStudentID(db *sql.DB, studentID string) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT id, email, password, first_name, last_name, student_id, course, year_level
			  FROM students WHERE student_id = $1`

	err := db.QueryRow(query, studentID).Scan(
		&student.ID, &student.Email, &student.Password, &student.FirstName,
		&student.LastName, &student.StudentID, &student.Course, &student.YearLevel,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student by student id: %w", err)
	}
	return student, nil
}

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (email, password, first_name, last_name, student_id, course, year_level)
			  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := db.QueryRow(query, student.Email, student.Password, student.FirstName,
		student.LastName, student.StudentID, student.Course, student.YearLevel).Scan(&student.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

func UpdateStudentPassword(db *sql.DB, id int, hashedPassword string) error {
	result, err := db.Exec(`UPDATE students SET password = $1 WHERE id = $2`, hashedPassword, id)
	if err != nil {
		return fmt.Errorf("update student password: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
