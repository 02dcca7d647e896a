package database

import (
	"database/sql"
	"fmt"

	"github.com/regondolajezreel/Proj/app/models"
)

// ListStudents and ListProfessors back the debug database dump; normal
// handlers always scope by principal and never list whole tables.

func ListStudents(db *sql.DB) ([]*models.Student, error) {
	rows, err := db.Query(`SELECT id, email, password, first_name, last_name, student_id, course, year_level
						   FROM students ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(&student.ID, &student.Email, &student.Password, &student.FirstName,
			&student.LastName, &student.StudentID, &student.Course, &student.YearLevel); err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func ListProfessors(db *sql.DB) ([]*models.Professor, error) {
	rows, err := db.Query(`SELECT id, email, password, first_name, last_name, professor_id, department
						   FROM professors ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		professor := &models.Professor{}
		if err := rows.Scan(&professor.ID, &professor.Email, &professor.Password, &professor.FirstName,
			&professor.LastName, &professor.ProfessorID, &professor.Department); err != nil {
			return nil, fmt.Errorf("scan professor row: %w", err)
		}
		professors = append(professors, professor)
	}
	return professors, rows.Err()
}
