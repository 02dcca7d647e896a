package database

import (
	"database/sql"
	"fmt"

	"github.com/regondolajezreel/Proj/app/models"
)

func GetProfessorByEmail(db *sql.DB, email string) (*models.Professor, error) {
	professor := &models.Professor{}
	query := `SELECT id, email, password, first_name, last_name, professor_id, department
			  FROM professors WHERE email = $1`

	err := db.QueryRow(query, email).Scan(
		&professor.ID, &professor.Email, &professor.Password, &professor.FirstName,
		&professor.LastName, &professor.ProfessorID, &professor.Department,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get professor by email: %w", err)
	}
	return professor, nil
}

func GetProfessorByID(db *sql.DB, id int) (*models.Professor, error) {
	professor := &models.Professor{}
	query := `SELECT id, email, password, first_name, last_name, professor_id, department
			  FROM professors WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&professor.ID, &professor.Email, &professor.Password, &professor.FirstName,
		&professor.LastName, &professor.ProfessorID, &professor.Department,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get professor by id: %w", err)
	}
	return professor, nil
}

// GetProfessorByProfessorID looks a professor up by the external
// (school-issued) professor id, not the row id.
func GetProfessorByProfessorID(db *sql.DB, professorID string) (*models.Professor, error) {
	professor := &models.Professor{}
	query := `SELECT id, email, password, first_name, last_name, professor_id, department
			  FROM professors WHERE professor_id = $1`

	err := db.QueryRow(query, professorID).Scan(
		&professor.ID, &professor.Email, &professor.Password, &professor.FirstName,
		&professor.LastName, &professor.ProfessorID, &professor.Department,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get professor by professor id: %w", err)
	}
	return professor, nil
}

func CreateProfessor(db *sql.DB, professor *models.Professor) error {
	query := `INSERT INTO professors (email, password, first_name, last_name, professor_id, department)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := db.QueryRow(query, professor.Email, professor.Password, professor.FirstName,
		professor.LastName, professor.ProfessorID, professor.Department).Scan(&professor.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

func UpdateProfessorPassword(db *sql.DB, id int, hashedPassword string) error {
	result, err := db.Exec(`UPDATE professors SET password = $1 WHERE id = $2`, hashedPassword, id)
	if err != nil {
		return fmt.Errorf("update professor password: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
