package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/regondolajezreel/Proj/app/models"
)

func CreateClass(db *sql.DB, class *models.Class) error {
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO classes (name, description, code, created_at, professor_id)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := db.QueryRow(query, class.Name, class.Description, class.Code,
		toMillis(class.CreatedAt), class.ProfessorID).Scan(&class.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

func scanClass(row *sql.Row) (*models.Class, error) {
	class := &models.Class{}
	var createdAt int64
	err := row.Scan(&class.ID, &class.Name, &class.Description, &class.Code,
		&createdAt, &class.ProfessorID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan class: %w", err)
	}
	class.CreatedAt = fromMillis(createdAt)
	return class, nil
}

func GetClassByID(db *sql.DB, id int) (*models.Class, error) {
	query := `SELECT id, name, description, code, created_at, professor_id
			  FROM classes WHERE id = $1`
	return scanClass(db.QueryRow(query, id))
}

func GetClassByCode(db *sql.DB, code string) (*models.Class, error) {
	query := `SELECT id, name, description, code, created_at, professor_id
			  FROM classes WHERE code = $1`
	return scanClass(db.QueryRow(query, code))
}

// ClassCodeExists reports whether a join code is already taken. Used by
// the collision-retry loop in code generation.
func ClassCodeExists(db *sql.DB, code string) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM classes WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check class code: %w", err)
	}
	return exists, nil
}

func GetClassesByProfessor(db *sql.DB, professorID int) ([]*models.Class, error) {
	query := `SELECT id, name, description, code, created_at, professor_id
			  FROM classes WHERE professor_id = $1 ORDER BY created_at ASC`
	rows, err := db.Query(query, professorID)
	if err != nil {
		return nil, fmt.Errorf("get classes by professor: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		var createdAt int64
		if err := rows.Scan(&class.ID, &class.Name, &class.Description, &class.Code,
			&createdAt, &class.ProfessorID); err != nil {
			return nil, fmt.Errorf("scan class row: %w", err)
		}
		class.CreatedAt = fromMillis(createdAt)
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func GetClassesByStudent(db *sql.DB, studentID int) ([]*models.Class, error) {
	query := `SELECT c.id, c.name, c.description, c.code, c.created_at, c.professor_id
			  FROM classes c
			  INNER JOIN enrollments e ON e.class_id = c.id
			  WHERE e.student_id = $1 ORDER BY c.created_at ASC`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get classes by student: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		var createdAt int64
		if err := rows.Scan(&class.ID, &class.Name, &class.Description, &class.Code,
			&createdAt, &class.ProfessorID); err != nil {
			return nil, fmt.Errorf("scan class row: %w", err)
		}
		class.CreatedAt = fromMillis(createdAt)
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

// GetClassStudents returns the roster of a class.
func GetClassStudents(db *sql.DB, classID int) ([]*models.Student, error) {
	query := `SELECT s.id, s.email, s.password, s.first_name, s.last_name, s.student_id, s.course, s.year_level
			  FROM students s
			  INNER JOIN enrollments e ON e.student_id = s.id
			  WHERE e.class_id = $1 ORDER BY s.last_name ASC`
	rows, err := db.Query(query, classID)
	if err != nil {
		return nil, fmt.Errorf("get class students: %w", err)
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

func IsEnrolled(db *sql.DB, studentID, classID int) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND class_id = $2)`,
		studentID, classID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return exists, nil
}

func Enroll(db *sql.DB, studentID, classID int) error {
	_, err := db.Exec(`INSERT INTO enrollments (student_id, class_id) VALUES ($1, $2)`,
		studentID, classID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	return nil
}

func Unenroll(db *sql.DB, studentID, classID int) error {
	result, err := db.Exec(`DELETE FROM enrollments WHERE student_id = $1 AND class_id = $2`,
		studentID, classID)
	if err != nil {
		return fmt.Errorf("unenroll: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClass removes a class owned by the given professor, clearing its
// enrollments first. Existence and ownership are checked together so the
// caller cannot probe other professors' classes. Both deletes run in one
// transaction.
func DeleteClass(db *sql.DB, classID, professorID int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete class: %w", err)
	}
	defer tx.Rollback()

	var ownerID int
	err = tx.QueryRow(`SELECT professor_id FROM classes WHERE id = $1`, classID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check class owner: %w", err)
	}
	if ownerID != professorID {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM enrollments WHERE class_id = $1`, classID); err != nil {
		return fmt.Errorf("clear enrollments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM classes WHERE id = $1`, classID); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return tx.Commit()
}

// CountEnrollments returns how many classes a student is enrolled in.
func CountEnrollments(db *sql.DB, studentID int) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM enrollments WHERE student_id = $1`, studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}

// CountProfessorClasses returns the number of classes a professor owns and
// the summed roster size across them.
func CountProfessorClasses(db *sql.DB, professorID int) (classes, students int, err error) {
	err = db.QueryRow(`SELECT COUNT(*) FROM classes WHERE professor_id = $1`, professorID).Scan(&classes)
	if err != nil {
		return 0, 0, fmt.Errorf("count classes: %w", err)
	}
	err = db.QueryRow(`SELECT COUNT(*) FROM enrollments e
					   INNER JOIN classes c ON c.id = e.class_id
					   WHERE c.professor_id = $1`, professorID).Scan(&students)
	if err != nil {
		return 0, 0, fmt.Errorf("count students: %w", err)
	}
	return classes, students, nil
}
