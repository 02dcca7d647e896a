package models

const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
)

type Student struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	StudentID string `json:"student_id"`
	Course    string `json:"course"`
	YearLevel string `json:"year_level"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
