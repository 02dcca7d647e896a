package models

type Professor struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	ProfessorID string `json:"professor_id"`
	Department  string `json:"department"`
}

func (p *Professor) FullName() string {
	return p.FirstName + " " + p.LastName
}
