package classes

import (
	"database/sql"
	"fmt"
	"math/rand"

	"github.com/regondolajezreel/Proj/app/database"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 6

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// generateClassCode produces a join code not currently in use, retrying
// on collision. The UNIQUE constraint on classes.code is the backstop
// for the rare race between generation and insert.
func generateClassCode(db *sql.DB) (string, error) {
	for attempts := 0; attempts < 100; attempts++ {
		code := randomCode()
		exists, err := database.ClassCodeExists(db, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique class code")
}
