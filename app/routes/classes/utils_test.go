package classes

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRandomCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := randomCode()
		if len(code) != codeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), codeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeCharset, r) {
				t.Fatalf("code %q contains %q outside the charset", code, r)
			}
		}
		seen[code] = true
	}
	// 50 draws from 36^6 values colliding down to a handful would mean
	// a broken generator.
	if len(seen) < 40 {
		t.Fatalf("only %d distinct codes in 50 draws", len(seen))
	}
}

func TestGenerateClassCodeRetriesOnCollision(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	q := `SELECT\s+EXISTS\(SELECT\s+1\s+FROM\s+classes\s+WHERE\s+code\s*=\s*\$1\)`

	// First candidate collides, second one is free.
	mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	code, err := generateClassCode(db)
	if err != nil {
		t.Fatalf("generateClassCode error: %v", err)
	}
	if len(code) != codeLength {
		t.Fatalf("code %q has length %d, want %d", code, len(code), codeLength)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
