// ============================================================================
// backend/internal/shared/identity.go
// Derived ids, display names, emails and password policy helpers
// ============================================================================

package shared

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// FormatFullName renders the "Apellidos, Nombres" collation key used for
// every roster ordering
func FormatFullName(firstName, paternalLastName, maternalLastName string) string {
	return fmt.Sprintf("%s %s, %s",
		strings.TrimSpace(paternalLastName),
		strings.TrimSpace(maternalLastName),
		strings.TrimSpace(firstName))
}

// GenerateStudentID derives a student id from the name parts and the
// enrollment year: initial + given names without spaces + paternal surname +
// maternal initial + year
func GenerateStudentID(firstName, paternalLastName, maternalLastName string, enrollmentYear int) string {
	first := strings.TrimSpace(firstName)
	return fmt.Sprintf("%s%s%s%s%d",
		firstRuneUpper(first),
		strings.Join(strings.Fields(first), ""),
		strings.TrimSpace(paternalLastName),
		firstRuneUpper(maternalLastName),
		enrollmentYear)
}

// GenerateTeacherID derives a teacher id from the name parts plus a
// four-digit time suffix to keep ids unique across homonyms
func GenerateTeacherID(firstName, paternalLastName, maternalLastName string) string {
	suffix := time.Now().UnixMilli() % 10000
	return fmt.Sprintf("%s%s%s%04d",
		firstRuneUpper(firstName),
		strings.TrimSpace(paternalLastName),
		firstRuneUpper(maternalLastName),
		suffix)
}

// GenerateEmail derives the institutional email for an account id
func GenerateEmail(id string) string {
	return id + "@escuela.com"
}

// ValidatePassword enforces the account password policy: minimum length
// plus at least one letter and one digit
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("la contraseña debe tener al menos %d caracteres", MinPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("la contraseña debe incluir letras y números")
	}
	return nil
}

// HashPassword hashes a password for storage on the user record
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func firstRuneUpper(s string) string {
	for _, r := range strings.TrimSpace(s) {
		return string(unicode.ToUpper(r))
	}
	return ""
}
