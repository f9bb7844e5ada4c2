package store

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// checkPasswordPolicy validates a plaintext password against the account
// policy: minimum length plus at least one digit, lowercase, uppercase and
// non-alphanumeric character. Returns nil when the password passes, or a
// *CredentialError listing every violated rule.
func checkPasswordPolicy(password string) error {
	var reasons []string
	if len(password) < minPasswordLen {
		reasons = append(reasons, "Passwords must be at least 6 characters.")
	}
	var digit, lower, upper, special bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		default:
			special = true
		}
	}
	if !digit {
		reasons = append(reasons, "Passwords must have at least one digit ('0'-'9').")
	}
	if !lower {
		reasons = append(reasons, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !upper {
		reasons = append(reasons, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	if !special {
		reasons = append(reasons, "Passwords must have at least one non alphanumeric character.")
	}
	if len(reasons) > 0 {
		return &CredentialError{Reasons: reasons}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func comparePassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
