package validator

import "unicode"

const (
	minLoginLen    = 3
	maxLoginLen    = 64
	minPasswordLen = 8
)

func IsValidLogin(login string) bool {
	if len(login) < minLoginLen || len(login) > maxLoginLen {
		return false
	}

	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}

	return true
}

func IsValidPassword(password string) bool {
	return len(password) >= minPasswordLen
}
