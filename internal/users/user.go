package users

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already in use")
	ErrInvalidUser        = errors.New("invalid user")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidCredentials = errors.New("wrong credentials")
)

const passwordMinLength = 8

var commonPasswordRegex = regexp.MustCompile(`(?i)(password|123456|qwerty)`)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidateRegistration checks the username, email and password of a new
// account. Username and email are trimmed in place.
func ValidateRegistration(username, email *string, password string) error {
	*username = strings.TrimSpace(*username)
	*email = strings.ToLower(strings.TrimSpace(*email))
	if *username == "" || *email == "" {
		return fmt.Errorf("%w: username and email are required", ErrInvalidUser)
	}
	if strings.ContainsAny(*username, " @") {
		return fmt.Errorf("%w: username must not contain spaces or @", ErrInvalidUser)
	}
	if _, err := mail.ParseAddress(*email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidUser)
	}
	return ValidatePassword(password, *username, *email)
}

func ValidatePassword(password, username, email string) error {
	if len(password) < passwordMinLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, passwordMinLength)
	}
	if strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		return fmt.Errorf("%w: cannot be entirely numeric", ErrWeakPassword)
	}

	lowered := strings.ToLower(password)
	if username != "" && strings.Contains(lowered, strings.ToLower(username)) {
		return fmt.Errorf("%w: too similar to the username", ErrWeakPassword)
	}
	if local, _, _ := strings.Cut(email, "@"); local != "" && strings.Contains(lowered, strings.ToLower(local)) {
		return fmt.Errorf("%w: too similar to the email", ErrWeakPassword)
	}
	if commonPasswordRegex.MatchString(password) {
		return fmt.Errorf("%w: too common", ErrWeakPassword)
	}
	return nil
}
