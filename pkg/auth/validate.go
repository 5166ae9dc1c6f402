package auth

import (
	"errors"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

// ValidateCredentials checks email/password shape before anything is sent to
// the provider. The returned error text is shown to the user as-is.
func ValidateCredentials(email, password string) error {
	if email == "" {
		return errors.New("Por favor ingresa tu email")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("Por favor ingresa un email válido")
	}
	if password == "" {
		return errors.New("Por favor ingresa tu contraseña")
	}
	if len(password) < minPasswordLength {
		return errors.New("La contraseña debe tener al menos 6 caracteres")
	}
	return nil
}
