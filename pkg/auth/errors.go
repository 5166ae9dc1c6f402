package auth

import (
	"errors"
	"fmt"
)

// ProviderError carries the identity provider's error code, e.g. "EMAIL_NOT_FOUND".
type ProviderError struct {
	Code string
	Raw  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %s", e.Code)
}

// providerMessages maps the known provider codes to the messages shown to the
// user. Unmapped codes fall through to a generic message with the raw code.
var providerMessages = map[string]string{
	"INVALID_EMAIL":               "El formato del email no es válido",
	"INVALID_PASSWORD":            "La contraseña es incorrecta",
	"EMAIL_NOT_FOUND":             "No existe una cuenta con este email",
	"USER_DISABLED":               "Esta cuenta ha sido deshabilitada",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "Demasiados intentos. Intenta más tarde",
	"EMAIL_EXISTS":                "Ya existe una cuenta con este email",
	"WEAK_PASSWORD":               "La contraseña es demasiado débil",
	"INVALID_TOTP_CODE":           "El código de verificación no es válido",
	"EXPIRED_DEVICE_CODE":         "El inicio de sesión con Google expiró. Intenta de nuevo",
	"NETWORK_ERROR":               "No se pudo contactar al servidor de autenticación",
}

// Message converts any sign-in failure into one short user-readable string.
func Message(err error) string {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		if msg, ok := providerMessages[provErr.Code]; ok {
			return msg
		}
		return "Error de autenticación: " + provErr.Code
	}
	return "Error: " + err.Error()
}

func asProviderError(err error, target **ProviderError) bool {
	return errors.As(err, target)
}
