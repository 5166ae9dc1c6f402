package utils

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
)

var Log = logrus.New()

func SetLogLevel(level string) {
	// We are not using logrus' trace and panic levels
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "info":
		Log.SetLevel(log.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	case "fatal":
		Log.SetLevel(log.FatalLevel)
	default:
		log.Fatal("Bad error level string")
	}
}

// Truncate shortens s to max runes, appending "..." when it was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Capitalize upper-cases the first rune of s, leaving the rest untouched.
func Capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// FormatTimestamp reformats an ISO timestamp ("2024-01-15T12:30:45") into the
// short form shown in the history drawer ("2024/01/15 12:30"). Anything
// unparseable is returned as-is.
func FormatTimestamp(ts string) string {
	cleaned := strings.Replace(ts, "T", " ", 1)
	if len(cleaned) < 16 {
		return ts
	}
	return strings.ReplaceAll(cleaned[:16], "-", "/")
}
