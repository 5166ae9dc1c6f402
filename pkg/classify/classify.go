// Package classify decides whether free-form user input should be submitted to
// the verification backend as a link or as plain text.
package classify

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

const (
	// Anything shorter than this is never URL-shaped; real URLs don't fit.
	minURLLength = 8

	// Bare domains ("example.com/...") are only auto-detected below this length.
	maxBareDomainLength = 50
)

// webURLPattern approximates a browser-acceptable web URL: optional scheme,
// dotted host, optional port and path.
var webURLPattern = regexp.MustCompile(`^(?i)(https?://)?([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}(:\d{1,5})?(/[^\s]*)?$`)

// ErrMalformedLink is returned for link-mode input that cannot be a web URL.
var ErrMalformedLink = errors.New("formato de URL no válido")

// IsURLShaped reports whether input looks like something the user meant as a
// link rather than as text to verify. It is used only to *suggest* switching
// to link mode; it never reclassifies a submission on its own.
func IsURLShaped(input string) bool {
	input = strings.TrimSpace(input)

	if utf8.RuneCountInString(input) < minURLLength || strings.Contains(input, " ") {
		return false
	}

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return webURLPattern.MatchString(input)
	}
	if strings.HasPrefix(input, "www.") {
		return webURLPattern.MatchString(input)
	}

	if utf8.RuneCountInString(input) < maxBareDomainLength && isBareDomain(input) {
		return true
	}

	return webURLPattern.MatchString(input)
}

// NormalizeLink prepares link-mode input for submission: schemeless links get
// https:// prefixed, then the result is validated against the web pattern.
func NormalizeLink(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.Contains(input, " ") {
		return "", ErrMalformedLink
	}

	link := input
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = "https://" + link
	}

	if !webURLPattern.MatchString(link) {
		return "", ErrMalformedLink
	}
	return link, nil
}

// IsValidLink reports whether input would be accepted in link mode.
func IsValidLink(input string) bool {
	_, err := NormalizeLink(input)
	return err == nil
}

// isBareDomain accepts "label.tld" or "label.tld/..." hosts whose suffix is a
// real registrable domain according to the public suffix list.
func isBareDomain(input string) bool {
	host := strings.SplitN(input, "/", 2)[0]
	host = strings.SplitN(host, ":", 2)[0]
	if !strings.Contains(host, ".") {
		return false
	}

	if !webURLPattern.MatchString(input) {
		return false
	}

	_, err := publicsuffix.Domain(host)
	return err == nil
}
