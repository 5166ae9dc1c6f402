// Package otp generates the TOTP codes used as the optional second factor for
// email sign-in.
package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

const digits = 6

// GenerateTOTP creates a 6-digit TOTP code for the provided base32 secret at
// time t, using the standard 30-second step.
func GenerateTOTP(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	step := uint64(t.Unix() / 30)
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], step)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0F
	code := (uint32(sum[offset])&0x7F)<<24 | (uint32(sum[offset+1])&0xFF)<<16 |
		(uint32(sum[offset+2])&0xFF)<<8 | (uint32(sum[offset+3]) & 0xFF)

	mod := uint32(1)
	for i := 0; i < digits; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%06d", code%mod), nil
}

// decodeSecret accepts base32 with or without padding, as providers hand out both.
func decodeSecret(secret string) ([]byte, error) {
	raw := strings.ToUpper(strings.TrimSpace(secret))
	if raw == "" {
		return nil, fmt.Errorf("empty secret")
	}
	if k, err := base32.StdEncoding.DecodeString(raw); err == nil && len(k) > 0 {
		return k, nil
	}
	np := strings.TrimRight(raw, "=")
	if k, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(np); err == nil && len(k) > 0 {
		return k, nil
	}
	return nil, fmt.Errorf("unsupported TOTP secret format")
}
