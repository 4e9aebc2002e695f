package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// GeneratePaymentID creates a payment intent id with timestamp.
// Format: PAY-YYYYMMDD-HHMMSS-RANDOM
func GeneratePaymentID(now time.Time) string {
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%06d", rand.Intn(1000000))

	return fmt.Sprintf("PAY-%s-%s-%s", datePart, timePart, randomPart)
}

// Slugify lowercases s and joins its alphanumeric runs with '-'.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
