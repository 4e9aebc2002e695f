package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const DefaultResetTTL = 30 * time.Minute

// ResetToken is a single-use password reset token. Only Hash is persisted.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// IssueResetToken draws 32 random bytes and returns them hex encoded with their sha256 hash.
func IssueResetToken(now time.Time, ttl time.Duration) (ResetToken, error) {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ResetToken{}, fmt.Errorf("read random bytes: %w", err)
	}
	plain := hex.EncodeToString(buf)

	return ResetToken{
		Plain:     plain,
		Hash:      HashResetToken(plain),
		ExpiresAt: now.Add(ttl),
	}, nil
}

// HashResetToken hashes a presented token for lookup.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
