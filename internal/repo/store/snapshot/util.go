package snapshot

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/keshon/wit/internal/config"
)

// maxIDAttempts bounds id regeneration on collision.
const maxIDAttempts = 16

// NewCommitID derives a fresh commit id from a random seed and the commit
// fields. Ids are opaque: two commits with the same content get different ids.
func NewCommitID(parentIDs []string, message string, ts time.Time) string {
	seed := uuid.New()

	data := make([]byte, 0, 128)
	data = append(data, seed[:]...)
	data = append(data, strings.Join(parentIDs, ",")...)
	data = append(data, '\n')
	data = append(data, message...)
	data = append(data, '\n')
	data = append(data, ts.Format(time.RFC3339Nano)...)

	id := fmt.Sprintf("%x", xxh3.Hash128(data).Bytes())
	return id[:config.CommitIDLength]
}

// IsCommitID reports whether s has the shape of a commit id.
func IsCommitID(s string) bool {
	if len(s) != config.CommitIDLength {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
