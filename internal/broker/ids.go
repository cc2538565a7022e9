package broker

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// secureRandInt returns a cryptographically secure random int in [0, max)
func secureRandInt(max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		// crypto/rand never fails on a working platform; ids minted
		// without entropy must not be handed out
		panic("id entropy unavailable: " + err.Error())
	}
	return n.Int64()
}

// newID builds a process-unique token: prefix + unix-milli timestamp + random
// base36 suffix. The timestamp keeps ids sortable; the suffix avoids
// collisions under concurrent creation within the same millisecond.
func newID(prefix string) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idAlphabet[secureRandInt(int64(len(idAlphabet)))]
	}
	return prefix + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + string(suffix)
}

// NewChallengeID returns a fresh challenge identifier.
func NewChallengeID() string {
	return newID("challenge")
}

// NewMatchID returns a fresh match identifier, also used as the room id.
func NewMatchID() string {
	return newID("match")
}

// NewPlaceholderRoomCode returns a 6-digit numeric code that stands in for
// the entry code until a client relays the authoritative one.
func NewPlaceholderRoomCode() string {
	return strconv.FormatInt(100000+secureRandInt(900000), 10)
}
