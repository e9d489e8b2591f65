package id

import (
	cryptoRand "crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono = ulid.Monotonic(cryptoRand.Reader, 0)
)

// New returns a ULID string. ULIDs sort lexicographically by generation
// time, which keeps journal rows and order ids naturally ordered.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		// Only possible if the entropy source fails or time overflows.
		panic(err)
	}
	return id.String()
}
