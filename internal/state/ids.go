package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator returns a new segment id on each call. Ids are never reused
// within a session.
type IDGenerator func() string

// UUIDGenerator is the production IDGenerator.
func UUIDGenerator() string {
	return uuid.NewString()
}

// SequentialIDs returns a reproducible IDGenerator yielding prefix-1,
// prefix-2, and so on.
func SequentialIDs(prefix string) IDGenerator {
	var counter uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, atomic.AddUint64(&counter, 1))
	}
}
