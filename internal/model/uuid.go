package model

import (
	"strings"

	"github.com/google/uuid"
)

// nodeNamespace scopes the name-based UUIDs minted by StableID.
var nodeNamespace = uuid.MustParse("8f2c7a4e-3b1d-5e6f-9a0b-c4d5e6f70819")

// StableID derives a deterministic UUIDv5 from a node path. Sources that carry
// no ids of their own use it so a folder keeps its collapse state across runs.
func StableID(parts ...string) string {
	return uuid.NewSHA1(nodeNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}
