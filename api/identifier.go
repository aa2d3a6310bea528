// File: api/identifier.go
// Author: momentics <momentics@gmail.com>
//
// Allocation identifiers: 128-bit, unguessable, rendered in canonical
// 8-4-4-4-12 hex form on the wire.

package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Identifier is an opaque 128-bit allocation handle. The zero value is
// the empty identifier. client.Client.Allocate returns only a buffer,
// never an Identifier; the client tells local buffers from remote ones by
// whether its address registry holds an entry, not by a zero Identifier.
type Identifier [16]byte

// NewIdentifier draws 128 bits from a CSPRNG. Collisions are
// astronomically unlikely; callers that detect one anyway should
// regenerate rather than trust the duplicate.
func NewIdentifier() (Identifier, error) {
	var id Identifier
	if _, err := rand.Read(id[:]); err != nil {
		return Identifier{}, fmt.Errorf("generate identifier: %w", err)
	}
	return id, nil
}

// IsZero reports whether id is the zero (empty) identifier.
func (id Identifier) IsZero() bool {
	return id == Identifier{}
}

// String renders the identifier in canonical 8-4-4-4-12 hex form.
func (id Identifier) String() string {
	h := hex.EncodeToString(id[:])
	return fmt.Sprintf("%s-%s-%s-%s-%s", h[0:8], h[8:12], h[12:16], h[16:20], h[20:32])
}

// MarshalText implements encoding.TextMarshaler so Identifier can be used
// directly as a JSON string field.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the
// canonical 8-4-4-4-12 form produced by String.
func (id *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseIdentifier parses the canonical 8-4-4-4-12 hex form back into an
// Identifier.
func ParseIdentifier(s string) (Identifier, error) {
	raw := strings.ReplaceAll(s, "-", "")
	decoded, err := hex.DecodeString(raw)
	if err != nil || len(decoded) != len(Identifier{}) {
		return Identifier{}, fmt.Errorf("parse identifier %q: malformed", s)
	}
	var id Identifier
	copy(id[:], decoded)
	return id, nil
}
