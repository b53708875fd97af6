package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers. Version 7 UUIDs sort by
// creation time, which keeps ids of freshly created tasks in creation order.
type UUIDGenerator struct {
	prefix string
}

// NewUUIDGenerator returns a generator of bare UUIDs.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewPrefixedUUIDGenerator returns a generator whose ids start with prefix.
func NewPrefixedUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a new identifier.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return g.prefix + uuid.NewString()
	}

	return g.prefix + v7.String()
}
