package utils

import "github.com/google/uuid"

// UUIDGenerator produces restore tokens (sync-log IDs). V7 UUIDs are
// preferred because they sort by creation time, which keeps sync-log
// history scans cheap.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
