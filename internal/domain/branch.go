package domain

import (
	"time"

	"github.com/google/uuid"
)

// Branch holds the configuration the billing core needs from a branch:
// occupancy capacity per vehicle type and the local timezone that anchors
// settlement windows. Branch administration itself lives outside this core.
type Branch struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Timezone  string         `json:"timezone"`
	Capacity  map[string]int `json:"capacity"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Location resolves the branch timezone, falling back to UTC when unset
func (b *Branch) Location() *time.Location {
	if b.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CapacityFor returns the configured spots for a vehicle type; zero means
// the type is not accepted at this branch.
func (b *Branch) CapacityFor(vehicleType string) int {
	return b.Capacity[vehicleType]
}
