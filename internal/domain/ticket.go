package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ticket status
const (
	TicketOpen   = "OPEN"
	TicketClosed = "CLOSED"
)

var plateRegex = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)

// Ticket representa una sesión de parqueo: entrada hasta salida de una placa
type Ticket struct {
	ID             uuid.UUID  `json:"id"`
	Folio          string     `json:"folio"`
	BranchID       uuid.UUID  `json:"branch_id"`
	LicensePlate   string     `json:"license_plate"`
	VehicleType    string     `json:"vehicle_type"`
	EntryTime      time.Time  `json:"entry_time"`
	ExitTime       *time.Time `json:"exit_time,omitempty"`
	Status         string     `json:"status"`
	SubscriptionID *uuid.UUID `json:"subscription_id,omitempty"`
	IsSubscriber   bool       `json:"is_subscriber"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NormalizePlate uppercases and strips separators before validation
func NormalizePlate(plate string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(plate))
	p = strings.ReplaceAll(p, "-", "")
	p = strings.ReplaceAll(p, " ", "")
	if !plateRegex.MatchString(p) {
		return "", ErrInvalidPlate.WithError(errors.New("plate must be 3-10 alphanumeric characters"))
	}
	return p, nil
}

// NewFolio derives a short printable folio from a ticket ID
func NewFolio(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:10])
}

func (t *Ticket) IsOpen() bool {
	return t.Status == TicketOpen
}

// ElapsedAt returns the session duration as of `at`. Negative durations from
// clock skew are reported as zero, never as an error.
func (t *Ticket) ElapsedAt(at time.Time) time.Duration {
	d := at.Sub(t.EntryTime)
	if d < 0 {
		return 0
	}
	return d
}
