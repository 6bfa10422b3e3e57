package providers

import (
	"strings"
	"time"
)

// Provider is a prescriber. Providers are deduplicated by name: the
// dispense flow reuses an existing row whose first and last name match
// instead of creating a new one per prescription.
type Provider struct {
	ID string

	FirstName string
	LastName  string
	Degree    string // MD, DO, NP, ...

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName is "First Last, Degree" with missing parts skipped.
func (p Provider) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if strings.TrimSpace(p.Degree) == "" {
		return name
	}
	if name == "" {
		return strings.TrimSpace(p.Degree)
	}
	return name + ", " + strings.TrimSpace(p.Degree)
}
