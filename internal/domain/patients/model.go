package patients

import (
	"strings"
	"time"
)

// Patient is one person the practice dispenses to.
type Patient struct {
	ID string

	FirstName  string
	MiddleName string
	LastName   string

	BirthDate *time.Time

	// Active controls whether the patient is considered by the dispensing
	// dashboard. Deactivating hides the patient without touching records.
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the name parts, skipping empty ones.
func (p Patient) FullName() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, " ")
}

// DisplayName is the "Last, First" form used by roster lists and labels.
func (p Patient) DisplayName() string {
	last := strings.TrimSpace(p.LastName)
	first := strings.TrimSpace(p.FirstName)
	switch {
	case last == "":
		return first
	case first == "":
		return last
	default:
		return last + ", " + first
	}
}
