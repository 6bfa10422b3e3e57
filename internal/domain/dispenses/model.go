package dispenses

import (
	"fmt"
	"time"

	"clinic-dispense/internal/domain/dosing"
)

// Dispense records one medication handed to one patient. It references the
// shared medication template and the prescriber; the dose fields are frozen
// at dispense time even if the template changes later.
type Dispense struct {
	ID string

	PatientID    string
	MedicationID string
	ProviderID   string

	// DoseText is the dose as typed ("10", "2.5 mg"). DoseValue is the
	// parsed number the calculator works from; unparsable text parses to 0.
	DoseText  string
	DoseValue float64
	DoseUnit  dosing.DoseUnit

	Quantity     int
	QuantityUnit QuantityUnit

	Frequency     dosing.Frequency
	AmountPerDose int

	Instructions string

	DispenseDate   time.Time
	ExpirationDate *time.Time
	LotNumber      string

	// Active controls dashboard scheduling consideration. Deactivating does
	// not clear NextDoseDue.
	Active bool

	// NextDoseDue is nil while the dispense is unscheduled. Only the
	// scheduler path writes it.
	NextDoseDue *time.Time

	// Sig is the generated patient-facing instruction line.
	Sig string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuantityText is the label form of the dispensed amount, "1 syringe" or
// "30 tablets".
func (d Dispense) QuantityText() string {
	return fmt.Sprintf("%d %s", d.Quantity, d.QuantityUnit.Pluralize(d.Quantity))
}

// Expired reports whether the expiration date has passed. It drives a
// display warning only; expired dispenses stay fully operational.
func (d Dispense) Expired(now time.Time) bool {
	return d.ExpirationDate != nil && d.ExpirationDate.Before(now)
}

// Scheduled reports whether the dispense has a next dose on the calendar.
func (d Dispense) Scheduled() bool {
	return d.NextDoseDue != nil
}
