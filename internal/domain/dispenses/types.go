package dispenses

// QuantityUnit is the container kind a dispense is counted in.
type QuantityUnit string

const (
	QuantitySyringe QuantityUnit = "syringe"
	QuantityPen     QuantityUnit = "pen"
	QuantityTablet  QuantityUnit = "tablet"
	QuantityVial    QuantityUnit = "vial"
	QuantityBottle  QuantityUnit = "bottle"
)

var validQuantityUnits = map[QuantityUnit]bool{
	QuantitySyringe: true,
	QuantityPen:     true,
	QuantityTablet:  true,
	QuantityVial:    true,
	QuantityBottle:  true,
}

func (u QuantityUnit) Valid() bool {
	return validQuantityUnits[u]
}

// Pluralize returns the unit word matching n: "syringe" for 1, "syringes"
// otherwise. All supported units pluralize with a plain "s".
func (u QuantityUnit) Pluralize(n int) string {
	if n == 1 {
		return string(u)
	}
	return string(u) + "s"
}

func ParseQuantityUnit(s string) (QuantityUnit, bool) {
	u := QuantityUnit(s)
	return u, u.Valid()
}
