// Package medication defines the medication record and its dosage variants.
package medication

// Kind identifies a dosage variant
type Kind string

const (
	KindTablet   Kind = "tablet"
	KindInfusion Kind = "infusion"
)

// Medication is a drug together with how it is administered
type Medication struct {
	DrugName string
	Dosage   Dosage
}

// Dosage is either a Tablet schedule or an Infusion.
// The set of variants is closed: only this package can implement it.
type Dosage interface {
	// Accept dispatches to the visitor method matching the variant
	Accept(v Visitor)
	// Kind returns the variant name
	Kind() Kind

	sealed()
}

// Visitor handles every dosage variant. Adding a variant adds a method here,
// so every implementation stops compiling until it handles the new case.
type Visitor interface {
	VisitTablet(t Tablet)
	VisitInfusion(i Infusion)
}

// Tablet is a three-times-daily tablet schedule
type Tablet struct {
	Morning int
	Midday  int
	Evening int
}

// Accept implements Dosage
func (t Tablet) Accept(v Visitor) { v.VisitTablet(t) }

// Kind implements Dosage
func (t Tablet) Kind() Kind { return KindTablet }

func (Tablet) sealed() {}

// Infusion is a continuous administration at Speed ml/min for Duration hours
type Infusion struct {
	Speed    float64
	Duration int
}

// Accept implements Dosage
func (i Infusion) Accept(v Visitor) { v.VisitInfusion(i) }

// Kind implements Dosage
func (i Infusion) Kind() Kind { return KindInfusion }

func (Infusion) sealed() {}

// KindOf returns the dosage kind, or "" for a nil dosage
func KindOf(d Dosage) Kind {
	if d == nil {
		return ""
	}
	return d.Kind()
}
