// Package mapper provides transformation logic between medications and FHIR R5.
package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drfirst/go-medsig/internal/domain/medication"
	fhir "github.com/drfirst/go-medsig/internal/fhir/r5"
)

// Units used in dosage quantities
const (
	UnitTablet     = "tablet"
	CodeTablet     = "{tbl}"
	UnitRate       = "mL/min"
	UnitHour       = "h"
	fullURLPrefix  = "urn:uuid:"
	medicationType = "MedicationRequest"
)

// MapError represents a mapping error with context
type MapError struct {
	Field   string
	Code    string
	Message string
	Cause   error
}

func (e *MapError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *MapError) Unwrap() error {
	return e.Cause
}

// OperationOutcome reports the error as a FHIR OperationOutcome
func (e *MapError) OperationOutcome() *fhir.OperationOutcome {
	code := "processing"
	switch e.Code {
	case CodeNullInput, CodeMissingField, CodeEmptyDrugName:
		code = "required"
	case CodeUnsupportedTiming, CodeUnsupportedUnit:
		code = "not-supported"
	}
	return fhir.NewErrorOutcome(code, e.Error(), e.Field)
}

// MapError codes
const (
	CodeNullInput         = "NULL_INPUT"
	CodeEmptyDrugName     = "EMPTY_DRUG_NAME"
	CodeMissingField      = "MISSING_FIELD"
	CodeUnsupportedTiming = "UNSUPPORTED_TIMING"
	CodeUnsupportedUnit   = "UNSUPPORTED_UNIT"
)

// MedicationToFHIR transforms medications to FHIR R5 MedicationRequests
type MedicationToFHIR struct {
	// NewID returns the id of each generated resource
	NewID func() string
	// Now stamps authoredOn and bundle timestamps; nil leaves them unset
	Now func() time.Time
}

// NewMedicationToFHIR creates a mapper that assigns random UUIDs
func NewMedicationToFHIR() *MedicationToFHIR {
	return &MedicationToFHIR{
		NewID: func() string { return uuid.New().String() },
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// ToMedicationRequest maps a medication to an active MedicationRequest order
func (m *MedicationToFHIR) ToMedicationRequest(med medication.Medication) (*fhir.MedicationRequest, error) {
	if strings.TrimSpace(med.DrugName) == "" {
		return nil, &MapError{Field: "Medication.DrugName", Code: CodeEmptyDrugName, Message: "drug name is required"}
	}
	if med.Dosage == nil {
		return nil, &MapError{Field: "Medication.Dosage", Code: CodeNullInput, Message: "dosage is required"}
	}

	req := fhir.NewMedicationRequest(m.newID(), med.DrugName)
	if m.Now != nil {
		authored := m.Now()
		req.AuthoredOn = &authored
	}

	text := medication.FormatDosage(med.Dosage)
	req.RenderedDosageInstruction = text

	b := &dosageBuilder{text: text}
	med.Dosage.Accept(b)
	req.DosageInstruction = b.dosages

	return req, nil
}

// ToBundle maps every medication and collects the results in a Bundle
func (m *MedicationToFHIR) ToBundle(meds []medication.Medication) (*fhir.Bundle, error) {
	reqs := make([]*fhir.MedicationRequest, 0, len(meds))
	for i, med := range meds {
		req, err := m.ToMedicationRequest(med)
		if err != nil {
			return nil, fmt.Errorf("medication %d: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return m.BundleOf(reqs...)
}

// BundleOf wraps MedicationRequests in a collection Bundle
func (m *MedicationToFHIR) BundleOf(reqs ...*fhir.MedicationRequest) (*fhir.Bundle, error) {
	bundle := &fhir.Bundle{
		ResourceType: "Bundle",
		ID:           m.newID(),
		Type:         fhir.BundleTypeCollection,
		Total:        len(reqs),
	}
	if m.Now != nil {
		ts := m.Now()
		bundle.Timestamp = &ts
	}

	for _, req := range reqs {
		data, err := req.ToJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal %s/%s: %w", medicationType, req.ID, err)
		}
		bundle.Entry = append(bundle.Entry, fhir.BundleEntry{
			FullURL:  fullURLPrefix + req.ID,
			Resource: data,
		})
	}
	return bundle, nil
}

func (m *MedicationToFHIR) newID() string {
	if m.NewID == nil {
		return uuid.New().String()
	}
	return m.NewID()
}

// dosageBuilder turns a dosage variant into FHIR dosage instructions
type dosageBuilder struct {
	text    string
	dosages []fhir.Dosage
}

// VisitTablet emits one instruction per non-empty daily slot
func (b *dosageBuilder) VisitTablet(t medication.Tablet) {
	slots := []struct {
		when  string
		count int
	}{
		{fhir.WhenMorning, t.Morning},
		{fhir.WhenNoon, t.Midday},
		{fhir.WhenEvening, t.Evening},
	}

	for _, slot := range slots {
		if slot.count == 0 {
			continue
		}
		b.dosages = append(b.dosages, fhir.Dosage{
			Sequence: len(b.dosages) + 1,
			Text:     b.text,
			Route:    fhir.RouteOral(),
			Timing: &fhir.Timing{
				Repeat: &fhir.TimingRepeat{
					Frequency:  1,
					Period:     1,
					PeriodUnit: "d",
					When:       []string{slot.when},
				},
			},
			DoseAndRate: []fhir.DoseAndRate{{
				DoseQuantity: &fhir.Quantity{
					Value:  float64(slot.count),
					Unit:   UnitTablet,
					System: fhir.SystemUCUM,
					Code:   CodeTablet,
				},
			}},
		})
	}
}

// VisitInfusion emits a single rate-bounded instruction
func (b *dosageBuilder) VisitInfusion(i medication.Infusion) {
	b.dosages = append(b.dosages, fhir.Dosage{
		Sequence: 1,
		Text:     b.text,
		Route:    fhir.RouteIntravenous(),
		Timing: &fhir.Timing{
			Repeat: &fhir.TimingRepeat{
				BoundsDuration: &fhir.Duration{
					Value:  float64(i.Duration),
					Unit:   UnitHour,
					System: fhir.SystemUCUM,
					Code:   UnitHour,
				},
			},
		},
		DoseAndRate: []fhir.DoseAndRate{{
			RateQuantity: &fhir.Quantity{
				Value:  i.Speed,
				Unit:   UnitRate,
				System: fhir.SystemUCUM,
				Code:   UnitRate,
			},
		}},
	})
}
