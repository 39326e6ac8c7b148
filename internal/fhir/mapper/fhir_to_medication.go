package mapper

import (
	"fmt"
	"math"

	"github.com/drfirst/go-medsig/internal/domain/medication"
	fhir "github.com/drfirst/go-medsig/internal/fhir/r5"
)

// FHIRToMedication transforms MedicationRequests back into medications
type FHIRToMedication struct{}

// NewFHIRToMedication creates a new reverse mapper
func NewFHIRToMedication() *FHIRToMedication {
	return &FHIRToMedication{}
}

// ToMedication rebuilds the medication described by req.
// A rate quantity selects an infusion; otherwise doses are summed per daily slot.
func (m *FHIRToMedication) ToMedication(req *fhir.MedicationRequest) (medication.Medication, error) {
	if req == nil {
		return medication.Medication{}, &MapError{Field: "MedicationRequest", Code: CodeNullInput, Message: "medication request is required"}
	}

	name := req.GetMedicationDisplay()
	if name == "" {
		return medication.Medication{}, &MapError{Field: "MedicationRequest.medication", Code: CodeMissingField, Message: "medication text is required"}
	}

	for i, d := range req.DosageInstruction {
		for _, dr := range d.DoseAndRate {
			if dr.RateQuantity == nil {
				continue
			}
			infusion, err := mapInfusion(i, d, dr.RateQuantity)
			if err != nil {
				return medication.Medication{}, err
			}
			return medication.Medication{DrugName: name, Dosage: infusion}, nil
		}
	}

	tablet, err := mapTablet(req.DosageInstruction)
	if err != nil {
		return medication.Medication{}, err
	}
	return medication.Medication{DrugName: name, Dosage: tablet}, nil
}

// ToMedications maps every MedicationRequest in the bundle
func (m *FHIRToMedication) ToMedications(bundle *fhir.Bundle) ([]medication.Medication, error) {
	if bundle == nil {
		return nil, &MapError{Field: "Bundle", Code: CodeNullInput, Message: "bundle is required"}
	}

	reqs, err := bundle.MedicationRequests()
	if err != nil {
		return nil, &MapError{Field: "Bundle.entry", Code: CodeMissingField, Message: "undecodable entry", Cause: err}
	}

	meds := make([]medication.Medication, 0, len(reqs))
	for _, req := range reqs {
		med, err := m.ToMedication(req)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", medicationType, req.ID, err)
		}
		meds = append(meds, med)
	}
	return meds, nil
}

func mapInfusion(index int, d fhir.Dosage, rate *fhir.Quantity) (medication.Infusion, error) {
	if rate.Unit != UnitRate && rate.Code != UnitRate {
		return medication.Infusion{}, &MapError{
			Field:   fmt.Sprintf("dosageInstruction[%d].doseAndRate.rateQuantity", index),
			Code:    CodeUnsupportedUnit,
			Message: fmt.Sprintf("unsupported rate unit %q", rate.Unit),
		}
	}

	infusion := medication.Infusion{Speed: rate.Value}
	if d.Timing != nil && d.Timing.Repeat != nil && d.Timing.Repeat.BoundsDuration != nil {
		bounds := d.Timing.Repeat.BoundsDuration
		if bounds.Unit != UnitHour && bounds.Code != UnitHour {
			return medication.Infusion{}, &MapError{
				Field:   fmt.Sprintf("dosageInstruction[%d].timing.repeat.boundsDuration", index),
				Code:    CodeUnsupportedUnit,
				Message: fmt.Sprintf("unsupported duration unit %q", bounds.Unit),
			}
		}
		infusion.Duration = int(math.Round(bounds.Value))
	}
	return infusion, nil
}

func mapTablet(dosages []fhir.Dosage) (medication.Tablet, error) {
	var tablet medication.Tablet
	for i, d := range dosages {
		count := 0
		for _, dr := range d.DoseAndRate {
			if dr.DoseQuantity != nil {
				count += int(math.Round(dr.DoseQuantity.Value))
			}
		}
		if d.Timing == nil || d.Timing.Repeat == nil {
			continue
		}
		for _, when := range d.Timing.Repeat.When {
			switch when {
			case fhir.WhenMorning:
				tablet.Morning += count
			case fhir.WhenNoon:
				tablet.Midday += count
			case fhir.WhenEvening:
				tablet.Evening += count
			default:
				return medication.Tablet{}, &MapError{
					Field:   fmt.Sprintf("dosageInstruction[%d].timing.repeat.when", i),
					Code:    CodeUnsupportedTiming,
					Message: fmt.Sprintf("unsupported event timing %q", when),
				}
			}
		}
	}
	return tablet, nil
}
