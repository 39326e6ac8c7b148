// Package r5 provides the FHIR R5 data structures used to publish medication orders.
package r5

// CodeableConcept represents a concept with text and codings.
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// Coding represents a code from a terminology system.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// Reference represents a reference to another resource.
type Reference struct {
	Reference string `json:"reference,omitempty"`
	Display   string `json:"display,omitempty"`
}

// CodeableReference is new in FHIR R5 - can be either a CodeableConcept or a Reference.
type CodeableReference struct {
	Concept   *CodeableConcept `json:"concept,omitempty"`
	Reference *Reference       `json:"reference,omitempty"`
}

// Quantity represents a measured amount.
type Quantity struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	System string  `json:"system,omitempty"`
	Code   string  `json:"code,omitempty"`
}

// Duration is a Quantity with a temporal unit.
type Duration struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	System string  `json:"system,omitempty"`
	Code   string  `json:"code,omitempty"`
}

// OperationOutcome represents errors and warnings from FHIR operations.
type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

// OperationOutcomeIssue represents a single issue in an OperationOutcome.
type OperationOutcomeIssue struct {
	Severity    string   `json:"severity"` // fatal | error | warning | information
	Code        string   `json:"code"`
	Diagnostics string   `json:"diagnostics,omitempty"`
	Expression  []string `json:"expression,omitempty"`
}

// NewErrorOutcome creates an OperationOutcome with a single error issue.
func NewErrorOutcome(code, diagnostics string, expression ...string) *OperationOutcome {
	return &OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue: []OperationOutcomeIssue{{
			Severity:    "error",
			Code:        code,
			Diagnostics: diagnostics,
			Expression:  expression,
		}},
	}
}

// Common code systems
const (
	SystemUCUM   = "http://unitsofmeasure.org"
	SystemSNOMED = "http://snomed.info/sct"
)

// Medication request statuses and intents
const (
	StatusActive = "active"
	IntentOrder  = "order"
)

// EventTiming codes for daily administration slots
const (
	WhenMorning = "MORN"
	WhenNoon    = "NOON"
	WhenEvening = "EVE"
)

// RouteOral returns the SNOMED CT oral route of administration
func RouteOral() *CodeableConcept {
	return &CodeableConcept{
		Coding: []Coding{{System: SystemSNOMED, Code: "26643006", Display: "Oral route"}},
		Text:   "oral",
	}
}

// RouteIntravenous returns the SNOMED CT intravenous route of administration
func RouteIntravenous() *CodeableConcept {
	return &CodeableConcept{
		Coding: []Coding{{System: SystemSNOMED, Code: "47625008", Display: "Intravenous route"}},
		Text:   "intravenous",
	}
}
