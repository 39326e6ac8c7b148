package main

import "github.com/drfirst/go-medsig/internal/domain/medication"

// sampleMedications returns the medications printed by every command, in output order
func sampleMedications() []medication.Medication {
	return []medication.Medication{
		{
			DrugName: "Paracetamol",
			Dosage:   medication.Tablet{Morning: 1, Midday: 0, Evening: 2},
		},
		{
			DrugName: "Infliximab",
			Dosage:   medication.Infusion{Speed: 1.5, Duration: 2},
		},
	}
}
