package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drfirst/go-medsig/internal/fhir/mapper"
)

func newFHIRCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fhir",
		Short: "Print the medications as a FHIR R5 Bundle of MedicationRequests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := mapper.NewMedicationToFHIR().ToBundle(sampleMedications())
			if err != nil {
				a.metrics.FHIRMappingFailures.Inc()
				var mapErr *mapper.MapError
				if errors.As(err, &mapErr) {
					a.logger.Error("fhir mapping failed",
						zap.String("field", mapErr.Field),
						zap.String("code", mapErr.Code),
						zap.Error(err))
				}
				return fmt.Errorf("map to fhir: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(bundle); err != nil {
				return fmt.Errorf("write bundle: %w", err)
			}

			a.logger.Info("fhir bundle written",
				zap.String("bundle_id", bundle.ID),
				zap.Int("entries", len(bundle.Entry)))
			return nil
		},
	}
}
