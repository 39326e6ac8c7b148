package r5

import (
	"encoding/json"
	"time"
)

// Bundle types
const (
	BundleTypeCollection = "collection"
)

// Bundle is a container for a collection of resources.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Timestamp    *time.Time    `json:"timestamp,omitempty"`
	Total        int           `json:"total,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

// BundleEntry holds one resource of a Bundle.
type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource"`
}

// MedicationRequests decodes every MedicationRequest entry of the bundle,
// skipping entries of other resource types.
func (b *Bundle) MedicationRequests() ([]*MedicationRequest, error) {
	var out []*MedicationRequest
	for _, e := range b.Entry {
		var head struct {
			ResourceType string `json:"resourceType"`
		}
		if err := json.Unmarshal(e.Resource, &head); err != nil {
			return nil, err
		}
		if head.ResourceType != "MedicationRequest" {
			continue
		}
		req := &MedicationRequest{}
		if err := req.FromJSON(e.Resource); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}
