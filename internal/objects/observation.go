package objects

import (
	"time"
)

// ObservationRecord is a stored satellite/sensor reading. ProductID is nil
// for unowned records, which are visible to everyone but only reachable by a
// direct id fetch.
type ObservationRecord struct {
	ID              int
	Timestamp       *time.Time
	Timezone        string
	Coordinates     string
	SatelliteID     string
	SpectralIndices string
	Notes           string
	ProductID       *int
	Value           string
	Unit            string
	Confidence      *float64
}

// Observation is the serialized form of an ObservationRecord with the owning
// product's display name resolved.
type Observation struct {
	ID              int      `json:"id"`
	Timestamp       *string  `json:"timestamp"`
	Timezone        string   `json:"timezone"`
	Coordinates     string   `json:"coordinates"`
	SatelliteID     string   `json:"satellite_id"`
	SpectralIndices string   `json:"spectral_indices"`
	Notes           string   `json:"notes"`
	ProductID       *int     `json:"product_id"`
	ProductName     string   `json:"product_name"`
	Value           string   `json:"value"`
	Unit            string   `json:"unit"`
	Confidence      *float64 `json:"confidence"`
}

// BulkResult is the response of the bulk insight fetch.
type BulkResult struct {
	Results  []Observation `json:"results"`
	Metadata BulkMetadata  `json:"metadata"`
}

type BulkMetadata struct {
	TotalRequested int           `json:"total_requested"`
	Found          int           `json:"found"`
	FailedCount    int           `json:"failed_count"`
	Failures       []BulkFailure `json:"failures"`
}

type BulkFailure struct {
	ID    int    `json:"id"`
	Error string `json:"error"`
}
