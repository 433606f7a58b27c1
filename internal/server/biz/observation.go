package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"go.uber.org/fx"

	"github.com/SyedFrazAli/geoscope/internal/log"
	"github.com/SyedFrazAli/geoscope/internal/objects"
	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

type ObservationServiceParams struct {
	fx.In

	Observations   *db.ObservationStore
	Policy         *AccessPolicy
	ProductService *ProductService
}

func NewObservationService(params ObservationServiceParams) *ObservationService {
	return &ObservationService{
		observations:   params.Observations,
		policy:         params.Policy,
		productService: params.ProductService,
	}
}

// ObservationService composes the observation store with the access policy.
// Reads are entitlement-gated; writes are not (a deliberate property of the
// current product design, kept as-is).
type ObservationService struct {
	observations   *db.ObservationStore
	policy         *AccessPolicy
	productService *ProductService
}

// CreateObservationInput carries the only fields accepted at creation time.
// Value is loosely typed because clients send both decimal strings and raw
// numbers.
type CreateObservationInput struct {
	ProductID  *int     `json:"product_id"`
	Value      any      `json:"value"`
	Timestamp  *string  `json:"timestamp"`
	Confidence *float64 `json:"confidence"`
}

// Create stores a new observation and returns its id. Creation is
// unauthenticated and performs structural validation only.
func (s *ObservationService) Create(ctx context.Context, input CreateObservationInput) (int, error) {
	if input.ProductID == nil || *input.ProductID < 1 {
		return 0, fmt.Errorf("product_id must be a positive integer: %w", ErrValidation)
	}

	if input.Value == nil {
		return 0, fmt.Errorf("value is required: %w", ErrValidation)
	}

	value, err := objects.ParseDecimal(input.Value)
	if err != nil {
		return 0, fmt.Errorf("value must be a decimal: %w", ErrValidation)
	}

	// Decimal strings persist verbatim so client-chosen precision survives
	// the round trip; raw numbers take the canonical rendering.
	stored := value.String()
	if s, ok := input.Value.(string); ok {
		stored = s
	}

	rec := &objects.ObservationRecord{
		ProductID:  input.ProductID,
		Value:      stored,
		Confidence: input.Confidence,
	}

	if input.Timestamp != nil && *input.Timestamp != "" {
		t, err := parseTimestamp(*input.Timestamp)
		if err != nil {
			return 0, fmt.Errorf("timestamp must be ISO-8601: %w", ErrValidation)
		}

		rec.Timestamp = lo.ToPtr(t.UTC())
	}

	id, err := s.observations.Create(ctx, rec)
	if err != nil {
		return 0, err
	}

	log.Debug(ctx, "created observation",
		log.Int("observation_id", id),
		log.Int("product_id", *input.ProductID),
	)

	return id, nil
}

// ListVisible returns the observations the user is entitled to see, newest
// first. A caller with no grants gets an empty list, not an error. Records
// without an owning product are excluded from this bulk path; they are only
// reachable by a direct id fetch.
func (s *ObservationService) ListVisible(ctx context.Context, userID string) ([]objects.Observation, error) {
	filter, err := s.policy.VisibleProducts(ctx, userID)
	if err != nil {
		return nil, err
	}

	if filter.Empty() {
		return []objects.Observation{}, nil
	}

	var records []*objects.ObservationRecord
	if filter.All {
		records, err = s.observations.ListAllOwned(ctx)
	} else {
		records, err = s.observations.ListByProducts(ctx, filter.IDs)
	}

	if err != nil {
		return nil, err
	}

	return s.serialize(ctx, records)
}

// GetVisible fetches one record by id, returning db.ErrNotFound if it is
// absent and ErrForbidden if the user holds neither a grant to its product
// nor the universal grant. Unlike ListVisible, the single-record path denies
// loudly.
func (s *ObservationService) GetVisible(ctx context.Context, userID string, id int) (*objects.Observation, error) {
	rec, err := s.observations.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.policy.CanView(ctx, userID, rec.ProductID)
	if err != nil {
		return nil, err
	}

	if !allowed {
		return nil, fmt.Errorf("no subscription for product %d: %w", *rec.ProductID, ErrForbidden)
	}

	serialized, err := s.serialize(ctx, []*objects.ObservationRecord{rec})
	if err != nil {
		return nil, err
	}

	return &serialized[0], nil
}

// Update applies a partial field update. Unknown keys are silently ignored;
// known keys are coerced to their column types. There is no entitlement check
// on writes.
func (s *ObservationService) Update(ctx context.Context, id int, fields map[string]any) error {
	sanitized, err := sanitizeUpdateFields(fields)
	if err != nil {
		return err
	}

	return s.observations.UpdatePartial(ctx, id, sanitized)
}

// Delete removes a record unconditionally, returning db.ErrNotFound if it is
// absent.
func (s *ObservationService) Delete(ctx context.Context, id int) error {
	return s.observations.Delete(ctx, id)
}

// GetBulk fetches several records in one query and reports per-id failures
// instead of failing the whole request.
func (s *ObservationService) GetBulk(ctx context.Context, ids []int) (*objects.BulkResult, error) {
	records, err := s.observations.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	results, err := s.serialize(ctx, records)
	if err != nil {
		return nil, err
	}

	found := lo.SliceToMap(records, func(rec *objects.ObservationRecord) (int, struct{}) {
		return rec.ID, struct{}{}
	})

	failures := []objects.BulkFailure{}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			failures = append(failures, objects.BulkFailure{ID: id, Error: "Record not found"})
		}
	}

	return &objects.BulkResult{
		Results: results,
		Metadata: objects.BulkMetadata{
			TotalRequested: len(ids),
			Found:          len(results),
			FailedCount:    len(failures),
			Failures:       failures,
		},
	}, nil
}

// serialize shapes records for the wire, batch-resolving product display
// names first so no per-record lookup hides inside the mapping.
func (s *ObservationService) serialize(ctx context.Context, records []*objects.ObservationRecord) ([]objects.Observation, error) {
	productIDs := lo.Uniq(lo.FilterMap(records, func(rec *objects.ObservationRecord, _ int) (int, bool) {
		if rec.ProductID == nil {
			return 0, false
		}

		return *rec.ProductID, true
	}))

	names, err := s.productService.NamesByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(rec *objects.ObservationRecord, _ int) objects.Observation {
		return toObservation(rec, names)
	}), nil
}

func toObservation(rec *objects.ObservationRecord, names map[int]string) objects.Observation {
	obs := objects.Observation{
		ID:              rec.ID,
		Timezone:        rec.Timezone,
		Coordinates:     rec.Coordinates,
		SatelliteID:     rec.SatelliteID,
		SpectralIndices: rec.SpectralIndices,
		Notes:           rec.Notes,
		ProductID:       rec.ProductID,
		Value:           rec.Value,
		Unit:            rec.Unit,
		Confidence:      rec.Confidence,
	}

	if rec.Timestamp != nil {
		obs.Timestamp = lo.ToPtr(rec.Timestamp.UTC().Format(time.RFC3339))
	}

	if rec.ProductID != nil {
		name, ok := names[*rec.ProductID]
		if !ok {
			name = fmt.Sprintf("Product #%d", *rec.ProductID)
		}

		obs.ProductName = name
	}

	return obs
}

// sanitizeUpdateFields coerces a raw field map into column-typed values,
// dropping keys that are not writable.
func sanitizeUpdateFields(fields map[string]any) (map[string]any, error) {
	sanitized := make(map[string]any, len(fields))

	for key, value := range fields {
		switch key {
		case "timezone", "coordinates", "satellite_id", "spectral_indices", "notes", "value", "unit":
			s, err := cast.ToStringE(value)
			if err != nil {
				return nil, fmt.Errorf("%s must be a string: %w", key, ErrValidation)
			}

			sanitized[key] = s
		case "product_id":
			if value == nil {
				sanitized[key] = nil
				continue
			}

			id, err := cast.ToIntE(value)
			if err != nil {
				return nil, fmt.Errorf("product_id must be an integer: %w", ErrValidation)
			}

			sanitized[key] = id
		case "confidence":
			if value == nil {
				sanitized[key] = nil
				continue
			}

			f, err := cast.ToFloat64E(value)
			if err != nil {
				return nil, fmt.Errorf("confidence must be a number: %w", ErrValidation)
			}

			sanitized[key] = f
		case "timestamp":
			if value == nil {
				sanitized[key] = nil
				continue
			}

			raw, err := cast.ToStringE(value)
			if err != nil {
				return nil, fmt.Errorf("timestamp must be an ISO-8601 string: %w", ErrValidation)
			}

			t, err := parseTimestamp(raw)
			if err != nil {
				return nil, fmt.Errorf("timestamp must be ISO-8601: %w", ErrValidation)
			}

			sanitized[key] = t.UTC()
		}
	}

	return sanitized, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}
