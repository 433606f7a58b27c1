package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/SyedFrazAli/geoscope/internal/objects"
)

// writableColumns is the static allow-list for partial updates. Anything not
// listed here is silently dropped before reaching SQL.
var writableColumns = []string{
	"timestamp",
	"timezone",
	"coordinates",
	"satellite_id",
	"spectral_indices",
	"notes",
	"product_id",
	"value",
	"unit",
	"confidence",
}

// ObservationStore persists observation records.
type ObservationStore struct {
	client *Client
}

func NewObservationStore(client *Client) *ObservationStore {
	return &ObservationStore{client: client}
}

const observationColumns = `id, timestamp, timezone, coordinates, satellite_id, spectral_indices, notes, product_id, value, unit, confidence`

// Create stores the record, assigning an id and defaulting the timestamp to
// the current UTC time when absent.
func (s *ObservationStore) Create(ctx context.Context, rec *objects.ObservationRecord) (int, error) {
	if rec.Timestamp == nil {
		now := time.Now().UTC()
		rec.Timestamp = &now
	}

	res, err := s.client.db.ExecContext(ctx,
		`INSERT INTO observations (timestamp, timezone, coordinates, satellite_id, spectral_indices, notes, product_id, value, unit, confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(*rec.Timestamp),
		rec.Timezone,
		rec.Coordinates,
		rec.SatelliteID,
		rec.SpectralIndices,
		rec.Notes,
		nullableInt(rec.ProductID),
		rec.Value,
		rec.Unit,
		nullableFloat(rec.Confidence),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert observation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted observation id: %w", err)
	}

	rec.ID = int(id)

	return rec.ID, nil
}

// Get returns the record or ErrNotFound.
func (s *ObservationStore) Get(ctx context.Context, id int) (*objects.ObservationRecord, error) {
	row := s.client.db.QueryRowContext(ctx,
		`SELECT `+observationColumns+` FROM observations WHERE id = ?`, id)

	rec, err := scanObservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to query observation %d: %w", id, err)
	}

	return rec, nil
}

// ListAllOwned returns every record with a non-null product id, newest first.
// Unowned records are only reachable through Get.
func (s *ObservationStore) ListAllOwned(ctx context.Context) ([]*objects.ObservationRecord, error) {
	rows, err := s.client.db.QueryContext(ctx,
		`SELECT `+observationColumns+` FROM observations
		 WHERE product_id IS NOT NULL
		 ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}

	return collectObservations(rows)
}

// ListByProducts returns records owned by one of the given products, newest
// first.
func (s *ObservationStore) ListByProducts(ctx context.Context, productIDs []int) ([]*objects.ObservationRecord, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(productIDs)), ", ")
	args := lo.Map(productIDs, func(id int, _ int) any { return id })

	rows, err := s.client.db.QueryContext(ctx,
		`SELECT `+observationColumns+` FROM observations
		 WHERE product_id IN (`+placeholders+`)
		 ORDER BY timestamp DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations by products: %w", err)
	}

	return collectObservations(rows)
}

// ListByIDs returns the records matching the given ids, in a single query.
// Missing ids are simply absent from the result.
func (s *ObservationStore) ListByIDs(ctx context.Context, ids []int) ([]*objects.ObservationRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := lo.Map(ids, func(id int, _ int) any { return id })

	rows, err := s.client.db.QueryContext(ctx,
		`SELECT `+observationColumns+` FROM observations
		 WHERE id IN (`+placeholders+`)
		 ORDER BY id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations by ids: %w", err)
	}

	return collectObservations(rows)
}

// UpdatePartial applies the given column values to the record. Keys outside
// the writable allow-list are silently ignored. Returns ErrNotFound if the
// record does not exist, including when every key was ignored.
func (s *ObservationStore) UpdatePartial(ctx context.Context, id int, fields map[string]any) error {
	var exists int

	err := s.client.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM observations WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check observation %d: %w", id, err)
	}

	if exists == 0 {
		return ErrNotFound
	}

	var (
		sets []string
		args []any
	)

	for _, column := range writableColumns {
		value, ok := fields[column]
		if !ok {
			continue
		}

		if column == "timestamp" {
			value = encodeTimestamp(value)
		}

		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)

	_, err = s.client.db.ExecContext(ctx,
		`UPDATE observations SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update observation %d: %w", id, err)
	}

	return nil
}

// Delete removes the record, returning ErrNotFound if it is absent.
func (s *ObservationStore) Delete(ctx context.Context, id int) error {
	res, err := s.client.db.ExecContext(ctx, `DELETE FROM observations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete observation %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for observation %d: %w", id, err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func encodeTimestamp(value any) any {
	switch v := value.(type) {
	case time.Time:
		return formatTime(v)
	case *time.Time:
		if v == nil {
			return nil
		}

		return formatTime(*v)
	case nil:
		return nil
	default:
		return value
	}
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}

	return *v
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}

	return *v
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObservation(row rowScanner) (*objects.ObservationRecord, error) {
	var (
		rec        objects.ObservationRecord
		timestamp  sql.NullString
		productID  sql.NullInt64
		confidence sql.NullFloat64
	)

	err := row.Scan(
		&rec.ID,
		&timestamp,
		&rec.Timezone,
		&rec.Coordinates,
		&rec.SatelliteID,
		&rec.SpectralIndices,
		&rec.Notes,
		&productID,
		&rec.Value,
		&rec.Unit,
		&confidence,
	)
	if err != nil {
		return nil, err
	}

	if timestamp.Valid {
		t, err := parseTime(timestamp.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored timestamp %q: %w", timestamp.String, err)
		}

		rec.Timestamp = &t
	}

	if productID.Valid {
		rec.ProductID = lo.ToPtr(int(productID.Int64))
	}

	if confidence.Valid {
		rec.Confidence = lo.ToPtr(confidence.Float64)
	}

	return &rec, nil
}

func collectObservations(rows *sql.Rows) ([]*objects.ObservationRecord, error) {
	defer rows.Close()

	var records []*objects.ObservationRecord

	for rows.Next() {
		rec, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}

	return records, nil
}
