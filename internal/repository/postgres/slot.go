package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medbook/booking-api/internal/repository"
)

func NewSlotRepository(base BaseRepository) repository.SlotRepository {
	return &slotRepository{base}
}

// ReplaceForDate deletes every unavailable slot for (doctor, date) and inserts
// the new labels inside one transaction, so concurrent updates cannot
// interleave and lose a caller's slots.
func (r *slotRepository) ReplaceForDate(ctx context.Context, doctorID uuid.UUID, date string, labels []string) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM unavailable_slots WHERE doctor_id = $1 AND date = $2::date`,
			doctorID, date,
		); err != nil {
			return fmt.Errorf("failed to clear unavailable slots: %w", err)
		}

		for _, label := range labels {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO unavailable_slots (doctor_id, date, time_slot) VALUES ($1, $2::date, $3)`,
				doctorID, date, label,
			); err != nil {
				return fmt.Errorf("failed to insert unavailable slot: %w", err)
			}
		}
		return nil
	})
}

func (r *slotRepository) ListForDate(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	query := `
		SELECT time_slot
		FROM unavailable_slots
		WHERE doctor_id = $1 AND date = $2::date
		ORDER BY id ASC
	`

	var labels []string
	if err := r.db.SelectContext(ctx, &labels, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list unavailable slots: %w", err)
	}
	return labels, nil
}
