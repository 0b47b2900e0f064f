package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"pharmacy-customers/internal/domain/pincode"
	"pharmacy-customers/internal/infrastructure/monitoring"
	"pharmacy-customers/internal/pkg/apperrors"
)

// PincodeRepository reads the static postal reference table. It is the
// Resolver implementation used for address enrichment; no writes ever happen
// through it.
type PincodeRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ pincode.Resolver = (*PincodeRepository)(nil)

func NewPincodeRepository(db DBPool, logger *slog.Logger) *PincodeRepository {
	if db == nil {
		panic("DBPool cannot be nil for PincodeRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewPincodeRepository, using default stderr handler")
	}
	return &PincodeRepository{
		db:     db,
		logger: logger.With("component", "PincodeRepository"),
	}
}

// Resolve matches the code exactly as supplied; no trimming or zero-padding.
func (r *PincodeRepository) Resolve(ctx context.Context, code string) (*pincode.Pincode, error) {
	r.logger.DebugContext(ctx, "Attempting to resolve pincode", slog.String("pincode", code))
	startTime := time.Now()

	query := `
        SELECT pincode, division_name, region_name, circle_name, state_name
        FROM pincode_master
        WHERE pincode = $1`

	var pin pincode.Pincode
	err := r.db.QueryRow(ctx, query, code).Scan(
		&pin.Code,
		&pin.Division,
		&pin.Region,
		&pin.Circle,
		&pin.State,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			monitoring.RecordDBQuery("ResolvePincode", "not_found", time.Since(startTime))
			r.logger.WarnContext(ctx, "Pincode not found in reference table", slog.String("pincode", code))
			return nil, pincode.ErrNotFound
		}
		monitoring.RecordDBQuery("ResolvePincode", "error", time.Since(startTime))
		r.logger.ErrorContext(ctx, "Failed to query/scan pincode", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to resolve pincode: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("ResolvePincode", "success", time.Since(startTime))
	return &pin, nil
}
