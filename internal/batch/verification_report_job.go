package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pharmacy-customers/internal/domain/customer"
	"pharmacy-customers/internal/infrastructure/monitoring"
)

// VerificationReportJob counts customers whose contact channels remain
// unverified and exports the counts as gauges. It is strictly read-only: the
// request path stays the only writer of customer state.
type VerificationReportJob struct {
	repo   customer.Repository
	logger *slog.Logger
}

func NewVerificationReportJob(repo customer.Repository, logger *slog.Logger) *VerificationReportJob {
	if repo == nil || logger == nil {
		panic("VerificationReportJob dependencies cannot be nil")
	}
	return &VerificationReportJob{
		repo:   repo,
		logger: logger.With("job", "VerificationReport"),
	}
}

func (j *VerificationReportJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting nightly verification report job.")

	customers, err := j.repo.FindAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}

	var unverifiedEmail, unverifiedPhone int
	for _, cust := range customers {
		if cust.EmailVerified != customer.Verified {
			unverifiedEmail++
		}
		if cust.PhoneVerified != customer.Verified {
			unverifiedPhone++
		}
	}

	monitoring.Business.UnverifiedEmailGauge.Set(float64(unverifiedEmail))
	monitoring.Business.UnverifiedPhoneGauge.Set(float64(unverifiedPhone))

	j.logger.InfoContext(ctx, "Verification report job finished.",
		slog.Int("customers", len(customers)),
		slog.Int("unverified_email", unverifiedEmail),
		slog.Int("unverified_phone", unverifiedPhone),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
