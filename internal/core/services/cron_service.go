package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"loanapi/internal/adapters/persistence/repositories"
	"loanapi/internal/core/domain"

	"github.com/robfig/cron/v3"
)

const digestTimeout = 30 * time.Second

// CronService runs scheduled background jobs
type CronService struct {
	loanRepo repositories.LoanRepository
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCronService creates a cron service that runs the loan digest on schedule
func NewCronService(loanRepo repositories.LoanRepository, schedule string, logger *slog.Logger) *CronService {
	return &CronService{
		loanRepo: loanRepo,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()
		if _, err := s.RunDigest(ctx); err != nil {
			s.logger.Error("loan digest failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("cron service started", "digest_schedule", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("cron service stopped")
}

// RunDigest counts loans per status and logs the result.
// Every status is present in the returned map, zero when no loan has it.
func (s *CronService) RunDigest(ctx context.Context) (map[domain.LoanStatus]int64, error) {
	counts, err := s.loanRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count loans: %w", err)
	}

	digest := make(map[domain.LoanStatus]int64, len(domain.LoanStatuses()))
	for _, st := range domain.LoanStatuses() {
		digest[st] = 0
	}
	for _, c := range counts {
		digest[c.Status] = c.Count
	}

	s.logger.Info("loan digest",
		"processing", digest[domain.LoanStatusProcessing],
		"approved", digest[domain.LoanStatusApproved],
		"rejected", digest[domain.LoanStatusRejected],
	)
	return digest, nil
}
