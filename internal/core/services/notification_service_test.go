package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"loanapi/internal/core/domain"
	"loanapi/internal/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func TestNotifyLoanPublishesWithTypeAsRoutingKey(t *testing.T) {
	pub := new(mockPublisher)
	svc := NewNotificationService(pub, logger.Discard())

	event := LoanEvent{
		Type:       LoanCreated,
		LoanID:     1,
		AccountID:  2,
		Status:     domain.LoanStatusProcessing,
		ByOwner:    true,
		OccurredAt: time.Now().UTC(),
	}
	pub.On("Publish", mock.Anything, "loan.created", event).Return(nil).Once()

	svc.NotifyLoan(context.Background(), event)
	pub.AssertExpectations(t)
}

func TestNotifyLoanSwallowsPublishErrors(t *testing.T) {
	pub := new(mockPublisher)
	svc := NewNotificationService(pub, logger.Discard())

	pub.On("Publish", mock.Anything, "loan.deleted", mock.Anything).Return(errors.New("channel closed"))

	// a cancelled request context must not stop the publish
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.NotifyLoan(ctx, LoanEvent{Type: LoanDeleted, LoanID: 3})

	pub.AssertNumberOfCalls(t, "Publish", 1)
}
