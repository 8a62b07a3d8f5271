package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/service"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// ReviewApplicationUseCase applies a bank reviewer's decision to a pending
// application.
type ReviewApplicationUseCase struct {
	uow      port.UnitOfWork
	notifier port.NotificationPort
	policy   *service.CreditPolicy
}

// NewReviewApplicationUseCase wires dependencies.
func NewReviewApplicationUseCase(
	uow port.UnitOfWork,
	notifier port.NotificationPort,
	policy *service.CreditPolicy,
) *ReviewApplicationUseCase {
	return &ReviewApplicationUseCase{uow: uow, notifier: notifier, policy: policy}
}

// Execute approves or rejects an application. Approval requires an interest
// rate and credit score and is checked against the credit policy; rejection
// requires a comment.
func (uc *ReviewApplicationUseCase) Execute(
	ctx context.Context,
	req dto.ReviewApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	var resp dto.ApplicationResponse
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos port.Repositories) error {
		// 1. Load the application.
		app, err := repos.Applications().FindByID(ctx, req.ApplicationID)
		if err != nil {
			return fmt.Errorf("find application: %w", err)
		}

		// 2. Apply the decision.
		switch req.Decision {
		case dto.DecisionApprove:
			assessment := uc.policy.Evaluate(req.CreditScore, app.Amount(), app.TermMonths())
			if !assessment.Approvable {
				return valueobject.NewValidation("credit policy refuses approval: %s", assessment.Reason)
			}
			app, err = app.Approve(req.ReviewerID, req.InterestRate, req.CreditScore, req.Comment, now)
		case dto.DecisionReject:
			app, err = app.Reject(req.ReviewerID, req.Comment, now)
		default:
			return valueobject.NewValidation("unknown review decision: %q", req.Decision)
		}
		if err != nil {
			return fmt.Errorf("apply decision: %w", err)
		}

		// 3. Persist.
		if err := repos.Applications().Save(ctx, app); err != nil {
			return fmt.Errorf("save application: %w", err)
		}

		// 4. Audit.
		if err := appendTimeline(ctx, repos,
			app.ID(), valueobject.ActorBank, req.ReviewerID, "review:"+req.Decision, req.Comment, now); err != nil {
			return err
		}

		// 5. Collect domain events for the outbox.
		repos.Events().Record(app.DomainEvents()...)

		resp = toApplicationResponse(app.ClearEvents())
		return nil
	})
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	uc.notifier.Notify(ctx, resp.FarmerID, "financing.reviewed", map[string]any{
		"application_id": resp.ID,
		"status":         resp.Status,
	})
	return resp, nil
}
