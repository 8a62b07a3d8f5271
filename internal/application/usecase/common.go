package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/agrobank/financing-service/internal/application/dto"
	"github.com/agrobank/financing-service/internal/domain/model"
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/internal/domain/valueobject"
)

// appendTimeline writes one audit row inside the caller's transaction. A
// failed timeline write fails the whole operation.
func appendTimeline(
	ctx context.Context,
	repos port.Repositories,
	financingID string,
	actorType valueobject.ActorType,
	actorID, action, note string,
	now time.Time,
) error {
	entry, err := model.NewTimelineEntry(financingID, actorType, actorID, action, note, now)
	if err != nil {
		return fmt.Errorf("build timeline entry: %w", err)
	}
	if err := repos.Timeline().Append(ctx, entry); err != nil {
		return fmt.Errorf("append timeline: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Response mappers
// ---------------------------------------------------------------------------

func toApplicationResponse(app model.FinancingApplication) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:              app.ID(),
		FarmerID:        app.FarmerID(),
		ProductID:       app.ProductID(),
		GroupID:         app.GroupID(),
		Amount:          app.Amount(),
		TermMonths:      app.TermMonths(),
		Purpose:         app.Purpose(),
		Status:          app.Status().String(),
		InterestRate:    app.InterestRate(),
		CreditScore:     app.CreditScore(),
		ReviewerID:      app.ReviewerID(),
		ReviewedAt:      app.ReviewedAt(),
		ReviewComment:   app.ReviewComment(),
		ContractID:      app.ContractID(),
		SignedAt:        app.SignedAt(),
		DisbursedAt:     app.DisbursedAt(),
		DisbursedAmount: app.DisbursedAmount(),
		CreatedAt:       app.CreatedAt(),
		UpdatedAt:       app.UpdatedAt(),
	}
}

func toContractResponse(c model.FinancingContract) dto.ContractResponse {
	return dto.ContractResponse{
		ID:             c.ID(),
		ContractNo:     c.ContractNo(),
		FinancingID:    c.FinancingID(),
		FarmerID:       c.FarmerID(),
		Amount:         c.Amount(),
		InterestRate:   c.InterestRate(),
		TermMonths:     c.TermMonths(),
		Status:         c.Status().String(),
		DocumentURL:    c.DocumentURL(),
		FarmerSignURL:  c.FarmerSignURL(),
		FarmerSignedAt: c.FarmerSignedAt(),
		BankSignURL:    c.BankSignURL(),
		BankSignedAt:   c.BankSignedAt(),
		CreatedAt:      c.CreatedAt(),
	}
}

func toScheduleResponse(s model.RepaymentSchedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:                s.ID(),
		FinancingID:       s.FinancingID(),
		InstallmentNumber: s.InstallmentNumber(),
		DueDate:           s.DueDate(),
		Principal:         s.Principal(),
		Interest:          s.Interest(),
		TotalAmount:       s.TotalAmount(),
		Penalty:           s.Penalty(),
		Status:            s.Status().String(),
		PaidAt:            s.PaidAt(),
		PaidAmount:        s.PaidAmount(),
	}
}

func toRecordResponse(r model.RepaymentRecord) dto.RecordResponse {
	return dto.RecordResponse{
		ID:            r.ID,
		FinancingID:   r.FinancingID,
		ScheduleID:    r.ScheduleID,
		RepaymentType: r.RepaymentType.String(),
		Amount:        r.Amount,
		Principal:     r.Principal,
		Interest:      r.Interest,
		Penalty:       r.Penalty,
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		PaidAt:        r.PaidAt,
	}
}

func toGroupResponse(g model.JointLoanGroup) dto.GroupResponse {
	members := g.Members()
	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.MemberResponse{
			ID:          m.ID,
			FarmerID:    m.FarmerID,
			Amount:      m.Amount,
			Purpose:     m.Purpose,
			Status:      m.Status.String(),
			FinancingID: m.FinancingID,
			JoinedAt:    m.JoinedAt,
			ConfirmedAt: m.ConfirmedAt,
		})
	}
	return dto.GroupResponse{
		ID:              g.ID(),
		CreatorID:       g.CreatorID(),
		TargetAmount:    g.TargetAmount(),
		ConfirmedAmount: g.ConfirmedAmount(),
		TermMonths:      g.TermMonths(),
		Status:          g.Status().String(),
		Members:         out,
		CreatedAt:       g.CreatedAt(),
	}
}

func toTimelineResponse(e model.TimelineEntry) dto.TimelineEntryResponse {
	return dto.TimelineEntryResponse{
		ID:          e.ID,
		FinancingID: e.FinancingID,
		ActorType:   e.ActorType.String(),
		ActorID:     e.ActorID,
		Action:      e.Action,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
	}
}
