package jobs

import (
	"context"
	"time"

	"rentalincome-backend/internal/logger"
)

// PromoteDueIncomes confirms PENDING incomes whose cancellation window has
// closed. Promotion happens only here, never inline during ingestion.
func (jr *JobRunner) PromoteDueIncomes() {
	jr.runWithRecovery("PromoteDueIncomes", func() {
		ctx := context.Background()

		promoted, err := jr.incomes.PromoteDue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to promote due incomes", "error", err)
			return
		}

		logger.Info("Promoted due incomes", "count", len(promoted))

		for _, inc := range promoted {
			logger.Debug("Confirmed income, cancellation window expired",
				"income_id", inc.ID,
				"apartment_id", inc.ApartmentID,
				"booking_reference", inc.BookingReference,
				"amount_cents", inc.AmountGrossCents)
		}
	})
}

// CleanupCancelledIncomes deletes cancelled ingested records older than the
// retention window. Pending and confirmed records are never deleted.
func (jr *JobRunner) CleanupCancelledIncomes() {
	jr.runWithRecovery("CleanupCancelledIncomes", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Reconcile.RetentionDays)
		deleted, err := jr.incomes.DeleteCancelledBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to clean up cancelled incomes", "error", err)
			return
		}

		logger.Info("Cleaned up old cancelled incomes",
			"deleted", deleted,
			"cutoff", cutoff.Format("2006-01-02"))
	})
}

// SendActivityReport summarizes the prior day's ingested records by source
// and status and mails the summary to the configured recipient.
func (jr *JobRunner) SendActivityReport() {
	jr.runWithRecovery("SendActivityReport", func() {
		ctx := context.Background()

		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		summary, err := jr.incomes.SummarizeDay(ctx, yesterday)
		if err != nil {
			logger.Error("Failed to summarize daily activity", "error", err)
			return
		}

		logger.Info("Daily reservation activity",
			"date", summary.Date.Format("2006-01-02"),
			"total", summary.Total,
			"confirmed", summary.ByStatus["CONFIRMED"],
			"pending", summary.ByStatus["PENDING"],
			"cancelled", summary.ByStatus["CANCELLED"],
			"amount_cents", summary.TotalAmountCents)

		recipient := jr.config.Reconcile.ReportRecipient
		if recipient == "" || jr.config.SMTP.Host == "" {
			logger.Debug("No report recipient configured, skipping email")
			return
		}

		if err := jr.email.SendDailySummary(ctx, recipient, summary); err != nil {
			logger.Error("Failed to send activity report", "recipient", recipient, "error", err)
		}
	})
}
