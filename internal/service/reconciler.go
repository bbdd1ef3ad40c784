package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iliyamo/doctors-portal/internal/model"
	"github.com/iliyamo/doctors-portal/internal/payment"
	"github.com/iliyamo/doctors-portal/internal/queue"
	"github.com/iliyamo/doctors-portal/internal/repository"
)

// Reconciler turns successful payment confirmations into booking state and
// mints charge intents against the external processor.
type Reconciler struct {
	bookings repository.BookingStore
	payments repository.PaymentStore
	intents  payment.IntentClient
	pub      queue.Publisher
	log      zerolog.Logger
}

// NewReconciler wires a Reconciler.
func NewReconciler(bookings repository.BookingStore, payments repository.PaymentStore,
	intents payment.IntentClient, pub queue.Publisher, log zerolog.Logger) *Reconciler {
	return &Reconciler{bookings: bookings, payments: payments, intents: intents, pub: pub, log: log}
}

// CreateIntent delegates to the payment processor and returns the client
// secret for the caller to complete the charge out of band.  Processor
// failures are never retried here.
func (r *Reconciler) CreateIntent(ctx context.Context, amount int64) (string, error) {
	return r.intents.CreateIntent(ctx, amount)
}

// Reconcile durably appends the payment record, then flips the booking to
// paid with the settling transaction id.  The two writes are not one
// transaction; the append always happens first and is idempotent on the
// transaction id.  When the booking update fails after the append succeeded,
// the inconsistency is logged and handed to the retry queue instead of being
// swallowed, and the error is still returned to the caller.
func (r *Reconciler) Reconcile(ctx context.Context, bookingID string, p *model.Payment) (*model.Booking, error) {
	p.BookingID = bookingID
	if err := r.payments.Append(ctx, p); err != nil {
		return nil, err
	}

	updated, err := r.bookings.MarkPaid(ctx, bookingID, p.TransactionID)
	if errors.Is(err, repository.ErrBookingNotFound) {
		// No booking to recover onto; the appended payment stays behind as
		// the audit trail of the orphan.
		r.log.Error().
			Str("booking_id", bookingID).
			Str("transaction_id", p.TransactionID).
			Msg("payment appended for a booking that does not exist")
		return nil, err
	}
	if err != nil {
		r.log.Error().Err(err).
			Str("booking_id", bookingID).
			Str("transaction_id", p.TransactionID).
			Msg("payment appended but booking update failed; queued for recovery")
		ev := queue.ReconcilePendingEvent{
			EventID:       uuid.NewString(),
			BookingID:     bookingID,
			TransactionID: p.TransactionID,
			ReportedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if perr := r.pub.PublishReconcilePending(ctx, ev); perr != nil {
			r.log.Error().Err(perr).Str("booking_id", bookingID).
				Msg("reconcile-pending publish failed; manual recovery required")
		}
		return nil, err
	}

	ev := queue.PaymentReconciledEvent{
		BookingID:     bookingID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		ReconciledAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if perr := r.pub.PublishPaymentReconciled(ctx, ev); perr != nil {
		r.log.Warn().Err(perr).Str("booking_id", bookingID).Msg("payment.reconciled publish failed")
	}
	return updated, nil
}
