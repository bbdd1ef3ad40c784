// Package queue defines the event payloads the portal exchanges over the
// message broker and the publisher/consumer machinery around them.
package queue

// Queue names.  All queues are declared durable by both ends.
const (
	QueueBookingCreated    = "booking.created"
	QueuePaymentReconciled = "payment.reconciled"
	QueueReconcilePending  = "payment.reconcile.pending"
)

// BookingCreatedEvent is published after a booking passes admission.
type BookingCreatedEvent struct {
	BookingID string `json:"booking_id"`
	Treatment string `json:"treatment"`
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	Patient   string `json:"patient"`
	CreatedAt string `json:"created_at"`
}

// PaymentReconciledEvent is published after a booking's paid transition
// completed successfully.
type PaymentReconciledEvent struct {
	BookingID     string `json:"booking_id"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	ReconciledAt  string `json:"reconciled_at"`
}

// ReconcilePendingEvent marks a reconciliation that appended its payment
// record but failed to update the booking.  A retry worker consumes these and
// re-applies the paid transition; the payment append is idempotent, so the
// retry only ever touches the booking.
type ReconcilePendingEvent struct {
	EventID       string `json:"event_id"`
	BookingID     string `json:"booking_id"`
	TransactionID string `json:"transaction_id"`
	ReportedAt    string `json:"reported_at"`
}
