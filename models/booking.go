package models

import "time"

// Booking lifecycle statuses. Completed and Cancelled are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Cancellation records who cancelled a booking, why, and when.
type Cancellation struct {
	Reason      string    `bson:"reason" json:"reason"`
	CancelledBy string    `bson:"cancelled_by" json:"cancelledBy"` // actor user ID
	CancelledAt time.Time `bson:"cancelled_at" json:"cancelledAt"`
}

// Booking represents a reserved time slot with a provider.
type Booking struct {
	ID            string        `bson:"id" json:"id"`                         // Unique booking identifier (UUID)
	UserID        string        `bson:"user_id" json:"user_id"`               // User who requested the booking
	ProviderID    string        `bson:"provider_id" json:"provider_id"`       // Provider who was booked
	ServiceID     string        `bson:"service_id" json:"service_id"`         // Service being booked
	Date          string        `bson:"date" json:"date"`                     // Booking date in "YYYY-MM-DD" format
	Start         int           `bson:"start" json:"start"`                   // Start time (minutes from midnight)
	End           int           `bson:"end" json:"end"`                       // End time (minutes from midnight)
	Timezone      string        `bson:"timezone" json:"timezone"`             // IANA timezone name, e.g. "Asia/Kolkata"
	Duration      int           `bson:"duration" json:"duration"`             // Duration in minutes, frozen from the service
	TotalAmount   float64       `bson:"total_amount" json:"total_amount"`     // Copied from the service base price at creation
	PaymentStatus string        `bson:"payment_status" json:"payment_status"` // Owned by the payment collaborator, read-only here
	Status        string        `bson:"status" json:"status"`
	Instructions  string        `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Cancellation  *Cancellation `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	CompletedAt   *time.Time    `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// Active reports whether the booking still holds its slot.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Terminal reports whether the booking has reached a final state.
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}
