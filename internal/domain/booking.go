package domain

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// bookingTransitions defines the legal booking status transitions.
// completed and cancelled are terminal.
var bookingTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// Booking is a treatment reservation created by checkout or by an admin.
// There is deliberately no uniqueness over (treatment, date, time): the
// calendar is managed manually and overlapping slots are an admin decision.
type Booking struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      *int64    `gorm:"index" json:"userId,omitempty"`
	TreatmentID int64     `gorm:"index" json:"treatmentId"`
	Date        string    `gorm:"size:20" json:"date"` // YYYY-MM-DD
	Time        string    `gorm:"size:10" json:"time"` // HH:MM
	Status      string    `gorm:"size:20;default:pending" json:"status"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionBooking reports whether a booking may move from one status
// to another.
func CanTransitionBooking(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
