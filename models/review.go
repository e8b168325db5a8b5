package models

import "time"

// Review is created once per completed booking by the original requester.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"booking_id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	ProviderID string    `bson:"provider_id" json:"provider_id"`
	Rating     int       `bson:"rating" json:"rating"` // 1–5
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// ProviderRating is the derived aggregate stored on the provider document.
type ProviderRating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}
