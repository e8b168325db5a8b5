package models

// Service is a catalog entry a booking is made against. The catalog itself is
// maintained outside the engine; bookings only read duration and price from it.
type Service struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Duration  int     `bson:"duration" json:"duration"` // minutes
	BasePrice float64 `bson:"base_price" json:"base_price"`
	Active    bool    `bson:"active" json:"active"`
}
