package models

// AvailabilityWindow represents a provider's recurring open hours for one weekday.
// Windows are maintained by the provider profile side and are read-only to the
// scheduling engine.
type AvailabilityWindow struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"provider_id" json:"provider_id"`
	Weekday    int    `bson:"weekday" json:"weekday"` // 0 = Sunday ... 6 = Saturday
	Start      int    `bson:"start" json:"start"`     // minutes from midnight (e.g., 540 for 9:00 AM)
	End        int    `bson:"end" json:"end"`         // minutes from midnight (e.g., 1080 for 6:00 PM)
	Active     bool   `bson:"active" json:"active"`
}

// Contains reports whether the interval [start, end) fits inside the window.
func (w AvailabilityWindow) Contains(start, end int) bool {
	return start >= w.Start && end <= w.End
}
