package models

// Provider is the service-performing party a booking is made against.
type Provider struct {
	ID       string         `bson:"id" json:"id"`
	Name     string         `bson:"name" json:"name"`
	Email    string         `bson:"email" json:"email"`
	Phone    string         `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken string         `bson:"fcm_token,omitempty" json:"-"`
	Active   bool           `bson:"active" json:"active"`
	Rating   ProviderRating `bson:"rating" json:"rating"`
}
