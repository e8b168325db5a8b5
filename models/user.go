package models

// Actor roles recognised by the lifecycle authorization rules.
const (
	RoleUser     = "user"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User is the requesting party of a booking.
type User struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken string `bson:"fcm_token,omitempty" json:"-"`
	Role     string `bson:"role" json:"role"`
}

// Actor identifies who is performing a lifecycle operation.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
