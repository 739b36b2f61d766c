package masking

import "time"

// CustomerView is the outbound customer record handed in by callers.
// Optional values are pointers so a hidden value can be nulled.
type CustomerView struct {
	ID          int64      `json:"id"`
	FullName    string     `json:"fullName"`
	Phone       string     `json:"phone"`
	Email       *string    `json:"email"`
	Address     *string    `json:"address"`
	Notes       *string    `json:"notes"`
	Dob         *time.Time `json:"dob"`
	Gender      *string    `json:"gender"`
	TotalSpent  *float64   `json:"totalSpent"`
	TotalPoints *int64     `json:"totalPoints"`
	Tier        *string    `json:"tier"`
	VipStatus   *bool      `json:"vipStatus"`
}

// BasicView is the reduced public projection of a customer.
type BasicView struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}
