package account

import "time"

type User struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	Email           string     `json:"email" gorm:"uniqueIndex;not null"`
	DisplayName     string     `json:"display_name"`
	Password        string     `json:"-" gorm:"not null"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
