package models

import (
	"time"
)

// Account is a user identity record with its student profile attributes.
type Account struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Name        string     `json:"name" db:"name" example:"Jane Doe"`
	Email       string     `json:"email" db:"email" example:"jane@example.edu"`
	Password    string     `json:"-" db:"password"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	Roles       []RoleType `json:"roles" db:"-"`
	Phone       *string    `json:"phone,omitempty" db:"phone" example:"+15555550100"`
	StreamID    *int64     `json:"streamId,omitempty" db:"stream_id" example:"3"`
	JoiningYear *int       `json:"joiningYear,omitempty" db:"joining_year" example:"2023"`
	PassingYear *int       `json:"passingYear,omitempty" db:"passing_year" example:"2027"`
	PictureFID  *int64     `json:"pictureFid,omitempty" db:"picture_fid"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Stream *Term `json:"stream,omitempty"`
}

// HasRole reports whether the account holds role.
func (a *Account) HasRole(role RoleType) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
