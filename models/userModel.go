package models

import "time"

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:191"`
	Phone        string    `json:"phone"`
	Password     string    `json:"-"`
	ReferralCode string    `json:"referralCode" gorm:"uniqueIndex;size:16"`
	ReferredBy   *string   `json:"referredBy" gorm:"size:16;index"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupData struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
}

// UserUpdate carries a partial profile edit; nil fields are left untouched.
type UserUpdate struct {
	FullName  *string `json:"fullName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatarUrl"`
}

type ReferralCodeData struct {
	Code string `json:"code" binding:"required"`
}

// Apply merges the non-nil fields of u into user.
func (u UserUpdate) Apply(user *User) {
	if u.FullName != nil {
		user.FullName = *u.FullName
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Phone != nil {
		user.Phone = *u.Phone
	}
	if u.AvatarURL != nil {
		user.AvatarURL = *u.AvatarURL
	}
}
