package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email             string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username          string    `gorm:"size:30;not null;uniqueIndex" json:"username"`
	PasswordHash      string    `gorm:"size:255" json:"-"`
	FirstName         string    `gorm:"size:50" json:"first_name,omitempty"`
	LastName          string    `gorm:"size:50" json:"last_name,omitempty"`
	Bio               string    `gorm:"size:500" json:"bio,omitempty"`
	Location          string    `gorm:"size:100" json:"location,omitempty"`
	Website           string    `gorm:"size:255" json:"website,omitempty"`
	ProfilePictureURL string    `gorm:"size:512" json:"profile_picture_url,omitempty"`
	IsVerified        bool      `gorm:"not null;default:false" json:"is_verified"`
	IsActive          bool      `gorm:"not null" json:"is_active"`

	Timestamp
}

func (User) TableName() string {
	return "users"
}

// UserFollow links a follower to the chef they follow.
type UserFollow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follower_following;index" json:"following_id"`

	Follower  *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (UserFollow) TableName() string {
	return "user_follows"
}
