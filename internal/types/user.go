package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the profile row behind a login. Accounts are created by an
// admin, never self-registered.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username        string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email           string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password        string    `gorm:"not null;column:password" json:"-"`
	Role            Role      `gorm:"not null;column:role" json:"role"`
	IsAdmin         bool      `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	AvatarBucketKey string    `gorm:"column:avatar_bucket_key" json:"avatar_bucket_key"`
	AvatarURL       string    `gorm:"column:avatar_url" json:"avatar_url"`
	Activo          bool      `gorm:"not null;default:true;column:activo" json:"activo"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "perfil" }

type UserToken struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	AccessToken  string    `gorm:"uniqueIndex;not null;column:access_token" json:"access_token"`
	RefreshToken string    `gorm:"uniqueIndex;not null;column:refresh_token" json:"refresh_token"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserToken) TableName() string { return "user_token" }
