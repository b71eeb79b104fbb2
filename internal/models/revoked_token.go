package models

import "time"

// RevokedToken records a logged-out token's jti. Rows are only needed until
// the token's own expiry passes.
type RevokedToken struct {
	BaseModel

	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
