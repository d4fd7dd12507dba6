package entity

// User mirrors the Cognito account locally. SubUUID is the "sub" claim of
// the pool tokens and is how the auth middleware resolves requests to rows.
type User struct {
	ID            int64  `gorm:"primaryKey"`
	SubUUID       string `gorm:"not null;uniqueIndex"`
	Username      string `gorm:"not null"`
	Email         string `gorm:"not null"`
	EmailVerified bool   `gorm:"not null"`
	Active        bool   `gorm:"not null;default:true"`
	Suspended     bool   `gorm:"not null;default:false"`
	CreatedAt     int64  `gorm:"not null"`
	UpdatedAt     int64  `gorm:"not null;autoUpdateTime:false"`
}
