package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'User' is the persistent user record consulted at login. It is the only
 * durable state of the system; everything else lives in process memory.
 */
type User struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Username     string    `gorm:"size:50;not null;uniqueIndex"`
	Email        string    `gorm:"size:100;uniqueIndex"`
	PasswordHash string    `gorm:"size:255"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Free-form per-user stats blob maintained by clients.
	UserStats datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
