package model

import "time"

// Account represents an admin login account.
// IDs are assigned by the repository from the current maximum, so
// auto increment is disabled on the column.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	UserName     string    `json:"userName" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
