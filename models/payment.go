package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TransactionID string         `json:"transaction_id" gorm:"uniqueIndex;not null"`
	Amount        float64        `json:"amount" gorm:"not null"`
	Currency      string         `json:"currency" gorm:"not null"`
	Timestamp     time.Time      `json:"timestamp"`
	ModeUnlocked  string         `json:"mode_unlocked" gorm:"not null"`
	Status        PaymentStatus  `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}
