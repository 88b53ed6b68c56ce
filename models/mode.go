package models

import "time"

// Mode is a themed ruleset gating which cards are eligible.
type Mode struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	IsPremium bool      `json:"is_premium" gorm:"not null;default:false"`
	IsLocked  bool      `json:"is_locked" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relationships
	Cards []Card `json:"-" gorm:"foreignKey:ModeID"`
}

// CardDatabase is the static catalog document: { "cards": [...], "modes": [...] }.
type CardDatabase struct {
	Cards []Card `json:"cards"`
	Modes []Mode `json:"modes"`
}
