package models

import (
	"fmt"
	"strings"
	"time"
)

type CardKind string

// Placeholders substituted into card descriptions.
const (
	Player1Placeholder = "Player1"
	Player2Placeholder = "Player2"
)

const (
	CardKindAction CardKind = "action"
	CardKindTruth  CardKind = "truth"
)

func ParseCardKind(s string) (CardKind, error) {
	switch CardKind(s) {
	case CardKindAction, CardKindTruth:
		return CardKind(s), nil
	}
	return "", fmt.Errorf("invalid card kind %q", s)
}

// Card is an immutable prompt loaded from the catalog.
type Card struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	ModeID        string       `json:"mode_id" gorm:"not null;index"`
	Kind          CardKind     `json:"kind" gorm:"not null;index"`
	Description   string       `json:"description" gorm:"not null"`
	Player1Gender GenderFilter `json:"player1_gender" gorm:"not null;default:'all'"`
	Player2Gender GenderFilter `json:"player2_gender,omitempty"`
	Timer         int          `json:"timer,omitempty"` // seconds
	IsRepeatable  bool         `json:"is_repeatable" gorm:"not null;default:false"`
	RequiresPhoto bool         `json:"requires_photo" gorm:"not null;default:false"`
	CreatedAt     time.Time    `json:"-"`
	UpdatedAt     time.Time    `json:"-"`
}

// NeedsSecondPlayer reports whether the description references Player2.
func (c Card) NeedsSecondPlayer() bool {
	return c.Player2Gender != "" || strings.Contains(c.Description, Player2Placeholder)
}
