package models

import "time"

// Photo is an append-only record of a photo taken for a card.
type Photo struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	DataURL         string    `json:"data_url"`
	CardDescription string    `json:"card_description"`
	PlayerNames     []string  `json:"player_names"`
}
