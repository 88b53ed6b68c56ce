package models

// Player is a roster entry. PlayedCardIDs is only written by the session.
type Player struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Gender        Gender   `json:"gender"`
	PlayedCardIDs []string `json:"played_card_ids"`
}

// Clone returns a copy that does not share the history slice.
func (p Player) Clone() Player {
	p.PlayedCardIDs = append([]string(nil), p.PlayedCardIDs...)
	return p
}
