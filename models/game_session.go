package models

import "time"

type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionEnded      SessionStatus = "ended"
)

// GameSession is the live game state. PlayedCards is authoritative over
// Player.PlayedCardIDs when drawing.
type GameSession struct {
	Players            []Player            `json:"players"`
	CurrentPlayerIndex int                 `json:"current_player_index"`
	ModeID             string              `json:"mode_id"`
	ConsecutiveTruths  int                 `json:"consecutive_truths"`
	PlayedCards        map[string][]string `json:"played_cards"`
	Status             SessionStatus       `json:"status"`
	StartedAt          time.Time           `json:"started_at"`
}

func (s *GameSession) CurrentPlayer() Player {
	return s.Players[s.CurrentPlayerIndex]
}

// Clone deep-copies the session so callers cannot alias the history ledger.
func (s *GameSession) Clone() *GameSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.Clone()
	}
	out.PlayedCards = make(map[string][]string, len(s.PlayedCards))
	for id, cards := range s.PlayedCards {
		out.PlayedCards[id] = append([]string(nil), cards...)
	}
	return &out
}
