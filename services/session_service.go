package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"truthordare/models"
	"truthordare/storage"
)

// Rules are the tunable game rules. When ForceAction is set a player may not
// pick a truth once TruthLimit truths were drawn in a row.
type Rules struct {
	TruthLimit  int
	ForceAction bool
}

func DefaultRules() Rules {
	return Rules{
		TruthLimit:  3,
		ForceAction: true,
	}
}

// SessionService runs a game: turn rotation, the consecutive truth counter
// and the played cards ledger. It is the only writer of player history.
type SessionService struct {
	catalog *CatalogService
	store   storage.Store
	drawer  *Drawer
	rules   Rules

	mu      sync.Mutex
	session *models.GameSession
	subject *Subject[*models.GameSession]
}

func NewSessionService(catalog *CatalogService, store storage.Store, drawer *Drawer, rules Rules) *SessionService {
	if rules.TruthLimit <= 0 {
		rules.TruthLimit = DefaultRules().TruthLimit
	}
	return &SessionService{
		catalog: catalog,
		store:   store,
		drawer:  drawer,
		rules:   rules,
		subject: NewSubject[*models.GameSession](nil),
	}
}

type StartSessionRequest struct {
	ModeID string `json:"mode_id" binding:"required"`
}

// TurnResult is what a player gets on a successful draw.
type TurnResult struct {
	Player            models.Player  `json:"player"`
	Card              models.Card    `json:"card"`
	Description       string         `json:"description"`
	SecondPlayer      *models.Player `json:"second_player,omitempty"`
	Reset             bool           `json:"history_reset"`
	ConsecutiveTruths int            `json:"consecutive_truths"`
	NextPlayer        models.Player  `json:"next_player"`
}

// Start begins a new game with a snapshot of players. Any running game is
// replaced. On a storage error the game is still started.
func (s *SessionService) Start(ctx context.Context, players []models.Player, modeID string) (*models.GameSession, error) {
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if !s.catalog.IsReady() {
		return nil, ErrCatalogNotLoaded
	}
	mode, err := s.catalog.Mode(modeID)
	if err != nil {
		return nil, err
	}
	if mode.IsLocked {
		return nil, fmt.Errorf("%w: %s", ErrModeLocked, mode.ID)
	}

	session := &models.GameSession{
		Players:            make([]models.Player, len(players)),
		CurrentPlayerIndex: 0,
		ModeID:             mode.ID,
		ConsecutiveTruths:  0,
		PlayedCards:        make(map[string][]string, len(players)),
		Status:             models.SessionInProgress,
		StartedAt:          time.Now(),
	}
	for i, p := range players {
		p.PlayedCardIDs = []string{}
		session.Players[i] = p
		session.PlayedCards[p.ID] = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	log.Printf("Game started in mode %s with %d players", mode.ID, len(players))
	return session.Clone(), s.commit(ctx)
}

// Restore reloads an in-progress game saved by a previous run.
func (s *SessionService) Restore(ctx context.Context) (bool, error) {
	var session models.GameSession
	found, err := s.store.Get(ctx, storage.KeyGameSession, &session)
	if err != nil || !found {
		return false, err
	}
	if session.Status != models.SessionInProgress ||
		len(session.Players) < 2 ||
		session.CurrentPlayerIndex < 0 ||
		session.CurrentPlayerIndex >= len(session.Players) {
		log.Printf("Discarding stored game in invalid state (status=%s, players=%d, index=%d)",
			session.Status, len(session.Players), session.CurrentPlayerIndex)
		return false, nil
	}
	if session.PlayedCards == nil {
		session.PlayedCards = make(map[string][]string)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	s.subject.Publish(session.Clone())
	log.Printf("Restored game in mode %s at player %d", session.ModeID, session.CurrentPlayerIndex)
	return true, nil
}

// RequestAction deals an action to the current player and resets the truth
// counter.
func (s *SessionService) RequestAction(ctx context.Context) (*TurnResult, error) {
	return s.play(ctx, models.CardKindAction)
}

// RequestTruth deals a truth to the current player. It fails with
// ErrMustChooseAction once the truth limit is reached.
func (s *SessionService) RequestTruth(ctx context.Context) (*TurnResult, error) {
	return s.play(ctx, models.CardKindTruth)
}

// MustChooseAction reports whether the next player is forced to take an action.
func (s *SessionService) MustChooseAction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.truthBlocked()
}

// End finishes the game and removes it from the store.
func (s *SessionService) End(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.Status != models.SessionInProgress {
		return ErrSessionNotActive
	}
	s.session.Status = models.SessionEnded
	log.Printf("Game in mode %s ended", s.session.ModeID)
	s.session = nil

	err := s.store.Remove(ctx, storage.KeyGameSession)
	s.subject.Publish(nil)
	return err
}

// Current returns a copy of the running game, or nil.
func (s *SessionService) Current() *models.GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

func (s *SessionService) Subject() *Subject[*models.GameSession] {
	return s.subject
}

func (s *SessionService) Rules() Rules {
	return s.rules
}

func (s *SessionService) play(ctx context.Context, kind models.CardKind) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.Status != models.SessionInProgress {
		return nil, ErrSessionNotActive
	}
	if kind == models.CardKindTruth && s.truthBlocked() {
		return nil, ErrMustChooseAction
	}

	session := s.session
	player := session.CurrentPlayer()

	draw, err := s.drawer.Draw(s.catalog.Cards(), session.ModeID, kind, player, session.PlayedCards[player.ID])
	if err != nil {
		return nil, fmt.Errorf("%w: no %s cards for %s in mode %s", err, kind, player.Name, session.ModeID)
	}
	if draw.Reset {
		log.Printf("All %s cards used by %s in mode %s, history reset", kind, player.Name, session.ModeID)
	}

	session.PlayedCards[player.ID] = draw.History
	session.Players[session.CurrentPlayerIndex].PlayedCardIDs = slices.Clone(draw.History)

	result := &TurnResult{
		Player: player,
		Card:   draw.Card,
		Reset:  draw.Reset,
	}

	second := ""
	if draw.Card.NeedsSecondPlayer() {
		if p2, ok := s.drawer.SelectSecondPlayer(player, session.Players, draw.Card.Player2Gender); ok {
			result.SecondPlayer = &p2
			second = p2.Name
		}
	}
	result.Description = FormatDescription(draw.Card, player.Name, second)

	if kind == models.CardKindAction {
		session.ConsecutiveTruths = 0
	} else {
		session.ConsecutiveTruths++
	}
	s.advanceTurn()

	result.ConsecutiveTruths = session.ConsecutiveTruths
	result.NextPlayer = session.CurrentPlayer()
	result.Player.PlayedCardIDs = slices.Clone(draw.History)

	return result, s.commit(ctx)
}

func (s *SessionService) truthBlocked() bool {
	return s.rules.ForceAction && s.session.ConsecutiveTruths >= s.rules.TruthLimit
}

func (s *SessionService) advanceTurn() {
	s.session.CurrentPlayerIndex = (s.session.CurrentPlayerIndex + 1) % len(s.session.Players)
}

// commit writes the session through to the store and notifies subscribers.
// Callers hold s.mu.
func (s *SessionService) commit(ctx context.Context) error {
	snapshot := s.session.Clone()
	err := s.store.Set(ctx, storage.KeyGameSession, snapshot)
	if err != nil {
		log.Printf("Failed to persist game: %v", err)
	}
	s.subject.Publish(snapshot)
	return err
}
