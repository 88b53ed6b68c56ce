package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"truthordare/models"
	"truthordare/storage"

	"github.com/google/uuid"
)

// RosterService manages the players before a game starts.
type RosterService struct {
	store storage.Store

	mu      sync.Mutex
	players []models.Player
	subject *Subject[[]models.Player]
}

func NewRosterService(store storage.Store) *RosterService {
	return &RosterService{
		store:   store,
		subject: NewSubject[[]models.Player]([]models.Player{}),
	}
}

type AddPlayerRequest struct {
	Name   string `json:"name" binding:"required"`
	Gender string `json:"gender" binding:"required"`
}

// Load replaces the in-memory roster with the stored one.
func (s *RosterService) Load(ctx context.Context) error {
	var players []models.Player
	if _, err := s.store.Get(ctx, storage.KeyPlayers, &players); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = players
	s.subject.Publish(clonePlayers(players))
	return nil
}

// Add appends a player. Names are unique ignoring case. On a storage error
// the player is still added and returned along with the error.
func (s *RosterService) Add(ctx context.Context, req *AddPlayerRequest) (*models.Player, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Gender) == "" {
		return nil, fmt.Errorf("%w: name and gender are required", ErrInvalidInput)
	}
	gender, err := models.ParseGender(req.Gender)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.players {
		if strings.EqualFold(p.Name, name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}

	player := models.Player{
		ID:            uuid.NewString(),
		Name:          name,
		Gender:        gender,
		PlayedCardIDs: []string{},
	}
	s.players = append(s.players, player)
	log.Printf("Player %s (%s) added to roster", player.Name, player.ID)

	return &player, s.commit(ctx)
}

func (s *RosterService) Remove(ctx context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.players, func(p models.Player) bool { return p.ID == playerID })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	s.players = slices.Delete(s.players, idx, idx+1)
	log.Printf("Player %s removed from roster", playerID)

	return s.commit(ctx)
}

func (s *RosterService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = nil
	err := s.store.Remove(ctx, storage.KeyPlayers)
	s.subject.Publish([]models.Player{})
	return err
}

func (s *RosterService) List() []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlayers(s.players)
}

func (s *RosterService) Subject() *Subject[[]models.Player] {
	return s.subject
}

// commit writes the roster through to the store and notifies subscribers.
// Callers hold s.mu.
func (s *RosterService) commit(ctx context.Context) error {
	players := clonePlayers(s.players)
	err := s.store.Set(ctx, storage.KeyPlayers, players)
	if err != nil {
		log.Printf("Failed to persist roster: %v", err)
	}
	s.subject.Publish(players)
	return err
}

func clonePlayers(players []models.Player) []models.Player {
	out := make([]models.Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
