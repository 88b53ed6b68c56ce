package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"truthordare/models"
	"truthordare/storage"

	"github.com/agnivade/levenshtein"
)

// CatalogService holds the cards and modes loaded from a CatalogSource. Cards
// never change between loads; only a mode's lock state does.
type CatalogService struct {
	source CatalogSource
	store  storage.Store

	mu     sync.RWMutex
	cards  []models.Card
	modes  []models.Mode
	loaded bool

	modesSubject *Subject[[]models.Mode]

	// unlockMu serializes the unlockedModes read-modify-write.
	unlockMu sync.Mutex
}

func NewCatalogService(source CatalogSource, store storage.Store) *CatalogService {
	return &CatalogService{
		source:       source,
		store:        store,
		modesSubject: NewSubject[[]models.Mode](nil),
	}
}

// Load fetches the catalog and applies the persisted unlocked modes. A failed
// reload keeps the previously loaded catalog.
func (s *CatalogService) Load(ctx context.Context) error {
	database, err := s.source.LoadCatalog(ctx)
	if err != nil {
		log.Printf("Error loading card catalog: %v", err)
		return fmt.Errorf("%w: %v", ErrCatalogLoad, err)
	}

	cards := make([]models.Card, 0, len(database.Cards))
	for _, card := range database.Cards {
		if _, err := models.ParseCardKind(string(card.Kind)); err != nil {
			log.Printf("Skipping card %s: %v", card.ID, err)
			continue
		}
		if card.Player1Gender == "" {
			card.Player1Gender = models.GenderFilterAll
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 && len(database.Cards) > 0 {
		log.Printf("Error loading card catalog: all %d cards rejected", len(database.Cards))
		return fmt.Errorf("%w: all %d cards rejected", ErrCatalogLoad, len(database.Cards))
	}

	var unlocked []string
	if _, err := s.store.Get(ctx, storage.KeyUnlockedModes, &unlocked); err != nil {
		log.Printf("Could not read unlocked modes, premium modes stay locked: %v", err)
	}

	modes := slices.Clone(database.Modes)
	for i := range modes {
		modes[i].IsLocked = (modes[i].IsPremium || modes[i].IsLocked) && !slices.Contains(unlocked, modes[i].ID)
	}

	s.mu.Lock()
	s.cards = cards
	s.modes = modes
	s.loaded = true
	s.mu.Unlock()

	log.Printf("Loaded %d cards and %d modes", len(cards), len(modes))
	s.modesSubject.Publish(slices.Clone(modes))
	return nil
}

// Reload re-fetches the catalog from its source.
func (s *CatalogService) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *CatalogService) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Cards returns the loaded cards. The slice must not be modified.
func (s *CatalogService) Cards() []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cards
}

func (s *CatalogService) Modes() []models.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.modes)
}

func (s *CatalogService) ModesSubject() *Subject[[]models.Mode] {
	return s.modesSubject
}

func (s *CatalogService) Mode(id string) (models.Mode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return models.Mode{}, ErrCatalogNotLoaded
	}
	for _, m := range s.modes {
		if m.ID == id {
			return m, nil
		}
	}
	if suggestion := s.suggestMode(id); suggestion != "" {
		return models.Mode{}, fmt.Errorf("%w: %q (did you mean %q?)", ErrModeNotFound, id, suggestion)
	}
	return models.Mode{}, fmt.Errorf("%w: %q", ErrModeNotFound, id)
}

func (s *CatalogService) IsModeUnlocked(id string) bool {
	mode, err := s.Mode(id)
	return err == nil && !mode.IsLocked
}

// UnlockMode marks a mode as unlocked and records it in the store so the
// unlock survives restarts. Unlocking an unlocked mode is a no-op. The
// in-memory unlock always applies; a persistence failure wraps storage.ErrWrite.
func (s *CatalogService) UnlockMode(ctx context.Context, id string) error {
	s.unlockMu.Lock()
	defer s.unlockMu.Unlock()

	s.mu.Lock()
	idx := slices.IndexFunc(s.modes, func(m models.Mode) bool { return m.ID == id })
	if !s.loaded {
		s.mu.Unlock()
		return ErrCatalogNotLoaded
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrModeNotFound, id)
	}
	if !s.modes[idx].IsLocked {
		s.mu.Unlock()
		return nil
	}
	s.modes[idx].IsLocked = false
	modes := slices.Clone(s.modes)
	s.mu.Unlock()

	log.Printf("Mode %s unlocked", id)
	s.modesSubject.Publish(modes)

	var unlocked []string
	if _, err := s.store.Get(ctx, storage.KeyUnlockedModes, &unlocked); err != nil {
		log.Printf("Could not read unlocked modes, rebuilding from catalog: %v", err)
		unlocked = unlocked[:0]
		for _, m := range modes {
			if m.IsPremium && !m.IsLocked {
				unlocked = append(unlocked, m.ID)
			}
		}
	}
	if !slices.Contains(unlocked, id) {
		unlocked = append(unlocked, id)
	}
	if err := s.store.Set(ctx, storage.KeyUnlockedModes, unlocked); err != nil {
		if errors.Is(err, storage.ErrWrite) {
			return err
		}
		return fmt.Errorf("%w: %v", storage.ErrWrite, err)
	}
	return nil
}

// AvailableCardCount counts the cards of a kind a player of gender could draw
// in a mode, ignoring play history.
func (s *CatalogService) AvailableCardCount(modeID string, kind models.CardKind, gender models.Gender) (int, error) {
	if _, err := s.Mode(modeID); err != nil {
		return 0, err
	}
	return AvailableCardCount(s.Cards(), modeID, kind, gender), nil
}

func (s *CatalogService) suggestMode(id string) string {
	needle := strings.ToLower(id)
	best, bestDist := "", -1
	for _, m := range s.modes {
		for _, candidate := range []string{m.ID, m.Name} {
			dist := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
			if dist > suggestionLimit(len(candidate)) {
				continue
			}
			if bestDist < 0 || dist < bestDist {
				best, bestDist = m.ID, dist
			}
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// IsCatalogError reports whether err means no draws are possible.
func IsCatalogError(err error) bool {
	return errors.Is(err, ErrCatalogLoad) || errors.Is(err, ErrCatalogNotLoaded)
}
