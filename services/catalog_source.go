package services

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"truthordare/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogSource fetches the static card document.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*models.CardDatabase, error)
}

// FileCatalogSource reads a cards-database JSON document from disk.
type FileCatalogSource struct {
	Path string
}

func (s FileCatalogSource) LoadCatalog(_ context.Context) (*models.CardDatabase, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return doc.database(), nil
}

// catalogDocument accepts both the snake_case export of this service and the
// camelCase cards-database.json shipped with the mobile app.
type catalogDocument struct {
	Cards []catalogCard `json:"cards"`
	Modes []catalogMode `json:"modes"`
}

type catalogCard struct {
	ID            string              `json:"id"`
	ModeID        string              `json:"mode_id"`
	Mode          string              `json:"mode"`
	Kind          models.CardKind     `json:"kind"`
	CardType      models.CardKind     `json:"cardType"`
	Description   string              `json:"description"`
	Player1Gender models.GenderFilter `json:"player1_gender"`
	P1Gender      models.GenderFilter `json:"player1Gender"`
	Player2Gender models.GenderFilter `json:"player2_gender"`
	P2Gender      models.GenderFilter `json:"player2Gender"`
	Timer         int                 `json:"timer"`
	IsRepeatable  bool                `json:"is_repeatable"`
	Repeatable    bool                `json:"isRepeatable"`
	RequiresPhoto bool                `json:"requires_photo"`
	NeedsPhoto    bool                `json:"requiresPhoto"`
}

type catalogMode struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPremium bool   `json:"is_premium"`
	Premium   bool   `json:"isPremium"`
	IsLocked  bool   `json:"is_locked"`
	Locked    bool   `json:"isLocked"`
}

func (d catalogDocument) database() *models.CardDatabase {
	database := &models.CardDatabase{
		Cards: make([]models.Card, 0, len(d.Cards)),
		Modes: make([]models.Mode, 0, len(d.Modes)),
	}
	for _, m := range d.Modes {
		database.Modes = append(database.Modes, models.Mode{
			ID:        m.ID,
			Name:      m.Name,
			IsPremium: m.IsPremium || m.Premium,
			IsLocked:  m.IsLocked || m.Locked,
		})
	}
	for _, c := range d.Cards {
		database.Cards = append(database.Cards, models.Card{
			ID:            c.ID,
			ModeID:        cmp.Or(c.ModeID, c.Mode),
			Kind:          cmp.Or(c.Kind, c.CardType),
			Description:   c.Description,
			Player1Gender: cmp.Or(c.Player1Gender, c.P1Gender),
			Player2Gender: cmp.Or(c.Player2Gender, c.P2Gender),
			Timer:         c.Timer,
			IsRepeatable:  c.IsRepeatable || c.Repeatable,
			RequiresPhoto: c.RequiresPhoto || c.NeedsPhoto,
		})
	}
	return database
}

// DBCatalogSource loads cards and modes from Postgres.
type DBCatalogSource struct {
	db *gorm.DB
}

func NewDBCatalogSource(db *gorm.DB) *DBCatalogSource {
	return &DBCatalogSource{db: db}
}

func (s *DBCatalogSource) LoadCatalog(ctx context.Context) (*models.CardDatabase, error) {
	var database models.CardDatabase
	if err := s.db.WithContext(ctx).Order("id").Find(&database.Modes).Error; err != nil {
		return nil, fmt.Errorf("query modes: %w", err)
	}
	if err := s.db.WithContext(ctx).Order("mode_id, id").Find(&database.Cards).Error; err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	return &database, nil
}

// Seed upserts a catalog document into the database.
func (s *DBCatalogSource) Seed(ctx context.Context, database *models.CardDatabase) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(database.Modes) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&database.Modes).Error; err != nil {
				return fmt.Errorf("seed modes: %w", err)
			}
		}
		if len(database.Cards) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&database.Cards, 200).Error; err != nil {
				return fmt.Errorf("seed cards: %w", err)
			}
		}
		return nil
	})
}
