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

	"github.com/google/uuid"
)

// PhotoService keeps the append-only log of photos taken during games.
type PhotoService struct {
	store storage.Store

	mu      sync.Mutex
	photos  []models.Photo
	subject *Subject[[]models.Photo]
}

func NewPhotoService(store storage.Store) *PhotoService {
	return &PhotoService{
		store:   store,
		subject: NewSubject[[]models.Photo]([]models.Photo{}),
	}
}

type SavePhotoRequest struct {
	DataURL         string   `json:"data_url" binding:"required"`
	CardDescription string   `json:"card_description"`
	PlayerNames     []string `json:"player_names"`
}

func (s *PhotoService) Load(ctx context.Context) error {
	var photos []models.Photo
	if _, err := s.store.Get(ctx, storage.KeyPhotos, &photos); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = photos
	s.subject.Publish(slices.Clone(photos))
	return nil
}

func (s *PhotoService) Save(ctx context.Context, req *SavePhotoRequest) (*models.Photo, error) {
	if req.DataURL == "" {
		return nil, fmt.Errorf("%w: photo data is required", ErrInvalidInput)
	}

	photo := models.Photo{
		ID:              uuid.NewString(),
		Timestamp:       time.Now().UTC(),
		DataURL:         req.DataURL,
		CardDescription: req.CardDescription,
		PlayerNames:     slices.Clone(req.PlayerNames),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = append(s.photos, photo)
	log.Printf("Photo %s saved for %v", photo.ID, photo.PlayerNames)
	return &photo, s.commit(ctx)
}

func (s *PhotoService) Delete(ctx context.Context, photoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.photos, func(p models.Photo) bool { return p.ID == photoID })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPhotoNotFound, photoID)
	}
	s.photos = slices.Delete(s.photos, idx, idx+1)
	return s.commit(ctx)
}

func (s *PhotoService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.photos = nil
	err := s.store.Remove(ctx, storage.KeyPhotos)
	s.subject.Publish([]models.Photo{})
	return err
}

func (s *PhotoService) List() []models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Photo{}, s.photos...)
}

func (s *PhotoService) Subject() *Subject[[]models.Photo] {
	return s.subject
}

func (s *PhotoService) commit(ctx context.Context) error {
	photos := slices.Clone(s.photos)
	err := s.store.Set(ctx, storage.KeyPhotos, photos)
	if err != nil {
		log.Printf("Failed to persist photos: %v", err)
	}
	s.subject.Publish(photos)
	return err
}
