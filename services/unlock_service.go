package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"truthordare/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UnlockClaims are carried by a premium unlock token. The JWT ID is the
// store transaction id.
type UnlockClaims struct {
	Mode     string  `json:"mode"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	jwt.RegisteredClaims
}

type PaymentRecorder interface {
	RecordPayment(ctx context.Context, payment *models.Payment) error
}

// GormPaymentRecorder stores payments in Postgres. Redeeming the same
// transaction twice keeps the first record.
type GormPaymentRecorder struct {
	db *gorm.DB
}

func NewGormPaymentRecorder(db *gorm.DB) *GormPaymentRecorder {
	return &GormPaymentRecorder{db: db}
}

func (r *GormPaymentRecorder) RecordPayment(ctx context.Context, payment *models.Payment) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "transaction_id"}}, DoNothing: true}).
		Create(payment).Error
	if err != nil {
		return fmt.Errorf("record payment %s: %w", payment.TransactionID, err)
	}
	return nil
}

// UnlockService redeems signed unlock tokens issued after a purchase.
type UnlockService struct {
	catalog  *CatalogService
	payments PaymentRecorder
	secret   []byte
}

func NewUnlockService(catalog *CatalogService, payments PaymentRecorder, secret string) *UnlockService {
	return &UnlockService{
		catalog:  catalog,
		payments: payments,
		secret:   []byte(secret),
	}
}

type RedeemRequest struct {
	Token string `json:"token" binding:"required"`
}

type IssueTokenRequest struct {
	ModeID        string  `json:"mode_id" binding:"required"`
	TransactionID string  `json:"transaction_id" binding:"required"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// IssueToken signs an unlock token for a completed purchase.
func (s *UnlockService) IssueToken(req *IssueTokenRequest, ttl time.Duration) (string, error) {
	if _, err := s.catalog.Mode(req.ModeID); err != nil {
		return "", err
	}

	now := time.Now()
	claims := UnlockClaims{
		Mode:     req.ModeID,
		Amount:   req.Amount,
		Currency: req.Currency,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        req.TransactionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Redeem verifies an unlock token, records the payment and unlocks the mode.
func (s *UnlockService) Redeem(ctx context.Context, tokenString string) (*models.Payment, error) {
	claims := &UnlockClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		log.Printf("Rejected unlock token: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidUnlockToken, err)
	}
	if claims.Mode == "" || claims.ID == "" {
		return nil, fmt.Errorf("%w: missing mode or transaction", ErrInvalidUnlockToken)
	}
	if _, err := s.catalog.Mode(claims.Mode); err != nil {
		return nil, err
	}

	timestamp := time.Now().UTC()
	if claims.IssuedAt != nil {
		timestamp = claims.IssuedAt.UTC()
	}
	payment := &models.Payment{
		TransactionID: claims.ID,
		Amount:        claims.Amount,
		Currency:      claims.Currency,
		Timestamp:     timestamp,
		ModeUnlocked:  claims.Mode,
		Status:        models.PaymentCompleted,
	}

	if s.payments != nil {
		if err := s.payments.RecordPayment(ctx, payment); err != nil {
			return nil, err
		}
	}

	if err := s.catalog.UnlockMode(ctx, claims.Mode); err != nil {
		return payment, err
	}
	log.Printf("Transaction %s unlocked mode %s", payment.TransactionID, payment.ModeUnlocked)
	return payment, nil
}
