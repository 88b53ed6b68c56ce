package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"truthordare/models"
	"truthordare/storage"
)

type fakePaymentRecorder struct {
	payments []*models.Payment
	err      error
}

func (f *fakePaymentRecorder) RecordPayment(_ context.Context, payment *models.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.payments = append(f.payments, payment)
	return nil
}

func TestUnlockRedeem(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t, storage.NewMemoryStore())
	recorder := &fakePaymentRecorder{}
	unlock := NewUnlockService(catalog, recorder, "test-secret")

	token, err := unlock.IssueToken(&IssueTokenRequest{
		ModeID:        "extreme",
		TransactionID: "txn-42",
		Amount:        2.99,
		Currency:      "EUR",
	}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	payment, err := unlock.Redeem(ctx, token)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if payment.TransactionID != "txn-42" || payment.ModeUnlocked != "extreme" || payment.Status != models.PaymentCompleted {
		t.Fatalf("unexpected payment %+v", payment)
	}
	if len(recorder.payments) != 1 {
		t.Fatalf("payment not recorded")
	}
	if !catalog.IsModeUnlocked("extreme") {
		t.Fatalf("mode still locked")
	}
}

func TestUnlockRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t, storage.NewMemoryStore())
	unlock := NewUnlockService(catalog, &fakePaymentRecorder{}, "test-secret")
	forger := NewUnlockService(catalog, nil, "other-secret")

	forged, err := forger.IssueToken(&IssueTokenRequest{ModeID: "extreme", TransactionID: "txn-1"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	expired, err := unlock.IssueToken(&IssueTokenRequest{ModeID: "extreme", TransactionID: "txn-2"}, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for name, token := range map[string]string{
		"wrong signature": forged,
		"expired":         expired,
		"garbage":         "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := unlock.Redeem(ctx, token); !errors.Is(err, ErrInvalidUnlockToken) {
				t.Fatalf("expected ErrInvalidUnlockToken, got %v", err)
			}
		})
	}
	if catalog.IsModeUnlocked("extreme") {
		t.Fatalf("bad tokens unlocked the mode")
	}
}

func TestUnlockPaymentFailureKeepsModeLocked(t *testing.T) {
	catalog := newTestCatalog(t, storage.NewMemoryStore())
	unlock := NewUnlockService(catalog, &fakePaymentRecorder{err: errors.New("db down")}, "test-secret")

	token, err := unlock.IssueToken(&IssueTokenRequest{ModeID: "extreme", TransactionID: "txn-3"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := unlock.Redeem(context.Background(), token); err == nil {
		t.Fatalf("expected an error")
	}
	if catalog.IsModeUnlocked("extreme") {
		t.Fatalf("mode unlocked without a recorded payment")
	}
}

func TestUnlockRedeemWithUnreadableStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	catalog := newTestCatalog(t, store)
	recorder := &fakePaymentRecorder{}
	unlock := NewUnlockService(catalog, recorder, "test-secret")

	token, err := unlock.IssueToken(&IssueTokenRequest{ModeID: "extreme", TransactionID: "txn-7"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	store.FailReads = true
	payment, err := unlock.Redeem(ctx, token)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if payment == nil || len(recorder.payments) != 1 {
		t.Fatalf("payment not recorded")
	}
	if !catalog.IsModeUnlocked("extreme") {
		t.Fatalf("mode still locked")
	}
}
