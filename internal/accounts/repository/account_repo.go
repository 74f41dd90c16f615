package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/listsmith/listsmith-backend/internal/accounts/domain"
)

const accountKeyPrefix = "account:session:" // Account record: account:session:{session_id}

// AccountRepository handles Redis operations for session accounts.
type AccountRepository struct {
	client *redis.Client
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(client *redis.Client) *AccountRepository {
	return &AccountRepository{client: client}
}

// GetOrCreate returns the session's account, creating a free-plan profile
// on first touch.
func (r *AccountRepository) GetOrCreate(ctx context.Context, sessionID string) (*domain.Account, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}

	a, err := r.get(ctx, sessionID)
	if err == nil {
		return a, nil
	}
	if err != domain.ErrNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	a = &domain.Account{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Plan:      domain.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateProfile merges the patch onto the stored account.
func (r *AccountRepository) UpdateProfile(ctx context.Context, sessionID string, patch *domain.AccountPatch) (*domain.Account, error) {
	a, err := r.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		a.Email = *patch.Email
	}
	if patch.DisplayName != nil {
		a.DisplayName = *patch.DisplayName
	}
	a.UpdatedAt = time.Now().UTC()

	if err := r.save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetPlan switches the account's subscription plan.
func (r *AccountRepository) SetPlan(ctx context.Context, sessionID, plan string) (*domain.Account, error) {
	if !domain.ValidPlan(plan) {
		return nil, domain.ErrInvalidPlan
	}

	a, err := r.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	a.Plan = plan
	a.UpdatedAt = time.Now().UTC()

	if err := r.save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) get(ctx context.Context, sessionID string) (*domain.Account, error) {
	data, err := r.client.Get(ctx, accountKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var a domain.Account
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepository) save(ctx context.Context, a *domain.Account) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	if err := r.client.Set(ctx, accountKeyPrefix+a.SessionID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}
