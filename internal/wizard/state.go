package wizard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "wizard:state:" // Navigation state per project: wizard:state:{project_id}

// navState is the persisted part of a wizard session: just the pointer.
// Completed steps are derived from project data, never stored.
type navState struct {
	CurrentStep int `json:"current_step"`
}

// StateStore persists per-project wizard navigation state in Redis.
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a new StateStore.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

func (s *StateStore) get(ctx context.Context, projectID string) (navState, error) {
	data, err := s.client.Get(ctx, stateKeyPrefix+projectID).Result()
	if err == redis.Nil {
		return navState{CurrentStep: 1}, nil
	}
	if err != nil {
		return navState{}, fmt.Errorf("failed to get wizard state: %w", err)
	}

	var st navState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return navState{}, fmt.Errorf("failed to unmarshal wizard state: %w", err)
	}
	if st.CurrentStep < 1 {
		st.CurrentStep = 1
	}
	return st, nil
}

func (s *StateStore) set(ctx context.Context, projectID string, st navState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard state: %w", err)
	}
	if err := s.client.Set(ctx, stateKeyPrefix+projectID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set wizard state: %w", err)
	}
	return nil
}

func (s *StateStore) delete(ctx context.Context, projectID string) error {
	return s.client.Del(ctx, stateKeyPrefix+projectID).Err()
}
