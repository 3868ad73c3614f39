package out

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"focusflow/internal/modules/timer/domain"
	timerout "focusflow/internal/modules/timer/port/out"
	"focusflow/internal/platform/kvstore"
)

const sessionsKey = "sessions"

// KVSessionStore persists the full collection as a JSON array under a single
// key, write-through on every mutation.
type KVSessionStore struct {
	kv kvstore.Store
}

func NewKVSessionStore(kv kvstore.Store) timerout.SessionStore {
	return &KVSessionStore{kv: kv}
}

func (s *KVSessionStore) Load(_ context.Context) ([]domain.Session, error) {
	raw, found, err := s.kv.Get(sessionsKey)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if !found {
		return domain.DefaultSessions(), nil
	}
	sessions := domain.ParseSessions(raw, domain.DefaultSessions())
	if len(sessions) == 0 && raw != "[]" {
		// ParseSessions already fell back for garbage; an empty result here
		// means the user explicitly emptied the list.
		log.Debug().Msg("loaded explicit empty session list")
	}
	return sessions, nil
}

func (s *KVSessionStore) Save(_ context.Context, sessions []domain.Session) error {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	payload, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := s.kv.Set(sessionsKey, string(payload)); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}
