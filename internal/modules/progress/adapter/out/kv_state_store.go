package out

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"focusflow/internal/modules/progress/domain"
	progressout "focusflow/internal/modules/progress/port/out"
	"focusflow/internal/platform/kvstore"
)

// Wire keys. Each aggregate field lives under its own key so a corrupt value
// degrades only that field.
const (
	streakKey        = "streak"
	yesterdayKey     = "yesterdayMins"
	lastResetDateKey = "lastResetDate"
	resetTimeKey     = "resetTime"
)

type KVStateStore struct {
	kv kvstore.Store
}

func NewKVStateStore(kv kvstore.Store) progressout.StateStore {
	return &KVStateStore{kv: kv}
}

func (s *KVStateStore) Load(_ context.Context) (domain.DailyState, error) {
	state := domain.DefaultDailyState()

	if raw, found, err := s.kv.Get(streakKey); err != nil {
		return state, fmt.Errorf("load streak: %w", err)
	} else if found {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			state.Streak = n
		} else {
			log.Warn().Str("value", raw).Msg("discarding corrupt streak")
		}
	}

	if raw, found, err := s.kv.Get(yesterdayKey); err != nil {
		return state, fmt.Errorf("load yesterday minutes: %w", err)
	} else if found {
		if mins, err := strconv.ParseFloat(raw, 64); err == nil && mins >= 0 {
			state.YesterdayMinutes = mins
		} else {
			log.Warn().Str("value", raw).Msg("discarding corrupt yesterday minutes")
		}
	}

	if raw, found, err := s.kv.Get(lastResetDateKey); err != nil {
		return state, fmt.Errorf("load last reset date: %w", err)
	} else if found {
		if _, err := time.Parse(domain.DateLayout, raw); err == nil {
			state.LastResetDate = raw
		} else {
			log.Warn().Str("value", raw).Msg("discarding corrupt last reset date")
		}
	}

	if raw, found, err := s.kv.Get(resetTimeKey); err != nil {
		return state, fmt.Errorf("load reset time: %w", err)
	} else if found {
		if domain.ValidTimeOfDay(raw) {
			state.ResetTime = raw
		} else {
			log.Warn().Str("value", raw).Msg("discarding corrupt reset time")
		}
	}

	return state, nil
}

func (s *KVStateStore) Save(_ context.Context, state domain.DailyState) error {
	pairs := []struct {
		key   string
		value string
	}{
		{streakKey, strconv.Itoa(state.Streak)},
		{yesterdayKey, strconv.FormatFloat(state.YesterdayMinutes, 'f', -1, 64)},
		{lastResetDateKey, state.LastResetDate},
		{resetTimeKey, state.ResetTime},
	}
	for _, p := range pairs {
		if err := s.kv.Set(p.key, p.value); err != nil {
			return fmt.Errorf("save %s: %w", p.key, err)
		}
	}
	return nil
}
