package out

import (
	"context"

	"focusflow/internal/modules/timer/domain"
)

type SessionStore interface {
	// Load never fails into an error state a user sees: absent or corrupt
	// payloads recover to the default seed set, an explicit empty list stays
	// empty.
	Load(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, sessions []domain.Session) error
}

// Chime is the fire-and-forget completion cue. Implementations log their own
// failures; playback never affects timer state.
type Chime interface {
	Play(ctx context.Context)
}
