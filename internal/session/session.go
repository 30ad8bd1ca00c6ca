package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kmswanson/greenwood/pkg/player"
	"github.com/kmswanson/greenwood/pkg/world"
)

// Session is one player's isolated game context: their state plus their
// own copy of the mutable per-room item lists. World topology is shared
// and immutable, so sessions never see each other's mutations.
type Session struct {
	ID        uuid.UUID       `json:"id"`
	Player    *player.Player  `json:"player"`
	Items     world.ItemState `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// New creates a session at the world's starting room with the world's
// initial item placement.
func New(w *world.World) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		Player:    player.New(w.Start),
		Items:     w.NewItemState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store persists sessions. Load returns (nil, nil) when the session does
// not exist.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
	Close() error
}
