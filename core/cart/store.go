package cart

import (
	"context"
	"encoding/gob"

	"github.com/alexedwards/scs/v2"
)

const sessionKey = "cart"

func init() {
	gob.Register(Cart{})
}

// Store keeps the cart in the browsing session. The session manager
// only persists a value on Put, so mutations must always be written
// back through Put to survive the request.
type Store struct {
	session *scs.SessionManager
}

func NewStore(sm *scs.SessionManager) *Store {
	return &Store{session: sm}
}

// Get returns the session's cart, or an empty one when none exists yet.
func (s *Store) Get(ctx context.Context) Cart {
	c, ok := s.session.Get(ctx, sessionKey).(Cart)
	if !ok {
		return Cart{}
	}
	return c
}

func (s *Store) Put(ctx context.Context, c Cart) {
	s.session.Put(ctx, sessionKey, c)
}

func (s *Store) Clear(ctx context.Context) {
	s.session.Remove(ctx, sessionKey)
}
