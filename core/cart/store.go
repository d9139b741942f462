package cart

import (
	"context"
	"encoding/json"

	"github.com/alexedwards/scs/v2"
	"github.com/sirupsen/logrus"
)

// Key under which the serialized cart lives inside the session.
const sessionKey = "mouhajer-cart"

// Store abstracts where a session's cart is kept. The session-backed
// implementation is the production one; tests use the memory store.
type Store interface {
	Load(ctx context.Context) Cart
	Save(ctx context.Context, c Cart) error
}

// SessionStore keeps the cart as a JSON blob inside the scs session,
// rewritten in full on every mutation. A blob that fails to decode is
// logged and discarded, never migrated: the session starts over with
// an empty cart.
type SessionStore struct {
	Session *scs.SessionManager
	Log     logrus.FieldLogger
}

func (s *SessionStore) Load(ctx context.Context) Cart {
	b := s.Session.GetBytes(ctx, sessionKey)
	if len(b) == 0 {
		return Cart{}
	}

	var c Cart
	if err := json.Unmarshal(b, &c); err != nil {
		s.Log.Warnf("discarding unreadable cart blob: %v", err)
		return Cart{}
	}
	return c
}

func (s *SessionStore) Save(ctx context.Context, c Cart) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.Session.Put(ctx, sessionKey, b)
	return nil
}

// MemStore holds a single cart in memory.
type MemStore struct {
	Cart Cart
}

func (m *MemStore) Load(ctx context.Context) Cart { return m.Cart }

func (m *MemStore) Save(ctx context.Context, c Cart) error {
	m.Cart = c
	return nil
}
