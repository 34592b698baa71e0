package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/pkg/upstream"
	"github.com/iamaamins/sporkbox-client-sub001/repository"
)

// SessionService resolves the authenticated caller from the upstream /users/me
// endpoint. The result is cached briefly in the state store so cart and quote
// requests do not hammer upstream on every keystroke.
type SessionService struct {
	Store repository.StateStore
	API   *upstream.Client
	TTL   time.Duration

	now func() time.Time
}

func NewSessionService(store repository.StateStore, api *upstream.Client) *SessionService {
	return &SessionService{Store: store, API: api, TTL: 5 * time.Minute, now: time.Now}
}

type cachedSession struct {
	FetchedAt int64          `json:"fetchedAt"`
	Session   entity.Session `json:"session"`
}

func sessionKey(userID string) string { return "session-" + userID }

// Current returns the session for the caller, hitting upstream only when the
// cached copy is missing or stale.
func (s *SessionService) Current(ctx context.Context, userID, token string) (*entity.Session, error) {
	if raw, err := s.Store.Get(ctx, sessionKey(userID)); err == nil && raw != "" {
		var c cachedSession
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			if s.now().UnixMilli()-c.FetchedAt < s.TTL.Milliseconds() {
				return &c.Session, nil
			}
		}
	}

	sess, err := s.API.Me(ctx, token)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(cachedSession{FetchedAt: s.now().UnixMilli(), Session: *sess})
	if err == nil {
		err = s.Store.Put(ctx, sessionKey(userID), string(b))
	}
	if err != nil {
		log.Printf("session cache write failed for %s: %v", userID, err)
	}
	return sess, nil
}

// Forget drops the cached session, e.g. after logout.
func (s *SessionService) Forget(ctx context.Context, userID string) {
	if err := s.Store.Delete(ctx, sessionKey(userID)); err != nil {
		log.Printf("session cache delete failed for %s: %v", userID, err)
	}
}
