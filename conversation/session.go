package conversation

import (
	"time"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/patrickmn/go-cache"
)

// Session is the scratch state of one booking attempt.
type Session struct {
	ConversationID string
	UserID         string
	UserName       string
	State          State
	Location       string
	ResourceName   string
	TimeSlot       string
	Name           string
	Phone          string
	OfferedSlots   []string
	Pending        *bk.Booking
	StartedAt      time.Time
}

// SessionStore keeps at most one session per user in each conversation, in
// memory only. Sessions idle for longer than the TTL expire and read as absent.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		return &SessionStore{cache: cache.New(cache.NoExpiration, 0)}
	}

	return &SessionStore{cache: cache.New(ttl, 2*ttl)}
}

func (s *SessionStore) Get(conversationID, userID string) (*Session, bool) {
	cached, found := s.cache.Get(sessionKey(conversationID, userID))

	if !found {
		return nil, false
	}

	return cached.(*Session), true
}

// Create replaces any session userID already holds in conversationID.
func (s *SessionStore) Create(conversationID, userID string) *Session {
	session := &Session{
		ConversationID: conversationID,
		UserID:         userID,
		State:          StateEntry,
		StartedAt:      time.Now(),
	}

	s.Save(session)

	return session
}

// Save refreshes the idle timer of session.
func (s *SessionStore) Save(session *Session) {
	s.cache.Set(sessionKey(session.ConversationID, session.UserID), session, cache.DefaultExpiration)
}

func (s *SessionStore) Clear(conversationID, userID string) {
	s.cache.Delete(sessionKey(conversationID, userID))
}

func (s *SessionStore) Count() int {
	return s.cache.ItemCount()
}

// sessionKey scopes a session to one person in one chat, so members of a
// group chat cannot step into each other's bookings.
func sessionKey(conversationID, userID string) string {
	return conversationID + ":" + userID
}
