package sessions

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionContextKey = "session"
	sessionDataKey    = "data"
	flashKeyPrefix    = "_flash:"
)

type Session struct {
	*session.Session
	SessionData

	// dirty forces a save even when the key set became empty, e.g. after a
	// flash message was consumed.
	dirty bool
}

func newSession(sess *session.Session) *Session {
	data, _ := sess.Get(sessionDataKey).(SessionData)
	return &Session{
		Session:     sess,
		SessionData: data,
	}
}

// Save stages the session data for persistence at the end of the request.
func (s *Session) Save(data ...SessionData) {
	if len(data) > 0 {
		s.SessionData = data[0]
	}
	s.Set(sessionDataKey, s.SessionData)
}

// Reset discards the current session, generates a new identifier and starts
// over with the given data. Used at login as a fixation defense.
func (s *Session) Reset(data ...SessionData) error {
	if err := s.Session.Reset(); err != nil {
		return err
	}
	s.SessionData = SessionData{}
	if len(data) > 0 {
		s.SessionData = data[0]
	}
	s.Set(sessionDataKey, s.SessionData)
	return nil
}

// Regenerate rotates the session identifier while preserving session data.
func (s *Session) Regenerate() error {
	if err := s.Session.Regenerate(); err != nil {
		return err
	}
	s.SessionData.LastRegeneration = time.Now()
	s.Set(sessionDataKey, s.SessionData)
	return nil
}

func (s *Session) Destroy() error {
	s.SessionData = SessionData{}
	s.dirty = false
	return s.Session.Destroy()
}

// SetFlash stores a one-time message under the flash namespace.
func (s *Session) SetFlash(key string, msg string) {
	s.Set(flashKeyPrefix+key, msg)
}

// Flash returns the flash message for key and deletes it. Read-once.
func (s *Session) Flash(key string) string {
	msg, ok := s.Get(flashKeyPrefix + key).(string)
	if !ok {
		return ""
	}
	s.Delete(flashKeyPrefix + key)
	s.dirty = true
	return msg
}
