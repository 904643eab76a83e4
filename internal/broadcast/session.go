// Package broadcast holds the per-operator composition session and the
// delivery engine that fans a finalized job out to its recipients.
package broadcast

import (
	"sync"

	"github.com/ratelab/greencast/internal/chat"
)

type MessageKind string

const (
	KindText               MessageKind = "text"
	KindTextWithAttachment MessageKind = "text_with_file"
	KindTemplate           MessageKind = "template"
)

// Attachment is a media file stored locally, ready to be uploaded with
// each outgoing message.
type Attachment struct {
	Path string
	Kind chat.MediaKind
	Name string
}

// Session accumulates one operator's broadcast composition. It lives in
// process memory only and is destroyed on launch, cancel or error.
type Session struct {
	ChatID      int64
	Recipients  []string
	SheetPath   string
	MessageKind MessageKind
	Message     string
	Attachment  *Attachment
	TemplateID  string
}

// SessionStore keeps at most one session per operator. The interface
// exists so the state machine can be tested against an in-memory map and
// later backed by a persistent store without changing.
type SessionStore interface {
	Get(chatID int64) (*Session, bool)
	Put(s *Session)
	Delete(chatID int64)
}

type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[int64]*Session)}
}

func (m *MemorySessionStore) Get(chatID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	return s, ok
}

func (m *MemorySessionStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ChatID] = s
}

func (m *MemorySessionStore) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
