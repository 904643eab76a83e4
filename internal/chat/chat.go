// Package chat defines the abstract operator-facing transport. The state
// machine only ever talks to these primitives, never to the wire protocol.
package chat

import "context"

type MediaKind string

const (
	MediaDocument MediaKind = "document"
	MediaPhoto    MediaKind = "photo"
	MediaVideo    MediaKind = "video"
	MediaAudio    MediaKind = "audio"
)

// Upload describes a file the operator attached to a message. For photos
// the transport resolves the highest-resolution variant it was offered.
type Upload struct {
	FileID string
	Name   string
	Kind   MediaKind
}

// Event is one operator input: a command, a text message or an upload.
type Event struct {
	ChatID  int64
	Text    string
	Command string
	Upload  *Upload
}

// Keyboard is a reply keyboard shown under the operator's input field.
// A nil *Keyboard in a send call leaves whatever keyboard is currently
// shown; Remove hides it.
type Keyboard struct {
	Rows   [][]string
	Remove bool
}

func RemoveKeyboard() *Keyboard {
	return &Keyboard{Remove: true}
}

type Transport interface {
	SetHandler(handler func(Event))
	Run(ctx context.Context) error
	Send(chatID int64, text string, kb *Keyboard) error
	SendMarkdown(chatID int64, text string, kb *Keyboard) error
	// Download fetches an uploaded file and stores it at destPath,
	// creating parent directories as needed.
	Download(upload Upload, destPath string) error
}
