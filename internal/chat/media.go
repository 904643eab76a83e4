package chat

import (
	"path/filepath"
	"strings"
)

// KindFromPath infers the media kind of a stored file from its extension.
// Used for template attachments, where the transport's own content type is
// no longer available.
func KindFromPath(path string) MediaKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return MediaPhoto
	case ".mp4", ".avi", ".mov":
		return MediaVideo
	case ".mp3", ".ogg", ".wav":
		return MediaAudio
	default:
		return MediaDocument
	}
}
