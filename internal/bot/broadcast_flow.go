package bot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ratelab/greencast/internal/broadcast"
	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/repository"
	"github.com/ratelab/greencast/internal/sheet"
)

// handleBroadcastSheet waits for the recipient spreadsheet. The sheet is
// downloaded to a per-operator temporary file that lives until launch,
// cancel or session reset.
func (m *Manager) handleBroadcastSheet(ev chat.Event) {
	if ev.Upload != nil {
		if ev.Upload.Kind != chat.MediaDocument || !isExcelName(ev.Upload.Name) {
			m.send(ev.ChatID, messageSheetWrongType, nil)
			return
		}

		sheetPath := filepath.Join(m.cfg.FilesDir, fmt.Sprintf("temp_%d.xlsx", ev.ChatID))
		if err := m.transport.Download(*ev.Upload, sheetPath); err != nil {
			slog.Error("failed to download recipient sheet", "chat_id", ev.ChatID, "error", err)
			m.send(ev.ChatID, messageDownloadFailed, nil)
			return
		}

		values, err := m.extractor.ExtractColumn(sheetPath, sheet.PhoneColumnIndex)
		if err != nil {
			m.removeFile(sheetPath)
			m.send(ev.ChatID, formatSheetReadError(err), nil)
			return
		}

		recipients := broadcast.PrepareRecipients(values)
		if len(recipients) == 0 {
			m.removeFile(sheetPath)
			m.send(ev.ChatID, messageSheetEmpty, nil)
			return
		}

		// a fresh sheet replaces any earlier draft for this operator;
		// the temp file path is per-operator so the download already
		// overwrote the previous sheet
		m.sessions.Put(&broadcast.Session{
			ChatID:     ev.ChatID,
			Recipients: recipients,
			SheetPath:  sheetPath,
		})
		m.setState(ev.ChatID, StateBroadcastSelectKind)
		m.send(ev.ChatID, formatSheetAccepted(len(recipients)), messageKindKeyboard())
		return
	}

	if ev.Text == buttonBack {
		m.clearSession(ev.ChatID)
		m.setState(ev.ChatID, StateMainMenu)
		m.send(ev.ChatID, messageBroadcastToMenu, mainMenuKeyboard())
		return
	}

	m.send(ev.ChatID, messageAttachSheet, nil)
}

func (m *Manager) handleBroadcastSelectKind(ev chat.Event) {
	switch ev.Text {
	case buttonKindText:
		s, ok := m.sessionOrAbort(ev.ChatID)
		if !ok {
			return
		}
		s.MessageKind = broadcast.KindText
		m.sessions.Put(s)
		m.setState(ev.ChatID, StateBroadcastText)
		m.send(ev.ChatID, messageEnterText, cancelKeyboard())

	case buttonKindTextWithFile:
		s, ok := m.sessionOrAbort(ev.ChatID)
		if !ok {
			return
		}
		s.MessageKind = broadcast.KindTextWithAttachment
		m.sessions.Put(s)
		m.setState(ev.ChatID, StateBroadcastTextWithFile)
		m.send(ev.ChatID, messageEnterText, cancelKeyboard())

	case buttonKindTemplate:
		list, err := m.templates.List()
		if err != nil || len(list) == 0 {
			m.send(ev.ChatID, messageNoTemplates, messageKindKeyboard())
			return
		}
		s, ok := m.sessionOrAbort(ev.ChatID)
		if !ok {
			return
		}
		s.MessageKind = broadcast.KindTemplate
		m.sessions.Put(s)
		m.setState(ev.ChatID, StateBroadcastSelectTemplate)
		m.send(ev.ChatID, messageChooseTemplate, templateNamesKeyboard(list))

	case buttonBack:
		m.clearSession(ev.ChatID)
		m.setState(ev.ChatID, StateBroadcastSheet)
		m.send(ev.ChatID, messageAttachSheet, chat.RemoveKeyboard())

	default:
		m.send(ev.ChatID, messageChooseKindError, messageKindKeyboard())
	}
}

func (m *Manager) handleBroadcastText(ev chat.Event) {
	if ev.Text == buttonCancel {
		m.setState(ev.ChatID, StateBroadcastSelectKind)
		m.send(ev.ChatID, messageChooseKind, messageKindKeyboard())
		return
	}
	if ev.Text == "" {
		m.send(ev.ChatID, messageEnterText, cancelKeyboard())
		return
	}
	s, ok := m.sessionOrAbort(ev.ChatID)
	if !ok {
		return
	}
	s.Message = ev.Text
	m.sessions.Put(s)
	m.showReview(ev.ChatID, s)
}

func (m *Manager) handleBroadcastTextWithFile(ev chat.Event) {
	if ev.Text == buttonCancel {
		m.setState(ev.ChatID, StateBroadcastSelectKind)
		m.send(ev.ChatID, messageChooseKind, messageKindKeyboard())
		return
	}
	if ev.Text == "" {
		m.send(ev.ChatID, messageEnterText, cancelKeyboard())
		return
	}
	s, ok := m.sessionOrAbort(ev.ChatID)
	if !ok {
		return
	}
	s.Message = ev.Text
	m.sessions.Put(s)
	m.setState(ev.ChatID, StateBroadcastUploadFile)
	m.send(ev.ChatID, messageUploadMedia, cancelKeyboard())
}

func (m *Manager) handleBroadcastUploadFile(ev chat.Event) {
	if ev.Upload != nil {
		// Base strips any path components a client may smuggle into the name.
		destPath := filepath.Join(m.cfg.FilesDir, filepath.Base(ev.Upload.Name))
		if err := m.transport.Download(*ev.Upload, destPath); err != nil {
			slog.Error("failed to download attachment", "chat_id", ev.ChatID, "error", err)
			m.send(ev.ChatID, messageDownloadFailed, cancelKeyboard())
			return
		}
		s, ok := m.sessionOrAbort(ev.ChatID)
		if !ok {
			return
		}
		s.Attachment = &broadcast.Attachment{
			Path: destPath,
			Kind: ev.Upload.Kind,
			Name: filepath.Base(ev.Upload.Name),
		}
		m.sessions.Put(s)
		m.showReview(ev.ChatID, s)
		return
	}

	if ev.Text == buttonCancel {
		// the message text has to be entered again: text and file are
		// composed as one step in this leg
		m.setState(ev.ChatID, StateBroadcastTextWithFile)
		m.send(ev.ChatID, messageUploadCancelled, cancelKeyboard())
		return
	}

	m.send(ev.ChatID, messageUploadMedia, cancelKeyboard())
}

func (m *Manager) handleBroadcastSelectTemplate(ev chat.Event) {
	if ev.Text == buttonBack {
		m.setState(ev.ChatID, StateBroadcastSelectKind)
		m.send(ev.ChatID, messageChooseKind, messageKindKeyboard())
		return
	}

	tpl, err := m.templates.FindByName(ev.Text)
	if err != nil {
		list, listErr := m.templates.List()
		if listErr != nil || len(list) == 0 {
			m.setState(ev.ChatID, StateBroadcastSelectKind)
			m.send(ev.ChatID, messageNoTemplates, messageKindKeyboard())
			return
		}
		m.send(ev.ChatID, messageTemplateUnknown, templateNamesKeyboard(list))
		return
	}

	s, ok := m.sessionOrAbort(ev.ChatID)
	if !ok {
		return
	}
	s.TemplateID = tpl.ID
	s.Message = tpl.Text
	s.Attachment = nil
	if tpl.HasFile && tpl.FilePath != "" {
		if fileExists(tpl.FilePath) {
			s.Attachment = &broadcast.Attachment{
				Path: tpl.FilePath,
				Kind: chat.KindFromPath(tpl.FilePath),
				Name: filepath.Base(tpl.FilePath),
			}
		} else {
			m.send(ev.ChatID, formatTemplateFileMissing(tpl.FilePath), nil)
		}
	}
	m.sessions.Put(s)
	m.showReview(ev.ChatID, s)
}

// showReview renders the composed broadcast and moves the operator to the
// final confirm step.
func (m *Manager) showReview(chatID int64, s *broadcast.Session) {
	m.setState(chatID, StateBroadcastConfirm)
	m.sendMarkdown(chatID, formatReview(s), confirmKeyboard())
}

func (m *Manager) handleBroadcastConfirm(ev chat.Event) {
	switch ev.Text {
	case buttonConfirm:
		s, ok := m.sessionOrAbort(ev.ChatID)
		if !ok {
			return
		}
		if len(s.Recipients) == 0 {
			m.clearSession(ev.ChatID)
			m.setState(ev.ChatID, StateMainMenu)
			m.send(ev.ChatID, messageNoRecipients, mainMenuKeyboard())
			return
		}
		if s.Message == "" {
			m.clearSession(ev.ChatID)
			m.setState(ev.ChatID, StateMainMenu)
			m.send(ev.ChatID, messageNoMessageText, mainMenuKeyboard())
			return
		}

		job := broadcast.Job{
			ChatID:     s.ChatID,
			Recipients: append([]string(nil), s.Recipients...),
			Message:    s.Message,
			Interval:   time.Duration(m.intervalSeconds()) * time.Second,
			SheetPath:  s.SheetPath,
		}
		if s.Attachment != nil {
			a := *s.Attachment
			job.Attachment = &a
		}

		// the engine owns the sheet file from here on and removes it
		// when the job ends, so only the session record is dropped
		m.sessions.Delete(ev.ChatID)
		m.setState(ev.ChatID, StateMainMenu)
		m.send(ev.ChatID, messageBroadcastQueued, mainMenuKeyboard())
		m.engine.Launch(job, m)

	case buttonCancel:
		s, ok := m.sessionOrAbort(ev.ChatID)
		if !ok {
			return
		}
		// keep the recipient list, drop the composed message
		s.Message = ""
		s.Attachment = nil
		s.MessageKind = ""
		s.TemplateID = ""
		m.sessions.Put(s)
		m.setState(ev.ChatID, StateBroadcastSelectKind)
		m.send(ev.ChatID, messageBroadcastCancel, messageKindKeyboard())

	default:
		m.send(ev.ChatID, messageConfirmOrCancel, confirmKeyboard())
	}
}

// sessionOrAbort returns the operator's draft session, or resets the
// operator to the main menu when it has gone missing mid-flow.
func (m *Manager) sessionOrAbort(chatID int64) (*broadcast.Session, bool) {
	s, ok := m.sessions.Get(chatID)
	if !ok {
		m.setState(chatID, StateMainMenu)
		m.send(chatID, messageSessionLost, mainMenuKeyboard())
		return nil, false
	}
	return s, true
}

func (m *Manager) intervalSeconds() int {
	setting, err := m.repo.LoadInterval()
	if err != nil || !repository.IsValidInterval(setting.Interval) {
		return repository.DefaultIntervalSeconds
	}
	return setting.Interval
}

func (m *Manager) removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove file", "path", path, "error", err)
	}
}

func isExcelName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xls") || strings.HasSuffix(lower, ".xlsx")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
