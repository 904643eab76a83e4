package bot

import (
	"log/slog"
	"os"
	"sync"

	"github.com/ratelab/greencast/internal/broadcast"
	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/config"
	"github.com/ratelab/greencast/internal/greenapi"
	"github.com/ratelab/greencast/internal/repository"
	"github.com/ratelab/greencast/internal/sheet"
	"github.com/ratelab/greencast/internal/templates"
)

// templateScratch keeps per-operator template flow data between messages.
type templateScratch struct {
	selectedID string
	draftName  string
	draftText  string
}

// settingsScratch keeps the profile parameter being edited between messages.
type settingsScratch struct {
	param    string
	newValue string
}

// Manager drives the operator dialog. Every incoming message is routed by
// the operator's current state, mirroring a reply-keyboard wizard: one
// active flow per chat, text buttons instead of callbacks.
type Manager struct {
	cfg       *config.Config
	transport chat.Transport
	repo      repository.Repository
	templates *templates.Store
	extractor sheet.Extractor
	api       greenapi.Client
	engine    *broadcast.Engine
	sessions  broadcast.SessionStore

	mu       sync.Mutex
	states   map[int64]State
	tplFlow  map[int64]*templateScratch
	settings map[int64]*settingsScratch
}

func NewManager(
	cfg *config.Config,
	transport chat.Transport,
	repo repository.Repository,
	store *templates.Store,
	extractor sheet.Extractor,
	api greenapi.Client,
	engine *broadcast.Engine,
	sessions broadcast.SessionStore,
) *Manager {
	return &Manager{
		cfg:       cfg,
		transport: transport,
		repo:      repo,
		templates: store,
		extractor: extractor,
		api:       api,
		engine:    engine,
		sessions:  sessions,
		states:    make(map[int64]State),
		tplFlow:   make(map[int64]*templateScratch),
		settings:  make(map[int64]*settingsScratch),
	}
}

// HandleEvent processes a single operator message. A panic in any flow
// handler resets the operator to the main menu instead of killing the
// update loop.
func (m *Manager) HandleEvent(ev chat.Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("handler panic; operator reset to main menu", "chat_id", ev.ChatID, "panic", r)
			m.resetOperator(ev.ChatID)
			m.send(ev.ChatID, messageMainMenu, mainMenuKeyboard())
		}
	}()

	if ev.Command != "" {
		m.handleCommand(ev)
		return
	}

	switch m.state(ev.ChatID) {
	case StateMainMenu:
		m.handleMainMenu(ev)
	case StateBroadcastSheet:
		m.handleBroadcastSheet(ev)
	case StateBroadcastSelectKind:
		m.handleBroadcastSelectKind(ev)
	case StateBroadcastText:
		m.handleBroadcastText(ev)
	case StateBroadcastTextWithFile:
		m.handleBroadcastTextWithFile(ev)
	case StateBroadcastUploadFile:
		m.handleBroadcastUploadFile(ev)
	case StateBroadcastSelectTemplate:
		m.handleBroadcastSelectTemplate(ev)
	case StateBroadcastConfirm:
		m.handleBroadcastConfirm(ev)
	case StateTemplates:
		m.handleTemplates(ev)
	case StateTemplatesList:
		m.handleTemplatesList(ev)
	case StateTemplatesActions:
		m.handleTemplatesActions(ev)
	case StateTemplatesDeleteConfirm:
		m.handleTemplatesDeleteConfirm(ev)
	case StateTemplatesEdit:
		m.handleTemplatesEdit(ev)
	case StateTemplatesEditName:
		m.handleTemplatesEditName(ev)
	case StateTemplatesEditText:
		m.handleTemplatesEditText(ev)
	case StateTemplatesEditFile:
		m.handleTemplatesEditFile(ev)
	case StateTemplatesDeleteFileConfirm:
		m.handleTemplatesDeleteFileConfirm(ev)
	case StateTemplatesAddFile:
		m.handleTemplatesUploadFile(ev)
	case StateTemplatesReplaceFile:
		m.handleTemplatesUploadFile(ev)
	case StateTemplatesCreateName:
		m.handleTemplatesCreateName(ev)
	case StateTemplatesCreateText:
		m.handleTemplatesCreateText(ev)
	case StateTemplatesCreateFileQuery:
		m.handleTemplatesCreateFileQuery(ev)
	case StateTemplatesCreateFile:
		m.handleTemplatesCreateFile(ev)
	case StateSettings:
		m.handleSettings(ev)
	case StateSettingsProfile:
		m.handleSettingsProfile(ev)
	case StateSettingsConnectionResult:
		m.handleSettingsConnectionResult(ev)
	case StateSettingsProfileEdit:
		m.handleSettingsProfileEdit(ev)
	case StateSettingsProfileEditParam:
		m.handleSettingsProfileEditParam(ev)
	case StateSettingsProfileConfirm:
		m.handleSettingsProfileConfirm(ev)
	case StateSettingsInterval:
		m.handleSettingsInterval(ev)
	default:
		m.setState(ev.ChatID, StateMainMenu)
		m.send(ev.ChatID, messageMainMenu, mainMenuKeyboard())
	}
}

func (m *Manager) handleCommand(ev chat.Event) {
	switch ev.Command {
	case "start":
		m.resetOperator(ev.ChatID)
		m.send(ev.ChatID, messageWelcome, mainMenuKeyboard())
	case "menu":
		m.resetOperator(ev.ChatID)
		m.send(ev.ChatID, messageMainMenu, mainMenuKeyboard())
	case "help":
		m.sendMarkdown(ev.ChatID, messageHelp, nil)
	default:
		m.send(ev.ChatID, messageUseMenuButtons, nil)
	}
}

func (m *Manager) handleMainMenu(ev chat.Event) {
	switch ev.Text {
	case buttonNewBroadcast:
		m.setState(ev.ChatID, StateBroadcastSheet)
		m.send(ev.ChatID, messageAttachSheet, chat.RemoveKeyboard())
	case buttonTemplateSection:
		m.setState(ev.ChatID, StateTemplates)
		m.send(ev.ChatID, messageTemplateSection, templateSectionKeyboard())
	case buttonSettings:
		m.setState(ev.ChatID, StateSettings)
		m.send(ev.ChatID, messageSettingsSection, settingsKeyboard())
	default:
		m.send(ev.ChatID, messageUseMenuButtons, mainMenuKeyboard())
	}
}

// Reporter implementation: delivery progress lands in the operator chat
// without touching the current reply keyboard, so a running broadcast
// never disturbs whatever menu the operator is in.

func (m *Manager) BroadcastStarted(chatID int64, total int) {
	m.sendMarkdown(chatID, formatBroadcastStarted(total), nil)
}

func (m *Manager) BroadcastProgress(chatID int64, p broadcast.Progress) {
	m.sendMarkdown(chatID, formatProgress(p), nil)
}

func (m *Manager) BroadcastFinished(chatID int64, s broadcast.Summary) {
	m.sendMarkdown(chatID, formatSummary(s), nil)
}

func (m *Manager) BroadcastAborted(chatID int64, reason broadcast.AbortReason) {
	m.send(chatID, formatAbort(reason), nil)
}

func (m *Manager) state(chatID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[chatID]
	if !ok {
		return StateMainMenu
	}
	return s
}

func (m *Manager) setState(chatID int64, s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = s
}

// resetOperator drops any in-flight flow: the draft session with its
// temporary sheet, template drafts and profile edits.
func (m *Manager) resetOperator(chatID int64) {
	m.clearSession(chatID)
	m.mu.Lock()
	delete(m.tplFlow, chatID)
	delete(m.settings, chatID)
	m.states[chatID] = StateMainMenu
	m.mu.Unlock()
}

// clearSession drops the draft session and removes its temporary sheet
// file if one was downloaded.
func (m *Manager) clearSession(chatID int64) {
	if s, ok := m.sessions.Get(chatID); ok && s.SheetPath != "" {
		if err := os.Remove(s.SheetPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove temporary sheet", "path", s.SheetPath, "error", err)
		}
	}
	m.sessions.Delete(chatID)
}

func (m *Manager) templateScratch(chatID int64) *templateScratch {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.tplFlow[chatID]
	if !ok {
		sc = &templateScratch{}
		m.tplFlow[chatID] = sc
	}
	return sc
}

func (m *Manager) settingsScratch(chatID int64) *settingsScratch {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.settings[chatID]
	if !ok {
		sc = &settingsScratch{}
		m.settings[chatID] = sc
	}
	return sc
}

func (m *Manager) send(chatID int64, text string, kb *chat.Keyboard) {
	if err := m.transport.Send(chatID, text, kb); err != nil {
		slog.Error("failed to send chat message", "chat_id", chatID, "error", err)
	}
}

func (m *Manager) sendMarkdown(chatID int64, text string, kb *chat.Keyboard) {
	if err := m.transport.SendMarkdown(chatID, text, kb); err != nil {
		slog.Error("failed to send chat message", "chat_id", chatID, "error", err)
	}
}
