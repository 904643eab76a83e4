package bot

import (
	"log/slog"
	"path/filepath"

	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/repository"
)

func (m *Manager) handleTemplates(ev chat.Event) {
	switch ev.Text {
	case buttonTemplatesView:
		list, err := m.templates.List()
		if err != nil || len(list) == 0 {
			m.send(ev.ChatID, messageNoSavedTemplates, templateSectionKeyboard())
			return
		}
		m.setState(ev.ChatID, StateTemplatesList)
		m.send(ev.ChatID, formatTemplatesAvailable(len(list)), templateNamesKeyboard(list))

	case buttonTemplatesCreate:
		m.mu.Lock()
		m.tplFlow[ev.ChatID] = &templateScratch{}
		m.mu.Unlock()
		m.setState(ev.ChatID, StateTemplatesCreateName)
		m.send(ev.ChatID, messageTemplateCreateName, cancelKeyboard())

	case buttonBack:
		m.setState(ev.ChatID, StateMainMenu)
		m.send(ev.ChatID, messageMainMenu, mainMenuKeyboard())

	default:
		m.send(ev.ChatID, messageUseMenuButtons, templateSectionKeyboard())
	}
}

func (m *Manager) handleTemplatesList(ev chat.Event) {
	if ev.Text == buttonBack {
		m.setState(ev.ChatID, StateTemplates)
		m.send(ev.ChatID, messageTemplateSection, templateSectionKeyboard())
		return
	}

	tpl, err := m.templates.FindByName(ev.Text)
	if err != nil {
		list, listErr := m.templates.List()
		if listErr != nil || len(list) == 0 {
			m.setState(ev.ChatID, StateTemplates)
			m.send(ev.ChatID, messageNoSavedTemplates, templateSectionKeyboard())
			return
		}
		m.send(ev.ChatID, messageTemplateUnknown, templateNamesKeyboard(list))
		return
	}

	m.templateScratch(ev.ChatID).selectedID = tpl.ID
	m.setState(ev.ChatID, StateTemplatesActions)
	m.sendMarkdown(ev.ChatID, formatTemplateHeader(tpl.Name), templateActionsKeyboard())
}

func (m *Manager) handleTemplatesActions(ev chat.Event) {
	switch ev.Text {
	case buttonTemplateShow:
		tpl, ok := m.selectedTemplate(ev.ChatID)
		if !ok {
			return
		}
		m.sendMarkdown(ev.ChatID, formatTemplateInfo(tpl, fileExists(tpl.FilePath)), templateActionsKeyboard())

	case buttonTemplateEdit:
		tpl, ok := m.selectedTemplate(ev.ChatID)
		if !ok {
			return
		}
		m.setState(ev.ChatID, StateTemplatesEdit)
		m.sendMarkdown(ev.ChatID, formatTemplateEditHeader(tpl.Name), templateEditKeyboard())

	case buttonTemplateDelete:
		tpl, ok := m.selectedTemplate(ev.ChatID)
		if !ok {
			return
		}
		m.setState(ev.ChatID, StateTemplatesDeleteConfirm)
		m.sendMarkdown(ev.ChatID, formatTemplateDeletePrompt(tpl.Name), confirmKeyboard())

	case buttonBack:
		m.backToTemplateList(ev.ChatID)

	default:
		m.send(ev.ChatID, messageChooseAction, templateActionsKeyboard())
	}
}

func (m *Manager) handleTemplatesDeleteConfirm(ev chat.Event) {
	switch ev.Text {
	case buttonConfirm:
		tpl, ok := m.selectedTemplate(ev.ChatID)
		if !ok {
			return
		}
		m.setState(ev.ChatID, StateTemplates)
		if err := m.templates.Delete(tpl.ID); err != nil {
			slog.Error("failed to delete template", "template_id", tpl.ID, "error", err)
			m.send(ev.ChatID, messageTemplateDropFailed, templateSectionKeyboard())
			return
		}
		m.sendMarkdown(ev.ChatID, formatTemplateDeleted(tpl.Name), templateSectionKeyboard())

	case buttonCancel:
		tpl, ok := m.selectedTemplate(ev.ChatID)
		if !ok {
			return
		}
		m.setState(ev.ChatID, StateTemplatesActions)
		m.sendMarkdown(ev.ChatID, formatTemplateHeader(tpl.Name), templateActionsKeyboard())

	default:
		m.send(ev.ChatID, messageConfirmDeletePrompt, confirmKeyboard())
	}
}

func (m *Manager) handleTemplatesEdit(ev chat.Event) {
	tpl, ok := m.selectedTemplate(ev.ChatID)
	if !ok {
		return
	}
	switch ev.Text {
	case buttonTemplateEditName:
		m.setState(ev.ChatID, StateTemplatesEditName)
		m.sendMarkdown(ev.ChatID, formatTemplateCurrentName(tpl.Name), cancelKeyboard())

	case buttonTemplateEditText:
		m.setState(ev.ChatID, StateTemplatesEditText)
		m.sendMarkdown(ev.ChatID, formatTemplateCurrentText(tpl.Text), cancelKeyboard())

	case buttonTemplateEditFile:
		m.setState(ev.ChatID, StateTemplatesEditFile)
		m.sendMarkdown(ev.ChatID, formatFileManageHeader(tpl.Name), fileManagementKeyboard(tpl.HasFile))

	case buttonBack:
		m.setState(ev.ChatID, StateTemplatesActions)
		m.sendMarkdown(ev.ChatID, formatTemplateHeader(tpl.Name), templateActionsKeyboard())

	default:
		m.send(ev.ChatID, messageTemplateChooseParam, templateEditKeyboard())
	}
}

func (m *Manager) handleTemplatesEditName(ev chat.Event) {
	tpl, ok := m.selectedTemplate(ev.ChatID)
	if !ok {
		return
	}
	if ev.Text == buttonCancel {
		m.setState(ev.ChatID, StateTemplatesEdit)
		m.sendMarkdown(ev.ChatID, formatTemplateEditHeader(tpl.Name), templateEditKeyboard())
		return
	}
	if ev.Text == "" {
		m.send(ev.ChatID, messageTemplateNewName, cancelKeyboard())
		return
	}
	updated, err := m.templates.Rename(tpl.ID, ev.Text)
	m.setState(ev.ChatID, StateTemplatesEdit)
	if err != nil {
		slog.Error("failed to rename template", "template_id", tpl.ID, "error", err)
		m.send(ev.ChatID, messageTemplateSaveFailed, templateEditKeyboard())
		return
	}
	m.send(ev.ChatID, messageTemplateNameSaved, nil)
	m.sendMarkdown(ev.ChatID, formatTemplateEditHeader(updated.Name), templateEditKeyboard())
}

func (m *Manager) handleTemplatesEditText(ev chat.Event) {
	tpl, ok := m.selectedTemplate(ev.ChatID)
	if !ok {
		return
	}
	if ev.Text == buttonCancel {
		m.setState(ev.ChatID, StateTemplatesEdit)
		m.sendMarkdown(ev.ChatID, formatTemplateEditHeader(tpl.Name), templateEditKeyboard())
		return
	}
	if ev.Text == "" {
		m.send(ev.ChatID, messageTemplateNewText, cancelKeyboard())
		return
	}
	_, err := m.templates.SetText(tpl.ID, ev.Text)
	m.setState(ev.ChatID, StateTemplatesEdit)
	if err != nil {
		slog.Error("failed to update template text", "template_id", tpl.ID, "error", err)
		m.send(ev.ChatID, messageTemplateSaveFailed, templateEditKeyboard())
		return
	}
	m.send(ev.ChatID, messageTemplateTextSaved, nil)
	m.sendMarkdown(ev.ChatID, formatTemplateEditHeader(tpl.Name), templateEditKeyboard())
}

func (m *Manager) handleTemplatesEditFile(ev chat.Event) {
	tpl, ok := m.selectedTemplate(ev.ChatID)
	if !ok {
		return
	}
	switch ev.Text {
	case buttonFileShow:
		m.sendMarkdown(ev.ChatID, formatTemplateInfo(tpl, fileExists(tpl.FilePath)), fileManagementKeyboard(tpl.HasFile))

	case buttonFileReplace:
		m.setState(ev.ChatID, StateTemplatesReplaceFile)
		m.send(ev.ChatID, messageTemplateUploadFile, cancelKeyboard())

	case buttonFileDelete:
		m.setState(ev.ChatID, StateTemplatesDeleteFileConfirm)
		m.sendMarkdown(ev.ChatID, formatFileDeletePrompt(tpl.Name), confirmKeyboard())

	case buttonFileAdd:
		m.setState(ev.ChatID, StateTemplatesAddFile)
		m.send(ev.ChatID, messageTemplateUploadFile, cancelKeyboard())

	case buttonBack:
		m.setState(ev.ChatID, StateTemplatesEdit)
		m.sendMarkdown(ev.ChatID, formatTemplateEditHeader(tpl.Name), templateEditKeyboard())

	default:
		m.send(ev.ChatID, messageChooseAction, fileManagementKeyboard(tpl.HasFile))
	}
}

func (m *Manager) handleTemplatesDeleteFileConfirm(ev chat.Event) {
	tpl, ok := m.selectedTemplate(ev.ChatID)
	if !ok {
		return
	}
	switch ev.Text {
	case buttonConfirm:
		// the record drops its file reference; the file itself stays on
		// disk because other templates may point at the same path
		_, err := m.templates.ClearFile(tpl.ID)
		m.setState(ev.ChatID, StateTemplatesEditFile)
		if err != nil {
			slog.Error("failed to clear template file", "template_id", tpl.ID, "error", err)
			m.send(ev.ChatID, messageTemplateSaveFailed, fileManagementKeyboard(tpl.HasFile))
			return
		}
		m.send(ev.ChatID, messageTemplateFileCleared, fileManagementKeyboard(false))

	case buttonCancel:
		m.setState(ev.ChatID, StateTemplatesEditFile)
		m.sendMarkdown(ev.ChatID, formatFileManageHeader(tpl.Name), fileManagementKeyboard(tpl.HasFile))

	default:
		m.send(ev.ChatID, messageConfirmDeletePrompt, confirmKeyboard())
	}
}

// handleTemplatesUploadFile serves both the add-file and replace-file
// states: either way the uploaded file becomes the template's attachment.
func (m *Manager) handleTemplatesUploadFile(ev chat.Event) {
	tpl, ok := m.selectedTemplate(ev.ChatID)
	if !ok {
		return
	}
	if ev.Upload != nil {
		destPath := filepath.Join(m.cfg.FilesDir, filepath.Base(ev.Upload.Name))
		if err := m.transport.Download(*ev.Upload, destPath); err != nil {
			slog.Error("failed to download template file", "chat_id", ev.ChatID, "error", err)
			m.send(ev.ChatID, messageDownloadFailed, cancelKeyboard())
			return
		}
		_, err := m.templates.SetFile(tpl.ID, destPath)
		m.setState(ev.ChatID, StateTemplatesEditFile)
		if err != nil {
			slog.Error("failed to attach template file", "template_id", tpl.ID, "error", err)
			m.send(ev.ChatID, messageTemplateSaveFailed, fileManagementKeyboard(tpl.HasFile))
			return
		}
		m.send(ev.ChatID, messageTemplateFileSaved, fileManagementKeyboard(true))
		return
	}

	if ev.Text == buttonCancel {
		m.setState(ev.ChatID, StateTemplatesEditFile)
		m.sendMarkdown(ev.ChatID, formatFileManageHeader(tpl.Name), fileManagementKeyboard(tpl.HasFile))
		return
	}

	m.send(ev.ChatID, messageTemplateUploadFile, cancelKeyboard())
}

func (m *Manager) handleTemplatesCreateName(ev chat.Event) {
	if ev.Text == buttonCancel {
		m.cancelTemplateCreate(ev.ChatID)
		return
	}
	if ev.Text == "" {
		m.send(ev.ChatID, messageTemplateCreateName, cancelKeyboard())
		return
	}
	m.templateScratch(ev.ChatID).draftName = ev.Text
	m.setState(ev.ChatID, StateTemplatesCreateText)
	m.send(ev.ChatID, messageTemplateCreateText, cancelKeyboard())
}

func (m *Manager) handleTemplatesCreateText(ev chat.Event) {
	if ev.Text == buttonCancel {
		m.cancelTemplateCreate(ev.ChatID)
		return
	}
	if ev.Text == "" {
		m.send(ev.ChatID, messageTemplateCreateText, cancelKeyboard())
		return
	}
	m.templateScratch(ev.ChatID).draftText = ev.Text
	m.setState(ev.ChatID, StateTemplatesCreateFileQuery)
	m.send(ev.ChatID, messageTemplateCreateQuery, confirmKeyboard())
}

func (m *Manager) handleTemplatesCreateFileQuery(ev chat.Event) {
	switch ev.Text {
	case buttonConfirm:
		m.setState(ev.ChatID, StateTemplatesCreateFile)
		m.send(ev.ChatID, messageTemplateUploadFile, cancelKeyboard())

	case buttonCancel:
		m.finishTemplateCreate(ev.ChatID, "")

	default:
		m.send(ev.ChatID, messageTemplateCreateQuery, confirmKeyboard())
	}
}

func (m *Manager) handleTemplatesCreateFile(ev chat.Event) {
	if ev.Upload != nil {
		destPath := filepath.Join(m.cfg.FilesDir, filepath.Base(ev.Upload.Name))
		if err := m.transport.Download(*ev.Upload, destPath); err != nil {
			slog.Error("failed to download template file", "chat_id", ev.ChatID, "error", err)
			m.send(ev.ChatID, messageDownloadFailed, cancelKeyboard())
			return
		}
		m.finishTemplateCreate(ev.ChatID, destPath)
		return
	}

	if ev.Text == buttonCancel {
		// declining the upload still creates the template, just without
		// an attachment
		m.finishTemplateCreate(ev.ChatID, "")
		return
	}

	m.send(ev.ChatID, messageTemplateUploadFile, cancelKeyboard())
}

func (m *Manager) finishTemplateCreate(chatID int64, filePath string) {
	sc := m.templateScratch(chatID)
	name, text := sc.draftName, sc.draftText
	sc.draftName, sc.draftText = "", ""
	m.setState(chatID, StateTemplates)

	if name == "" || text == "" {
		m.send(chatID, messageTemplateLost, templateSectionKeyboard())
		return
	}
	tpl, err := m.templates.Create(name, text, filePath)
	if err != nil {
		slog.Error("failed to create template", "name", name, "error", err)
		m.send(chatID, messageTemplateSaveFailed, templateSectionKeyboard())
		return
	}
	m.sendMarkdown(chatID, formatTemplateCreated(tpl.Name), templateSectionKeyboard())
}

func (m *Manager) cancelTemplateCreate(chatID int64) {
	sc := m.templateScratch(chatID)
	sc.draftName, sc.draftText = "", ""
	m.setState(chatID, StateTemplates)
	m.send(chatID, messageTemplateCancelled, templateSectionKeyboard())
}

func (m *Manager) backToTemplateList(chatID int64) {
	list, err := m.templates.List()
	if err != nil || len(list) == 0 {
		m.setState(chatID, StateTemplates)
		m.send(chatID, messageTemplateSection, templateSectionKeyboard())
		return
	}
	m.setState(chatID, StateTemplatesList)
	m.send(chatID, messageSelectTemplate, templateNamesKeyboard(list))
}

// selectedTemplate resolves the template the operator picked from the
// list. A stale or deleted selection sends the operator back to the
// template section menu.
func (m *Manager) selectedTemplate(chatID int64) (repository.Template, bool) {
	id := m.templateScratch(chatID).selectedID
	if id == "" {
		m.setState(chatID, StateTemplates)
		m.send(chatID, messageTemplateLost, templateSectionKeyboard())
		return repository.Template{}, false
	}
	tpl, err := m.templates.Get(id)
	if err != nil {
		m.setState(chatID, StateTemplates)
		m.send(chatID, messageTemplateLost, templateSectionKeyboard())
		return repository.Template{}, false
	}
	return tpl, true
}
