package bot

import (
	"context"
	"log/slog"

	"github.com/spf13/cast"

	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/greenapi"
	"github.com/ratelab/greencast/internal/repository"
)

// profileParams maps the edit-menu buttons onto profile document keys.
// The key doubles as the name shown in the confirm prompt, matching the
// stored JSON so an operator can relate it to config/profile.json.
var profileParams = map[string]string{
	buttonProfileName:     "name",
	buttonProfileAPIURL:   "apiUrl",
	buttonProfileMediaURL: "mediaUrl",
	buttonProfileInstance: "idInstance",
	buttonProfileToken:    "apiTokenInstance",
}

func profileValue(p repository.Profile, param string) string {
	switch param {
	case "name":
		return p.Name
	case "apiUrl":
		return p.APIURL
	case "mediaUrl":
		return p.MediaURL
	case "idInstance":
		return p.InstanceID
	case "apiTokenInstance":
		return p.APITokenInstance
	}
	return ""
}

func setProfileValue(p *repository.Profile, param, value string) {
	switch param {
	case "name":
		p.Name = value
	case "apiUrl":
		p.APIURL = value
	case "mediaUrl":
		p.MediaURL = value
	case "idInstance":
		p.InstanceID = value
	case "apiTokenInstance":
		p.APITokenInstance = value
	}
}

func (m *Manager) handleSettings(ev chat.Event) {
	switch ev.Text {
	case buttonProfile:
		m.setState(ev.ChatID, StateSettingsProfile)
		m.send(ev.ChatID, messageProfileSection, profileMenuKeyboard())

	case buttonInterval:
		m.setState(ev.ChatID, StateSettingsInterval)
		m.sendMarkdown(ev.ChatID, formatIntervalPrompt(m.intervalSeconds()), intervalKeyboard())

	case buttonBack:
		m.setState(ev.ChatID, StateMainMenu)
		m.send(ev.ChatID, messageMainMenu, mainMenuKeyboard())

	default:
		m.send(ev.ChatID, messageUseMenuButtons, settingsKeyboard())
	}
}

func (m *Manager) handleSettingsProfile(ev chat.Event) {
	switch ev.Text {
	case buttonProfileEdit:
		m.setState(ev.ChatID, StateSettingsProfileEdit)
		m.send(ev.ChatID, messageProfileChooseParam, profileEditKeyboard())

	case buttonConnectionTest:
		m.runConnectionTest(ev.ChatID)

	case buttonBack:
		m.setState(ev.ChatID, StateSettings)
		m.send(ev.ChatID, messageSettingsSection, settingsKeyboard())

	default:
		m.send(ev.ChatID, messageUseMenuButtons, profileMenuKeyboard())
	}
}

// runConnectionTest calls getStateInstance with the stored profile and
// reports whether the instance is authorized to send.
func (m *Manager) runConnectionTest(chatID int64) {
	profile, err := m.repo.LoadProfile()
	if err != nil {
		m.send(chatID, messageProfileNotSet, profileMenuKeyboard())
		return
	}
	if !profile.Complete() {
		m.send(chatID, messageProfileIncomplete, profileMenuKeyboard())
		return
	}

	m.send(chatID, messageConnectionChecking, chat.RemoveKeyboard())

	acc := greenapi.Account{
		APIURL:     profile.APIURL,
		MediaURL:   profile.MediaURL,
		InstanceID: profile.InstanceID,
		Token:      profile.APITokenInstance,
	}
	state, err := m.api.GetStateInstance(context.Background(), acc)
	m.setState(chatID, StateSettingsConnectionResult)
	switch {
	case err != nil:
		slog.Warn("connection test failed", "chat_id", chatID, "error", err)
		m.send(chatID, formatConnectionError(err), backKeyboard())
	case state.Ready():
		m.sendMarkdown(chatID, formatConnectionOK(state), backKeyboard())
	default:
		m.sendMarkdown(chatID, formatConnectionNotReady(state.StateInstance), backKeyboard())
	}
}

func (m *Manager) handleSettingsConnectionResult(ev chat.Event) {
	if ev.Text == buttonBack {
		m.setState(ev.ChatID, StateSettingsProfile)
		m.send(ev.ChatID, messageProfileSection, profileMenuKeyboard())
		return
	}
	m.send(ev.ChatID, messageConnectionBackHint, backKeyboard())
}

func (m *Manager) handleSettingsProfileEdit(ev chat.Event) {
	if ev.Text == buttonBack {
		m.setState(ev.ChatID, StateSettingsProfile)
		m.send(ev.ChatID, messageProfileSection, profileMenuKeyboard())
		return
	}

	param, ok := profileParams[ev.Text]
	if !ok {
		m.send(ev.ChatID, messageUseMenuButtons, profileEditKeyboard())
		return
	}

	profile, err := m.repo.LoadProfile()
	if err != nil {
		profile = repository.Profile{}
	}
	sc := m.settingsScratch(ev.ChatID)
	sc.param = param
	sc.newValue = ""
	m.setState(ev.ChatID, StateSettingsProfileEditParam)
	m.sendMarkdown(ev.ChatID, formatParamPrompt(param, profileValue(profile, param)), cancelKeyboard())
}

func (m *Manager) handleSettingsProfileEditParam(ev chat.Event) {
	if ev.Text == buttonCancel {
		m.setState(ev.ChatID, StateSettingsProfileEdit)
		m.send(ev.ChatID, messageEditCancelled, profileEditKeyboard())
		return
	}

	sc := m.settingsScratch(ev.ChatID)
	if sc.param == "" {
		m.setState(ev.ChatID, StateSettingsProfileEdit)
		m.send(ev.ChatID, messageEditLost, profileEditKeyboard())
		return
	}
	if ev.Text == "" {
		m.sendMarkdown(ev.ChatID, formatParamPrompt(sc.param, ""), cancelKeyboard())
		return
	}

	sc.newValue = ev.Text
	m.setState(ev.ChatID, StateSettingsProfileConfirm)
	m.sendMarkdown(ev.ChatID, formatParamConfirm(sc.param, sc.newValue), confirmKeyboard())
}

func (m *Manager) handleSettingsProfileConfirm(ev chat.Event) {
	switch ev.Text {
	case buttonConfirm:
		sc := m.settingsScratch(ev.ChatID)
		param, value := sc.param, sc.newValue
		sc.param, sc.newValue = "", ""
		m.setState(ev.ChatID, StateSettingsProfileEdit)
		if param == "" {
			m.send(ev.ChatID, messageEditLost, profileEditKeyboard())
			return
		}

		profile, err := m.repo.LoadProfile()
		if err != nil {
			profile = repository.Profile{}
		}
		setProfileValue(&profile, param, value)
		if err := m.repo.SaveProfile(profile); err != nil {
			slog.Error("failed to save profile", "param", param, "error", err)
			m.sendMarkdown(ev.ChatID, formatParamSaveFailed(param), profileEditKeyboard())
			return
		}
		m.sendMarkdown(ev.ChatID, formatParamSaved(param), profileEditKeyboard())

	case buttonCancel:
		sc := m.settingsScratch(ev.ChatID)
		sc.param, sc.newValue = "", ""
		m.setState(ev.ChatID, StateSettingsProfileEdit)
		m.send(ev.ChatID, messageParamChangeCanceled, profileEditKeyboard())

	default:
		m.send(ev.ChatID, messageConfirmParamPrompt, confirmKeyboard())
	}
}

func (m *Manager) handleSettingsInterval(ev chat.Event) {
	if ev.Text == buttonBack {
		m.setState(ev.ChatID, StateSettings)
		m.send(ev.ChatID, messageSettingsSection, settingsKeyboard())
		return
	}

	seconds, err := cast.ToIntE(ev.Text)
	if err != nil || !repository.IsValidInterval(seconds) {
		m.send(ev.ChatID, messageIntervalInvalid, intervalKeyboard())
		return
	}

	if err := m.repo.SaveInterval(repository.IntervalSetting{Interval: seconds}); err != nil {
		slog.Error("failed to save interval", "interval", seconds, "error", err)
		m.send(ev.ChatID, messageIntervalSaveFailed, intervalKeyboard())
		return
	}
	m.setState(ev.ChatID, StateSettings)
	m.sendMarkdown(ev.ChatID, formatIntervalSaved(seconds), settingsKeyboard())
}
