package bot

import (
	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/repository"
)

// Reply-keyboard button labels. These are the literal inputs the state
// machine matches on, so they double as the transition alphabet.
const (
	buttonBack    = "🔙 Назад"
	buttonCancel  = "❌ Отменить"
	buttonConfirm = "✅ Подтвердить"

	buttonNewBroadcast    = "📢 Создать рассылку"
	buttonTemplateSection = "📄 Управление шаблонами"
	buttonSettings        = "⚙️ Настройки"

	buttonKindText         = "📝 Текстовое сообщение"
	buttonKindTextWithFile = "📝 Текстовое сообщение + 🗂️ файл"
	buttonKindTemplate     = "🧾 Использовать шаблон"

	buttonTemplatesView   = "📋 Просмотреть шаблоны"
	buttonTemplatesCreate = "➕ Создать шаблон"

	buttonTemplateShow   = "👁️ Просмотреть"
	buttonTemplateEdit   = "✏️ Изменить"
	buttonTemplateDelete = "🗑️ Удалить"

	buttonTemplateEditName = "📝 Изменить название"
	buttonTemplateEditText = "📄 Изменить текст"
	buttonTemplateEditFile = "📎 Управление файлом"

	buttonFileShow    = "👁️ Просмотреть файл"
	buttonFileReplace = "🔄 Заменить файл"
	buttonFileDelete  = "🗑️ Удалить файл"
	buttonFileAdd     = "➕ Добавить файл"

	buttonProfile  = "👤 Профиль"
	buttonInterval = "⏱️ Интервал"

	buttonProfileEdit    = "✏️ Редактировать профиль"
	buttonConnectionTest = "🔄 Проверить соединение"

	buttonProfileName     = "📝 Название профиля"
	buttonProfileAPIURL   = "🔗 API URL"
	buttonProfileMediaURL = "🔗 Media URL"
	buttonProfileInstance = "🆔 ID инстанса"
	buttonProfileToken    = "🔑 API токен инстанса"
)

func mainMenuKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonNewBroadcast},
		{buttonTemplateSection},
		{buttonSettings},
	}}
}

func messageKindKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonKindText},
		{buttonKindTextWithFile},
		{buttonKindTemplate},
		{buttonBack},
	}}
}

func confirmKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonConfirm, buttonCancel},
	}}
}

func cancelKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonCancel},
	}}
}

func backKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonBack},
	}}
}

// templateNamesKeyboard lists one template name per row, back at the end.
func templateNamesKeyboard(list []repository.Template) *chat.Keyboard {
	rows := make([][]string, 0, len(list)+1)
	for _, t := range list {
		rows = append(rows, []string{t.Name})
	}
	rows = append(rows, []string{buttonBack})
	return &chat.Keyboard{Rows: rows}
}

func templateSectionKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonTemplatesView},
		{buttonTemplatesCreate},
		{buttonBack},
	}}
}

func templateActionsKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonTemplateShow},
		{buttonTemplateEdit},
		{buttonTemplateDelete},
		{buttonBack},
	}}
}

func templateEditKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonTemplateEditName},
		{buttonTemplateEditText},
		{buttonTemplateEditFile},
		{buttonBack},
	}}
}

func fileManagementKeyboard(hasFile bool) *chat.Keyboard {
	if hasFile {
		return &chat.Keyboard{Rows: [][]string{
			{buttonFileShow},
			{buttonFileReplace},
			{buttonFileDelete},
			{buttonBack},
		}}
	}
	return &chat.Keyboard{Rows: [][]string{
		{buttonFileAdd},
		{buttonBack},
	}}
}

func settingsKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonProfile},
		{buttonInterval},
		{buttonBack},
	}}
}

func profileMenuKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonProfileEdit},
		{buttonConnectionTest},
		{buttonBack},
	}}
}

func profileEditKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{buttonProfileName},
		{buttonProfileAPIURL},
		{buttonProfileMediaURL},
		{buttonProfileInstance},
		{buttonProfileToken},
		{buttonBack},
	}}
}

func intervalKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]string{
		{"2", "5", "10"},
		{"15", "30", "60"},
		{buttonBack},
	}}
}
