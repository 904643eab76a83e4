package bot

import (
	"fmt"
	"strings"

	"github.com/ratelab/greencast/internal/broadcast"
	"github.com/ratelab/greencast/internal/greenapi"
	"github.com/ratelab/greencast/internal/repository"
)

const (
	messageWelcome = "👋 Добро пожаловать в бот для рассылки сообщений!\n\n" +
		"С помощью этого бота вы можете:\n" +
		"• Создавать рассылки по списку номеров\n" +
		"• Управлять шаблонами сообщений\n" +
		"• Настраивать параметры подключения и рассылки\n\n" +
		"Выберите действие в меню ниже:"

	messageHelp = "📌 *Справка по использованию бота*\n\n" +
		"*Основные команды:*\n" +
		"/start - запуск бота и переход в главное меню\n" +
		"/help - показать эту справку\n" +
		"/menu - вернуться в главное меню\n\n" +
		"*Разделы бота:*\n" +
		"• 📢 *Создать рассылку* - отправка сообщений по списку номеров\n" +
		"• 📄 *Управление шаблонами* - создание и редактирование шаблонов сообщений\n" +
		"• ⚙️ *Настройки* - настройка профиля и параметров рассылки"

	messageMainMenu        = "Вы вернулись в главное меню. Выберите действие:"
	messageUseMenuButtons  = "Пожалуйста, используйте кнопки меню для навигации."
	messageAttachSheet     = "Для начала рассылки прикрепите файл Excel с номерами телефонов."
	messageSheetWrongType  = "❌ Пожалуйста, загрузите файл в формате Excel (.xls или .xlsx)"
	messageSheetEmpty      = "❌ В файле не найдены номера телефонов."
	messageChooseKind      = "Выберите тип сообщения:"
	messageChooseKindError = "❌ Пожалуйста, выберите тип сообщения, используя кнопки."
	messageEnterText       = "Введите текстовое сообщение для рассылки:"
	messageUploadMedia     = "Загрузите файл для рассылки (изображение, видео, документ и т.д.):"
	messageUploadCancelled = "Загрузка файла отменена. Введите текстовое сообщение заново:"
	messageChooseTemplate  = "Выберите шаблон сообщения:"
	messageNoTemplates     = "❌ Шаблоны не найдены. Пожалуйста, сначала создайте шаблоны в разделе 'Управление шаблонами'."
	messageTemplateUnknown = "❌ Шаблон не найден. Пожалуйста, выберите шаблон из списка."
	messageConfirmOrCancel = "❌ Пожалуйста, подтвердите или отмените рассылку, используя кнопки."
	messageBroadcastQueued = "✅ Рассылка запущена. Вы получите уведомление по окончании процесса."
	messageBroadcastCancel = "Рассылка отменена. Выберите тип сообщения:"
	messageBroadcastToMenu = "Создание рассылки отменено. Вы вернулись в главное меню."
	messageNoRecipients    = "❌ Ошибка: список номеров телефонов не найден. Начните создание рассылки заново."
	messageNoMessageText   = "❌ Ошибка: текст сообщения не найден. Начните создание рассылки заново."
	messageSessionLost     = "❌ Данные о рассылке не найдены."

	messageTemplateSection     = "Раздел управления шаблонами. Выберите действие:"
	messageNoSavedTemplates    = "📂 У вас пока нет сохраненных шаблонов. Вы можете создать новый шаблон."
	messageTemplateCreateName  = "Создание нового шаблона.\nВведите название шаблона:"
	messageTemplateCreateText  = "Введите текст шаблона:"
	messageTemplateCreateQuery = "Прикрепить к шаблону файл?"
	messageTemplateUploadFile  = "Загрузите файл для шаблона (изображение, видео, документ и т.д.):"
	messageTemplateLost        = "❌ Ошибка: шаблон не выбран. Пожалуйста, вернитесь к списку шаблонов."
	messageTemplateChooseParam = "Пожалуйста, выберите параметр для изменения."
	messageTemplateNewName     = "Введите новое название:"
	messageTemplateNewText     = "Введите новый текст:"
	messageSelectTemplate      = "Выберите шаблон:"
	messageChooseAction        = "Пожалуйста, выберите действие, используя кнопки."
	messageTemplateCancelled   = "Создание шаблона отменено."
	messageTemplateNameSaved   = "✅ Название шаблона обновлено."
	messageTemplateTextSaved   = "✅ Текст шаблона обновлен."
	messageTemplateFileSaved   = "✅ Файл шаблона обновлен."
	messageTemplateFileCleared = "✅ Файл удален из шаблона."
	messageTemplateSaveFailed  = "❌ Ошибка при сохранении шаблона."
	messageTemplateDropFailed  = "❌ Ошибка при удалении шаблона."
	messageConfirmDeletePrompt = "Пожалуйста, подтвердите или отмените удаление."
	messageNoAttachedFile      = "📎 Прикрепленный файл: нет"
	messageDownloadFailed      = "❌ Ошибка при загрузке файла. Пожалуйста, попробуйте еще раз."

	messageSettingsSection     = "Выберите раздел настроек:"
	messageProfileSection      = "Раздел управления профилем Green API. Выберите действие:"
	messageProfileChooseParam  = "Выберите параметр профиля для редактирования:"
	messageProfileNotSet       = "❌ Ошибка: профиль не настроен. Пожалуйста, сначала настройте профиль."
	messageProfileIncomplete   = "❌ Ошибка: неполные данные профиля. Пожалуйста, настройте все параметры."
	messageConnectionChecking  = "⏳ Проверка соединения с API..."
	messageConnectionBackHint  = "Пожалуйста, нажмите кнопку 'Назад' для возврата в меню профиля."
	messageEditCancelled       = "Редактирование отменено. Выберите параметр для редактирования:"
	messageEditLost            = "❌ Ошибка: данные для редактирования не найдены. Пожалуйста, начните заново."
	messageConfirmParamPrompt  = "Пожалуйста, подтвердите или отмените изменение параметра."
	messageParamChangeCanceled = "Изменение отменено. Выберите параметр для редактирования:"
	messageIntervalInvalid     = "❌ Пожалуйста, введите число от 1 до 60 или выберите один из предустановленных вариантов."
	messageIntervalSaveFailed  = "❌ Ошибка при сохранении интервала. Пожалуйста, попробуйте еще раз."
)

func formatSheetAccepted(count int) string {
	return fmt.Sprintf("✅ Файл успешно получен.\nОбнаружено %d номеров.\n\nВыберите тип сообщения:", count)
}

func formatTemplateFileMissing(path string) string {
	return fmt.Sprintf("⚠️ Предупреждение: файл из шаблона не найден (%s). Рассылка будет отправлена только с текстом.", path)
}

// formatReview renders the pre-launch summary of a composed broadcast.
func formatReview(s *broadcast.Session) string {
	var b strings.Builder
	b.WriteString("📬 *Информация о рассылке:*\n\n")
	fmt.Fprintf(&b, "📱 Количество номеров: *%d*\n\n", len(s.Recipients))
	fmt.Fprintf(&b, "📝 Текст рассылки:\n```\n%s\n```\n", s.Message)
	if s.Attachment != nil {
		fmt.Fprintf(&b, "📎 Прикрепленный файл: *%s* (%s)\n", s.Attachment.Name, s.Attachment.Kind)
	}
	b.WriteString("\nПожалуйста, проверьте данные и подтвердите или отмените рассылку:")
	return b.String()
}

func formatBroadcastStarted(total int) string {
	return fmt.Sprintf("🚀 Начинаем рассылку для %d получателей...", total)
}

func formatProgress(p broadcast.Progress) string {
	return fmt.Sprintf("📊 Прогресс: %d/%d (%d%%)\n✅ Успешно: %d\n❌ Ошибки: %d",
		p.Processed, p.Total, p.Percent, p.Succeeded, p.Failed)
}

func formatSummary(s broadcast.Summary) string {
	return fmt.Sprintf("✅ Рассылка завершена!\n\n📊 Итоговая статистика:\n📱 Всего номеров: %d\n✅ Успешно отправлено: %d\n❌ Ошибок: %d",
		s.Total, s.Succeeded, s.Failed)
}

func formatAbort(reason broadcast.AbortReason) string {
	switch reason {
	case broadcast.AbortProfileUnavailable:
		return "❌ Ошибка: профиль не настроен."
	case broadcast.AbortProfileIncomplete:
		return "❌ Ошибка: неполные данные профиля."
	default:
		return "❌ Рассылка прервана из-за внутренней ошибки."
	}
}

func formatTemplateInfo(t repository.Template, fileOnDisk bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 *Шаблон:* %s\n\n", t.Name)
	fmt.Fprintf(&b, "💬 *Текст сообщения:*\n```\n%s\n```\n\n", t.Text)
	if t.HasFile && t.FilePath != "" {
		status := "❌ Недоступен"
		if fileOnDisk {
			status = "✅ Доступен"
		}
		b.WriteString("📎 *Прикрепленный файл:*\n")
		fmt.Fprintf(&b, "Путь: `%s`\n", t.FilePath)
		fmt.Fprintf(&b, "Статус: %s", status)
	} else {
		b.WriteString(messageNoAttachedFile)
	}
	return b.String()
}

func formatTemplateHeader(name string) string {
	return fmt.Sprintf("Шаблон: *%s*\n\nВыберите действие:", name)
}

func formatTemplateEditHeader(name string) string {
	return fmt.Sprintf("Редактирование шаблона: *%s*\n\nВыберите параметр для изменения:", name)
}

func formatSheetReadError(err error) string {
	return fmt.Sprintf("❌ Ошибка при чтении файла: %v", err)
}

func formatTemplateCurrentName(name string) string {
	return fmt.Sprintf("Текущее название шаблона: *%s*\n\n%s", name, messageTemplateNewName)
}

func formatTemplateCurrentText(text string) string {
	return fmt.Sprintf("Текущий текст шаблона:\n```\n%s\n```\n\n%s", text, messageTemplateNewText)
}

func formatFileManageHeader(name string) string {
	return fmt.Sprintf("Управление файлом шаблона *%s*:", name)
}

func formatFileDeletePrompt(name string) string {
	return fmt.Sprintf("⚠️ Удалить прикрепленный файл шаблона *%s*?", name)
}

func formatTemplateDeletePrompt(name string) string {
	return fmt.Sprintf("⚠️ Вы действительно хотите удалить шаблон *%s*?\n\nЭто действие нельзя отменить.", name)
}

func formatConnectionOK(state greenapi.InstanceState) string {
	return fmt.Sprintf("✅ Соединение установлено успешно!\n\n📱 Номер WhatsApp: *%s*\n👤 Имя: *%s*\n🔌 Статус: *%s*",
		orPlaceholder(state.WID), orPlaceholder(state.Name), orPlaceholder(state.StateInstance))
}

func formatConnectionNotReady(state string) string {
	if state == "" {
		state = "нет ответа"
	}
	return fmt.Sprintf("⚠️ Соединение установлено, но статус инстанса: *%s*\nДля работы требуется статус *authorized* или *online*.\nПожалуйста, проверьте авторизацию в Green API.", state)
}

func formatConnectionError(err error) string {
	return fmt.Sprintf("❌ Ошибка при подключении к API: %v", err)
}

func formatParamPrompt(label, currentValue string) string {
	return fmt.Sprintf("Редактирование параметра: *%s*\n\nТекущее значение: `%s`\n\nВведите новое значение:", label, currentValue)
}

func formatParamConfirm(param, newValue string) string {
	return fmt.Sprintf("Вы собираетесь изменить параметр *%s*\n\nНовое значение: `%s`\n\nПодтвердите изменение:", param, newValue)
}

func formatParamSaved(param string) string {
	return fmt.Sprintf("✅ Параметр *%s* успешно обновлен.", param)
}

func formatParamSaveFailed(param string) string {
	return fmt.Sprintf("❌ Ошибка при сохранении параметра *%s*. Пожалуйста, попробуйте еще раз.", param)
}

func formatIntervalPrompt(current int) string {
	return fmt.Sprintf("Настройка интервала между сообщениями при рассылке.\n\nТекущее значение: *%d секунд*\n\nВыберите новое значение или введите число от 1 до 60:", current)
}

func formatIntervalSaved(interval int) string {
	return fmt.Sprintf("✅ Интервал между сообщениями успешно установлен на *%d секунд*.", interval)
}

func formatTemplateCreated(name string) string {
	return fmt.Sprintf("✅ Шаблон *%s* успешно создан.", name)
}

func formatTemplateDeleted(name string) string {
	return fmt.Sprintf("✅ Шаблон *%s* успешно удален.", name)
}

func formatTemplatesAvailable(count int) string {
	return fmt.Sprintf("Доступные шаблоны (%d):\nВыберите шаблон для просмотра деталей:", count)
}

func orPlaceholder(v string) string {
	if v == "" {
		return "Не указан"
	}
	return v
}
