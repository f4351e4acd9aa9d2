// Package i18n holds the static English/Russian string tables for all
// user-facing text.
package i18n

// Langs are the supported language codes.
var Langs = []string{"en", "ru"}

var translations = map[string]map[string]string{
	"en": {
		"welcome":         "Console AI Chat",
		"help_title":      "Help",
		"commands":        "Commands",
		"new_chat":        "Create new chat",
		"switch_chat":     "Switch chat",
		"delete_chat":     "Delete chat",
		"list_chats":      "Show chat list",
		"set_model":       "Set model",
		"current_model":   "Current model",
		"list_models":     "Show available models",
		"list_providers":  "Show active providers",
		"system_status":   "System status",
		"set_lang":        "Set language",
		"exit":            "Exit program",
		"help":            "Show help",
		"free_text":       "Simply enter text to talk to the AI",
		"lang_set":        "Language set",
		"invalid_lang":    "Invalid language. Use 'en' or 'ru'",
		"chat_created":    "A new chat has been created and selected",
		"chat_switched":   "Switched to chat",
		"chat_deleted":    "Chat has been deleted",
		"chat_not_found":  "Chat with this ID was not found",
		"no_chats":        "You don't have any chats yet",
		"your_chats":      "Your Chats",
		"enter_chat_id":   "Enter the chat ID",
		"model_set":       "Model installed",
		"model_invalid":   "The model is not available. Use /models for the list",
		"specify_model":   "Specify the model",
		"models_title":    "Available models",
		"providers_title": "Active providers",
		"status_title":    "System status",
		"total":           "Total",
		"unknown_command": "Unknown command. Type /help for the list of commands",
		"generating":      "Generating a response...",
		"gen_error":       "All providers are unavailable. Try again later or change models.",
		"tried_providers": "Tried %d providers",
		"model_in_use":    "Model: %s",
		"recent_errors":   "Recent errors:",
		"suggestions":     "Suggestions:",
		"try_again":       "Try again later",
		"change_model":    "Change model (/setmodel)",
		"check_status":    "Check /status for system info",
		"timeout_error":   "request timed out",
		"empty_response":  "provider returned an empty response",
		"thinking_title":  "Reflections of the model:",
		"code_saved":      "Saved %d code block(s)",
		"loop_error":      "An error has occurred. We continue to work...",
	},
	"ru": {
		"welcome":         "Консольный AI Чат",
		"help_title":      "Помощь",
		"commands":        "Команды",
		"new_chat":        "Создать новый чат",
		"switch_chat":     "Переключить чат",
		"delete_chat":     "Удалить чат",
		"list_chats":      "Список чатов",
		"set_model":       "Установить модель",
		"current_model":   "Текущая модель",
		"list_models":     "Доступные модели",
		"list_providers":  "Активные провайдеры",
		"system_status":   "Статус системы",
		"set_lang":        "Установить язык",
		"exit":            "Выход из программы",
		"help":            "Показать справку",
		"free_text":       "Просто введите текст для общения с ИИ",
		"lang_set":        "Язык установлен",
		"invalid_lang":    "Недопустимый язык. Используйте 'en' или 'ru'",
		"chat_created":    "Новый чат создан и выбран",
		"chat_switched":   "Переключено на чат",
		"chat_deleted":    "Чат удалён",
		"chat_not_found":  "Чат с таким ID не найден",
		"no_chats":        "У вас пока нет чатов",
		"your_chats":      "Ваши чаты",
		"enter_chat_id":   "Введите ID чата",
		"model_set":       "Модель установлена",
		"model_invalid":   "Модель недоступна. Используйте /models для списка",
		"specify_model":   "Укажите модель",
		"models_title":    "Доступные модели",
		"providers_title": "Активные провайдеры",
		"status_title":    "Статус системы",
		"total":           "Всего",
		"unknown_command": "Неизвестная команда. Введите /help для списка команд",
		"generating":      "Генерация ответа...",
		"gen_error":       "Все провайдеры недоступны. Попробуйте позже или смените модель.",
		"tried_providers": "Опробовано провайдеров: %d",
		"model_in_use":    "Модель: %s",
		"recent_errors":   "Последние ошибки:",
		"suggestions":     "Рекомендации:",
		"try_again":       "Попробуйте позже",
		"change_model":    "Смените модель (/setmodel)",
		"check_status":    "Проверьте /status",
		"timeout_error":   "превышено время ожидания",
		"empty_response":  "провайдер вернул пустой ответ",
		"thinking_title":  "Размышления модели:",
		"code_saved":      "Сохранено блоков кода: %d",
		"loop_error":      "Произошла ошибка. Продолжаем работу...",
	},
}

// T returns the translation for key in lang, falling back to English
// and then to the key itself.
func T(key, lang string) string {
	if table, ok := translations[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := translations["en"][key]; ok {
		return s
	}
	return key
}

// Valid reports whether lang is a supported language code.
func Valid(lang string) bool {
	_, ok := translations[lang]
	return ok
}
