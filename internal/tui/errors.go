// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
)

const msgServerUnavailable = "Отсутствует сеть или Сервер недоступен"

// humanizeError turns an error of the client services into a message for
// the user. Unknown errors are shown as is.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return "Логин уже занят"
	case errors.Is(err, service.ErrWrongPassword):
		return "Неверный логин или пароль"
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return "Сессия истекла, войдите заново"
	case errors.Is(err, service.ErrNotAuthenticated):
		return "Требуется вход"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Задача не найдена"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Некорректные данные: " + err.Error()
	}

	if isNetworkError(err) {
		return msgServerUnavailable
	}

	return err.Error()
}

func isNetworkError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded")
}

func syncErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if isNetworkError(err) {
		return "синхронизация отложена. " + msgServerUnavailable
	}
	return "Ошибка синхронизации: " + humanizeError(err)
}
