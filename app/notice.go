package app

import (
	"errors"

	"github.com/CrestNiraj12/terminalqa/domain"
)

// Op names a user-visible operation for notification purposes.
type Op int

const (
	OpLogin Op = iota
	OpRegister
	OpLoad
	OpSearch
	OpAnswer
	OpRate
	OpProfileLoad
	OpProfileSave
)

// User-facing messages.
const (
	MsgNeedCredentials = "Enter a username and password."
	MsgNeedAnswer      = "Enter an answer."
	MsgNeedKeyword     = "Enter a search keyword."
	MsgNetworkError    = "Network error occurred."
	MsgLoginFailed     = "Login failed."
	MsgRegisterFailed  = "Registration failed."
	MsgRegistered      = "Registered! Please log in."
	MsgLoadFailed      = "Failed to load questions."
	MsgSearchFailed    = "Search failed."
	MsgAnswerFailed    = "Failed to post answer."
	MsgRateFailed      = "Failed to rate."
	MsgProfileSaved    = "Profile saved."
	MsgProfileFailed   = "Failed to save profile."
	MsgLoggedOut       = "Logged out."
)

// Notice turns an operation failure into the single line shown to the user.
func Notice(op Op, err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := domain.ValidationMessage(err); ok {
		return msg
	}

	switch op {
	case OpLoad:
		return MsgLoadFailed
	case OpSearch:
		return MsgSearchFailed
	case OpProfileLoad:
		return ""
	}

	if errors.Is(err, domain.ErrTransport) {
		return MsgNetworkError
	}

	fallback := MsgNetworkError
	switch op {
	case OpLogin:
		fallback = MsgLoginFailed
	case OpRegister:
		fallback = MsgRegisterFailed
	case OpAnswer:
		fallback = MsgAnswerFailed
	case OpRate:
		fallback = MsgRateFailed
	case OpProfileSave:
		return MsgProfileFailed
	}
	if detail, ok := domain.RejectionDetail(err); ok {
		return detail
	}
	return fallback
}
