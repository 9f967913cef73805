package response

import "credstore/internal/core/domain/credential"

type PasswordEntry struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}

func FromPasswordEntry(entry credential.ResetToken) PasswordEntry {
	return PasswordEntry{ID: string(entry.ID), UserID: string(entry.UserID)}
}

type PasswordReset struct {
	IsNewPasswordSet      bool   `json:"isNewPasswordSet"`
	PasswordResetActionID string `json:"passwordResetActionId,omitempty"`
	UserID                string `json:"userId,omitempty"`
}
