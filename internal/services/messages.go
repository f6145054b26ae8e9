package services

import (
	"fmt"

	"webformguard/internal/domain"
)

type messageCatalog struct {
	duplicateFriendEmail   string
	friendEmailAlreadyUsed string
}

var catalogs = map[string]messageCatalog{
	"pt": {
		duplicateFriendEmail:   "O email: %s está repetido, utilize outro email de amigo!",
		friendEmailAlreadyUsed: "Email de amigo %d já utilizado, utilize outro email de amigo!",
	},
	"en": {
		duplicateFriendEmail:   "The email %s is repeated, use a different friend email!",
		friendEmailAlreadyUsed: "Friend email %d already used, use a different friend email!",
	},
}

// NewMessages returns the validation messages for locale ("pt" or "en").
// Unknown locales fall back to Portuguese.
func NewMessages(locale string) domain.Messages {
	c, ok := catalogs[locale]
	if !ok {
		c = catalogs["pt"]
	}
	return c
}

func (c messageCatalog) DuplicateFriendEmail(email string) string {
	return fmt.Sprintf(c.duplicateFriendEmail, email)
}

func (c messageCatalog) FriendEmailAlreadyUsed(n int) string {
	return fmt.Sprintf(c.friendEmailAlreadyUsed, n)
}
