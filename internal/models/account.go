// Package models holds the plain data types shared by the storefront
// components: catalog items, accounts, cart lines and order receipts.
package models

import "unicode"

// Account is a registered customer. Password is kept verbatim.
//
// ID is the account creation time in Unix milliseconds.
type Account struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Initial returns the upper-cased first letter of the account name, used for
// the avatar badge. It returns "?" for an empty name.
func (a Account) Initial() string {
	for _, r := range a.Name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}
