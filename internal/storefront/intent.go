package storefront

import "github.com/dmitrijs2005/deliciousbites/internal/models"

// Intent is a user action fed into Dispatch. The set is closed: only the
// types in this file implement it.
type Intent interface {
	intent()
}

type RegisterRequested struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

type LoginRequested struct {
	Email    string
	Password string
}

type LogoutRequested struct{}

type AddToCartRequested struct {
	ItemID int
}

type RemoveFromCartRequested struct {
	ItemID int
}

type CheckoutRequested struct{}

// OrderNowRequested orders one unit of an item directly, bypassing the cart.
type OrderNowRequested struct {
	ItemID int
}

func (RegisterRequested) intent()       {}
func (LoginRequested) intent()          {}
func (LogoutRequested) intent()         {}
func (AddToCartRequested) intent()      {}
func (RemoveFromCartRequested) intent() {}
func (CheckoutRequested) intent()       {}
func (OrderNowRequested) intent()       {}

// View tells the presentation layer where to go after an intent.
type View int

const (
	ViewNone View = iota
	ViewLogin
	ViewHome
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewHome:
		return "home"
	default:
		return "none"
	}
}

// Outcome is the result of a dispatched intent.
type Outcome struct {
	Message string
	Next    View
	Order   *models.Order
}

// Snapshot is the read model handed to change observers.
type Snapshot struct {
	Account   *models.Account
	Lines     []models.CartLine
	ItemCount int
	Total     models.Money
}
