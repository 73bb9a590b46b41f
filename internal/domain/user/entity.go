// internal/domain/user/entity.go
package user

import (
	"github.com/your-org/storefront/internal/domain/wallet"
)

// Profile represents the visitor's contact details. It is saved wholesale.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Address represents a saved shipping address. The first address in the
// list is the default.
type Address struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// MockUser is a record of the static users source used to seed new visitors
type MockUser struct {
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Addresses []Address      `json:"addresses"`
	Wallet    *wallet.Wallet `json:"wallet"`
}

// Profile returns the profile part of the mock user
func (m MockUser) Profile() Profile {
	return Profile{Name: m.Name, Email: m.Email, Phone: m.Phone}
}

// AddressBook is the address list as rendered on the account page
type AddressBook struct {
	Addresses []Address `json:"addresses"`
	Default   *Address  `json:"default,omitempty"`
	Count     int       `json:"count"`
}

// NewAddressBook renders addresses
func NewAddressBook(addresses []Address) AddressBook {
	if addresses == nil {
		addresses = []Address{}
	}
	book := AddressBook{Addresses: addresses, Count: len(addresses)}
	if len(addresses) > 0 {
		def := addresses[0]
		book.Default = &def
	}
	return book
}
