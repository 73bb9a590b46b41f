// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/validation"
)

// ErrNotFound is returned when removing an address index that does not exist
var ErrNotFound = errors.New("address not found")

// UpdateProfileRequest represents profile form data
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=30"`
}

// CreateAddressRequest represents address form data
type CreateAddressRequest struct {
	Label string `json:"label" validate:"required,max=60"`
	Text  string `json:"text" validate:"required,max=500"`
}

// Service handles profile and address business logic
type Service struct {
	repo   *Repository
	locker *storage.Locker
	bus    events.Publisher
	logger logrus.FieldLogger
}

// NewService creates a new user service
func NewService(repo *Repository, locker *storage.Locker, bus events.Publisher, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		bus:    bus,
		logger: logger,
	}
}

// GetProfile returns the stored profile or an empty one
func (s *Service) GetProfile(ctx context.Context, sessionID string) (Profile, error) {
	p, err := s.repo.LoadProfile(ctx, sessionID)
	if err != nil {
		return Profile{}, err
	}
	if p == nil {
		return Profile{}, nil
	}
	return *p, nil
}

// SaveProfile replaces the profile. There are no partial updates.
func (s *Service) SaveProfile(ctx context.Context, sessionID string, req UpdateProfileRequest) (Profile, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validation.Struct(req); err != nil {
		return Profile{}, err
	}

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	p := Profile{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := s.repo.SaveProfile(ctx, sessionID, p); err != nil {
		return Profile{}, err
	}

	s.bus.Publish(events.Event{Topic: events.ProfileChanged, SessionID: sessionID, Payload: p})
	return p, nil
}

// ListAddresses returns the address book
func (s *Service) ListAddresses(ctx context.Context, sessionID string) (AddressBook, error) {
	addresses, err := s.repo.LoadAddresses(ctx, sessionID)
	if err != nil {
		return AddressBook{}, err
	}
	return NewAddressBook(addresses), nil
}

// DefaultAddress returns the first address, false when none is saved
func (s *Service) DefaultAddress(ctx context.Context, sessionID string) (Address, bool, error) {
	addresses, err := s.repo.LoadAddresses(ctx, sessionID)
	if err != nil {
		return Address{}, false, err
	}
	if len(addresses) == 0 {
		return Address{}, false, nil
	}
	return addresses[0], true, nil
}

// AddAddress appends an address
func (s *Service) AddAddress(ctx context.Context, sessionID string, req CreateAddressRequest) (AddressBook, error) {
	req.Label = strings.TrimSpace(req.Label)
	req.Text = strings.TrimSpace(req.Text)
	if err := validation.Struct(req); err != nil {
		return AddressBook{}, err
	}

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	addresses, err := s.repo.LoadAddresses(ctx, sessionID)
	if err != nil {
		return AddressBook{}, err
	}
	addresses = append(addresses, Address{Label: req.Label, Text: req.Text})
	if err := s.repo.SaveAddresses(ctx, sessionID, addresses); err != nil {
		return AddressBook{}, err
	}

	book := NewAddressBook(addresses)
	s.bus.Publish(events.Event{Topic: events.AddressesChanged, SessionID: sessionID, Payload: book})
	return book, nil
}

// RemoveAddress removes the address at index. Out-of-range indexes return
// ErrNotFound with the unchanged book.
func (s *Service) RemoveAddress(ctx context.Context, sessionID string, index int) (AddressBook, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	addresses, err := s.repo.LoadAddresses(ctx, sessionID)
	if err != nil {
		return AddressBook{}, err
	}
	if index < 0 || index >= len(addresses) {
		return NewAddressBook(addresses), ErrNotFound
	}

	addresses = append(addresses[:index], addresses[index+1:]...)
	if err := s.repo.SaveAddresses(ctx, sessionID, addresses); err != nil {
		return AddressBook{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"index":      index,
	}).Debug("Address removed")

	book := NewAddressBook(addresses)
	s.bus.Publish(events.Event{Topic: events.AddressesChanged, SessionID: sessionID, Payload: book})
	return book, nil
}
