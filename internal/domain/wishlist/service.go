// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/money"
)

var (
	// ErrNotFound is returned for indexes outside the wishlist
	ErrNotFound = errors.New("wishlist item not found")
	// ErrInvalidItem is returned for entries without a name
	ErrInvalidItem = errors.New("wishlist item requires a name")
)

// ToggleRequest represents a wishlist toggle request
type ToggleRequest struct {
	ID    int          `json:"id"`
	Name  string       `json:"name" binding:"required"`
	Price money.Amount `json:"price"`
	Image string       `json:"image"`
}

// ToggleResult reports the wishlist after a toggle
type ToggleResult struct {
	InWishlist bool    `json:"in_wishlist"`
	Wishlist   Summary `json:"wishlist"`
}

// MoveResult reports both lists after moving an entry to the cart
type MoveResult struct {
	Wishlist Summary      `json:"wishlist"`
	Cart     cart.Summary `json:"cart"`
}

// Service handles wishlist business logic
type Service struct {
	repo     *Repository
	cartRepo *cart.Repository
	store    storage.Store
	locker   *storage.Locker
	bus      events.Publisher
	products cart.ProductFinder
	logger   logrus.FieldLogger
}

// NewService creates a new wishlist service
func NewService(repo *Repository, cartRepo *cart.Repository, store storage.Store, locker *storage.Locker, bus events.Publisher, products cart.ProductFinder, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		cartRepo: cartRepo,
		store:    store,
		locker:   locker,
		bus:      bus,
		products: products,
		logger:   logger,
	}
}

// GetWishlist retrieves the session's wishlist
func (s *Service) GetWishlist(ctx context.Context, sessionID string) (Summary, error) {
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(items), nil
}

// Names returns the set of wishlisted product names, used to mark hearts
func (s *Service) Names(ctx context.Context, sessionID string) (map[string]bool, error) {
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(items))
	for _, item := range items {
		names[item.Name] = true
	}
	return names, nil
}

// Contains reports whether an entry named name is wishlisted
func (s *Service) Contains(ctx context.Context, sessionID, name string) (bool, error) {
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return IndexOf(items, name) >= 0, nil
}

// Toggle removes the entry with the same name or appends a new one.
// Two toggles with the same name restore the original membership.
func (s *Service) Toggle(ctx context.Context, sessionID string, req ToggleRequest) (ToggleResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ToggleResult{}, ErrInvalidItem
	}
	return s.toggle(ctx, sessionID, Item{ID: req.ID, Name: name, Price: req.Price, Image: req.Image})
}

// ToggleProduct toggles a catalog product by ID
func (s *Service) ToggleProduct(ctx context.Context, sessionID string, productID int) (ToggleResult, error) {
	p, ok := s.products.Find(productID)
	if !ok {
		return ToggleResult{}, fmt.Errorf("%w: %d", cart.ErrProductNotFound, productID)
	}
	return s.toggle(ctx, sessionID, Item{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image})
}

func (s *Service) toggle(ctx context.Context, sessionID string, item Item) (ToggleResult, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return ToggleResult{}, err
	}

	added := false
	if idx := IndexOf(items, item.Name); idx >= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items = append(items, item)
		added = true
	}

	if err := s.repo.Save(ctx, sessionID, items); err != nil {
		return ToggleResult{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"item":       item.Name,
		"added":      added,
	}).Debug("Wishlist toggled")

	summary := Summarize(items)
	s.publish(sessionID, events.WishlistChanged, summary)
	return ToggleResult{InWishlist: added, Wishlist: summary}, nil
}

// Remove removes the entry at index. Out-of-range indexes return ErrNotFound
// with the unchanged wishlist.
func (s *Service) Remove(ctx context.Context, sessionID string, index int) (Summary, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if index < 0 || index >= len(items) {
		return Summarize(items), ErrNotFound
	}

	items = append(items[:index], items[index+1:]...)
	if err := s.repo.Save(ctx, sessionID, items); err != nil {
		return Summary{}, err
	}

	summary := Summarize(items)
	s.publish(sessionID, events.WishlistChanged, summary)
	return summary, nil
}

// MoveToCart appends the entry at index to the cart and removes it from the
// wishlist. Both keys are written in one batch.
func (s *Service) MoveToCart(ctx context.Context, sessionID string, index int) (MoveResult, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return MoveResult{}, err
	}
	cartItems, err := s.cartRepo.Load(ctx, sessionID)
	if err != nil {
		return MoveResult{}, err
	}
	if index < 0 || index >= len(items) {
		return MoveResult{Wishlist: Summarize(items), Cart: cart.Summarize(cartItems)}, ErrNotFound
	}

	moved := items[index]
	cartItems = append(cartItems, moved.ToCartItem())
	items = append(items[:index], items[index+1:]...)

	batch := storage.NewBatch()
	s.repo.Stage(batch, items)
	s.cartRepo.Stage(batch, cartItems)
	if err := batch.Commit(ctx, s.store, sessionID); err != nil {
		return MoveResult{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"item":       moved.Name,
	}).Debug("Wishlist item moved to cart")

	result := MoveResult{Wishlist: Summarize(items), Cart: cart.Summarize(cartItems)}
	s.publish(sessionID, events.WishlistChanged, result.Wishlist)
	s.publish(sessionID, events.CartChanged, result.Cart)
	return result, nil
}

func (s *Service) publish(sessionID string, topic events.Topic, payload any) {
	s.bus.Publish(events.Event{
		Topic:     topic,
		SessionID: sessionID,
		Payload:   payload,
	})
}
