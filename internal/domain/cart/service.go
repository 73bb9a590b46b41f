// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/money"
)

var (
	// ErrNotFound is returned when removing an index outside the cart
	ErrNotFound = errors.New("cart item not found")
	// ErrInvalidItem is returned for items without a name
	ErrInvalidItem = errors.New("cart item requires a name")
	// ErrProductNotFound is returned when adding an unknown catalog product
	ErrProductNotFound = errors.New("product not found")
)

// ProductFinder looks up catalog products by ID
type ProductFinder interface {
	Find(id int) (catalog.Product, bool)
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	Name      string       `json:"name" binding:"required"`
	Price     money.Amount `json:"price"`
	Image     string       `json:"image"`
	ProductID *int         `json:"productId"`
}

// Service handles cart business logic
type Service struct {
	repo     *Repository
	locker   *storage.Locker
	bus      events.Publisher
	products ProductFinder
	logger   logrus.FieldLogger
}

// NewService creates a new cart service
func NewService(repo *Repository, locker *storage.Locker, bus events.Publisher, products ProductFinder, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		locker:   locker,
		bus:      bus,
		products: products,
		logger:   logger,
	}
}

// GetCart retrieves the session's cart with its total
func (s *Service) GetCart(ctx context.Context, sessionID string) (Summary, error) {
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(items), nil
}

// AddToCart appends an item to the cart
func (s *Service) AddToCart(ctx context.Context, sessionID string, req AddToCartRequest) (Summary, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Summary{}, ErrInvalidItem
	}

	return s.add(ctx, sessionID, Item{
		Name:      name,
		Price:     req.Price,
		Image:     req.Image,
		ProductID: req.ProductID,
	})
}

// AddProduct appends a catalog product to the cart
func (s *Service) AddProduct(ctx context.Context, sessionID string, productID int) (Summary, error) {
	p, ok := s.products.Find(productID)
	if !ok {
		return Summary{}, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}

	id := p.ID
	return s.add(ctx, sessionID, Item{
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		ProductID: &id,
	})
}

func (s *Service) add(ctx context.Context, sessionID string, item Item) (Summary, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}

	items = append(items, item)
	if err := s.repo.Save(ctx, sessionID, items); err != nil {
		return Summary{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"item":       item.Name,
		"count":      len(items),
	}).Debug("Item added to cart")

	summary := Summarize(items)
	s.publish(sessionID, summary)
	return summary, nil
}

// RemoveFromCart removes the item at index. An out-of-range index returns
// ErrNotFound with the unchanged cart and writes nothing.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, index int) (Summary, error) {
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
	s.publish(sessionID, summary)
	return summary, nil
}

func (s *Service) publish(sessionID string, summary Summary) {
	s.bus.Publish(events.Event{
		Topic:     events.CartChanged,
		SessionID: sessionID,
		Payload:   summary,
	})
}
