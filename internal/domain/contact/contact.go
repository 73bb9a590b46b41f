// Package contact stores messages sent through the storefront contact form.
package contact

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/validation"
)

// Message represents a submitted contact form
type Message struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// SubmitRequest represents contact form data
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Service appends contact messages to the session's message list
type Service struct {
	store  storage.Store
	locker *storage.Locker
	bus    events.Publisher
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new contact service
func NewService(store storage.Store, locker *storage.Locker, bus events.Publisher, logger logrus.FieldLogger) *Service {
	return &Service{
		store:  store,
		locker: locker,
		bus:    bus,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and stores a message. The ID is the submission time in
// unix milliseconds.
func (s *Service) Submit(ctx context.Context, sessionID string, req SubmitRequest) (Message, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := validation.Struct(req); err != nil {
		return Message{}, err
	}

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	messages, err := s.List(ctx, sessionID)
	if err != nil {
		return Message{}, err
	}

	now := s.now()
	msg := Message{
		ID:      strconv.FormatInt(now.UnixMilli(), 10),
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Date:    now,
	}
	messages = append(messages, msg)

	if err := storage.Save(ctx, s.store, sessionID, storage.KeyContactMessages, messages); err != nil {
		return Message{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"message_id": msg.ID,
	}).Info("Contact message received")

	s.bus.Publish(events.Event{Topic: events.ContactChanged, SessionID: sessionID, Payload: msg})
	return msg, nil
}

// List returns the stored messages, oldest first
func (s *Service) List(ctx context.Context, sessionID string) ([]Message, error) {
	messages, err := storage.Load(ctx, s.store, s.logger, sessionID, storage.KeyContactMessages, []Message{})
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []Message{}
	}
	return messages, nil
}
