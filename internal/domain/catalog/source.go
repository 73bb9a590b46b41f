// internal/domain/catalog/source.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrLoad is returned when a static data source is unreachable or malformed
var ErrLoad = errors.New("failed to load static data")

const maxSourceBytes = 16 << 20

// ErrSourceTooLarge is wrapped when a document exceeds the read limit
var ErrSourceTooLarge = errors.New("source too large")

// Source reads the static JSON documents the storefront is built on.
// Locations are either file paths or http(s) URLs.
type Source struct {
	client   *http.Client
	maxBytes int64
}

// NewSource creates a source whose HTTP fetches time out after timeout
func NewSource(timeout time.Duration) *Source {
	return &Source{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxSourceBytes,
	}
}

// FetchJSON decodes the document at location into v. Any failure wraps ErrLoad.
func (s *Source) FetchJSON(ctx context.Context, location string, v any) error {
	body, err := s.read(ctx, location)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, location, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: malformed json: %v", ErrLoad, location, err)
	}
	return nil
}

func (s *Source) read(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return s.readAll(resp.Body)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.readAll(f)
}

func (s *Source) readAll(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrSourceTooLarge, s.maxBytes)
	}
	return body, nil
}
