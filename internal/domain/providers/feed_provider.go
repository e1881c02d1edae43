package providers

import (
	"context"

	"github.com/code4imabari/kyukyu-annai/internal/domain/entities"
)

// FeedProvider defines the interface for loading the duty-hospital feed
type FeedProvider interface {
	// Fetch returns the full feed document
	Fetch(ctx context.Context) (*entities.Feed, error)
}
