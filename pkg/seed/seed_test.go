package seed

import (
	"context"
	"testing"

	"github.com/example/giftstore/pkg/catalog"
	"github.com/example/giftstore/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunSeedsEmptyCollections(t *testing.T) {
	store := repository.NewMemoryStore(repository.StateConnected)
	ctx := context.Background()

	Run(ctx, store, zap.NewNop())

	gifts, err := store.ListDocuments(ctx, catalog.GiftCollection)
	require.NoError(t, err)
	assert.Len(t, gifts, 3)

	testimonials, err := store.ListDocuments(ctx, catalog.TestimonialCollection)
	require.NoError(t, err)
	assert.Len(t, testimonials, 2)

	// Seeded gifts carry their schema defaults.
	for _, doc := range gifts {
		assert.Contains(t, doc, "rating")
		assert.Contains(t, doc, "slug")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	store := repository.NewMemoryStore(repository.StateConnected)
	ctx := context.Background()

	Run(ctx, store, zap.NewNop())
	Run(ctx, store, zap.NewNop())

	gifts, err := store.ListDocuments(ctx, catalog.GiftCollection)
	require.NoError(t, err)
	assert.Len(t, gifts, 3)
}

func TestRunSkipsDegradedStore(t *testing.T) {
	ctx := context.Background()

	// Must be a no-op, not a panic or an error, in both degraded states.
	Run(ctx, repository.NewMemoryStore(repository.StateUnconfigured), zap.NewNop())
	Run(ctx, repository.NewMemoryStore(repository.StateErrored), zap.NewNop())
}
