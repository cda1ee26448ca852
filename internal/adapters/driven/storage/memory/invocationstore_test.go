package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

func record(n int) *domain.InvocationRecord {
	return &domain.InvocationRecord{
		ID:         fmt.Sprintf("inv-%d", n),
		Capability: domain.CapabilityDetect,
		Module:     domain.ModuleDetect,
		Success:    true,
	}
}

func TestInvocationStore_RecordAndList(t *testing.T) {
	store := NewInvocationStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Record(ctx, record(i)))
	}

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "inv-3", records[0].ID)
	assert.Equal(t, "inv-1", records[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "inv-2", limited[1].ID)
}

func TestInvocationStore_RecordCopies(t *testing.T) {
	store := NewInvocationStore()
	ctx := context.Background()

	rec := record(1)
	rec.Args = []string{"sda"}
	require.NoError(t, store.Record(ctx, rec))

	rec.Args[0] = "sdz"
	rec.ID = "changed"

	records, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "inv-1", records[0].ID)
	assert.Equal(t, []string{"sda"}, records[0].Args)
}

func TestInvocationStore_RecordInvalid(t *testing.T) {
	store := NewInvocationStore()
	assert.ErrorIs(t, store.Record(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Record(context.Background(), &domain.InvocationRecord{}), domain.ErrInvalidInput)
}

func TestInvocationStore_Prune(t *testing.T) {
	store := NewInvocationStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Record(ctx, record(i)))
	}
	require.NoError(t, store.Prune(ctx, 2))

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "inv-5", records[0].ID)
	assert.Equal(t, "inv-4", records[1].ID)

	require.NoError(t, store.Prune(ctx, 0))
	records, err = store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestInvocationStore_Concurrency(t *testing.T) {
	store := NewInvocationStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Record(ctx, record(n))
			_, _ = store.List(ctx, 5)
		}(i)
	}
	wg.Wait()

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 50)
}
