package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/drivegate/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/drivegate/internal/core/domain"
)

func TestHistoryService_Recent(t *testing.T) {
	store := memory.NewInvocationStore()
	ctx := context.Background()
	for i := 0; i < 60; i++ {
		require.NoError(t, store.Record(ctx, &domain.InvocationRecord{ID: fmt.Sprintf("inv-%d", i)}))
	}
	svc := NewHistoryService(store)

	records, err := svc.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "inv-59", records[0].ID)

	records, err = svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, DefaultHistoryLimit)
}

func TestHistoryService_NilStore(t *testing.T) {
	records, err := NewHistoryService(nil).Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHistoryService_StoreError(t *testing.T) {
	_, err := NewHistoryService(failingStore{}).Recent(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
