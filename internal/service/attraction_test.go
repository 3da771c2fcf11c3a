package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psorokin/tripfolio/backend/internal/domain"
	"github.com/psorokin/tripfolio/backend/internal/service"
)

func TestDestinationService_AddAttraction(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()

	dest := createDestination(t, svc, "Paris")
	got, err := svc.AddAttraction(ctx, dest.ID, "Louvre")

	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Louvre", got.Name)
	_, parseErr := time.Parse(time.RFC3339, got.AddedAt)
	assert.NoError(t, parseErr)

	full, err := svc.GetDestination(ctx, dest.ID)
	require.NoError(t, err)
	require.Len(t, full.Attractions, 1)
	assert.Equal(t, got.ID, full.Attractions[0].ID)
}

func TestDestinationService_AddAttraction_BlankName(t *testing.T) {
	svc := service.NewDestinationService(&mockProvider{})

	_, err := svc.AddAttraction(context.Background(), "dest-1", "  ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_AddAttraction_DestNotFound(t *testing.T) {
	svc := newStoreService(t)

	_, err := svc.AddAttraction(context.Background(), "no-such-dest", "Louvre")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationService_AddAttraction_AppendsNotReplaces(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()

	dest := createDestination(t, svc, "Paris")
	first, err := svc.AddAttraction(ctx, dest.ID, "Louvre")
	require.NoError(t, err)
	second, err := svc.AddAttraction(ctx, dest.ID, "Eiffel Tower")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	full, err := svc.GetDestination(ctx, dest.ID)
	require.NoError(t, err)
	require.Len(t, full.Attractions, 2)
	assert.Equal(t, "Louvre", full.Attractions[0].Name)
	assert.Equal(t, "Eiffel Tower", full.Attractions[1].Name)
}

func TestDestinationService_RemoveAttraction(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()

	dest := createDestination(t, svc, "Paris")
	keep, err := svc.AddAttraction(ctx, dest.ID, "Louvre")
	require.NoError(t, err)
	drop, err := svc.AddAttraction(ctx, dest.ID, "Eiffel Tower")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveAttraction(ctx, dest.ID, drop.ID))

	full, err := svc.GetDestination(ctx, dest.ID)
	require.NoError(t, err)
	require.Len(t, full.Attractions, 1)
	assert.Equal(t, keep.ID, full.Attractions[0].ID)
}

func TestDestinationService_RemoveAttraction_AbsentIDSucceeds(t *testing.T) {
	svc := newStoreService(t)
	ctx := context.Background()

	dest := createDestination(t, svc, "Paris")

	// The requested outcome — no such attraction — already holds.
	err := svc.RemoveAttraction(ctx, dest.ID, "never-existed")

	assert.NoError(t, err)
}

func TestDestinationService_RemoveAttraction_DestNotFound(t *testing.T) {
	svc := newStoreService(t)

	err := svc.RemoveAttraction(context.Background(), "no-such-dest", "a-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
