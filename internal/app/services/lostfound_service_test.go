package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
)

func setupLostFoundService(items []*models.LostFoundItem, users ...*models.User) (LostFoundService, *fakeLostFoundStore) {
	store := newFakeLostFoundStore(items...)
	svc := NewLostFoundService(store, newFakeUserStore(users...), zerolog.Nop())
	return svc, store
}

// --------------------- CreateListing ---------------------

func TestCreateListing_Success(t *testing.T) {
	svc, store := setupLostFoundService(nil, studentUser(1))

	resp, err := svc.CreateListing(context.Background(), 1, models.RoleStudent, &dto.CreateLostFoundRequest{
		Type:        "LOST",
		Title:       "Black umbrella",
		Description: "Left in lecture hall A3",
		Location:    "Engineering building",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(models.LostFoundStatusOpen), resp.Status)
	assert.Equal(t, "Ayse Yilmaz", resp.ReporterName)
	assert.Len(t, store.items, 1)
}

func TestCreateListing_InvalidType(t *testing.T) {
	svc, _ := setupLostFoundService(nil, studentUser(1))

	_, err := svc.CreateListing(context.Background(), 1, models.RoleStudent, &dto.CreateLostFoundRequest{
		Type:        "MISPLACED",
		Title:       "test",
		Description: "test",
		Location:    "test",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

// --------------------- ListListings ---------------------

func TestListListings_FiltersByTypeAndStatus(t *testing.T) {
	items := []*models.LostFoundItem{
		{ID: 1, ReporterID: 1, Type: models.LostFoundTypeLost, Status: models.LostFoundStatusOpen},
		{ID: 2, ReporterID: 1, Type: models.LostFoundTypeFound, Status: models.LostFoundStatusOpen},
		{ID: 3, ReporterID: 1, Type: models.LostFoundTypeLost, Status: models.LostFoundStatusReturned},
	}
	svc, _ := setupLostFoundService(items, studentUser(1))

	resp, err := svc.ListListings(context.Background(), "LOST", "OPEN", 1, 20)

	assert.NoError(t, err)
	listings := resp.Items.([]dto.LostFoundResponse)
	assert.Len(t, listings, 1)
	assert.Equal(t, int64(1), listings[0].ID)
	assert.Equal(t, int64(1), resp.Pagination.TotalItems)
}

func TestListListings_Paged(t *testing.T) {
	var items []*models.LostFoundItem
	for i := int64(1); i <= 25; i++ {
		items = append(items, &models.LostFoundItem{
			ID: i, ReporterID: 1, Type: models.LostFoundTypeLost, Status: models.LostFoundStatusOpen,
		})
	}
	svc, _ := setupLostFoundService(items, studentUser(1))

	resp, err := svc.ListListings(context.Background(), "", "", 2, 10)

	assert.NoError(t, err)
	listings := resp.Items.([]dto.LostFoundResponse)
	assert.Len(t, listings, 10)
	assert.Equal(t, int64(15), listings[0].ID)
	assert.Equal(t, int64(25), resp.Pagination.TotalItems)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
}

func TestListListings_InvalidStatusFilter(t *testing.T) {
	svc, _ := setupLostFoundService(nil)

	_, err := svc.ListListings(context.Background(), "", "GONE", 1, 20)

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

// --------------------- UpdateStatus ---------------------

func TestUpdateListingStatus_ReporterClaims(t *testing.T) {
	items := []*models.LostFoundItem{
		{ID: 1, ReporterID: 1, Type: models.LostFoundTypeFound, Status: models.LostFoundStatusOpen},
	}
	svc, store := setupLostFoundService(items, studentUser(1))

	resp, err := svc.UpdateStatus(context.Background(), 1, models.RoleStudent, 1, "CLAIMED")

	assert.NoError(t, err)
	assert.Equal(t, "CLAIMED", resp.Status)
	assert.Equal(t, models.LostFoundStatusClaimed, store.items[1].Status)
}

func TestUpdateListingStatus_ForeignReporterForbidden(t *testing.T) {
	items := []*models.LostFoundItem{
		{ID: 1, ReporterID: 1, Type: models.LostFoundTypeFound, Status: models.LostFoundStatusOpen},
	}
	svc, _ := setupLostFoundService(items, studentUser(1), studentUser(2))

	_, err := svc.UpdateStatus(context.Background(), 2, models.RoleStudent, 1, "CLAIMED")

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateListingStatus_AdminOverride(t *testing.T) {
	items := []*models.LostFoundItem{
		{ID: 1, ReporterID: 1, Type: models.LostFoundTypeFound, Status: models.LostFoundStatusClaimed},
	}
	svc, store := setupLostFoundService(items, studentUser(1))

	_, err := svc.UpdateStatus(context.Background(), 99, models.RoleAdmin, 1, "RETURNED")

	assert.NoError(t, err)
	assert.Equal(t, models.LostFoundStatusReturned, store.items[1].Status)
}

// --------------------- DeleteListing ---------------------

func TestDeleteListing_ReporterOrAdmin(t *testing.T) {
	items := []*models.LostFoundItem{
		{ID: 1, ReporterID: 1, Type: models.LostFoundTypeLost, Status: models.LostFoundStatusOpen},
		{ID: 2, ReporterID: 1, Type: models.LostFoundTypeLost, Status: models.LostFoundStatusOpen},
	}
	svc, store := setupLostFoundService(items, studentUser(1), studentUser(2))

	err := svc.DeleteListing(context.Background(), 2, models.RoleStudent, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = svc.DeleteListing(context.Background(), 1, models.RoleStudent, 1)
	assert.NoError(t, err)

	err = svc.DeleteListing(context.Background(), 99, models.RoleAdmin, 2)
	assert.NoError(t, err)
	assert.Empty(t, store.items)
}

func TestDeleteListing_NotFound(t *testing.T) {
	svc, _ := setupLostFoundService(nil)

	err := svc.DeleteListing(context.Background(), 1, models.RoleAdmin, 42)

	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
}
