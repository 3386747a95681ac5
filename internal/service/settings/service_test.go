package settings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/domain"
	settingsRepo "github.com/m04kA/barbershop-booking/internal/infra/storage/settings"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/storagetest"
	"github.com/m04kA/barbershop-booking/internal/service/settings/models"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/ptr"
)

func newService(t *testing.T) *Service {
	repo := settingsRepo.NewRepository(storagetest.NewDB(t), storagetest.Dialect)
	return NewService(repo, logger.NewNop())
}

func TestService_GetDefaults(t *testing.T) {
	s := newService(t)

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBookingSettings(), got)
}

func TestService_UpdatePartial(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	fee := decimal.RequireFromString("99.90")
	_, err := s.Update(ctx, &models.UpdateSettingsRequest{HomeServiceFee: &fee})
	require.NoError(t, err)

	_, err = s.Update(ctx, &models.UpdateSettingsRequest{AdvanceBookingDays: ptr.Ptr(14)})
	require.NoError(t, err)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, fee.Equal(got.HomeServiceFee))
	assert.Equal(t, 14, got.AdvanceBookingDays)
	assert.True(t, got.HomeServiceEnabled)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, got.MinBookingNoticeMinutes)
}

func TestService_UpdateValidation(t *testing.T) {
	s := newService(t)
	negative := decimal.RequireFromString("-1")

	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{name: "negative fee", req: &models.UpdateSettingsRequest{HomeServiceFee: &negative}},
		{name: "advance too far", req: &models.UpdateSettingsRequest{AdvanceBookingDays: ptr.Ptr(366)}},
		{name: "negative notice", req: &models.UpdateSettingsRequest{MinBookingNoticeMinutes: ptr.Ptr(-5)}},
		{name: "notice over a week", req: &models.UpdateSettingsRequest{MinBookingNoticeMinutes: ptr.Ptr(10081)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBookingSettings(), got, "rejected updates are not persisted")
}
