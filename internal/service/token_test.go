// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/mock"
	"github.com/husarprojects/healthsync/internal/store"
	"github.com/husarprojects/healthsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTokenSvc(t *testing.T, ctrl *gomock.Controller) (TokenService, *mock.MockSettingsRepository, *mock.MockSyncServerAdapter, *recordingNotifier) {
	t.Helper()

	mockSettings := mock.NewMockSettingsRepository(ctrl)
	mockAdapter := mock.NewMockSyncServerAdapter(ctrl)
	notifier := &recordingNotifier{}

	storages := &store.AgentStorages{Settings: mockSettings}
	svc := NewTokenService(storages, mockAdapter, notifier, logger.Nop())

	return svc, mockSettings, mockAdapter, notifier
}

func TestTokenService_RefreshOnce_NoStoredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, _, _ := newTestTokenSvc(t, ctrl)
	ctx := context.Background()

	// Not logged in: the tick is a no-op, the adapter is never touched.
	mockSettings.EXPECT().Get(ctx, store.KeyRefreshToken).Return("", false, nil)

	require.NoError(t, svc.RefreshOnce(ctx))
}

func TestTokenService_RefreshOnce_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, mockAdapter, notifier := newTestTokenSvc(t, ctrl)
	ctx := context.Background()

	session := models.Session{AccessToken: "access-2", RefreshToken: "refresh-2"}

	mockSettings.EXPECT().Get(ctx, store.KeyRefreshToken).Return("refresh-1", true, nil)
	mockAdapter.EXPECT().Refresh(ctx, "refresh-1").Return(session, nil)
	mockSettings.EXPECT().SetPlain(ctx, store.KeyLogin, "access-2").Return(nil)
	mockSettings.EXPECT().SetPlain(ctx, store.KeyRefreshToken, "refresh-2").Return(nil)
	mockAdapter.EXPECT().SetToken("access-2")

	require.NoError(t, svc.RefreshOnce(ctx))
	assert.Contains(t, notifier.infos, "Token refreshed successfully")
}

func TestTokenService_RefreshOnce_FailureClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, mockAdapter, _ := newTestTokenSvc(t, ctrl)
	ctx := context.Background()

	refreshErr := errors.New("refresh rejected")

	mockSettings.EXPECT().Get(ctx, store.KeyRefreshToken).Return("refresh-1", true, nil)
	mockAdapter.EXPECT().Refresh(ctx, "refresh-1").Return(models.Session{}, refreshErr)

	// Silent logout: both persisted tokens go, the adapter token is cleared.
	mockAdapter.EXPECT().SetToken("")
	mockSettings.EXPECT().Delete(ctx, store.KeyLogin).Return(nil)
	mockSettings.EXPECT().Delete(ctx, store.KeyRefreshToken).Return(nil)

	err := svc.RefreshOnce(ctx)
	require.ErrorIs(t, err, refreshErr)
}

func TestTokenService_RefreshOnce_SettingsReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSettings, _, _ := newTestTokenSvc(t, ctrl)
	ctx := context.Background()

	readErr := errors.New("database is locked")
	mockSettings.EXPECT().Get(ctx, store.KeyRefreshToken).Return("", false, readErr)

	err := svc.RefreshOnce(ctx)
	require.ErrorIs(t, err, readErr)
}
