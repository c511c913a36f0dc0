package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskmanager/internal/cache"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
)

func TestUserService_GetProfileCaches(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := cache.New(mr.Addr(), "", 0)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).
		Return(&model.User{ID: 7, Email: "a@x.com", Name: "A", PasswordHash: "secret-hash", CreatedAt: created}, nil).
		Once()
	mockRepo.On("Exists", mock.Anything, uint(7)).Return(true, nil).Once()

	service := NewUserService(mockRepo, cacheClient)

	first, err := service.GetProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", first.Email)
	assert.Equal(t, created, first.CreatedAt)

	second, err := service.GetProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, created.Equal(second.CreatedAt))

	cached, err := mr.Get("user:profile:7")
	require.NoError(t, err)
	assert.NotContains(t, cached, "secret-hash")

	mockRepo.AssertExpectations(t)
}

func TestUserService_GetProfileWithoutCache(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Email: "a@x.com"}, nil).Twice()

	service := NewUserService(mockRepo, cache.New("", "", 0))
	for i := 0; i < 2; i++ {
		_, err := service.GetProfile(context.Background(), 7)
		require.NoError(t, err)
	}

	mockRepo.AssertExpectations(t)
}

func TestUserService_GetProfileNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewUserService(mockRepo, cache.New("", "", 0))
	profile, err := service.GetProfile(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, profile)
}

func TestUserService_GetProfileCachedButDeleted(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := cache.New(mr.Addr(), "", 0)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Email: "a@x.com"}, nil).Once()
	mockRepo.On("Exists", mock.Anything, uint(7)).Return(false, nil).Once()

	service := NewUserService(mockRepo, cacheClient)

	_, err := service.GetProfile(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, mr.Exists("user:profile:7"))

	profile, err := service.GetProfile(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, profile)

	mockRepo.AssertExpectations(t)
}
