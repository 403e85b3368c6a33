package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/welldanyogia/inboxzero/internal/errors"
	"github.com/welldanyogia/inboxzero/internal/models"
	"github.com/welldanyogia/inboxzero/internal/repository"
)

func TestListEmails_ReturnsEmptySliceForNil(t *testing.T) {
	repo := new(MockEmailRepository)
	service := NewEmailService(repo, nil, nil)

	repo.On("ListByUser", mock.Anything, uint(1)).Return(nil, nil)

	emails, err := service.ListEmails(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, emails)
	assert.Empty(t, emails)
}

func TestMarkRead_Success(t *testing.T) {
	repo := new(MockEmailRepository)
	notifier := &recordingNotifier{}
	service := NewEmailService(repo, notifier, nil)

	repo.On("GetByIDForUser", mock.Anything, uint(5), uint(1)).
		Return(&models.Email{ID: 5, UserID: 1, Subject: "Hello"}, nil)
	repo.On("MarkAsRead", mock.Anything, uint(5)).Return(nil)

	email, err := service.MarkRead(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.True(t, email.IsRead)
	assert.False(t, email.IsArchived)

	events := notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, uint(1), events[0].userID)
	assert.Equal(t, EventEmailUpdated, events[0].event)
	assert.True(t, events[0].email.IsRead)
	repo.AssertExpectations(t)
}

func TestMarkRead_AlreadyReadSkipsWrite(t *testing.T) {
	repo := new(MockEmailRepository)
	notifier := &recordingNotifier{}
	service := NewEmailService(repo, notifier, nil)

	repo.On("GetByIDForUser", mock.Anything, uint(5), uint(1)).
		Return(&models.Email{ID: 5, UserID: 1, IsRead: true}, nil)

	email, err := service.MarkRead(context.Background(), 1, 5)

	require.NoError(t, err)
	assert.True(t, email.IsRead)
	assert.Empty(t, notifier.all())
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

func TestMarkRead_ForeignEmailIsNotFound(t *testing.T) {
	repo := new(MockEmailRepository)
	service := NewEmailService(repo, nil, nil)

	repo.On("GetByIDForUser", mock.Anything, uint(5), uint(2)).Return(nil, repository.ErrNotFound)

	email, err := service.MarkRead(context.Background(), 2, 5)

	assert.Nil(t, email)
	assert.ErrorIs(t, err, apperrors.ErrEmailNotFound)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetErrorCode(err))
	repo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

func TestMarkRead_StoreFailure(t *testing.T) {
	repo := new(MockEmailRepository)
	service := NewEmailService(repo, nil, nil)

	repo.On("GetByIDForUser", mock.Anything, uint(5), uint(1)).Return(&models.Email{ID: 5, UserID: 1}, nil)
	repo.On("MarkAsRead", mock.Anything, uint(5)).Return(errors.New("disk full"))

	_, err := service.MarkRead(context.Background(), 1, 5)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInternalError, apperrors.GetErrorCode(err))
}

func TestArchive_KeepsReadFlag(t *testing.T) {
	repo := new(MockEmailRepository)
	notifier := &recordingNotifier{}
	service := NewEmailService(repo, notifier, nil)

	repo.On("GetByIDForUser", mock.Anything, uint(9), uint(1)).
		Return(&models.Email{ID: 9, UserID: 1, IsRead: false}, nil)
	repo.On("Archive", mock.Anything, uint(9)).Return(nil)

	email, err := service.Archive(context.Background(), 1, 9)

	require.NoError(t, err)
	assert.True(t, email.IsArchived)
	assert.False(t, email.IsRead)
	require.Len(t, notifier.all(), 1)
}

func TestArchive_AlreadyArchived(t *testing.T) {
	repo := new(MockEmailRepository)
	service := NewEmailService(repo, nil, nil)

	repo.On("GetByIDForUser", mock.Anything, uint(9), uint(1)).
		Return(&models.Email{ID: 9, UserID: 1, IsArchived: true}, nil)

	email, err := service.Archive(context.Background(), 1, 9)

	require.NoError(t, err)
	assert.True(t, email.IsArchived)
	repo.AssertNotCalled(t, "Archive", mock.Anything, mock.Anything)
}

func TestArchive_RowVanishedIsNotFound(t *testing.T) {
	repo := new(MockEmailRepository)
	service := NewEmailService(repo, nil, nil)

	repo.On("GetByIDForUser", mock.Anything, uint(9), uint(1)).Return(&models.Email{ID: 9, UserID: 1}, nil)
	repo.On("Archive", mock.Anything, uint(9)).Return(repository.ErrNotFound)

	_, err := service.Archive(context.Background(), 1, 9)

	assert.ErrorIs(t, err, apperrors.ErrEmailNotFound)
}

func TestProgress_ComputesFromList(t *testing.T) {
	repo := new(MockEmailRepository)
	service := NewEmailService(repo, nil, nil)

	repo.On("ListByUser", mock.Anything, uint(1)).Return([]models.Email{
		{ID: 1, IsRead: true},
		{ID: 2, IsArchived: true},
		{ID: 3},
		{ID: 4},
	}, nil)

	p, err := service.Progress(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 4, p.TotalEmails)
	assert.Equal(t, 2, p.ProcessedEmails)
	assert.InDelta(t, 50.0, p.Progress, 0.001)
	assert.False(t, p.IsInboxZero)
}

func TestProgress_EmptyMailboxIsInboxZero(t *testing.T) {
	repo := new(MockEmailRepository)
	service := NewEmailService(repo, nil, nil)

	repo.On("ListByUser", mock.Anything, uint(1)).Return([]models.Email{}, nil)

	p, err := service.Progress(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalEmails)
	assert.True(t, p.IsInboxZero)
}

func TestProgress_ListError(t *testing.T) {
	repo := new(MockEmailRepository)
	service := NewEmailService(repo, nil, nil)

	repo.On("ListByUser", mock.Anything, uint(1)).Return(nil, errors.New("boom"))

	p, err := service.Progress(context.Background(), 1)

	assert.Nil(t, p)
	assert.Error(t, err)
}
