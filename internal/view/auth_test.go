package view

import (
	"context"
	"errors"
	"net/http"
	"taskClient/internal/client"
	"taskClient/internal/models/user"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestLoginView_Submit тестирует вход и сообщения об ошибках
func TestLoginView_Submit(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedRoute Route
		expectedOK    bool
		expectedError string
	}{
		{"success", nil, RouteTasks, true, ""},
		{"bad credentials", &client.Error{Code: client.CodeInvalidCredentials, Message: "x", Status: http.StatusUnauthorized}, RouteLogin, false, MsgInvalidCredentials},
		{"transport", &client.Error{Code: client.CodeTransport, Message: "Service unavailable. Please try again."}, RouteLogin, false, "Service unavailable. Please try again."},
		{"unknown error", errors.New("boom"), RouteLogin, false, MsgInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuth)
			auth.On("Login", mock.Anything, "alice", "pw").Return(user.Session{Token: "t", Username: "alice"}, tt.err)

			v := NewLoginView(auth)
			v.Username, v.Password = "alice", "pw"
			v.Error = "stale"

			route, ok := v.Submit(context.Background())
			assert.Equal(t, tt.expectedRoute, route)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedError, v.Error)
		})
	}
}

// TestRegisterView_Submit тестирует проверку паролей и занятое имя
func TestRegisterView_Submit(t *testing.T) {
	ctx := context.Background()

	auth := new(MockAuth)
	v := NewRegisterView(auth)
	v.Username, v.Password, v.ConfirmPassword = "alice", "pw123", "pw124"

	route, ok := v.Submit(ctx)
	assert.False(t, ok)
	assert.Equal(t, RouteRegister, route)
	assert.Equal(t, MsgPasswordsMismatch, v.Error)
	auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)

	auth.On("Register", mock.Anything, "alice", "pw123").
		Return(user.Session{}, &client.Error{Code: client.CodeUsernameTaken, Status: http.StatusConflict}).Once()
	v.ConfirmPassword = "pw123"
	_, ok = v.Submit(ctx)
	assert.False(t, ok)
	assert.Equal(t, MsgUsernameTaken, v.Error)

	auth.On("Register", mock.Anything, "alice", "pw123").
		Return(user.Session{Token: "t", Username: "alice"}, nil).Once()
	route, ok = v.Submit(ctx)
	assert.True(t, ok)
	assert.Equal(t, RouteTasks, route)
	assert.Empty(t, v.Error)
}

// TestProfileView тестирует загрузку, сохранение и общий аватар
func TestProfileView(t *testing.T) {
	ctx := context.Background()
	avatar := NewAvatarState()

	profiles := new(MockAuth)
	profiles.On("GetProfile", mock.Anything).Return(user.Profile{}, errors.New("down")).Once()

	v := NewProfileView(profiles, avatar)
	assert.Error(t, v.Load(ctx))
	assert.Equal(t, MsgProfileLoadFailed, v.Error)
	assert.False(t, v.Loaded)

	profiles.On("GetProfile", mock.Anything).Return(user.Profile{Username: "alice", AvatarURL: "a.png"}, nil).Once()
	assert.NoError(t, v.Load(ctx))
	assert.Empty(t, v.Error)
	assert.Equal(t, "alice", v.Draft.Username)
	assert.Equal(t, "a.png", avatar.URL())

	v.Draft.AvatarURL = "b.png"
	profiles.On("UpdateProfile", mock.Anything, user.Profile{Username: "alice", AvatarURL: "b.png"}).
		Return(user.Profile{}, errors.New("down")).Once()
	assert.Error(t, v.Save(ctx))
	assert.Equal(t, MsgProfileSaveFailed, v.Error)
	assert.Equal(t, "a.png", avatar.URL())

	profiles.On("UpdateProfile", mock.Anything, user.Profile{Username: "alice", AvatarURL: "b.png"}).
		Return(user.Profile{Username: "alice", AvatarURL: "b.png"}, nil).Once()
	assert.NoError(t, v.Save(ctx))
	assert.Equal(t, MsgProfileUpdated, v.Success)
	assert.Equal(t, "b.png", avatar.URL())
}

// TestAvatarState_Seed тестирует начальную загрузку аватара
func TestAvatarState_Seed(t *testing.T) {
	ctx := context.Background()

	profiles := new(MockAuth)
	avatar := NewAvatarState()
	avatar.Seed(ctx, fakeSession{}, profiles)
	profiles.AssertNotCalled(t, "GetProfile", mock.Anything)
	assert.Empty(t, avatar.URL())

	profiles.On("GetProfile", mock.Anything).Return(user.Profile{}, errors.New("down")).Once()
	avatar.Seed(ctx, fakeSession{username: "alice"}, profiles)
	assert.Empty(t, avatar.URL())

	profiles.On("GetProfile", mock.Anything).Return(user.Profile{Username: "alice", AvatarURL: "a.png"}, nil).Once()
	avatar.Seed(ctx, fakeSession{username: "alice"}, profiles)
	assert.Equal(t, "a.png", avatar.URL())
}
