package service

import (
	"context"
	"testing"
	"time"

	"vidtube/pkg/auth"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/require"
)

func newUserServiceForValidation(t *testing.T) *UserService {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewUserService(nil, tokens, nil, nil, log)
}

func TestUserServiceRegisterValidation(t *testing.T) {
	svc := newUserServiceForValidation(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		fullName   string
		email      string
		username   string
		password   string
		avatarPath string
	}{
		{"blank full name", "", "a@b.c", "alice", "secret", "/tmp/a.png"},
		{"blank email", "Alice", "", "alice", "secret", "/tmp/a.png"},
		{"blank username", "Alice", "a@b.c", "  ", "secret", "/tmp/a.png"},
		{"blank password", "Alice", "a@b.c", "alice", "", "/tmp/a.png"},
		{"missing avatar", "Alice", "a@b.c", "alice", "secret", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.fullName, tt.email, tt.username, tt.password, tt.avatarPath, "")
			requireAppError(t, err, apperrors.ErrorTypeValidation)
		})
	}
}

func TestUserServiceLoginRequiresIdentifier(t *testing.T) {
	svc := newUserServiceForValidation(t)

	_, _, err := svc.Login(context.Background(), "", "", "secret")
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}

func TestUserServiceRefreshTokensRejection(t *testing.T) {
	svc := newUserServiceForValidation(t)
	ctx := context.Background()

	_, err := svc.RefreshTokens(ctx, "")
	requireAppError(t, err, apperrors.ErrorTypeAuthentication)

	_, err = svc.RefreshTokens(ctx, "not-a-jwt")
	requireAppError(t, err, apperrors.ErrorTypeAuthentication)

	// An access token is signed with the wrong secret for this path
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	access, mintErr := tokens.MintAccessToken(primitive.NewObjectID().Hex(), "alice", "a@b.c")
	require.NoError(t, mintErr)

	_, err = svc.RefreshTokens(ctx, access)
	requireAppError(t, err, apperrors.ErrorTypeAuthentication)
}

func TestUserServiceChangePasswordRequiresNewPassword(t *testing.T) {
	svc := newUserServiceForValidation(t)

	err := svc.ChangePassword(context.Background(), primitive.NewObjectID(), "old", "  ")
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}

func TestUserServiceChannelProfileRequiresUsername(t *testing.T) {
	svc := newUserServiceForValidation(t)

	_, err := svc.ChannelProfile(context.Background(), "  ", nil)
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}

func TestUserServiceUpdateAccountValidation(t *testing.T) {
	svc := newUserServiceForValidation(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := svc.UpdateAccount(ctx, userID, "", "a@b.c", "alice")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.UpdateAvatar(ctx, userID, "")
	requireAppError(t, err, apperrors.ErrorTypeValidation)

	_, err = svc.UpdateCoverImage(ctx, userID, "")
	requireAppError(t, err, apperrors.ErrorTypeValidation)
}
