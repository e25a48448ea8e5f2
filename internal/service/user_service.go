package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	"vidtube/pkg/auth"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"
	"vidtube/pkg/media"
	"vidtube/pkg/redis"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService struct {
	users   *repository.UserRepository
	tokens  *auth.TokenManager
	storage media.Storage
	cache   *redis.Client // may be nil
	log     *logger.Logger
}

func NewUserService(users *repository.UserRepository, tokens *auth.TokenManager, storage media.Storage, cache *redis.Client, log *logger.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, storage: storage, cache: cache, log: log}
}

// Register creates an account with an uploaded avatar and optional cover
// image. Usernames are stored lowercased.
func (s *UserService) Register(ctx context.Context, fullName, email, username, password, avatarPath, coverImagePath string) (*domain.User, error) {
	for field, value := range map[string]string{
		"fullName": fullName,
		"email":    email,
		"username": username,
		"password": password,
	} {
		if err := requireNonBlank(value, field); err != nil {
			return nil, err
		}
	}
	if avatarPath == "" {
		return nil, apperrors.NewValidationError("avatar is required")
	}

	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.TrimSpace(email)

	existing, err := s.users.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("user with email or username already exists")
	}

	avatar, err := s.storage.Upload(ctx, avatarPath, media.KindImage)
	if err != nil {
		s.log.WithError(err).Error("Avatar upload failed")
		return nil, apperrors.NewValidationError("avatar is required")
	}
	var coverURL string
	if coverImagePath != "" {
		cover, err := s.storage.Upload(ctx, coverImagePath, media.KindImage)
		if err != nil {
			s.log.WithError(err).Warn("Cover image upload failed, continuing without it")
		} else {
			coverURL = cover.URL
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &domain.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
		Password:   hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("user with email or username already exists")
		}
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	s.log.WithField("username", username).Info("User registered")
	return user, nil
}

// Login verifies credentials by username or email and issues a token pair.
// The refresh token is persisted so it can be rotated and revoked.
func (s *UserService) Login(ctx context.Context, username, email, password string) (*domain.User, *domain.TokenPair, error) {
	if username == "" && email == "" {
		return nil, nil, apperrors.NewValidationError("username or email is required")
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, strings.ToLower(username), email)
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, nil, apperrors.NewNotFoundError("user does not exist")
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperrors.NewAuthenticationError("invalid user credentials")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the stored refresh token
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.users.SetRefreshToken(ctx, userID, ""); err != nil {
		return apperrors.NewInternalError("failed to clear refresh token", err)
	}
	return nil
}

// RefreshTokens rotates the token pair. The presented refresh token must
// match the one stored for the user, so a stolen older token is rejected.
func (s *UserService) RefreshTokens(ctx context.Context, rawToken string) (*domain.TokenPair, error) {
	if rawToken == "" {
		return nil, apperrors.NewAuthenticationError("unauthorized request")
	}

	claims, err := s.tokens.VerifyRefreshToken(rawToken)
	if err != nil {
		return nil, apperrors.NewAuthenticationError("invalid refresh token")
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperrors.NewAuthenticationError("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NewAuthenticationError("invalid refresh token")
	}
	if user.RefreshToken != rawToken {
		return nil, apperrors.NewAuthenticationError("refresh token is expired or used")
	}

	return s.issueTokens(ctx, user)
}

// ChangePassword verifies the old password and stores a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	if err := requireNonBlank(newPassword, "new password"); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return apperrors.NewNotFoundError("user not found")
	}
	if !auth.CheckPassword(user.Password, oldPassword) {
		return apperrors.NewValidationError("invalid old password")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	if err := s.users.SetPassword(ctx, userID, hash); err != nil {
		return apperrors.NewInternalError("failed to set password", err)
	}
	return nil
}

// Current returns the authenticated user's own document
func (s *UserService) Current(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}

// UpdateAccount sets fullName, email and username on the caller's account
func (s *UserService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullName, email, username string) (*domain.User, error) {
	for field, value := range map[string]string{
		"fullName": fullName,
		"email":    email,
		"username": username,
	} {
		if err := requireNonBlank(value, field); err != nil {
			return nil, err
		}
	}
	username = strings.ToLower(strings.TrimSpace(username))

	oldProfileKey := s.profileCacheKeyFor(ctx, userID)

	user, err := s.users.UpdateAccount(ctx, userID, fullName, strings.TrimSpace(email), username)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("email or username already in use")
		}
		return nil, apperrors.NewInternalError("failed to update account", err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	s.invalidateProfileCache(oldProfileKey, user.Username)
	return user, nil
}

// UpdateAvatar replaces the avatar image
func (s *UserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, avatarPath string) (*domain.User, error) {
	return s.updateImage(ctx, userID, "avatar", avatarPath)
}

// UpdateCoverImage replaces the cover image
func (s *UserService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, coverPath string) (*domain.User, error) {
	return s.updateImage(ctx, userID, "coverImage", coverPath)
}

func (s *UserService) updateImage(ctx context.Context, userID primitive.ObjectID, field, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apperrors.NewValidationError(field + " file is required")
	}

	var oldURL string
	if previous, err := s.users.GetByID(ctx, userID); err == nil && previous != nil {
		if field == "avatar" {
			oldURL = previous.Avatar
		} else {
			oldURL = previous.CoverImage
		}
	}

	asset, err := s.storage.Upload(ctx, localPath, media.KindImage)
	if err != nil {
		s.log.WithError(err).Error("Image upload failed")
		return nil, apperrors.NewValidationError(field + " file is required")
	}

	user, err := s.users.SetImage(ctx, userID, field, asset.URL)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update "+field, err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if oldURL != "" {
		s.deleteAssetAsync(oldURL)
	}
	s.invalidateProfileCache("", user.Username)
	return user, nil
}

// ChannelProfile returns the public channel view for a username. Only the
// anonymous rendering is cached; isSubscribed depends on the viewer.
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewer *domain.AuthUser) (*domain.ChannelProfile, error) {
	if err := requireNonBlank(username, "username"); err != nil {
		return nil, err
	}
	username = strings.ToLower(strings.TrimSpace(username))

	viewerID := primitive.NilObjectID
	if viewer != nil {
		viewerID = viewer.ID
	}

	if viewer == nil {
		if cached := s.cachedProfile(ctx, username); cached != nil {
			return cached, nil
		}
	}

	profile, err := s.users.ChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch channel profile", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("channel does not exist")
	}

	if viewer == nil {
		s.cacheProfileAsync(username, profile)
	}
	return profile, nil
}

// WatchHistory returns the caller's watched videos with owner profiles
func (s *UserService) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WatchHistoryEntry, error) {
	history, err := s.users.WatchHistory(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch watch history", err)
	}
	if history == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return history, nil
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	access, err := s.tokens.MintAccessToken(user.ID.Hex(), user.Username, user.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to mint access token", err)
	}
	refresh, err := s.tokens.MintRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, apperrors.NewInternalError("failed to mint refresh token", err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, apperrors.NewInternalError("failed to store refresh token", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) cachedProfile(ctx context.Context, username string) *domain.ChannelProfile {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.KeyBuilder.KeyChannelProfile(username))
	if err != nil {
		return nil
	}
	var profile domain.ChannelProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.log.WithError(err).Warn("Channel profile cache corrupted, falling back to database")
		return nil
	}
	return &profile
}

func (s *UserService) cacheProfileAsync(username string, profile *domain.ChannelProfile) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		payload, err := json.Marshal(profile)
		if err != nil {
			return
		}
		if err := s.cache.Set(ctx, s.cache.KeyBuilder.KeyChannelProfile(username), payload, redis.TTLChannelProfile); err != nil {
			s.log.WithError(err).Warn("Failed to cache channel profile")
		}
	}()
}

// profileCacheKeyFor resolves the cached profile key before a rename so
// the stale entry under the old username can be dropped.
func (s *UserService) profileCacheKeyFor(ctx context.Context, userID primitive.ObjectID) string {
	if s.cache == nil {
		return ""
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return s.cache.KeyBuilder.KeyChannelProfile(user.Username)
}

func (s *UserService) invalidateProfileCache(oldKey, username string) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		keys := []string{s.cache.KeyBuilder.KeyChannelProfile(username)}
		if oldKey != "" {
			keys = append(keys, oldKey)
		}
		if err := s.cache.Del(ctx, keys...); err != nil {
			s.log.WithError(err).Warn("Failed to invalidate channel profile cache")
		}
	}()
}

func (s *UserService) deleteAssetAsync(rawURL string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.storage.Delete(ctx, rawURL); err != nil {
			s.log.WithError(err).WithField("url", rawURL).Warn("Failed to delete stored asset")
		}
	}()
}
