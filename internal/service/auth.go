package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"github.com/cinelist/cinelist-server/internal/auth"
	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/id"
	"github.com/cinelist/cinelist-server/internal/store"
)

const (
	avatarPresetCount  = 10
	avatarPresetPrefix = "/dp/"
	defaultCoverImage  = "/cover-collage.jpg"
)

// LoginResult is a signed-in session.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        domain.User
}

// AuthService implements the passwordless sign-in: any email gets a stable
// profile whose ID is derived from the address.
type AuthService struct {
	store       store.UserStore
	tokens      *auth.TokenService
	logger      *slog.Logger
	seedSamples bool
	now         func() time.Time
}

// NewAuthService creates a new auth service. When seedSamples is true a first-time
// user starts with the sample lists.
func NewAuthService(userStore store.UserStore, tokens *auth.TokenService, seedSamples bool, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:       userStore,
		tokens:      tokens,
		logger:      logger,
		seedSamples: seedSamples,
		now:         time.Now,
	}
}

// Login signs in by email, creating the profile on first use.
func (s *AuthService) Login(ctx context.Context, email, name string) (*LoginResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domainerrors.Validation("a valid email address is required")
	}

	userID := id.ForEmail(email)
	user, err := s.store.LoadUser(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrUserNotFound):
		user = s.newUser(userID, email, name)
		s.logger.Info("creating user on first login", "user_id", userID, "seeded", s.seedSamples)
	default:
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !strings.HasPrefix(user.AvatarURL, avatarPresetPrefix) {
		user.AvatarURL = AvatarPreset(user.ID)
	}
	user.Email = email

	user, err = s.store.SaveUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	token, expires, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResult{AccessToken: token, ExpiresAt: expires, User: user}, nil
}

// Authenticate validates an access token and returns its user ID.
func (s *AuthService) Authenticate(token string) (string, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return "", domainerrors.Unauthorized("invalid or expired access token").WithCause(err)
	}
	return claims.UserID, nil
}

func (s *AuthService) newUser(userID, email, name string) domain.User {
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	u := domain.User{
		ID:            userID,
		Name:          name,
		Email:         email,
		CoverImageURL: defaultCoverImage,
		Lists:         []domain.UserList{},
	}
	if s.seedSamples {
		u.Lists = SampleLists(s.now())
	}
	return u
}

// AvatarPreset picks one of the bundled avatars for a user, stable per user ID.
func AvatarPreset(userID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return fmt.Sprintf("%s%d.png", avatarPresetPrefix, h.Sum32()%avatarPresetCount+1)
}

// SampleLists returns the starter lists given to new users: a pinned sci-fi pick
// and a weekend list with a partly watched series.
func SampleLists(now time.Time) []domain.UserList {
	return []domain.UserList{
		{
			ID:     id.MustGenerate(id.PrefixList),
			Name:   "Mind-Bending Sci-Fi",
			Pinned: true,
			Items: []domain.ListItem{
				{MediaID: 693134, Kind: domain.KindMovie, UserRating: 5, AddedOn: now},
			},
		},
		{
			ID:   id.MustGenerate(id.PrefixList),
			Name: "Weekend Binge",
			Items: []domain.ListItem{
				{MediaID: 786892, Kind: domain.KindMovie, UserRating: 4.5, AddedOn: now},
				{MediaID: 1396, Kind: domain.KindSeries, UserRating: 4, AddedOn: now, WatchedEpisodeIDs: []int{63056, 63057}},
			},
		},
	}
}
