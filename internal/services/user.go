package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
	"github.com/kanishka132/StudyBuddy-AI/internal/logger"
	"github.com/kanishka132/StudyBuddy-AI/internal/repos"
	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

// ProfileInput is the onboarding form.
type ProfileInput struct {
	DisplayName string
	Avatar      string
	Education   string
	Goals       []string
	CustomGoal  string
}

// Me is the authenticated account plus its onboarding profile, which is
// nil until onboarding has been completed.
type Me struct {
	User    *types.User        `json:"user"`
	Profile *types.UserProfile `json:"profile,omitempty"`
}

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*Me, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*types.UserProfile, error)
}

type userService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	userProfileRepo repos.UserProfileRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, userProfileRepo repos.UserProfileRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:              db,
		log:             serviceLog,
		userRepo:        userRepo,
		userProfileRepo: userProfileRepo,
	}
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*Me, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.NotFound("user not found")
	}
	me := &Me{User: user}
	if profile, err := us.userProfileRepo.GetByUserID(ctx, nil, userID); err == nil {
		me.Profile = profile
	}
	return me, nil
}

func (us *userService) SaveProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*types.UserProfile, error) {
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.DisplayName == "" {
		return nil, apierr.Validation("display name is required")
	}

	goalsJSON, err := json.Marshal(input.Goals)
	if err != nil {
		return nil, fmt.Errorf("marshal goals: %w", err)
	}

	profile := &types.UserProfile{
		UserID:      userID,
		DisplayName: input.DisplayName,
		Avatar:      input.Avatar,
		Education:   input.Education,
		Goals:       datatypes.JSON(goalsJSON),
		CustomGoal:  input.CustomGoal,
	}
	saved, err := us.userProfileRepo.Upsert(ctx, nil, profile)
	if err != nil {
		return nil, fmt.Errorf("Failed to save profile: %w", err)
	}
	return saved, nil
}
