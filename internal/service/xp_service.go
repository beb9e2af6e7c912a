package service

import (
	"context"
	"encoding/json"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// XP event catalog. Values are policy and live only here so they can be
// tuned in one place.
const (
	XPEnrollBonus         = 10
	XPLessonCompleteBonus = 25
	XPAssessmentPassBonus = 50
	XPCourseCompleteBonus = 200
)

const (
	XPEventEnroll         = "enroll"
	XPEventLessonComplete = "lesson_complete"
	XPEventAssessmentPass = "assessment_pass"
	XPEventCourseComplete = "course_complete"
)

const leaderboardCacheKey = "learnhub:leaderboard"

type XPService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewXPService(userRepo *repository.UserRepository, rdb *redis.Client) *XPService {
	return &XPService{UserRepo: userRepo, Redis: rdb}
}

// Award adds amount to the user's XP total and returns the new total. The
// increment happens at the store level, so concurrent awards for the same
// user are additive.
func (s *XPService) Award(userID uint, amount int, event string) (int, error) {
	if amount <= 0 {
		return 0, util.ErrInvalidInput
	}

	if err := s.UserRepo.AddXP(userID, amount); err != nil {
		return 0, err
	}

	monitoring.XPAwarded.WithLabelValues(event).Add(float64(amount))

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return 0, err
	}

	logger.Log.Debug("xp awarded",
		zap.Uint("userId", userID),
		zap.String("event", event),
		zap.Int("amount", amount),
		zap.Int("total", user.XPPoints))

	return user.XPPoints, nil
}

// Leaderboard returns the top users by XP, cached in redis for a minute when
// a client is configured.
func (s *XPService) Leaderboard(ctx context.Context, limit int) ([]model.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var users []model.User
			if err := json.Unmarshal([]byte(cached), &users); err == nil && len(users) >= limit {
				return users[:limit], nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(users); err == nil {
			if err := s.Redis.Set(ctx, leaderboardCacheKey, raw, time.Minute).Err(); err != nil {
				logger.Log.Warn("failed to cache leaderboard", zap.Error(err))
			}
		}
	}

	return users, nil
}
