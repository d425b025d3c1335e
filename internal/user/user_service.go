package user

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/shared/contextutil"
	usererrors "github.com/DannielJohn120/Employee-Leave-Management-Project/internal/user/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// UserAllKey caches the HR user listing; register invalidates it.
const UserAllKey = "users:all"

type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type service struct {
	repo Repository
	rdb  *redis.Client
	sf   *singleflight.Group
}

func NewService(repo Repository, rdb *redis.Client) Service {
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, UserAllKey).Result()
		if err == nil {
			var resp []UserResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent misses into one query
	v, err, _ := s.sf.Do(UserAllKey, func() (interface{}, error) {
		users, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]UserResponse, len(users))
		for i, u := range users {
			resp[i] = mapToResponse(u)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, UserAllKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]UserResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := parseUserID(id)
	if err != nil {
		return UserResponse{}, err
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	return mapToResponse(*u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	l := contextutil.GetLogger(ctx, nil)

	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash new password",
			zap.String("user_id", contextutil.GetUserID(ctx)),
			zap.Error(err),
		)
		return err
	}

	u.PasswordHash = string(hashed)
	return s.repo.Update(ctx, u)
}

func parseUserID(id string) (uint, error) {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil || v == 0 {
		return 0, usererrors.ErrInvalidUserID
	}
	return uint(v), nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		LeaveBalance: u.LeaveBalance,
		CreatedAt:    u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
