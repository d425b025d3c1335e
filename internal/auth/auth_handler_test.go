package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/auth"
	autherrors "github.com/DannielJohn120/Employee-Leave-Management-Project/internal/auth/errors"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error)
	loginFn    func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error)
	getMeFn    func(ctx context.Context, userID string) (*auth.AuthResponse, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error) {
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (*auth.AuthResponse, error) {
	return f.getMeFn(ctx, userID)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, h gin.HandlerFunc, method, target string, body any, setup func(c *gin.Context)) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	if setup != nil {
		setup(c)
	}

	h(c)

	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
				return auth.AuthResponse{ID: 1, Name: req.Name, Email: req.Email, Role: req.Role, LeaveBalance: 15}, nil
			},
		}
		h := auth.NewHandler(svc)

		rec, env := doJSON(t, h.Register, http.MethodPost, "/api/v1/auth/register", auth.RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "secret123",
			Role:     user.RoleEmployee,
		}, nil)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Ok)

		var resp auth.AuthResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, uint(1), resp.ID)
		assert.Equal(t, 15.0, resp.LeaveBalance)
	})

	t.Run("negative short password", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
				t.Fatal("service must not be called on validation failure")
				return auth.AuthResponse{}, nil
			},
		}
		h := auth.NewHandler(svc)

		rec, env := doJSON(t, h.Register, http.MethodPost, "/api/v1/auth/register", auth.RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "short",
			Role:     user.RoleEmployee,
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
				return auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
			},
		}
		h := auth.NewHandler(svc)

		rec, env := doJSON(t, h.Register, http.MethodPost, "/api/v1/auth/register", auth.RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "secret123",
			Role:     user.RoleEmployee,
		}, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success returns tokens alongside the user", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				assert.Equal(t, "alice@example.com", email)
				return "access", "refresh", auth.AuthResponse{ID: 7, Email: email}, nil
			},
		}
		h := auth.NewHandler(svc)

		rec, env := doJSON(t, h.Login, http.MethodPost, "/api/v1/auth/login", auth.LoginRequest{
			Email:    "alice@example.com",
			Password: "secret123",
		}, nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var data struct {
			User         auth.AuthResponse `json:"user"`
			AccessToken  string            `json:"access_token"`
			RefreshToken string            `json:"refresh_token"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, uint(7), data.User.ID)
		assert.Equal(t, "access", data.AccessToken)
		assert.Equal(t, "refresh", data.RefreshToken)
	})

	t.Run("negative bad credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, string, auth.AuthResponse, error) {
				return "", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		h := auth.NewHandler(svc)

		rec, env := doJSON(t, h.Login, http.MethodPost, "/api/v1/auth/login", auth.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			getMeFn: func(ctx context.Context, userID string) (*auth.AuthResponse, error) {
				assert.Equal(t, "7", userID)
				return &auth.AuthResponse{ID: 7, Name: "Alice"}, nil
			},
		}
		h := auth.NewHandler(svc)

		rec, env := doJSON(t, h.Me, http.MethodGet, "/api/v1/auth/me", nil, func(c *gin.Context) {
			c.Set("user_id_validated", "7")
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Ok)
	})

	t.Run("negative missing identity", func(t *testing.T) {
		svc := &fakeAuthService{
			getMeFn: func(ctx context.Context, userID string) (*auth.AuthResponse, error) {
				t.Fatal("service must not be called without an identity")
				return nil, nil
			},
		}
		h := auth.NewHandler(svc)

		rec, env := doJSON(t, h.Me, http.MethodGet, "/api/v1/auth/me", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})
}
