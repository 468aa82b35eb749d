// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"charter_backend/internal/api"
	"charter_backend/internal/feature/auth/domain/entity"
	"charter_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定された名前・メールアドレス・パスワードで新規ユーザーを登録します。
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
}

// AuthHandler はユーザー登録のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase

	// exposeDetails がtrueの場合、内部エラーの詳細をレスポンスに含めます。
	// 本番ではサニタイズされたメッセージのみを返します。
	exposeDetails bool
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase, exposeDetails bool) *AuthHandler {
	return &AuthHandler{auth: auth, exposeDetails: exposeDetails}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterRequestにバインド
// - email/password欠落時は400を返却
// - メールアドレス重複時は400を返却
// - ストア障害時は500を返却
// - 成功時はパスワードを除いたユーザーを200で返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("registration validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Missing required fields"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("registration rejected: duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "User already exists"})
			return
		}
		slog.Error("registration failed", "error", err, "email", req.Email)
		resp := api.ErrorResponse{Message: "Error creating user"}
		if h.exposeDetails {
			resp.Error = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	slog.Info("user registered", "id", user.ID, "email", user.Email)
	c.JSON(http.StatusOK, api.RegisterResponse{
		Message: "User created successfully",
		User: api.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}
