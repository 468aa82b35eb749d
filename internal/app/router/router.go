package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"charter_backend/internal/api"
	authhandler "charter_backend/internal/feature/auth/transport/handler"
	proposalhandler "charter_backend/internal/feature/proposal/transport/handler"
	"charter_backend/internal/platform/http/handler"
	"charter_backend/internal/shared/ratelimiter"
)

func NewRouter(authHandler *authhandler.AuthHandler, proposal *proposalhandler.ProposalHandler,
	renderLimiter *ratelimiter.Limiter) *gin.Engine {
	r := gin.Default()

	// 許可されないメソッドには404ではなく405を返す
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, api.ErrorResponse{Message: "Method not allowed"})
	})

	// ブラウザのフォームから別オリジンでPOSTされるためCORSを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/auth/register", authHandler.Register)
	// 提案書生成（multipart = テンプレート差し込み / JSON = 文書合成）
	r.POST("/generate-proposal", ratelimiter.Middleware(renderLimiter), proposal.Generate)

	return r
}
