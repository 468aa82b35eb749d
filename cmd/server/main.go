package main

import (
	"log"

	"charter_backend/internal/app/router"
	authadapters "charter_backend/internal/feature/auth/adapters"
	authhandler "charter_backend/internal/feature/auth/transport/handler"
	authusecase "charter_backend/internal/feature/auth/usecase"
	"charter_backend/internal/feature/proposal/adapters/docxgen"
	"charter_backend/internal/feature/proposal/adapters/docxtpl"
	proposalhandler "charter_backend/internal/feature/proposal/transport/handler"
	proposalusecase "charter_backend/internal/feature/proposal/usecase"
	"charter_backend/internal/platform/config"
	platformdb "charter_backend/internal/platform/db"
	"charter_backend/internal/shared/ratelimiter"
)

func main() {
	cfg := config.Load()

	// db（プロセス全体で共有するプール。リクエストごとには開閉しない）
	db := platformdb.OpenDB()
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to obtain sql.DB: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Println("[ERROR] Failed to close DB pool:", err)
		}
	}()

	// Repository
	userRepo := authadapters.NewUserPostgres(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo)
	proposalUC := proposalusecase.NewProposalUsecase(docxtpl.NewRenderer(), docxgen.NewBuilder())

	// Handler
	authH := authhandler.NewAuthHandler(authUC, cfg.ExposeErrorDetails)
	proposalH := proposalhandler.NewProposalHandler(proposalUC, cfg.TempDir, cfg.ExposeErrorDetails)

	// レンダリングのレートリミッタ
	renderLimiter := ratelimiter.New(cfg.RenderRateLimit, cfg.RenderRateInterval)

	// ルータ生成
	r := router.NewRouter(authH, proposalH, renderLimiter)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
