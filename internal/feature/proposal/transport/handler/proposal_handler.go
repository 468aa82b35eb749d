// Package handler はproposalフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"charter_backend/internal/api"
	"charter_backend/internal/feature/proposal/domain/entity"
	"charter_backend/internal/feature/proposal/usecase"
)

// ProposalUsecase は提案書生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ProposalUsecase interface {
	Generate(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error)
}

// ProposalHandler は提案書生成のHTTPリクエストを処理します。
type ProposalHandler struct {
	uc ProposalUsecase

	// tempDir はアップロードされたテンプレートの一時保存先です。
	tempDir string

	// exposeDetails がtrueの場合、内部エラーの詳細をレスポンスに含めます。
	exposeDetails bool
}

// NewProposalHandler はProposalHandlerの新しいインスタンスを生成します。
func NewProposalHandler(uc ProposalUsecase, tempDir string, exposeDetails bool) *ProposalHandler {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &ProposalHandler{uc: uc, tempDir: tempDir, exposeDetails: exposeDetails}
}

// Generate は提案書生成APIエンドポイントを処理します。
// リクエストのContent-Typeでバリアントを選択します:
// multipart/form-dataはアップロードされたテンプレートへの差し込み、
// application/jsonは固定構造の文書合成です。
//
// エンドポイント: POST /generate-proposal
func (h *ProposalHandler) Generate(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		h.generateFromTemplate(c)
		return
	}
	h.generateFromFields(c)
}

// generateFromTemplate はテンプレートバリアントを処理します。
// アップロードは一時ファイルに保存され、成否に関わらずレスポンス送出後に削除されます。
func (h *ProposalHandler) generateFromTemplate(c *gin.Context) {
	file, err := c.FormFile("template")
	if err != nil {
		slog.Warn("テンプレートファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "No template file provided"})
		return
	}

	req := entity.ProposalRequest{
		CustomerName:       c.PostForm("customerName"),
		DepartureAirport:   c.PostForm("departureAirport"),
		DestinationAirport: c.PostForm("destinationAirport"),
		DepartureDate:      c.PostForm("departureDate"),
		AirplaneOption1:    c.PostForm("airplaneOption1"),
		AirplaneOption2:    c.PostForm("airplaneOption2"),
	}

	// リクエストごとに一意な一時パス。他リクエストと競合しない
	tmpPath := filepath.Join(h.tempDir, uuid.NewString()+".docx")
	defer func() {
		// ベストエフォート削除。保存途中で失敗した部分ファイルもここで消える。
		// 失敗はログのみで、レスポンスには影響しない
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("一時ファイルの削除に失敗", "error", err, "path", tmpPath)
		}
	}()
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		slog.Error("テンプレートの一時保存に失敗", "error", err, "path", tmpPath)
		h.writeError(c, fmt.Errorf("failed to store uploaded template: %w", err))
		return
	}

	template, err := os.ReadFile(tmpPath)
	if err != nil {
		slog.Error("一時ファイルの読み取りに失敗", "error", err, "path", tmpPath)
		h.writeError(c, fmt.Errorf("failed to read uploaded template: %w", err))
		return
	}

	doc, err := h.uc.Generate(c.Request.Context(), req, template)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.stream(c, doc)
}

// generateFromFields はテンプレートなしのJSONバリアントを処理します。
func (h *ProposalHandler) generateFromFields(c *gin.Context) {
	var body api.GenerateProposalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		slog.Warn("提案書リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Missing required fields"})
		return
	}

	req := entity.ProposalRequest{
		CustomerName:       body.CustomerName,
		DepartureAirport:   body.DepartureAirport,
		DestinationAirport: body.DestinationAirport,
		DepartureDate:      body.DepartureDate,
		AirplaneOption1:    body.AirplaneOption1,
		AirplaneOption2:    body.AirplaneOption2,
	}

	doc, err := h.uc.Generate(c.Request.Context(), req, nil)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.stream(c, doc)
}

// stream は完成した文書をダウンロードレスポンスとして書き出します。
// バッファが完成する前のエラーはここに到達せず、部分レスポンスは発生しません。
func (h *ProposalHandler) stream(c *gin.Context, doc *entity.GeneratedDocument) {
	c.Header("Content-Disposition", "attachment; filename="+doc.Filename)
	c.Header("Content-Length", strconv.Itoa(len(doc.Data)))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// writeError はユースケースのエラーをHTTPレスポンスへ変換します。
// - *ValidationError → 400、欠落フィールド名つき
// - *RenderError → 500、プレースホルダー診断つき
// - その他 → 500
// 内部エラーの文字列はエラー詳細ポリシーが許可する場合のみ公開します。
func (h *ProposalHandler) writeError(c *gin.Context, err error) {
	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		slog.Warn("提案書リクエストに欠落フィールド", "fields", vErr.Fields, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Message: "Missing required fields",
			Details: vErr.Fields,
		})
		return
	}

	var rErr *usecase.RenderError
	if errors.As(err, &rErr) {
		slog.Error("テンプレートのレンダリングに失敗", "error", err, "diagnostics", len(rErr.Diagnostics))
		resp := api.ErrorResponse{Message: "Error generating document"}
		if len(rErr.Diagnostics) > 0 {
			resp.Details = rErr.Diagnostics
		}
		if h.exposeDetails {
			resp.Error = rErr.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	slog.Error("提案書の生成に失敗", "error", err)
	resp := api.ErrorResponse{Message: "Error generating document"}
	if h.exposeDetails {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
