// Package usecase はproposalフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"charter_backend/internal/feature/proposal/domain/entity"
)

// MaxTemplateSize はアップロードされるテンプレートの最大サイズ（10MB）です。
const MaxTemplateSize = 10 * 1024 * 1024

// TemplateRenderer はアップロードされたテンプレートにプレースホルダー値を
// 差し込むレンダラーのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TemplateRenderer interface {
	// Render はテンプレートのバイト列内のプレースホルダーを置換し、
	// 完成した文書のバイト列を返します。未解決のプレースホルダーが残る場合、
	// 診断情報付きの*RenderErrorを返します。
	Render(template []byte, placeholders map[string]string) ([]byte, error)
}

// DocumentBuilder はテンプレートなしで固定構造の提案書を組み立てる
// ビルダーのインターフェースです。
type DocumentBuilder interface {
	// Build はリクエストのフィールドから文書を生成し、バイト列を返します。
	Build(req entity.ProposalRequest) ([]byte, error)
}

// proposalUsecase は提案書生成のビジネスロジックを提供します。
// テンプレートバリアントと合成バリアントの2つの戦略を束ねます。
type proposalUsecase struct {
	renderer TemplateRenderer
	builder  DocumentBuilder
}

// NewProposalUsecase はproposalUsecaseの新しいインスタンスを生成します。
func NewProposalUsecase(renderer TemplateRenderer, builder DocumentBuilder) *proposalUsecase {
	return &proposalUsecase{renderer: renderer, builder: builder}
}

// Generate は提案書を生成します。templateがnilでなければアップロードされた
// テンプレートへの差し込み、nilであれば固定構造の文書合成を行います。
// 必須フィールドが欠けている場合は*ValidationErrorを返します。
func (u *proposalUsecase) Generate(ctx context.Context, req entity.ProposalRequest, template []byte) (*entity.GeneratedDocument, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	if len(template) > MaxTemplateSize {
		return nil, fmt.Errorf("template size exceeds maximum of %d bytes", MaxTemplateSize)
	}

	var (
		data []byte
		err  error
	)
	if template != nil {
		data, err = u.renderer.Render(template, req.Placeholders())
	} else {
		data, err = u.builder.Build(req)
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	return &entity.GeneratedDocument{
		Filename:    req.Filename(),
		ContentType: entity.DocxContentType,
		Data:        data,
	}, nil
}
