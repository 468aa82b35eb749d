// Package docxgen はテンプレートを使わずに固定構造の提案書を組み立てます。
package docxgen

import (
	"bytes"
	"fmt"

	docx "github.com/fumiama/go-docx"

	"charter_backend/internal/feature/proposal/domain/entity"
	"charter_backend/internal/feature/proposal/usecase"
)

// titleSize は表題の文字サイズ（half-point単位、32 = 16pt）です。
const titleSize = "32"

// Builder はDocumentBuilderインターフェースのgo-docx実装です。
type Builder struct{}

// BuilderがDocumentBuilderを実装していることをコンパイル時に検証します。
var _ usecase.DocumentBuilder = (*Builder)(nil)

// NewBuilder はBuilderの新しいインスタンスを生成します。
func NewBuilder() *Builder {
	return &Builder{}
}

// Build は提案書をゼロから組み立て、シリアライズしたバイト列を返します。
// 構造: 太字の表題、ラベル付きフィールド、太字の"Aircraft Options"見出し、
// 2つの機材オプション段落。
func (b *Builder) Build(req entity.ProposalRequest) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph()
	title.AddText("Charter Flight Proposal").Size(titleSize).Bold()

	w.AddParagraph().AddText("Customer: " + req.CustomerName)
	w.AddParagraph().AddText("Departure Airport: " + req.DepartureAirport)
	w.AddParagraph().AddText("Destination Airport: " + req.DestinationAirport)
	w.AddParagraph().AddText("Departure Date: " + req.DepartureDate)

	heading := w.AddParagraph()
	heading.AddText("Aircraft Options").Bold()

	w.AddParagraph().AddText("Option 1: " + req.AirplaneOption1)
	w.AddParagraph().AddText("Option 2: " + req.AirplaneOption2)

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}
