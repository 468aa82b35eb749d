// Package docxtpl はアップロードされた.docxテンプレートへの
// プレースホルダー差し込みを実装します。
package docxtpl

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	docx "github.com/lukasjarosch/go-docx"

	"charter_backend/internal/feature/proposal/usecase"
)

// tokenPattern はシングルブレース区切りのプレースホルダートークンにマッチします。
// テンプレート内のトークンは {CUSTOMER} のように記述されている必要があります。
var tokenPattern = regexp.MustCompile(`\{[A-Za-z0-9_]+\}`)

// xmlTagPattern はXMLタグを除去し、ラン分割されたトークンを連結するために使用します。
var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Renderer はTemplateRendererインターフェースのgo-docx実装です。
type Renderer struct{}

// RendererがTemplateRendererを実装していることをコンパイル時に検証します。
var _ usecase.TemplateRenderer = (*Renderer)(nil)

// NewRenderer はRendererの新しいインスタンスを生成します。
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render はテンプレートの全プレースホルダーを置換し、再圧縮した文書を返します。
// アーカイブが不正な場合、またはプレースホルダーマップに値を持たないトークンが
// テンプレートに含まれる場合は*usecase.RenderErrorを返します。
func (r *Renderer) Render(template []byte, placeholders map[string]string) ([]byte, error) {
	doc, err := docx.OpenBytes(template)
	if err != nil {
		return nil, &usecase.RenderError{Err: fmt.Errorf("invalid document archive: %w", err)}
	}

	// 走査するのは置換前のテンプレート側。置換後の文書を再走査すると、
	// バインドされた値自身に含まれるブレース表記を未解決トークンと誤検出する
	diags, err := scanUnknownTokens(template, placeholders)
	if err != nil {
		return nil, &usecase.RenderError{Err: err}
	}
	if len(diags) > 0 {
		return nil, &usecase.RenderError{Diagnostics: diags}
	}

	m := make(docx.PlaceholderMap, len(placeholders))
	for k, v := range placeholders {
		m[k] = v
	}
	if err := doc.ReplaceAll(m); err != nil {
		return nil, &usecase.RenderError{Err: fmt.Errorf("placeholder replacement failed: %w", err)}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, &usecase.RenderError{Err: fmt.Errorf("failed to repackage document: %w", err)}
	}
	return buf.Bytes(), nil
}

// scanUnknownTokens はテンプレートの本文・ヘッダー・フッターXMLを走査し、
// プレースホルダーマップに値を持たないシングルブレーストークンを
// 診断情報として収集します。
func scanUnknownTokens(template []byte, placeholders map[string]string) ([]usecase.PlaceholderDiagnostic, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("failed to reopen template archive: %w", err)
	}

	seen := make(map[string]bool)
	var diags []usecase.PlaceholderDiagnostic
	for _, f := range zr.File {
		if !isContentPart(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}

		// タグを除去してから走査することで、複数ランに分割されたトークンも検出する
		text := xmlTagPattern.ReplaceAllString(string(data), "")
		for _, token := range tokenPattern.FindAllString(text, -1) {
			name := strings.Trim(token, "{}")
			if _, ok := placeholders[name]; ok {
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			diags = append(diags, usecase.PlaceholderDiagnostic{Placeholder: name, Message: "unknown placeholder token"})
		}
	}
	return diags, nil
}

// isContentPart は文書テキストを含むアーカイブパートかどうかを判定します。
func isContentPart(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}
