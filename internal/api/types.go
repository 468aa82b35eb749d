// Package api はHTTP境界で共有されるリクエスト/レスポンスDTOを定義します。
package api

import "time"

// RegisterRequest は /auth/register エンドポイントのリクエストボディです。
// Ginのbindingタグでバリデーションを行います（email・passwordは必須、nameは任意）。
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GenerateProposalRequest は /generate-proposal のJSONバリアントのリクエストボディです。
// 6つのテキストフィールドすべてが必須です。
type GenerateProposalRequest struct {
	CustomerName       string `json:"customerName" binding:"required"`
	DepartureAirport   string `json:"departureAirport" binding:"required"`
	DestinationAirport string `json:"destinationAirport" binding:"required"`
	DepartureDate      string `json:"departureDate" binding:"required"`
	AirplaneOption1    string `json:"airplaneOption1" binding:"required"`
	AirplaneOption2    string `json:"airplaneOption2" binding:"required"`
}

// UserResponse は作成されたユーザーを表します。パスワードは含まれません。
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterResponse はユーザー登録成功時のレスポンスボディです。
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// ErrorResponse はすべてのエラーレスポンスの共通ボディです。
// Error には内部エラーの詳細が入ります（エラー詳細ポリシーが許可する場合のみ）。
// Details にはフィールド名やプレースホルダー診断などの構造化情報が入ります。
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse は本文がメッセージのみの汎用レスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}
