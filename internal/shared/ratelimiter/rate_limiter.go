// Package ratelimiter は文書生成エンドポイントの呼び出し頻度を制限します。
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"charter_backend/internal/api"
)

// Limiter は固定ウィンドウ方式でリクエスト数を制限します。
// レンダリングはCPU・メモリを消費するため、上限超過時は待機ではなく拒否します。
type Limiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
}

// New は新しいLimiterのインスタンスを生成します。
func New(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// Allow は現在のウィンドウでリクエストを受け付けられるかを返します。
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	// interval を過ぎたらカウントリセット
	if now.Sub(l.lastReset) >= l.interval {
		l.count = 0
		l.lastReset = now
	}

	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// Middleware は上限超過時に429を返すGinミドルウェアを生成します。
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.ErrorResponse{Message: "Too many requests, try again later"})
			return
		}
		c.Next()
	}
}
