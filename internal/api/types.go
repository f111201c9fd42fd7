// In file: internal/api/types.go

// Package api holds the request and response shapes of the gateway's HTTP
// surface.
package api

import (
	"time"

	"github.com/dileep-u-k/mcp-gateway/internal/mcp"
	"github.com/dileep-u-k/mcp-gateway/internal/tools"
)

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Prompt      string   `json:"prompt" binding:"required,min=1,max=2000"`
	Temperature *float64 `json:"temperature" binding:"omitempty,gte=0,lte=1"`
	MaxTokens   int      `json:"max_tokens" binding:"omitempty,gte=1,lte=2000"`
	// Tools is an optional allow-list; tool calls outside it are dropped.
	Tools []string `json:"tools"`
}

// AskResponse is the body of a successful POST /ask.
type AskResponse struct {
	ID             string           `json:"id"`
	Thought        string           `json:"thought"`
	ToolCalls      []mcp.ToolResult `json:"tool_calls"`
	FinalAnswer    string           `json:"final_answer"`
	ToolSummary    mcp.ToolSummary  `json:"tool_summary"`
	ModelInfo      map[string]any   `json:"model_info"`
	ProcessingTime float64          `json:"processing_time"`
	TokensUsed     int              `json:"tokens_used"`
	Timestamp      time.Time        `json:"timestamp"`
	CacheStatus    string           `json:"cache_status,omitempty"`
}

// AuthRequest is the body of POST /auth/register and /auth/login.
type AuthRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// AuthResponse is the body of a successful register/login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"user_id"`
}

// ToolList is the body of GET /tools.
type ToolList struct {
	Tools []tools.Info `json:"tools"`
}

// SystemStatus is the body of GET /.
type SystemStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	Uptime         float64 `json:"uptime"`
	ModelLoaded    bool    `json:"model_loaded"`
	ToolsAvailable int     `json:"tools_available"`
	ActiveUsers    int64   `json:"active_users"`
	RequestsToday  int64   `json:"requests_today"`
}

// HistoryResponse is the body of GET /history.
type HistoryResponse struct {
	History any `json:"history"`
	Total   int `json:"total"`
}
