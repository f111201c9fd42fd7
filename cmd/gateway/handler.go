// In file: cmd/gateway/handler.go
package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dileep-u-k/mcp-gateway/internal/api"
	"github.com/dileep-u-k/mcp-gateway/internal/auth"
	"github.com/dileep-u-k/mcp-gateway/internal/mcp"
	"github.com/dileep-u-k/mcp-gateway/internal/model"
	"github.com/dileep-u-k/mcp-gateway/internal/store"
	"github.com/dileep-u-k/mcp-gateway/internal/tools"
	"github.com/dileep-u-k/mcp-gateway/internal/version"
)

// Defaults for the /ask generation options when the request omits them.
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 500
)

// GatewayHandler carries the gateway's services into the HTTP handlers.
type GatewayHandler struct {
	generator   model.Generator
	engine      *mcp.Engine
	registry    *tools.Registry
	authManager *auth.Manager
	store       *store.Store
	rdb         *redis.Client
	config      *AppConfig
	log         zerolog.Logger
	startTime   time.Time
}

func NewGatewayHandler(
	generator model.Generator,
	engine *mcp.Engine,
	registry *tools.Registry,
	authManager *auth.Manager,
	st *store.Store,
	rdb *redis.Client,
	config *AppConfig,
	log zerolog.Logger,
) *GatewayHandler {
	return &GatewayHandler{
		generator:   generator,
		engine:      engine,
		registry:    registry,
		authManager: authManager,
		store:       st,
		rdb:         rdb,
		config:      config,
		log:         log.With().Str("component", "handler").Logger(),
		startTime:   time.Now(),
	}
}

// HandleRoot serves the system status / health check.
func (h *GatewayHandler) HandleRoot(c *gin.Context) {
	ctx := c.Request.Context()
	active, _ := h.store.ActiveUsers(ctx)
	today, _ := h.store.RequestsToday(ctx)

	c.JSON(http.StatusOK, api.SystemStatus{
		Status:         "healthy",
		Version:        GetBuildInfo().Version,
		Uptime:         time.Since(h.startTime).Seconds(),
		ModelLoaded:    true,
		ToolsAvailable: h.registry.Count(),
		ActiveUsers:    active,
		RequestsToday:  today,
	})
}

// HandleRegister creates a new user and returns a fresh access token.
func (h *GatewayHandler) HandleRegister(c *gin.Context) {
	var req api.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	creds, err := h.authManager.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.log.Warn().Str("username", req.Username).Err(err).Msg("Registration failed")
		status := http.StatusBadRequest
		message := "Registration failed"
		if errors.Is(err, store.ErrUserExists) {
			message = "Username already exists"
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, authResponse(creds))
}

// HandleLogin authenticates a user and returns a fresh access token.
func (h *GatewayHandler) HandleLogin(c *gin.Context) {
	var req api.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	creds, err := h.authManager.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.log.Warn().Str("username", req.Username).Msg("Login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, authResponse(creds))
}

func authResponse(creds *auth.Credentials) api.AuthResponse {
	return api.AuthResponse{
		AccessToken: creds.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   creds.ExpiresIn,
		UserID:      creds.UserID,
	}
}

// HandleTools lists all registered tools with their schemas.
func (h *GatewayHandler) HandleTools(c *gin.Context) {
	c.JSON(http.StatusOK, api.ToolList{Tools: h.registry.List()})
}

// HandleToggleTool enables or disables a tool. Admin only.
func (h *GatewayHandler) HandleToggleTool(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok || !identity.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	name := c.Param("name")
	enabled, err := h.registry.Toggle(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info().Str("tool", name).Bool("enabled", enabled).Msg("Tool toggled")
	c.JSON(http.StatusOK, gin.H{"tool": name, "enabled": enabled})
}

// HandleAsk is the main chat endpoint: generate, dispatch tool calls, compose.
func (h *GatewayHandler) HandleAsk(c *gin.Context) {
	startTime := time.Now()
	ctx := c.Request.Context()

	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req api.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	requestID := "req_" + uuid.NewString()
	h.log.Info().Str("request_id", requestID).Str("user_id", identity.UserID).Msg("Processing request")

	if err := h.store.LogRequest(ctx, requestID, identity.UserID, req.Prompt); err != nil {
		h.log.Warn().Err(err).Msg("Failed to log request")
	}
	if err := h.store.TouchLastActive(ctx, identity.UserID); err != nil {
		h.log.Warn().Err(err).Msg("Failed to update user activity")
	}

	// The allow-list is part of the cache identity: the same prompt with a
	// different tool set composes a different answer.
	cacheKey := version.GenerateVersionedCacheKey("askcache", req.Prompt+"|"+strings.Join(req.Tools, ","))
	if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var resp api.AskResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			h.log.Info().Str("request_id", requestID).Msg("Cache HIT")
			resp.ID = requestID
			resp.ProcessingTime = time.Since(startTime).Seconds()
			resp.CacheStatus = "HIT"
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	opts := model.Options{Temperature: defaultTemperature, MaxTokens: defaultMaxTokens}
	if req.Temperature != nil {
		opts.Temperature = *req.Temperature
	}
	if req.MaxTokens > 0 {
		opts.MaxTokens = req.MaxTokens
	}

	generation, err := h.generator.Generate(ctx, req.Prompt, opts)
	if err != nil {
		h.log.Error().Str("request_id", requestID).Err(err).Msg("Generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Processing error: " + err.Error()})
		return
	}

	results := h.engine.Process(ctx, generation.Text, req.Tools)
	composed := h.engine.Compose(generation.Text, results)

	resp := api.AskResponse{
		ID:             requestID,
		Thought:        composed.Thought,
		ToolCalls:      composed.ToolCalls,
		FinalAnswer:    composed.FinalAnswer,
		ToolSummary:    composed.Summary,
		ModelInfo:      generation.ModelInfo,
		ProcessingTime: time.Since(startTime).Seconds(),
		TokensUsed:     generation.TokensUsed,
		Timestamp:      time.Now().UTC(),
		CacheStatus:    "MISS",
	}

	if err := h.store.LogResponse(ctx, requestID, resp, resp.ProcessingTime); err != nil {
		h.log.Warn().Err(err).Msg("Failed to log response")
	}
	if data, err := json.Marshal(resp); err == nil {
		h.rdb.Set(ctx, cacheKey, data, h.config.Engine.CacheTTL())
	}

	c.JSON(http.StatusOK, resp)
}

// HandleHistory returns the caller's chat history, newest first.
func (h *GatewayHandler) HandleHistory(c *gin.Context) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	history, err := h.store.UserHistory(c.Request.Context(), identity.UserID, limit, offset)
	if err != nil {
		h.log.Error().Str("user_id", identity.UserID).Err(err).Msg("Failed to fetch history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, api.HistoryResponse{History: history, Total: len(history)})
}

// HandleStatus serves the detailed status page.
func (h *GatewayHandler) HandleStatus(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"system": gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(h.startTime).Seconds(),
			"build":     GetBuildInfo(),
		},
		"model":    h.generator.Status(),
		"tools":    h.registry.Status(),
		"database": h.store.Status(ctx),
	})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
