// In file: internal/store/store.go

// Package store is the persistence layer: a SQLite-backed record store for
// users and request/response logs. The MCP core never touches it; only the
// request-handling layer does.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrUserExists is returned when registering an already-taken username.
var ErrUserExists = errors.New("username already exists")

// ErrUserNotFound is returned for lookups of unknown users.
var ErrUserNotFound = errors.New("user not found")

// User is an account record.
type User struct {
	ID           string    `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	LastActive   time.Time
	IsAdmin      bool
}

// Request logs one incoming prompt.
type Request struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	Prompt    string `gorm:"not null"`
	Timestamp time.Time `gorm:"index"`
}

// Response logs the composed answer for a request, serialized as JSON.
type Response struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	RequestID      string `gorm:"index;not null"`
	ResponseData   string `gorm:"not null"`
	ProcessingTime float64
	Timestamp      time.Time
}

// HistoryEntry is one row of a user's chat history.
type HistoryEntry struct {
	ID             string         `json:"id"`
	Prompt         string         `json:"prompt"`
	Timestamp      time.Time      `json:"timestamp"`
	Response       map[string]any `json:"response"`
	ProcessingTime float64        `json:"processing_time"`
}

// Store wraps the GORM connection.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path and migrates the schema.
// Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&User{}, &Request{}, &Response{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// CreateUser inserts a new user and returns its generated ID.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (string, error) {
	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		LastActive:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

// UserByUsername looks up a user by its unique username.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// TouchLastActive records user activity; used for the active-user count.
func (s *Store) TouchLastActive(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("last_active", time.Now().UTC()).Error
}

// LogRequest records an incoming prompt.
func (s *Store) LogRequest(ctx context.Context, requestID, userID, prompt string) error {
	return s.db.WithContext(ctx).Create(&Request{
		ID:        requestID,
		UserID:    userID,
		Prompt:    prompt,
		Timestamp: time.Now().UTC(),
	}).Error
}

// LogResponse records the composed answer for a request.
func (s *Store) LogResponse(ctx context.Context, requestID string, response any, processingTime float64) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to serialize response: %w", err)
	}
	return s.db.WithContext(ctx).Create(&Response{
		RequestID:      requestID,
		ResponseData:   string(data),
		ProcessingTime: processingTime,
		Timestamp:      time.Now().UTC(),
	}).Error
}

// UserHistory returns a user's prompts with their logged responses, newest
// first.
func (s *Store) UserHistory(ctx context.Context, userID string, limit, offset int) ([]HistoryEntry, error) {
	var requests []Request
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	history := make([]HistoryEntry, 0, len(requests))
	for _, req := range requests {
		entry := HistoryEntry{
			ID:        req.ID,
			Prompt:    req.Prompt,
			Timestamp: req.Timestamp,
		}
		var resp Response
		if err := s.db.WithContext(ctx).Where("request_id = ?", req.ID).First(&resp).Error; err == nil {
			entry.ProcessingTime = resp.ProcessingTime
			var data map[string]any
			if json.Unmarshal([]byte(resp.ResponseData), &data) == nil {
				entry.Response = data
			}
		}
		history = append(history, entry)
	}
	return history, nil
}

// RequestsToday counts requests since local midnight.
func (s *Store) RequestsToday(ctx context.Context) (int64, error) {
	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Request{}).
		Where("timestamp >= ?", midnight).
		Count(&count).Error
	return count, err
}

// ActiveUsers counts distinct users with requests in the last 24 hours.
func (s *Store) ActiveUsers(ctx context.Context) (int64, error) {
	since := time.Now().UTC().Add(-24 * time.Hour)
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Request{}).
		Where("timestamp > ?", since).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

// TotalUsers counts all registered users.
func (s *Store) TotalUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&User{}).Count(&count).Error
	return count, err
}

// Status reports database statistics for the status endpoint.
func (s *Store) Status(ctx context.Context) map[string]any {
	total, _ := s.TotalUsers(ctx)
	today, _ := s.RequestsToday(ctx)
	active, _ := s.ActiveUsers(ctx)
	return map[string]any{
		"total_users":    total,
		"requests_today": today,
		"active_users":   active,
	}
}
