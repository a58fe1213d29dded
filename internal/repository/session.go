package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindloop/therasim/internal/types"
)

// sessionModel maps to the sessions table.
type sessionModel struct {
	ID        string `gorm:"primaryKey"`
	Scenario  string
	CreatedAt time.Time
}

func (sessionModel) TableName() string {
	return "sessions"
}

// SessionRepo accesses session data.
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo returns a SessionRepo.
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session and returns it.
func (r *SessionRepo) Create(ctx context.Context, scenario string) (types.Session, error) {
	record := sessionModel{
		ID:       uuid.NewString(),
		Scenario: scenario,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return types.Session{}, fmt.Errorf("failed to insert session: %w", err)
	}
	return types.Session{ID: record.ID, Scenario: record.Scenario, CreatedAt: record.CreatedAt}, nil
}

// GetByID fetches a session by ID.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*types.Session, error) {
	var record sessionModel
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}
	return &types.Session{ID: record.ID, Scenario: record.Scenario, CreatedAt: record.CreatedAt}, nil
}
