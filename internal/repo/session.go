package repo

import (
	"context"
	"time"

	"github.com/beggab/storechina/internal/models"
	"github.com/google/uuid"
)

const sessionTTL = time.Hour

// SaveSearchSession records a search and its serialized results so the chat
// layer can resolve callback references for the next hour.
func (r *GormRepo) SaveSearchSession(ctx context.Context, telegramID int64, query, resultsJSON string) (uuid.UUID, error) {
	session := models.UserSession{
		TelegramID:  telegramID,
		Query:       query,
		ResultsJSON: resultsJSON,
		Status:      models.SessionStatusActive,
		ExpiresAt:   time.Now().UTC().Add(sessionTTL),
	}
	if err := r.DB.WithContext(ctx).Create(&session).Error; err != nil {
		return uuid.Nil, err
	}
	return session.ID, nil
}

// ActiveSession returns the newest non-expired session for a user.
func (r *GormRepo) ActiveSession(ctx context.Context, telegramID int64) (*models.UserSession, error) {
	var session models.UserSession
	err := r.DB.WithContext(ctx).
		Where("telegram_id = ? AND status = ? AND expires_at > ?",
			telegramID, models.SessionStatusActive, time.Now().UTC()).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormRepo) CompleteSession(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.UserSession{}).
		Where("id_session = ?", id).
		Update("status", models.SessionStatusCompleted).Error
}

// ExpireStaleSessions flips overdue active sessions to expired and reports
// how many were touched.
func (r *GormRepo) ExpireStaleSessions(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.UserSession{}).
		Where("status = ? AND expires_at <= ?", models.SessionStatusActive, time.Now().UTC()).
		Update("status", models.SessionStatusExpired)
	return res.RowsAffected, res.Error
}
