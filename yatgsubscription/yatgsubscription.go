// Package yatgsubscription stores which users are subscribed to which bot.
//
// Unsubscribing keeps the row and clears its Active flag, so a returning user is
// re-activated rather than re-created.
package yatgsubscription

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BotSubscriber links a user to a bot they receive messages from.
type BotSubscriber struct {
	BotID     int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64     `gorm:"primaryKey;autoIncrement:false;index"`
	Active    bool      `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

const (
	fieldBotID  = "bot_id"
	fieldUserID = "user_id"
	fieldActive = "active"
)

// Store is the subscriber repository over a GORM database.
type Store struct {
	poolDB *gorm.DB
}

// NewGormStore creates a Store and runs the migrations for BotSubscriber.
//
// Example usage:
//
//	store, err := yatgsubscription.NewGormStore(poolDB)
//	if err != nil {
//		log.Fatalf("failed to migrate subscribers: %v", err)
//	}
func NewGormStore(poolDB *gorm.DB) (*Store, yaerrors.Error) {
	if err := poolDB.AutoMigrate(&BotSubscriber{}); err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[SUBSCRIPTION] failed to make auto migrate",
		)
	}

	return &Store{poolDB: poolDB}, nil
}

// Subscribe activates the subscription of userID to botID. It reports whether the
// user was not an active subscriber before.
func (s *Store) Subscribe(ctx context.Context, botID, userID int64) (bool, yaerrors.Error) {
	active, err := s.IsSubscriber(ctx, botID, userID)
	if err != nil {
		return false, err.Wrap("[SUBSCRIPTION] failed to subscribe")
	}

	if active {
		return false, nil
	}

	if err := s.poolDB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: fieldBotID}, {Name: fieldUserID}},
			DoUpdates: clause.AssignmentColumns([]string{fieldActive, "updated_at"}),
		}).
		Create(&BotSubscriber{
			BotID:  botID,
			UserID: userID,
			Active: true,
		}).Error; err != nil {
		return false, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[SUBSCRIPTION] failed to store subscriber",
		)
	}

	return true, nil
}

// Unsubscribe deactivates the subscription. It reports whether there was an
// active subscription to deactivate.
func (s *Store) Unsubscribe(ctx context.Context, botID, userID int64) (bool, yaerrors.Error) {
	result := s.poolDB.WithContext(ctx).
		Model(&BotSubscriber{}).
		Where(fieldBotID+" = ? AND "+fieldUserID+" = ? AND "+fieldActive+" = ?", botID, userID, true).
		Update(fieldActive, false)
	if result.Error != nil {
		return false, yaerrors.FromError(
			http.StatusInternalServerError,
			result.Error,
			"[SUBSCRIPTION] failed to deactivate subscriber",
		)
	}

	return result.RowsAffected > 0, nil
}

// IsSubscriber reports whether userID is an active subscriber of botID.
func (s *Store) IsSubscriber(ctx context.Context, botID, userID int64) (bool, yaerrors.Error) {
	var subscriber BotSubscriber

	err := s.poolDB.WithContext(ctx).
		Where(fieldBotID+" = ? AND "+fieldUserID+" = ?", botID, userID).
		Take(&subscriber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[SUBSCRIPTION] failed to fetch subscriber",
		)
	}

	return subscriber.Active, nil
}

// Count returns the number of active subscribers of botID.
func (s *Store) Count(ctx context.Context, botID int64) (int64, yaerrors.Error) {
	var count int64

	if err := s.poolDB.WithContext(ctx).
		Model(&BotSubscriber{}).
		Where(fieldBotID+" = ? AND "+fieldActive+" = ?", botID, true).
		Count(&count).Error; err != nil {
		return 0, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[SUBSCRIPTION] failed to count subscribers",
		)
	}

	return count, nil
}
