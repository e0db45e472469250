package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID string `gorm:"primaryKey"`

	UserID string `gorm:"not null;index"`
	Token  string `gorm:"unique;not null"`
	Role   string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByToken(ctx context.Context, token string) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).First(&session, "token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}

// DeleteByToken is idempotent: deleting an absent token is not an error.
func (d *SessionDAO) DeleteByToken(ctx context.Context, token string) error {
	result := d.db.WithContext(ctx).Delete(&Session{}, "token = ?", token)

	return result.Error
}
