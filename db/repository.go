package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository defines decoupled operations for token persistence.
type TokenRepository interface {
	Get(ctx context.Context) (*Token, error)
	Upsert(ctx context.Context, token *Token) error
	Clear(ctx context.Context) error
}

// SnapshotRepository defines decoupled operations for the auth snapshot.
type SnapshotRepository interface {
	Get(ctx context.Context) (*AuthSnapshot, error)
	Upsert(ctx context.Context, snapshot *AuthSnapshot) error
	Clear(ctx context.Context) error
}

// PrizeRepository defines decoupled operations for the prize catalogue cache.
type PrizeRepository interface {
	Put(ctx context.Context, prize Prize) error
	ReplaceAll(ctx context.Context, prizes []Prize) error
	List(ctx context.Context) ([]Prize, error)
	GetByID(ctx context.Context, id int) (*Prize, error)
	Clear(ctx context.Context) error
}

// gormTokenRepo is a GORM-backed implementation of TokenRepository.
// Use constructor NewTokenRepository to obtain an instance.
type gormTokenRepo struct{ db *gorm.DB }

// gormSnapshotRepo is a GORM-backed implementation of SnapshotRepository.
type gormSnapshotRepo struct{ db *gorm.DB }

// gormPrizeRepo is a GORM-backed implementation of PrizeRepository.
type gormPrizeRepo struct{ db *gorm.DB }

// NewTokenRepository creates a TokenRepository. Accepts *gorm.DB to avoid global access.
func NewTokenRepository(db *gorm.DB) TokenRepository { return &gormTokenRepo{db: db} }

// NewSnapshotRepository creates a SnapshotRepository. Accepts *gorm.DB to avoid global access.
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository { return &gormSnapshotRepo{db: db} }

// NewPrizeRepository creates a PrizeRepository. Accepts *gorm.DB to avoid global access.
func NewPrizeRepository(db *gorm.DB) PrizeRepository { return &gormPrizeRepo{db: db} }

func (r *gormTokenRepo) Get(ctx context.Context) (*Token, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var token Token
	err := r.db.WithContext(ctx).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepo) Upsert(ctx context.Context, token *Token) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	token.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token"}),
	}).Create(token).Error
}

func (r *gormTokenRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Token{}).Error
}

func (r *gormSnapshotRepo) Get(ctx context.Context) (*AuthSnapshot, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var snapshot AuthSnapshot
	err := r.db.WithContext(ctx).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *gormSnapshotRepo) Upsert(ctx context.Context, snapshot *AuthSnapshot) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	snapshot.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_authenticated", "is_admin"}),
	}).Create(snapshot).Error
}

func (r *gormSnapshotRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&AuthSnapshot{}).Error
}

func (r *gormPrizeRepo) Put(ctx context.Context, prize Prize) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&prize).Error
}

func (r *gormPrizeRepo) ReplaceAll(ctx context.Context, prizes []Prize) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Prize{}).Error; err != nil {
			return err
		}
		if len(prizes) == 0 {
			return nil
		}
		return tx.Create(&prizes).Error
	})
}

func (r *gormPrizeRepo) List(ctx context.Context) ([]Prize, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var prizes []Prize
	if err := r.db.WithContext(ctx).Order("points").Find(&prizes).Error; err != nil {
		return nil, err
	}
	return prizes, nil
}

func (r *gormPrizeRepo) GetByID(ctx context.Context, id int) (*Prize, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var prize Prize
	err := r.db.WithContext(ctx).First(&prize, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

func (r *gormPrizeRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Prize{}).Error
}
