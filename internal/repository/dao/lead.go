package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID string `gorm:"primaryKey"`

	Name   string `gorm:"not null"`
	Phone  string `gorm:"not null;index"`
	Status string `gorm:"not null;default:NEW"`
	Source string
	Notes  string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type LeadDAO struct {
	db *gorm.DB
}

func NewLeadDAO(db *gorm.DB) *LeadDAO {
	return &LeadDAO{
		db: db,
	}
}

func (d *LeadDAO) Insert(ctx context.Context, lead Lead) (Lead, error) {
	result := d.db.WithContext(ctx).Create(&lead)
	if result.Error != nil {
		return Lead{}, result.Error
	}

	return lead, nil
}

func (d *LeadDAO) FindByID(ctx context.Context, id string) (Lead, error) {
	var lead Lead

	result := d.db.WithContext(ctx).First(&lead, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Lead{}, ErrLeadNotFound
		}

		return Lead{}, result.Error
	}

	return lead, nil
}

func (d *LeadDAO) List(ctx context.Context) ([]Lead, error) {
	var leads []Lead

	result := d.db.WithContext(ctx).Order("created_at").Find(&leads)
	if result.Error != nil {
		return nil, result.Error
	}

	return leads, nil
}

func (d *LeadDAO) Update(ctx context.Context, lead Lead) (Lead, error) {
	result := d.db.WithContext(ctx).Model(&Lead{}).
		Where("id = ?", lead.ID).
		Updates(map[string]interface{}{
			"name":   lead.Name,
			"phone":  lead.Phone,
			"status": lead.Status,
			"source": lead.Source,
			"notes":  lead.Notes,
		})
	if result.Error != nil {
		return Lead{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Lead{}, ErrLeadNotFound
	}

	return d.FindByID(ctx, lead.ID)
}

func (d *LeadDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Lead{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}

	return nil
}
