package website

import (
	"context"

	"github.com/tracknest/core/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create registers a website under the owning user. Names are unique per
// user, not globally: two users can both track a "Blog".
func (s *Service) Create(ctx context.Context, userID string, dto *CreateWebsiteDTO) (*models.WebsiteModel, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.WebsiteModel{}).
		Where("user_id = ? AND name = ?", userID, dto.Name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errWebsiteExists
	}

	site := &models.WebsiteModel{
		Name:   dto.Name,
		Domain: dto.Domain,
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(site).Error; err != nil {
		return nil, err
	}
	return site, nil
}

// ListQuery returns the base query for one user's websites, for pagination.
func (s *Service) ListQuery(ctx context.Context, userID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.WebsiteModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
}

// Get fetches one website owned by userID.
func (s *Service) Get(ctx context.Context, userID, websiteID string) (*models.WebsiteModel, error) {
	var site models.WebsiteModel
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", websiteID, userID).
		First(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}
