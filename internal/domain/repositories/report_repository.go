package repositories

import (
	"context"
	"errors"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	CreateReport(ctx context.Context, report *entities.AttributionReport) error
	UpdateReport(ctx context.Context, report *entities.AttributionReport) error
	GetReportByID(ctx context.Context, reportID uuid.UUID) (*entities.AttributionReport, error)
	GetReports(ctx context.Context, projectID uuid.UUID, page, limit int, orderBy string) ([]entities.AttributionReport, int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db}
}

func (r *reportRepository) CreateReport(ctx context.Context, report *entities.AttributionReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) UpdateReport(ctx context.Context, report *entities.AttributionReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) GetReportByID(ctx context.Context, reportID uuid.UUID) (*entities.AttributionReport, error) {
	var report entities.AttributionReport

	err := r.db.WithContext(ctx).
		Where("id = ?", reportID).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &report, nil
}

func (r *reportRepository) GetReports(ctx context.Context, projectID uuid.UUID, page, limit int, orderBy string) ([]entities.AttributionReport, int64, error) {
	var reports []entities.AttributionReport
	var total int64

	baseQuery := r.db.WithContext(ctx).
		Model(&entities.AttributionReport{}).
		Where("project_id = ?", projectID)

	// Get total count
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Calculate offset
	offset := (page - 1) * limit

	err := baseQuery.
		Order(orderBy).
		Offset(offset).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
