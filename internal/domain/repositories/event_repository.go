package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository interface {
	GetEventByID(ctx context.Context, eventID uuid.UUID) (*entities.AttributionEvent, error)
	GetUserEvents(ctx context.Context, projectID uuid.UUID, userIdentifier string, from, to time.Time) ([]entities.AttributionEvent, error)
	GetConversionEvents(ctx context.Context, projectID uuid.UUID, from, to time.Time) ([]entities.AttributionEvent, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db}
}

func (r *eventRepository) GetEventByID(ctx context.Context, eventID uuid.UUID) (*entities.AttributionEvent, error) {
	var event entities.AttributionEvent

	err := r.db.WithContext(ctx).
		Where("id = ?", eventID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &event, nil
}

// GetUserEvents retorna os eventos de um usuário dentro da janela, ordenados
// por occurred_at ascendente - a ordem cronológica que a jornada exige
func (r *eventRepository) GetUserEvents(ctx context.Context, projectID uuid.UUID, userIdentifier string, from, to time.Time) ([]entities.AttributionEvent, error) {
	var events []entities.AttributionEvent

	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_identifier = ?", projectID, userIdentifier).
		Where("occurred_at >= ? AND occurred_at <= ?", from.UTC(), to.UTC()).
		Order("occurred_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *eventRepository) GetConversionEvents(ctx context.Context, projectID uuid.UUID, from, to time.Time) ([]entities.AttributionEvent, error) {
	var events []entities.AttributionEvent

	err := r.db.WithContext(ctx).
		Where("project_id = ? AND event_type = ?", projectID, entities.EventTypeConversion).
		Where("occurred_at >= ? AND occurred_at <= ?", from.UTC(), to.UTC()).
		Order("occurred_at asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}
