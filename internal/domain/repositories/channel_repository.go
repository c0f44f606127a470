package repositories

import (
	"context"
	"time"

	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChannelRepository interface {
	GetChannels(ctx context.Context, projectID uuid.UUID) ([]entities.Channel, error)
	BootstrapChannels(ctx context.Context, projectID uuid.UUID, defs []entities.Channel) ([]entities.Channel, error)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db}
}

func (r *channelRepository) GetChannels(ctx context.Context, projectID uuid.UUID) ([]entities.Channel, error) {
	var channels []entities.Channel

	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("name asc").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}

	return channels, nil
}

// BootstrapChannels insere os canais padrão de um projeto de forma idempotente.
// A verificação de existência roda dentro da mesma transação do insert, e o
// insert usa ON CONFLICT DO NOTHING sobre o índice único (project_id, name) -
// duas chamadas concorrentes nunca produzem canais duplicados, mesmo entre
// instâncias distintas da API.
func (r *channelRepository) BootstrapChannels(ctx context.Context, projectID uuid.UUID, defs []entities.Channel) ([]entities.Channel, error) {
	var channels []entities.Channel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&entities.Channel{}).
			Where("project_id = ?", projectID).
			Count(&existing).Error; err != nil {
			return err
		}

		if existing == 0 {
			now := time.Now().UTC()
			for i := range defs {
				defs[i].ID = uuid.New()
				defs[i].ProjectID = projectID
				defs[i].CreatedAt = now
				defs[i].UpdatedAt = now
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "project_id"}, {Name: "name"}},
				DoNothing: true,
			}).Create(&defs).Error; err != nil {
				return err
			}
		}

		return tx.Where("project_id = ?", projectID).
			Order("name asc").
			Find(&channels).Error
	})
	if err != nil {
		return nil, err
	}

	return channels, nil
}
