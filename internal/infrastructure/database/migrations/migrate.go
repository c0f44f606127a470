package migrations

import (
	"github.com/PavaniTiago/beta-attribution-api/internal/domain/entities"
	"gorm.io/gorm"
)

// Migrate cria as tabelas do serviço de atribuição
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Channel{},
		&entities.AttributionEvent{},
		&entities.AttributionReport{},
	)
}
