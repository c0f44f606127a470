package migrations

import (
	"gorm.io/gorm"
)

// AddIndexes adds indexes to the database to improve query performance
func AddIndexes(db *gorm.DB) error {
	// Índice único que garante o bootstrap idempotente de canais: duas
	// inicializações concorrentes do mesmo projeto nunca duplicam canais
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_channels_project_name ON channels (project_id, name)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_channels_project_id ON channels (project_id)").Error; err != nil {
		return err
	}

	// Add indexes to the attribution_events table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_occurred_at ON attribution_events (occurred_at)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_project_user_occurred ON attribution_events (project_id, user_identifier, occurred_at)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_project_type_occurred ON attribution_events (project_id, event_type, occurred_at)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_channel_id ON attribution_events (channel_id)").Error; err != nil {
		return err
	}

	// Add indexes to the attribution_reports table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_reports_project_id ON attribution_reports (project_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON attribution_reports (generated_at)").Error; err != nil {
		return err
	}

	return nil
}
