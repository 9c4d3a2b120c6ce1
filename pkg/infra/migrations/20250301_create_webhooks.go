package migrations

import (
	"fmt"

	"github.com/folioworks/folio/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250301_create_webhooks",
		Name: "Create webhooks table",
		Up: func(db *gorm.DB) error {
			t := typesFor(db)
			return db.Exec(fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS webhooks (
					id                 %[1]s PRIMARY KEY,
					owner_id           TEXT NOT NULL,
					target_url         TEXT NOT NULL,
					events             TEXT NOT NULL,
					secret             TEXT NOT NULL,
					active             BOOLEAN NOT NULL DEFAULT TRUE,
					failure_count      INTEGER NOT NULL DEFAULT 0,
					last_triggered_at  %[2]s,
					created_at         %[2]s NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at         %[2]s NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
			`, t.uuid, t.timestamp)).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS webhooks;`).Error
		},
	})

	database.RegisterMigration(database.Migration{
		ID:   "20250302_index_webhooks_owner",
		Name: "Index webhooks by owner and state",
		Up: func(db *gorm.DB) error {
			if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_webhooks_owner_id ON webhooks (owner_id);`).Error; err != nil {
				return err
			}
			return db.Exec(`CREATE INDEX IF NOT EXISTS idx_webhooks_active ON webhooks (active);`).Error
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP INDEX IF EXISTS idx_webhooks_active;`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP INDEX IF EXISTS idx_webhooks_owner_id;`).Error
		},
	})
}

type columnTypes struct {
	uuid      string
	timestamp string
}

func typesFor(db *gorm.DB) columnTypes {
	if db.Dialector.Name() == database.DriverPostgres {
		return columnTypes{uuid: "UUID", timestamp: "TIMESTAMPTZ"}
	}
	return columnTypes{uuid: "TEXT", timestamp: "TIMESTAMP"}
}
