package migrations

import (
	"fmt"

	"github.com/folioworks/folio/pkg/infra/database"
	"gorm.io/gorm"
)

// Delivery entries outlive their webhook, so there is no foreign key.
func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250310_create_webhook_deliveries",
		Name: "Create webhook_deliveries table",
		Up: func(db *gorm.DB) error {
			t := typesFor(db)
			if err := db.Exec(fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS webhook_deliveries (
					id           %[1]s PRIMARY KEY,
					webhook_id   %[1]s NOT NULL,
					event        TEXT NOT NULL,
					status_code  INTEGER NOT NULL DEFAULT 0,
					success      BOOLEAN NOT NULL DEFAULT FALSE,
					error        TEXT,
					duration_ms  BIGINT NOT NULL DEFAULT 0,
					created_at   %[2]s NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
			`, t.uuid, t.timestamp)).Error; err != nil {
				return err
			}
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_webhook_deliveries_webhook_created
				ON webhook_deliveries (webhook_id, created_at);
			`).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS webhook_deliveries;`).Error
		},
	})
}
