package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsTable = "schema_migrations"

var ErrNoDownMigration = errors.New("migration cannot be rolled back")

// Migration is one schema step. IDs sort lexically, so they start with the
// date the step was written.
type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]Migration)
)

// RegisterMigration is called from init functions. Registering an ID twice
// is a programming error and panics.
func RegisterMigration(m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[m.ID]; exists {
		panic(fmt.Sprintf("migration %s registered twice", m.ID))
	}
	registry[m.ID] = m
}

func registered() []Migration {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Migration, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type appliedMigration struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (appliedMigration) TableName() string { return migrationsTable }

type MigrationsManager struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewMigrationsManager(db *gorm.DB, logger *logrus.Logger) *MigrationsManager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &MigrationsManager{db: db, logger: logger}
}

// ApplyPending runs every registered migration not yet recorded, oldest
// first, each in its own transaction. It returns the IDs it applied.
func (m *MigrationsManager) ApplyPending(ctx context.Context) ([]string, error) {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return nil, fmt.Errorf("failed to prepare %s: %w", migrationsTable, err)
	}
	done, err := m.appliedSet(db)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, mig := range registered() {
		if _, ok := done[mig.ID]; ok {
			continue
		}
		if mig.Up == nil {
			return applied, fmt.Errorf("migration %s has no Up step", mig.ID)
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return fmt.Errorf("migration %s (%s) failed: %w", mig.ID, mig.Name, err)
			}
			return tx.Create(&appliedMigration{ID: mig.ID, Name: mig.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return applied, err
		}
		m.logger.WithField("migration", mig.ID).Info("migration applied")
		applied = append(applied, mig.ID)
	}
	return applied, nil
}

// Rollback reverts the n most recently applied migrations, newest first.
func (m *MigrationsManager) Rollback(ctx context.Context, n int) ([]string, error) {
	db := m.db.WithContext(ctx)
	var rows []appliedMigration
	if err := db.Order("id DESC").Limit(n).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", migrationsTable, err)
	}

	registryMu.Lock()
	known := make(map[string]Migration, len(registry))
	for id, mig := range registry {
		known[id] = mig
	}
	registryMu.Unlock()

	var reverted []string
	for _, row := range rows {
		mig, ok := known[row.ID]
		if !ok || mig.Down == nil {
			return reverted, fmt.Errorf("%w: %s", ErrNoDownMigration, row.ID)
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Down(tx); err != nil {
				return fmt.Errorf("rollback of %s failed: %w", mig.ID, err)
			}
			return tx.Delete(&appliedMigration{}, "id = ?", mig.ID).Error
		})
		if err != nil {
			return reverted, err
		}
		m.logger.WithField("migration", mig.ID).Info("migration rolled back")
		reverted = append(reverted, mig.ID)
	}
	return reverted, nil
}

// Applied lists the recorded migration IDs in order.
func (m *MigrationsManager) Applied(ctx context.Context) ([]string, error) {
	var ids []string
	err := m.db.WithContext(ctx).Model(&appliedMigration{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (m *MigrationsManager) appliedSet(db *gorm.DB) (map[string]struct{}, error) {
	var ids []string
	if err := db.Model(&appliedMigration{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", migrationsTable, err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
