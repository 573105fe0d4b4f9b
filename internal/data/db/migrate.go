package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/velore/contactbook/internal/domain"
)

func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&domain.Contact{},
	)
}

func EnsureContactIndexes(gdb *gorm.DB) error {
	// Display order is insertion order.
	if err := gdb.Exec(`CREATE INDEX IF NOT EXISTS idx_contact_created_at ON contact(created_at);`).Error; err != nil {
		return fmt.Errorf("create idx_contact_created_at: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureContactIndexes(s.db); err != nil {
		s.log.Error("Contact index migration failed", "error", err)
		return err
	}
	return nil
}
