package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dungvu242k3/XoXo-sub001/config"
)

// InitDB opens the authoritative store. Schema is owned by the remote side;
// no AutoMigrate here.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
}
