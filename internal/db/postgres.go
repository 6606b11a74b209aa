package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/config"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository/dao"
)

// OpenPostgres connects using the structured config and migrates tables.
func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v",
		conf.Host, conf.User, conf.Password, conf.DBName, conf.Port, conf.SSLMode)

	return open(dsn)
}

// OpenPostgresWithURL connects using a DATABASE_URL style connection string.
func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	return open(url)
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return db, nil
}
