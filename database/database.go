package database

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(config *viper.Viper) *gorm.DB {
	username := config.GetString("database.username")
	password := config.GetString("database.password")
	host := config.GetString("database.host")
	port := config.GetInt("database.port")
	dbname := config.GetString("database.dbname")
	sslmode := config.GetString("database.sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}
	timezone := config.GetString("database.timezone")
	if timezone == "" {
		timezone = "UTC"
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		host,
		username,
		password,
		dbname,
		port,
		sslmode,
		timezone,
	)

	logLevel := logger.Warn
	if config.GetBool("database.log_queries") {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Errorf("failed to get database handle: %w", err))
	}
	if n := config.GetInt("database.pool.max_open"); n > 0 {
		sqlDB.SetMaxOpenConns(n)
	}
	if n := config.GetInt("database.pool.max_idle"); n > 0 {
		sqlDB.SetMaxIdleConns(n)
	}
	if d := config.GetDuration("database.pool.max_lifetime"); d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	}

	return db
}
