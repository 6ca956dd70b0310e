package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pageza/mealplanner/backend/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB represents the database connection: the pooled lib/pq handle and the
// gorm session built on top of it
type DB struct {
	*sql.DB
	ORM *gorm.DB
}

// New opens the connection pool, verifies it with a ping and wraps it in gorm
func New(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	log.Info("Connecting to database",
		zap.String("host", cfg.Host),
		zap.String("port", cfg.Port),
		zap.String("user", cfg.User),
		zap.String("database", cfg.Name),
	)

	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	orm, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: NewGormLogger(log, cfg.SlowQueryThreshold),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error initializing gorm: %w", err)
	}

	log.Info("Successfully connected to database")
	return &DB{DB: sqlDB, ORM: orm}, nil
}

// Wrap adapts an already opened gorm session, as used by the sqlite test fixture
func Wrap(orm *gorm.DB) (*DB, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("error reading connection pool: %w", err)
	}
	return &DB{DB: sqlDB, ORM: orm}, nil
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// StatsCollector exports the pool statistics to prometheus
func (db *DB) StatsCollector(name string) prometheus.Collector {
	return collectors.NewDBStatsCollector(db.DB, name)
}

// NewGormLogger routes gorm's query log through zap. Queries slower than
// slowThreshold are reported as warnings; record-not-found is not an error here.
func NewGormLogger(log *zap.Logger, slowThreshold time.Duration) gormlogger.Interface {
	level := gormlogger.Warn
	if log.Core().Enabled(zap.DebugLevel) {
		level = gormlogger.Info
	}

	return gormlogger.New(
		zap.NewStdLog(log.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
