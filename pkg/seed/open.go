package seed

import (
	"fmt"
	"net/url"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
)

// Open connects gorm to the configured datasource so the fixture can be migrated and loaded.
// SQL Server is queryable but cannot be seeded.
func Open(cfg *config.DatasourceConfig, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			zap.NewStdLog(logger.Named("gorm")),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				ParameterizedQueries:      true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s fixture database: %w", cfg.Type, err)
	}
	return db, nil
}

func dialectorFor(cfg *config.DatasourceConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "", "sqlite":
		return sqlite.Open(cfg.Path), nil
	case "postgres":
		return postgres.Open(postgresDSN(cfg)), nil
	case "mysql":
		return mysql.Open(mysqlDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: cannot seed %s", apperrors.ErrUnsupportedDatasource, cfg.Type)
	}
}

func postgresDSN(cfg *config.DatasourceConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		config.ResolveHostForDocker(cfg.Host),
		port,
		url.QueryEscape(cfg.Database),
		sslMode,
	)
}

func mysqlDSN(cfg *config.DatasourceConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	dc := mysqldriver.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = fmt.Sprintf("%s:%d", config.ResolveHostForDocker(cfg.Host), port)
	dc.DBName = cfg.Database
	dc.ParseTime = true
	return dc.FormatDSN()
}
