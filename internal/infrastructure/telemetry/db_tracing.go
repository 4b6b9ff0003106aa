package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database query tracing.
type DBTracingConfig struct {
	Enabled    bool
	LogFullSQL bool   // include query parameters in spans, dev only
	DBName     string // logical database name recorded on spans
}

// RegisterDBTracing registers the otelgorm plugin on the given GORM DB
// instance so every query shows up as a child span of the request trace.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(cfg.DBName),
	}
	if !cfg.LogFullSQL {
		// Keep query parameters out of spans, they may carry customer data.
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.String("db_name", cfg.DBName),
	)
	return nil
}
