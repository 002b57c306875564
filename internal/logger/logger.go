package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
)

// New builds a production JSON logger in the production environment and a
// development console logger otherwise. Output goes to cfg.LogFile when set.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogFile != "" {
		zcfg.OutputPaths = []string{cfg.LogFile}
		zcfg.ErrorOutputPaths = []string{cfg.LogFile}
	}

	return zcfg.Build()
}
