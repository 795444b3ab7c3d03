package app

import (
	"context"

	"github.com/olusolaa/picklist-drift-detector/internal/config"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
)

// Application wires a configured comparison engine to its logger.
type Application struct {
	Engine ports.ComparisonEngine
	Logger ports.Logger
	Config *config.Config
}

func NewApplication(engine ports.ComparisonEngine, logger ports.Logger, cfg *config.Config) *Application {
	return &Application{
		Engine: engine,
		Logger: logger,
		Config: cfg,
	}
}

// Run executes one comparison.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting picklist drift check...")

	if err := a.Engine.Run(ctx); err != nil {
		a.Logger.Errorf(ctx, err, "Picklist drift check failed")
		return err
	}

	a.Logger.Infof(ctx, "Picklist drift check completed successfully")
	return nil
}
