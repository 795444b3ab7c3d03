package salesforce

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
)

const (
	defaultRateLimitRPS = 10
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 100
)

// apiLimiter throttles calls against one org. Each side of a comparison gets
// its own so a slow org does not starve the other.
type apiLimiter struct {
	limiter *rate.Limiter
	logger  ports.Logger
}

func newAPILimiter(rps int, logger ports.Logger) *apiLimiter {
	limitValue := defaultRateLimitRPS
	if rps >= minRateLimitRPS && rps <= maxRateLimitRPS {
		limitValue = rps
	} else if rps != 0 {
		logger.Warnf(context.Background(), "Invalid Salesforce API RPS configured (%d), using default %d RPS. Valid range: %d-%d.",
			rps, defaultRateLimitRPS, minRateLimitRPS, maxRateLimitRPS)
	}
	logger.Debugf(context.Background(), "Initialized Salesforce API rate limiter: %d RPS", limitValue)
	return &apiLimiter{
		limiter: rate.NewLimiter(rate.Limit(limitValue), limitValue),
		logger:  logger,
	}
}

func (l *apiLimiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			l.logger.Warnf(ctx, "Error waiting for Salesforce API rate limiter: %v", err)
		}
		return err
	}
	return nil
}
