package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/omnibank/mortgage-service/internal/application/dto"
	"github.com/omnibank/mortgage-service/internal/domain/port"
	"github.com/omnibank/mortgage-service/internal/domain/service"
	"github.com/omnibank/mortgage-service/internal/observability"
)

// CalculateQuoteUseCase validates a quote request, consults the response
// cache and runs the calculator on a miss. Identical concurrent requests
// share one calculation through the singleflight group.
type CalculateQuoteUseCase struct {
	calculator *service.QuoteCalculator
	cache      port.QuoteCache
	cacheTTL   time.Duration
	metrics    *observability.Metrics
	logger     *slog.Logger

	group singleflight.Group
}

// NewCalculateQuoteUseCase wires dependencies. The cache and metrics are
// optional; a nil cache disables response caching.
func NewCalculateQuoteUseCase(
	calculator *service.QuoteCalculator,
	cache port.QuoteCache,
	cacheTTL time.Duration,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *CalculateQuoteUseCase {
	return &CalculateQuoteUseCase{
		calculator: calculator,
		cache:      cache,
		cacheTTL:   cacheTTL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute validates, caches and calculates a quote.
func (uc *CalculateQuoteUseCase) Execute(ctx context.Context, req dto.CalculationRequest) (dto.CalculationResponse, error) {
	start := time.Now()

	domReq, err := toDomainRequest(req)
	if err != nil {
		return dto.CalculationResponse{}, err
	}

	key, err := cacheKey(req)
	if err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("derive cache key: %w", err)
	}

	if cached, ok := uc.fromCache(ctx, key); ok {
		uc.count(ctx, uc.metricOrNil().CacheHits)
		return cached, nil
	}
	uc.count(ctx, uc.metricOrNil().CacheMisses)

	v, err, _ := uc.group.Do(key, func() (any, error) {
		result, calcErr := uc.calculator.Calculate(ctx, domReq)
		if calcErr != nil {
			return nil, calcErr
		}
		return toResponse(req, result), nil
	})
	if err != nil {
		uc.count(ctx, uc.metricOrNil().QuoteFailures, attribute.String("product", req.ProductCode))
		return dto.CalculationResponse{}, err
	}
	resp := v.(dto.CalculationResponse)

	uc.toCache(ctx, key, resp)

	uc.count(ctx, uc.metricOrNil().QuotesTotal, attribute.String("product", req.ProductCode))
	if uc.metrics != nil {
		uc.metrics.QuoteDuration.Record(ctx, time.Since(start).Seconds())
	}
	uc.logger.Info("quote calculated",
		"product", req.ProductCode,
		"tenor_years", domReq.TenorMonths/12,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func (uc *CalculateQuoteUseCase) fromCache(ctx context.Context, key string) (dto.CalculationResponse, bool) {
	if uc.cache == nil {
		return dto.CalculationResponse{}, false
	}
	payload, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("quote cache read failed", "error", err)
		return dto.CalculationResponse{}, false
	}
	if payload == nil {
		return dto.CalculationResponse{}, false
	}

	var cached dto.CalculationResponse
	if err := json.Unmarshal(payload, &cached); err != nil {
		uc.logger.Warn("quote cache payload corrupt", "key", key, "error", err)
		return dto.CalculationResponse{}, false
	}
	return cached, true
}

func (uc *CalculateQuoteUseCase) toCache(ctx context.Context, key string, resp dto.CalculationResponse) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		uc.logger.Warn("quote cache encode failed", "error", err)
		return
	}
	if err := uc.cache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
		uc.logger.Warn("quote cache write failed", "error", err)
	}
}

func (uc *CalculateQuoteUseCase) metricOrNil() *observability.Metrics {
	if uc.metrics == nil {
		return &observability.Metrics{}
	}
	return uc.metrics
}

func (uc *CalculateQuoteUseCase) count(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// cacheKey hashes the request body so semantically identical requests share
// a cache entry regardless of arrival order or whitespace.
func cacheKey(req dto.CalculationRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return "quote:" + hex.EncodeToString(sum[:]), nil
}
