package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sankofa/internal/config"
	domainCollection "sankofa/internal/domain/collection"
	domainDonation "sankofa/internal/domain/donation"
	domainHub "sankofa/internal/domain/hub"
	domainUser "sankofa/internal/domain/user"
	"sankofa/internal/events"
	"sankofa/internal/infrastructure/cache"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"go.uber.org/zap"
)

const (
	// KeyPrefix namespaces every analytics entry in the cache.
	KeyPrefix = "analytics:"

	defaultTrendMonths = 6
	defaultLeaderboard = 10
	defaultCO2Factor   = 1.5
)

// Service computes dashboard aggregates from collection facts. Results are
// cached until an event that changes them arrives through Publish.
type Service struct {
	collectionRepo domainCollection.Repository
	userRepo       domainUser.Repository
	hubRepo        domainHub.Repository
	donationRepo   domainDonation.Repository
	cache          cache.Cache
	co2Factor      float64
	now            func() time.Time
}

func NewService(
	collectionRepo domainCollection.Repository,
	userRepo domainUser.Repository,
	hubRepo domainHub.Repository,
	donationRepo domainDonation.Repository,
	store cache.Cache,
	cfg config.AnalyticsConfig,
) *Service {
	if store == nil {
		store = cache.Noop{}
	}
	factor := cfg.CO2FactorPerKg
	if factor <= 0 {
		factor = defaultCO2Factor
	}
	return &Service{
		collectionRepo: collectionRepo,
		userRepo:       userRepo,
		hubRepo:        hubRepo,
		donationRepo:   donationRepo,
		cache:          store,
		co2Factor:      factor,
		now:            time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	return cached(ctx, s, KeyPrefix+"dashboard", func() (*DashboardResponse, error) {
		facts, err := s.collectionRepo.Facts(ctx, nil)
		if err != nil {
			return nil, err
		}
		roles, err := s.userRepo.CountByRole(ctx)
		if err != nil {
			return nil, err
		}
		hubs, err := s.hubRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		donations, err := s.donationRepo.GetStats(ctx)
		if err != nil {
			return nil, err
		}
		return buildDashboard(facts, roles, hubs, donations, s.co2Factor, s.now()), nil
	})
}

func (s *Service) Trend(ctx context.Context, req *TrendRequest) ([]TrendPoint, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	months := req.Months
	if months == 0 {
		months = defaultTrendMonths
	}

	points, err := cached(ctx, s, fmt.Sprintf("%strend:%d", KeyPrefix, months), func() (*[]TrendPoint, error) {
		facts, err := s.collectionRepo.Facts(ctx, nil)
		if err != nil {
			return nil, err
		}
		points := buildTrend(facts, months, s.now())
		return &points, nil
	})
	if err != nil {
		return nil, err
	}
	return *points, nil
}

func (s *Service) Leaderboard(ctx context.Context, req *LeaderboardRequest) ([]LeaderboardEntry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultLeaderboard
	}

	entries, err := cached(ctx, s, fmt.Sprintf("%sleaderboard:%d", KeyPrefix, limit), func() (*[]LeaderboardEntry, error) {
		facts, err := s.collectionRepo.Facts(ctx, nil)
		if err != nil {
			return nil, err
		}
		entries := rankCollectors(facts, limit)
		for i := range entries {
			u, err := s.userRepo.GetByID(ctx, entries[i].CollectorID)
			if errors.Is(err, domainUser.ErrUserNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			entries[i].Name = u.Name
			entries[i].Region = u.Region
		}
		return &entries, nil
	})
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (s *Service) Hubs(ctx context.Context) ([]HubPerformance, error) {
	perf, err := cached(ctx, s, KeyPrefix+"hubs", func() (*[]HubPerformance, error) {
		facts, err := s.collectionRepo.Facts(ctx, nil)
		if err != nil {
			return nil, err
		}
		hubs, err := s.hubRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		perf := buildHubPerformance(facts, hubs)
		return &perf, nil
	})
	if err != nil {
		return nil, err
	}
	return *perf, nil
}

// Publish implements events.Publisher. Events that change collection, hub,
// donation or payout totals drop every cached analytics entry.
func (s *Service) Publish(ctx context.Context, event events.Event) error {
	if !invalidates(event) {
		return nil
	}
	if err := s.cache.DeleteByPrefix(ctx, KeyPrefix); err != nil {
		return fmt.Errorf("invalidate analytics cache: %w", err)
	}
	logger.Debug("Analytics cache invalidated", zap.String("type", event.Type))
	return nil
}

func invalidates(event events.Event) bool {
	switch event.Type {
	case events.CollectionVerified, events.DonationCompleted, events.PaymentCompleted:
		return true
	}
	return event.Category() == "hub"
}

// cached serves key from the cache or computes and stores it. Cache errors
// never fail the request.
func cached[T any](ctx context.Context, s *Service, key string, compute func() (*T, error)) (*T, error) {
	data, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var out T
		if jsonErr := json.Unmarshal(data, &out); jsonErr == nil {
			return &out, nil
		}
		logger.Warn("Discarding unreadable cache entry", zap.String("key", key))
	case !errors.Is(err, cache.ErrMiss):
		logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	out, err := compute()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, out); err != nil {
		logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	logger.Debug("Analytics recomputed", zap.String("key", key))
	return out, nil
}
