package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/persistence"
	"github.com/spec-kit/listing-service/internal/repository"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// LocationService serves the location directory backing search filters.
// Entries change rarely, so reads go through a redis cache when one is
// reachable and fall back to the database otherwise.
type LocationService struct {
	locations repository.LocationRepository
	cache     *persistence.Redis
	logger    *zap.Logger
}

// NewLocationService constructs the service.
func NewLocationService(locations repository.LocationRepository, cache *persistence.Redis, logger *zap.Logger) *LocationService {
	return &LocationService{locations: locations, cache: cache, logger: logger}
}

const statesCacheKey = "lookup:states"

// ListStates returns all states ordered by id.
func (s *LocationService) ListStates(ctx context.Context) ([]domain.State, error) {
	var cached []domain.State
	if s.readCache(ctx, statesCacheKey, &cached) {
		return cached, nil
	}

	states, err := s.locations.ListStates(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.writeCache(ctx, statesCacheKey, states)
	return states, nil
}

// ListMunicipalities returns the municipalities of one state ordered by id.
func (s *LocationService) ListMunicipalities(ctx context.Context, stateID int) ([]domain.Municipality, error) {
	key := fmt.Sprintf("lookup:municipalities:%d", stateID)

	var cached []domain.Municipality
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	municipalities, err := s.locations.ListMunicipalities(ctx, stateID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.writeCache(ctx, key, municipalities)
	return municipalities, nil
}

func (s *LocationService) readCache(ctx context.Context, key string, dest any) bool {
	payload, ok, err := s.cache.GetCached(ctx, key)
	if err != nil {
		s.logger.Debug("lookup cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		s.logger.Debug("lookup cache payload invalid", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *LocationService) writeCache(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.SetCached(ctx, key, string(payload)); err != nil {
		s.logger.Debug("lookup cache write failed", zap.String("key", key), zap.Error(err))
	}
}
