package repository

import (
	"context"
	"slices"
	"time"

	"event-logistics/internal/data/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// cachedParticipantRepository keeps per-event participant lists in memory.
// Lookups by id always hit the store so validation sees current genders.
type cachedParticipantRepository struct {
	next  ParticipantRepository
	cache *cache.Cache
	log   *zap.Logger
}

// NewCachedParticipantRepository wraps next with a TTL cache. A ttl of zero
// disables caching and returns next unchanged.
func NewCachedParticipantRepository(next ParticipantRepository, ttl time.Duration, log *zap.Logger) ParticipantRepository {
	if ttl <= 0 {
		return next
	}
	return &cachedParticipantRepository{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
		log:   log.With(zap.String("repository", "participant_cache")),
	}
}

func (r *cachedParticipantRepository) FindByEvent(ctx context.Context, tenantID string, eventID uuid.UUID) ([]entity.Participant, error) {
	key := tenantID + ":" + eventID.String()
	if cached, ok := r.cache.Get(key); ok {
		r.log.Debug("participant cache hit", zap.String("key", key))
		return slices.Clone(cached.([]entity.Participant)), nil
	}

	participants, err := r.next.FindByEvent(ctx, tenantID, eventID)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, slices.Clone(participants))
	return participants, nil
}

func (r *cachedParticipantRepository) FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.Participant, error) {
	return r.next.FindByIDs(ctx, tenantID, ids)
}
