package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wonny/vulture/pkg/httputil"
	"github.com/wonny/vulture/pkg/logger"
	"github.com/wonny/vulture/pkg/redis"
)

// ErrUnknownAuthor is returned for empty, deleted, missing or suspended accounts
var ErrUnknownAuthor = errors.New("unknown author")

type aboutResponse struct {
	Data struct {
		Name         string `json:"name"`
		LinkKarma    int    `json:"link_karma"`
		CommentKarma int    `json:"comment_karma"`
		IsSuspended  bool   `json:"is_suspended"`
	} `json:"data"`
}

// ReputationService scores authors by karma (link + comment), cached in Redis
type ReputationService struct {
	client *Client
	cache  *redis.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewReputationService creates a reputation service; cache may be nil
func NewReputationService(client *Client, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *ReputationService {
	if ttl <= 0 {
		ttl = redis.TTLLong
	}
	return &ReputationService{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: log.Component("reputation"),
	}
}

// LookupReputation implements contracts.ReputationService
func (s *ReputationService) LookupReputation(ctx context.Context, authorID string) (int, error) {
	if authorID == "" || authorID == deletedAuthor {
		return 0, ErrUnknownAuthor
	}
	key := redis.ReputationKey(authorID)

	if s.cache != nil {
		var cached int
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.WithError(err).Debug("Reputation cache read failed")
		}
		if hit {
			return cached, nil
		}
	}

	var about aboutResponse
	err := s.client.getJSON(ctx, fmt.Sprintf("/user/%s/about", url.PathEscape(authorID)), nil, &about)

	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusNotFound || statusErr.StatusCode == http.StatusForbidden) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAuthor, authorID)
	}
	if err != nil {
		return 0, fmt.Errorf("fetch karma of %s: %w", authorID, err)
	}
	if about.Data.IsSuspended {
		return 0, fmt.Errorf("%w: %s is suspended", ErrUnknownAuthor, authorID)
	}

	karma := about.Data.LinkKarma + about.Data.CommentKarma

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, karma, s.ttl); err != nil {
			s.logger.WithError(err).Debug("Reputation cache write failed")
		}
	}

	return karma, nil
}
