package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisTokenKey   = "admin:session:token"
	redisProfileKey = "admin:session:profile"
	redisChannel    = "admin:session:changed"

	redisOpTimeout = 3 * time.Second
)

// RedisStore keeps the session in Redis so that several console instances
// (or a headless agent) share one sign-in. Writes publish on a pub/sub
// channel; subscribers in other processes receive the change notification.
type RedisStore struct {
	notifier
	client *redis.Client
	logger *zap.Logger

	// id tags our own publications so the subscribe loop can drop them;
	// local mutators already broadcast directly.
	id     string
	cancel context.CancelFunc
	pubsub *redis.PubSub
}

// NewRedisStore connects to Redis using the provided configuration.
func NewRedisStore(addr, password string, db int, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &RedisStore{
		client: client,
		logger: logger,
		id:     uuid.NewString(),
		cancel: cancel,
	}
	s.pubsub = client.Subscribe(ctx, redisChannel)
	go s.listen()
	return s
}

// Token returns the persisted token, if any.
func (s *RedisStore) Token() (string, bool) {
	ctx, cancel := opContext()
	defer cancel()
	token, err := s.client.Get(ctx, redisTokenKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("session read failed", zap.Error(err))
		}
		return "", false
	}
	return token, token != ""
}

// SetToken persists the token, skipping empty values.
func (s *RedisStore) SetToken(token string) {
	if token == "" {
		return
	}
	ctx, cancel := opContext()
	defer cancel()
	if err := s.client.Set(ctx, redisTokenKey, token, 0).Err(); err != nil {
		s.logger.Warn("session write failed", zap.Error(err))
		return
	}
	s.publish(ctx)
	s.broadcast()
}

// Profile returns the cached profile, if any.
func (s *RedisStore) Profile() (Profile, bool) {
	ctx, cancel := opContext()
	defer cancel()
	raw, err := s.client.Get(ctx, redisProfileKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("session read failed", zap.Error(err))
		}
		return nil, false
	}
	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.logger.Warn("cached profile corrupt, ignoring", zap.Error(err))
		return nil, false
	}
	return profile, true
}

// SetProfile caches the profile.
func (s *RedisStore) SetProfile(profile Profile) {
	raw, err := json.Marshal(profile)
	if err != nil {
		s.logger.Warn("profile encode failed", zap.Error(err))
		return
	}
	ctx, cancel := opContext()
	defer cancel()
	if err := s.client.Set(ctx, redisProfileKey, raw, 0).Err(); err != nil {
		s.logger.Warn("session write failed", zap.Error(err))
		return
	}
	s.publish(ctx)
	s.broadcast()
}

// Clear removes both session keys. Idempotent.
func (s *RedisStore) Clear() {
	ctx, cancel := opContext()
	defer cancel()
	removed, err := s.client.Del(ctx, redisTokenKey, redisProfileKey).Result()
	if err != nil {
		s.logger.Warn("session clear failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.publish(ctx)
		s.broadcast()
	}
}

// Close stops the subscribe loop and closes the client.
func (s *RedisStore) Close() error {
	s.cancel()
	if s.pubsub != nil {
		_ = s.pubsub.Close()
	}
	return s.client.Close()
}

func (s *RedisStore) publish(ctx context.Context) {
	if err := s.client.Publish(ctx, redisChannel, s.id).Err(); err != nil {
		s.logger.Debug("session change publish failed", zap.Error(err))
	}
}

func (s *RedisStore) listen() {
	for msg := range s.pubsub.Channel() {
		if msg.Payload == s.id {
			continue
		}
		s.broadcast()
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisOpTimeout)
}
