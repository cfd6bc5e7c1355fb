package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter Redis 기반 분산 Rate Limiter (Token Bucket 알고리즘)
// 여러 인스턴스가 같은 Redis를 공유할 때 사용
type RedisRateLimiter struct {
	client       *redis.Client
	keyPrefix    string
	defaultLimit int
	defaultTTL   time.Duration
}

// RedisRateLimiterConfig Redis Rate Limiter 설정
type RedisRateLimiterConfig struct {
	Addr         string        // Redis 서버 주소 (예: "localhost:6379")
	Password     string        // Redis 비밀번호
	DB           int           // Redis DB 번호
	KeyPrefix    string        // 키 접두사 (예: "ratelimit:")
	DefaultLimit int           // 기본 요청 제한
	DefaultTTL   time.Duration // 기본 TTL (윈도우 크기)
}

// NewRedisRateLimiter Redis 기반 Rate Limiter 생성
func NewRedisRateLimiter(config RedisRateLimiterConfig) *RedisRateLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if config.KeyPrefix == "" {
		config.KeyPrefix = "ratelimit:"
	}
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = 60
	}
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = time.Minute
	}

	return &RedisRateLimiter{
		client:       client,
		keyPrefix:    config.KeyPrefix,
		defaultLimit: config.DefaultLimit,
		defaultTTL:   config.DefaultTTL,
	}
}

// NewRedisRateLimiterFromURL redis:// URL로 Rate Limiter 생성
func NewRedisRateLimiterFromURL(rawURL string) (*RedisRateLimiter, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return NewRedisRateLimiter(RedisRateLimiterConfig{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	}), nil
}

// 토큰 리필과 소비를 단일 Lua 스크립트로 원자적으로 처리
var allowScript = redis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local tokens_key = key .. ":tokens"
	local timestamp_key = key .. ":timestamp"

	local tokens = tonumber(redis.call('GET', tokens_key))
	local last_update = tonumber(redis.call('GET', timestamp_key))

	-- 초기화 (첫 요청)
	if tokens == nil then
		tokens = limit
		last_update = now
	end

	-- 경과 시간에 따른 토큰 리필
	local elapsed = now - last_update
	local refill_rate = limit / window
	local new_tokens = math.min(limit, tokens + (elapsed * refill_rate))

	-- 토큰 소비
	local allowed = 0
	if new_tokens >= 1 then
		new_tokens = new_tokens - 1
		allowed = 1
	end

	redis.call('SET', tokens_key, new_tokens, 'EX', window * 2)
	redis.call('SET', timestamp_key, now, 'EX', window * 2)

	return {allowed, math.floor(new_tokens)}
`)

// Allow 요청 허용 여부 확인
// key: Rate Limit 대상 식별자 (예: userID, IP)
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		limit = r.defaultLimit
	}
	if window <= 0 {
		window = r.defaultTTL
	}

	redisKey := r.keyPrefix + key
	now := time.Now().Unix()

	result, err := allowScript.Run(ctx, r.client, []string{redisKey}, limit, int(window.Seconds()), now).Result()
	if err != nil {
		return false, fmt.Errorf("redis script execution failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return false, fmt.Errorf("unexpected redis script result: %v", result)
	}

	allowed, ok := values[0].(int64)
	if !ok {
		return false, fmt.Errorf("unexpected redis script result: %v", result)
	}

	return allowed == 1, nil
}

// Ping Redis 연결 확인
func (r *RedisRateLimiter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Reset 특정 키의 Rate Limit 초기화
func (r *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	redisKey := r.keyPrefix + key
	return r.client.Del(ctx, redisKey+":tokens", redisKey+":timestamp").Err()
}

// Close Redis 연결 종료
func (r *RedisRateLimiter) Close() error {
	return r.client.Close()
}
