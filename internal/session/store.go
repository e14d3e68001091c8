package session

import (
	"context"
	"errors"
	"fmt"
	"show-booking/internal/model"
	apperrors "show-booking/pkg/app_errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Store interface {
	// 建立：產生新的 session ID，並設定固定的到期時間
	Create(ctx context.Context, sess *Session) (*Session, error)
	// 讀取：不存在或已過期時回傳 ErrSessionNotFound
	Get(ctx context.Context, id string) (*Session, error)
	// 刪除：連同尚未顯示的 flash 訊息一起刪除
	Delete(ctx context.Context, id string) error
	// 加入 flash 訊息 (使用Lua腳本確保與 session 同時過期)
	AddFlash(ctx context.Context, id string, message string) error
	// 取出並清空 flash 訊息 (使用Lua腳本確保原子性)
	PopFlashes(ctx context.Context, id string) ([]string, error)
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// session 資料的 key
func (s *RedisStore) getInfoKey(id string) string {
	return fmt.Sprintf("session:%s:info", id)
}

// flash 訊息的 key
func (s *RedisStore) getFlashKey(id string) string {
	return fmt.Sprintf("session:%s:flashes", id)
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) (*Session, error) {
	created := *sess
	created.ID = uuid.New().String()
	created.ExpiresAt = time.Now().Add(s.ttl).UTC()
	if created.Role == "" {
		created.Role = model.RoleUser
	}

	key := s.getInfoKey(created.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"user_id":    created.UserID,
			"username":   created.Username,
			"role":       string(created.Role),
			"expires_at": created.ExpiresAt.Unix(),
		})
		pipe.ExpireAt(ctx, key, created.ExpiresAt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &created, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, apperrors.ErrSessionNotFound
	}

	result, err := s.client.HGetAll(ctx, s.getInfoKey(id)).Result()
	if err != nil {
		return nil, err
	}

	// 檢查 key 是否存在
	if len(result) == 0 {
		return nil, apperrors.ErrSessionNotFound
	}

	userID, err := strconv.Atoi(result["user_id"])
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %v", err)
	}

	expiresAt, err := strconv.ParseInt(result["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid expires_at: %v", err)
	}

	sess := &Session{
		ID:        id,
		UserID:    userID,
		Username:  result["username"],
		Role:      model.Role(result["role"]),
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
	}

	// Redis 過期有延遲，這裡再檢查一次
	if time.Now().After(sess.ExpiresAt) {
		return nil, apperrors.ErrSessionNotFound
	}

	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.getInfoKey(id), s.getFlashKey(id)).Err()
}

func (s *RedisStore) AddFlash(ctx context.Context, id string, message string) error {
	script := `
		local info_key = KEYS[1]
		local flash_key = KEYS[2]

		-- session 不存在(或沒有過期時間)就不寫入
		local ttl = redis.call('PTTL', info_key)
		if ttl <= 0 then
			return 0
		end

		redis.call('RPUSH', flash_key, ARGV[1])
		redis.call('PEXPIRE', flash_key, ttl)
		return 1
	`

	result, err := s.client.Eval(ctx, script, []string{s.getInfoKey(id), s.getFlashKey(id)}, message).Int()
	if err != nil {
		return err
	}
	if result == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) PopFlashes(ctx context.Context, id string) ([]string, error) {
	script := `
		local messages = redis.call('LRANGE', KEYS[1], 0, -1)
		redis.call('DEL', KEYS[1])
		return messages
	`

	result, err := s.client.Eval(ctx, script, []string{s.getFlashKey(id)}).StringSlice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, err
	}
	return result, nil
}
