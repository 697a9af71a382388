package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ri "github.com/redis/go-redis/v9"

	"LeadDial/config"
	"LeadDial/storage/redis"
)

// 向导会话：ldial:wizard:{kind}:{userID}:{sessionID}
// key 里带用户 id，session id 泄露也驱动不了别人的会话。
// 会话只存向导状态机本身，丢了等价于关闭抽屉重开

const wizardPrefix = "wizard"

func wizardTTL() time.Duration {
	return time.Duration(config.Cfg.WizardSessionTTLMinutes) * time.Minute
}

func wizardKey(kind string, userID int64, sessionID string) string {
	return redis.Key(wizardPrefix, kind, strconv.FormatInt(userID, 10), sessionID)
}

// SaveWizardSession 序列化向导状态并刷新 TTL
func SaveWizardSession(ctx context.Context, kind string, userID int64, sessionID string, state interface{}) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard state: %w", err)
	}

	return redis.Client().Set(ctx, wizardKey(kind, userID, sessionID), data, wizardTTL()).Err()
}

// LoadWizardSession 读取向导状态，会话不存在返回 false
func LoadWizardSession(ctx context.Context, kind string, userID int64, sessionID string, dest interface{}) (bool, error) {
	data, err := redis.Client().Get(ctx, wizardKey(kind, userID, sessionID)).Result()
	if err != nil {
		if err == ri.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get wizard session: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal wizard state: %w", err)
	}
	return true, nil
}

// DeleteWizardSession 关闭向导时清掉会话，等价于全量重置
func DeleteWizardSession(ctx context.Context, kind string, userID int64, sessionID string) error {
	return redis.Client().Del(ctx, wizardKey(kind, userID, sessionID)).Err()
}
