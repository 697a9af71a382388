package cache

import (
	"context"
	"time"

	"LeadDial/storage/redis"
)

// 验证码存储：ldial:captcha:{phone}
// 每日发送计数：ldial:captcha:count:{phone}:{date}，自然天过期

const (
	captchaPrefix   = "captcha"
	captchaTTL      = 2 * time.Minute
	captchaCountTTL = 24 * time.Hour
)

// SetCaptcha 存储验证码，覆盖旧值并刷新 TTL
func SetCaptcha(ctx context.Context, phone, code string) error {
	key := redis.Key(captchaPrefix, phone)
	return redis.Client().Set(ctx, key, code, captchaTTL).Err()
}

// GetCaptcha 读取验证码，未命中返回 redis.Nil
func GetCaptcha(ctx context.Context, phone string) (string, error) {
	key := redis.Key(captchaPrefix, phone)
	return redis.Client().Get(ctx, key).Result()
}

// DeleteCaptcha 验证通过后销毁验证码，一次性使用
func DeleteCaptcha(ctx context.Context, phone string) error {
	key := redis.Key(captchaPrefix, phone)
	return redis.Client().Del(ctx, key).Err()
}

// IncrCaptchaCount 增加今日发送计数，返回当前次数。
// 次数超过阈值后业务层要求滑块验证。
func IncrCaptchaCount(ctx context.Context, phone string) (int, error) {
	date := time.Now().Format("2006-01-02")
	key := redis.Key(captchaPrefix, "count", phone, date)

	count, err := redis.Client().Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if count == 1 {
		// 首次计数时设置过期，后续 Incr 不重置
		if err := redis.Client().Expire(ctx, key, captchaCountTTL).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

// GetCaptchaCount 查询今日已发送次数，key 不存在视为 0
func GetCaptchaCount(ctx context.Context, phone string) (int, error) {
	date := time.Now().Format("2006-01-02")
	key := redis.Key(captchaPrefix, "count", phone, date)

	count, err := redis.Client().Get(ctx, key).Int()
	if err != nil {
		return 0, nil
	}
	return count, nil
}
