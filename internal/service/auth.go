package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	ri "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"LeadDial/config"
	"LeadDial/internal/cache"
	"LeadDial/internal/model"
	"LeadDial/internal/model/dto"
	pkgerrors "LeadDial/pkg/errors"
	"LeadDial/pkg/logger"
	"LeadDial/pkg/slider"
	"LeadDial/pkg/sms"
	"LeadDial/pkg/snowflake"
	"LeadDial/pkg/token"
	"LeadDial/storage/database"
	"LeadDial/utils"
)

type AuthService struct{}

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{}
	})
	return authService
}

func generateCaptchaCode() string {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// SendCaptcha 发送登录验证码。
// 当日发送超过阈值后要求滑块验证，超过每日上限直接限流。
func (s *AuthService) SendCaptcha(ctx context.Context, req dto.SendCaptchaRequest) (*dto.SendCaptchaResponse, error) {
	if !utils.ValidatePhone(req.Phone) {
		return nil, pkgerrors.InvalidPhone
	}

	count, err := cache.IncrCaptchaCount(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check captcha count: %w", err)
	}

	if count > config.Cfg.CaptchaMaxDaily {
		return nil, pkgerrors.CaptchaRateLimited
	}

	if count > config.Cfg.CaptchaSliderThreshold {
		if req.CaptchaVerifyParam == "" {
			return nil, pkgerrors.VerificationSliderRequired
		}
		passed, err := slider.Verify(ctx, req.CaptchaVerifyParam, config.Cfg.CaptchaSceneID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify slider: %w", err)
		}
		if !passed {
			return nil, pkgerrors.VerificationSliderFailed
		}
	}

	code := generateCaptchaCode()
	if err := cache.SetCaptcha(ctx, req.Phone, code); err != nil {
		return nil, fmt.Errorf("failed to store captcha: %w", err)
	}

	if err := sms.SendCaptchaSMS(ctx, req.Phone, code); err != nil {
		// 短信没发出去就把验证码销毁，避免用户拿不到码还占着限流额度
		cache.DeleteCaptcha(ctx, req.Phone)
		logger.Logger.Error("Failed to send captcha SMS",
			zap.String("phone", req.Phone),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}

	return &dto.SendCaptchaResponse{
		SliderRequired: count+1 > config.Cfg.CaptchaSliderThreshold,
	}, nil
}

// Login 校验验证码，首次登录自动创建账号，签发令牌对
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if !utils.ValidatePhone(req.Phone) {
		return nil, pkgerrors.InvalidPhone
	}

	stored, err := cache.GetCaptcha(ctx, req.Phone)
	if err != nil {
		if err == ri.Nil {
			return nil, pkgerrors.VerificationCodeExpired
		}
		return nil, fmt.Errorf("failed to get captcha: %w", err)
	}
	if stored != req.Code {
		return nil, pkgerrors.VerificationCodeInvalid
	}

	// 验证码一次性使用
	if err := cache.DeleteCaptcha(ctx, req.Phone); err != nil {
		logger.Logger.Warn("Failed to delete used captcha",
			zap.String("phone", req.Phone),
			zap.Error(err),
		)
	}

	user, err := s.findOrCreateUser(ctx, req.Phone)
	if err != nil {
		return nil, err
	}

	userID := strconv.FormatInt(user.PublicID, 10)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	if err := cache.SetRefreshToken(ctx, userID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User: dto.UserSnapshot{
			ID:             userID,
			Phone:          user.Phone,
			Nickname:       user.Nickname,
			OrganizationID: user.OrganizationID,
		},
	}, nil
}

// Refresh 用 refresh token 换发新令牌对，旧 refresh token 作废
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	userID, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	if !cache.ValidateRefreshTokenExists(ctx, userID, refreshToken) {
		return nil, pkgerrors.Unauthorized
	}

	publicID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, pkgerrors.InvalidUserID
	}

	var user model.AdminUser
	if err := database.DB().WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&user).Error; err != nil {
		return nil, pkgerrors.Unauthorized
	}

	accessToken, newRefreshToken, expiresIn, err := token.GenerateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}
	if err := cache.SetRefreshToken(ctx, userID, newRefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    expiresIn,
		User: dto.UserSnapshot{
			ID:             userID,
			Phone:          user.Phone,
			Nickname:       user.Nickname,
			OrganizationID: user.OrganizationID,
		},
	}, nil
}

// GetUserByPublicID 中间件解出的 uid 换用户实体
func (s *AuthService) GetUserByPublicID(ctx context.Context, publicID int64) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := database.DB().WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.Unauthorized
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) findOrCreateUser(ctx context.Context, phone string) (*model.AdminUser, error) {
	db := database.DB().WithContext(ctx)

	var user model.AdminUser
	err := db.Where("phone = ?", phone).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	user = model.AdminUser{
		PublicID: publicID,
		Phone:    phone,
		Nickname: "用户" + phone[len(phone)-4:],
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Logger.Info("Created admin user on first login",
		zap.Int64("public_id", publicID),
	)
	return &user, nil
}
