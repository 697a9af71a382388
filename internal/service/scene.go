package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"LeadDial/internal/model"
	"LeadDial/internal/model/dto"
	"LeadDial/internal/wizard"
	pkgerrors "LeadDial/pkg/errors"
	"LeadDial/pkg/logger"
	"LeadDial/pkg/snowflake"
	"LeadDial/storage/database"
)

type SceneService struct{}

var (
	sceneService *SceneService
	sceneOnce    sync.Once
)

func Scene() *SceneService {
	sceneOnce.Do(func() {
		sceneService = &SceneService{}
	})
	return sceneService
}

// List 返回话术场景。官方场景全局共享，自定义场景只看本组织的。
func (s *SceneService) List(ctx context.Context, orgID int64, req dto.SceneQuery) ([]dto.SceneItem, error) {
	db := database.DB().WithContext(ctx).Model(&model.Scene{}).
		Where("scene_type = ? OR organization_id = ?", model.SceneTypeOfficial, orgID)

	if req.SceneType != 0 {
		db = db.Where("scene_type = ?", req.SceneType)
	}
	if req.Keyword != "" {
		db = db.Where("scene_name LIKE ?", "%"+req.Keyword+"%")
	}

	var scenes []model.Scene
	if err := db.Order("scene_type ASC, id DESC").Find(&scenes).Error; err != nil {
		return nil, fmt.Errorf("failed to query scenes: %w", err)
	}

	items := make([]dto.SceneItem, 0, len(scenes))
	for i := range scenes {
		items = append(items, sceneToItem(&scenes[i]))
	}
	return items, nil
}

// Get 按 id 取场景，自定义场景校验归属组织
func (s *SceneService) Get(ctx context.Context, orgID, sceneID int64) (*model.Scene, error) {
	var scene model.Scene
	err := database.DB().WithContext(ctx).
		Where("id = ?", sceneID).
		First(&scene).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.SceneNotFound
		}
		return nil, fmt.Errorf("failed to query scene: %w", err)
	}

	if scene.SceneType == model.SceneTypeCustom && scene.OrganizationID != orgID {
		return nil, pkgerrors.SceneNotFound
	}
	return &scene, nil
}

// Create 创建自定义场景，必填校验复用向导草稿的规则
func (s *SceneService) Create(ctx context.Context, orgID int64, createName string, req dto.CreateSceneRequest) (*dto.CreateSceneResponse, error) {
	draft := wizard.SceneDraft{
		SceneName:             req.SceneName,
		BotName:               req.BotName,
		BotPost:               req.BotPost,
		BotAge:                req.BotAge,
		BotStyle:              req.BotStyle,
		DialogueTarget:        req.DialogueTarget,
		DialogueBg:            req.DialogueBg,
		DialogueFlow:          req.DialogueFlow,
		DialogueConstraint:    req.DialogueConstraint,
		DialogueOpeningPrompt: req.DialogueOpeningPrompt,
		SceneTags:             req.SceneTags,
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	scene, err := s.createFromDraft(ctx, orgID, createName, &draft)
	if err != nil {
		return nil, err
	}
	return &dto.CreateSceneResponse{ID: scene.ID, ScriptID: scene.ScriptID}, nil
}

// Update 修改自定义场景，官方场景只读
func (s *SceneService) Update(ctx context.Context, orgID, sceneID int64, req dto.UpdateSceneRequest) error {
	scene, err := s.Get(ctx, orgID, sceneID)
	if err != nil {
		return err
	}
	if scene.ReadOnly() {
		return pkgerrors.SceneReadOnly
	}

	updates := map[string]interface{}{}
	if req.SceneName != "" {
		updates["scene_name"] = req.SceneName
	}
	if req.BotName != "" {
		updates["bot_name"] = req.BotName
	}
	if req.BotPost != "" {
		updates["bot_post"] = req.BotPost
	}
	if req.BotAge != "" {
		updates["bot_age"] = req.BotAge
	}
	if req.BotStyle != "" {
		updates["bot_style"] = req.BotStyle
	}
	if req.DialogueTarget != "" {
		updates["dialogue_target"] = req.DialogueTarget
	}
	if req.DialogueBg != "" {
		updates["dialogue_bg"] = req.DialogueBg
	}
	if req.DialogueFlow != "" {
		updates["dialogue_flow"] = req.DialogueFlow
	}
	if req.DialogueConstraint != "" {
		updates["dialogue_constraint"] = req.DialogueConstraint
	}
	if req.DialogueOpeningPrompt != "" {
		updates["dialogue_opening_prompt"] = req.DialogueOpeningPrompt
	}
	if len(req.SceneTags) > 0 {
		tagsJSON, err := json.Marshal(req.SceneTags)
		if err != nil {
			return fmt.Errorf("failed to marshal scene tags: %w", err)
		}
		updates["scene_tags"] = datatypes.JSON(tagsJSON)
	}
	if len(updates) == 0 {
		return nil
	}

	if err := database.DB().WithContext(ctx).
		Model(&model.Scene{}).
		Where("id = ?", scene.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update scene: %w", err)
	}
	return nil
}

// Delete 删除自定义场景，官方场景只读
func (s *SceneService) Delete(ctx context.Context, orgID, sceneID int64) error {
	scene, err := s.Get(ctx, orgID, sceneID)
	if err != nil {
		return err
	}
	if scene.ReadOnly() {
		return pkgerrors.SceneReadOnly
	}

	if err := database.DB().WithContext(ctx).
		Delete(&model.Scene{}, scene.ID).Error; err != nil {
		return fmt.Errorf("failed to delete scene: %w", err)
	}

	logger.Logger.Info("Custom scene deleted",
		zap.Int64("scene_id", scene.ID),
		zap.Int64("organization_id", orgID),
	)
	return nil
}

// GenerateScript 为场景生成话术并回填 script_id。
// 官方场景已预置话术，直接返回现有 id。
func (s *SceneService) GenerateScript(ctx context.Context, orgID, sceneID int64) (*wizard.ScriptResult, error) {
	scene, err := s.Get(ctx, orgID, sceneID)
	if err != nil {
		return nil, err
	}

	if scene.ScriptID != 0 {
		return &wizard.ScriptResult{SceneID: scene.ID, ScriptID: scene.ScriptID}, nil
	}

	scriptID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate script id: %w", err)
	}

	if err := database.DB().WithContext(ctx).
		Model(&model.Scene{}).
		Where("id = ?", scene.ID).
		Update("script_id", scriptID).Error; err != nil {
		return nil, fmt.Errorf("failed to bind script id: %w", err)
	}

	logger.Logger.Info("Script generated for scene",
		zap.Int64("scene_id", scene.ID),
		zap.Int64("script_id", scriptID),
	)
	return &wizard.ScriptResult{SceneID: scene.ID, ScriptID: scriptID}, nil
}

// GenerateFromDraft 向导里「自定义场景直接生成」的路径：先落场景再生成话术
func (s *SceneService) GenerateFromDraft(ctx context.Context, orgID int64, createName string, draft *wizard.SceneDraft) (*wizard.ScriptResult, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	scene, err := s.createFromDraft(ctx, orgID, createName, draft)
	if err != nil {
		return nil, err
	}
	return s.GenerateScript(ctx, orgID, scene.ID)
}

func (s *SceneService) createFromDraft(ctx context.Context, orgID int64, createName string, draft *wizard.SceneDraft) (*model.Scene, error) {
	tagsJSON, err := json.Marshal(draft.SceneTags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scene tags: %w", err)
	}

	scene := model.Scene{
		OrganizationID:        orgID,
		SceneName:             draft.SceneName,
		SceneType:             model.SceneTypeCustom,
		BotName:               draft.BotName,
		BotPost:               draft.BotPost,
		BotAge:                draft.BotAge,
		BotStyle:              draft.BotStyle,
		DialogueTarget:        draft.DialogueTarget,
		DialogueBg:            draft.DialogueBg,
		DialogueFlow:          draft.DialogueFlow,
		DialogueConstraint:    draft.DialogueConstraint,
		DialogueOpeningPrompt: draft.DialogueOpeningPrompt,
		SceneTags:             datatypes.JSON(tagsJSON),
		CreateName:            createName,
	}
	if err := database.DB().WithContext(ctx).Create(&scene).Error; err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	logger.Logger.Info("Custom scene created",
		zap.Int64("scene_id", scene.ID),
		zap.Int64("organization_id", orgID),
	)
	return &scene, nil
}

func sceneToItem(scene *model.Scene) dto.SceneItem {
	var tags []string
	if len(scene.SceneTags) > 0 {
		_ = json.Unmarshal(scene.SceneTags, &tags)
	}

	return dto.SceneItem{
		ID:                    scene.ID,
		ScriptID:              scene.ScriptID,
		SceneName:             scene.SceneName,
		SceneType:             int(scene.SceneType),
		BotName:               scene.BotName,
		BotPost:               scene.BotPost,
		BotAge:                scene.BotAge,
		BotStyle:              scene.BotStyle,
		DialogueTarget:        scene.DialogueTarget,
		DialogueBg:            scene.DialogueBg,
		DialogueFlow:          scene.DialogueFlow,
		DialogueConstraint:    scene.DialogueConstraint,
		DialogueOpeningPrompt: scene.DialogueOpeningPrompt,
		SceneTags:             tags,
		CreateName:            scene.CreateName,
		CreatedAt:             scene.CreatedAt.Format(timeLayout),
	}
}
