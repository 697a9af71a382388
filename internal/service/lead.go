package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"LeadDial/internal/model"
	"LeadDial/internal/model/dto"
	pkgerrors "LeadDial/pkg/errors"
	"LeadDial/pkg/logger"
	"LeadDial/pkg/metrics"
	"LeadDial/storage/database"
	"LeadDial/utils"
)

type LeadService struct{}

var (
	leadService *LeadService
	leadOnce    sync.Once
)

func Lead() *LeadService {
	leadOnce.Do(func() {
		leadService = &LeadService{}
	})
	return leadService
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
	timeLayout      = "2006-01-02 15:04:05"
)

// Query 分页查询线索，合并最近跟进信息返回
func (s *LeadService) Query(ctx context.Context, orgID int64, req dto.LeadQuery) (*dto.LeadListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	db := s.applyFilters(database.DB().WithContext(ctx).Model(&model.Lead{}), orgID, req)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	var leads []model.Lead
	if err := db.Order("id DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}

	items := make([]dto.LeadWithLatestFollow, 0, len(leads))
	for i := range leads {
		items = append(items, leadToListItem(&leads[i]))
	}

	return &dto.LeadListResponse{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// Create 创建线索。同组织同手机号已存在时返回 LeadDuplicate 与既有 id，
// 不会写入重复记录。
func (s *LeadService) Create(ctx context.Context, orgID int64, createName string, req dto.CreateLeadRequest) (*model.Lead, int64, error) {
	if !utils.ValidatePhone(req.Phone) {
		return nil, 0, pkgerrors.InvalidPhone
	}

	if req.Product != "" {
		valid, err := Product().ValidProduct(ctx, req.Product)
		if err != nil {
			// 目录暂不可用时跳过校验，不挡创建
			logger.Logger.Warn("Failed to validate product against catalog", zap.Error(err))
		} else if !valid {
			return nil, 0, pkgerrors.InvalidProduct
		}
	}

	db := database.DB().WithContext(ctx)

	var existing model.Lead
	err := db.Where("organization_id = ? AND phone = ?", orgID, req.Phone).
		First(&existing).Error
	if err == nil {
		return nil, existing.ID, pkgerrors.LeadDuplicate
	}
	if err != gorm.ErrRecordNotFound {
		return nil, 0, fmt.Errorf("failed to check duplicate lead: %w", err)
	}

	lead := model.Lead{
		OrganizationID: orgID,
		Name:           req.Name,
		Phone:          req.Phone,
		Source:         req.Source,
		Product:        req.Product,
		LeadsType:      req.LeadsType,
		Follower:       req.Follower,
		Remark:         req.Remark,
	}
	if req.PlanVisitTime != "" {
		t, err := utils.ParseFlexibleTime(req.PlanVisitTime)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid plan_visit_time: %w", err)
		}
		lead.PlanVisitTime = &t
	}

	if err := db.Create(&lead).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to create lead: %w", err)
	}

	metrics.RecordLeadCreated(ctx, req.Source)
	logger.Logger.Info("Lead created",
		zap.Int64("lead_id", lead.ID),
		zap.Int64("organization_id", orgID),
	)
	return &lead, 0, nil
}

// ListFollows 按时间倒序返回线索的跟进记录
func (s *LeadService) ListFollows(ctx context.Context, orgID, leadID int64) ([]dto.FollowItem, error) {
	db := database.DB().WithContext(ctx)

	var lead model.Lead
	if err := db.Where("id = ? AND organization_id = ?", leadID, orgID).
		First(&lead).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.LeadNotFound
		}
		return nil, fmt.Errorf("failed to query lead: %w", err)
	}

	var records []model.FollowRecord
	if err := db.Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query follow records: %w", err)
	}

	items := make([]dto.FollowItem, 0, len(records))
	for _, r := range records {
		item := dto.FollowItem{
			ID:         r.ID,
			FollowWay:  r.FollowWay,
			Content:    r.Content,
			CreateName: r.CreateName,
			CreateTime: r.CreatedAt.Format(timeLayout),
		}
		if r.NextFollowAt != nil {
			item.NextFollowAt = r.NextFollowAt.Format(timeLayout)
		}
		items = append(items, item)
	}
	return items, nil
}

// CreateFollow 写跟进记录，并在同一事务里刷新线索上的冗余跟进列
func (s *LeadService) CreateFollow(ctx context.Context, orgID int64, createName string, req dto.CreateFollowRequest) (*model.FollowRecord, error) {
	db := database.DB().WithContext(ctx)

	var lead model.Lead
	if err := db.Where("id = ? AND organization_id = ?", req.LeadID, orgID).
		First(&lead).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.LeadNotFound
		}
		return nil, fmt.Errorf("failed to query lead: %w", err)
	}

	record := model.FollowRecord{
		LeadID:     req.LeadID,
		FollowWay:  req.FollowWay,
		Content:    req.Content,
		CreateName: createName,
	}
	if req.NextFollowAt != "" {
		t, err := utils.ParseFlexibleTime(req.NextFollowAt)
		if err != nil {
			return nil, fmt.Errorf("invalid next_follow_at: %w", err)
		}
		record.NextFollowAt = &t
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create follow record: %w", err)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"latest_follow_at":  now,
			"latest_follow_way": record.FollowWay,
			"latest_follow_msg": record.Content,
			"next_follow_at":    record.NextFollowAt,
		}
		if lead.FirstFollowAt == nil {
			updates["first_follow_at"] = now
		}
		if req.IsArrive != nil {
			updates["is_arrive"] = *req.IsArrive
		}

		if err := tx.Model(&model.Lead{}).
			Where("id = ?", lead.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update lead follow columns: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordFollowCreated(ctx, record.FollowWay)
	return &record, nil
}

// FilteredCount 按筛选字段统计命中线索数
func (s *LeadService) FilteredCount(ctx context.Context, orgID int64, req dto.FilteredCountRequest) (int64, error) {
	query := dto.LeadQuery{
		LeadsProduct:      req.LeadsProduct,
		LeadsType:         req.LeadsType,
		IsArrive:          req.IsArrive,
		LatestFollowStart: req.LatestFollowStart,
		LatestFollowEnd:   req.LatestFollowEnd,
		FirstFollowStart:  req.FirstFollowStart,
		FirstFollowEnd:    req.FirstFollowEnd,
		NextFollowStart:   req.NextFollowStart,
		NextFollowEnd:     req.NextFollowEnd,
	}

	var count int64
	db := s.applyFilters(database.DB().WithContext(ctx).Model(&model.Lead{}), orgID, query)
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count filtered leads: %w", err)
	}
	return count, nil
}

// CountByDimension 统计某个维度下各取值的线索数，向导选项计数用
func (s *LeadService) CountByDimension(ctx context.Context, orgID int64, column string, values []string) (map[string]int64, error) {
	switch column {
	case "product", "leads_type":
	default:
		return nil, fmt.Errorf("unsupported count dimension: %s", column)
	}

	type row struct {
		Value string
		Total int64
	}
	var rows []row
	err := database.DB().WithContext(ctx).
		Model(&model.Lead{}).
		Select(column+" AS value, COUNT(*) AS total").
		Where("organization_id = ?", orgID).
		Where(column+" IN ?", values).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Value] = r.Total
	}
	return counts, nil
}

// CountArrive 到店状态各取值的线索数
func (s *LeadService) CountArrive(ctx context.Context, orgID int64) (visited, notVisited int64, err error) {
	db := database.DB().WithContext(ctx).Model(&model.Lead{}).
		Where("organization_id = ?", orgID)

	if err = db.Session(&gorm.Session{}).Where("is_arrive = ?", 1).Count(&visited).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count visited leads: %w", err)
	}
	if err = db.Session(&gorm.Session{}).Where("is_arrive = ?", 0).Count(&notVisited).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count not visited leads: %w", err)
	}
	return visited, notVisited, nil
}

// FindByFilters 任务启动时按条件快照捞出目标线索
func (s *LeadService) FindByFilters(ctx context.Context, orgID int64, req dto.LeadQuery) ([]model.Lead, error) {
	var leads []model.Lead
	db := s.applyFilters(database.DB().WithContext(ctx).Model(&model.Lead{}), orgID, req)
	if err := db.Order("id ASC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to find leads by filters: %w", err)
	}
	return leads, nil
}

// applyFilters 把查询参数落到 SQL 条件上，空字段跳过
func (s *LeadService) applyFilters(db *gorm.DB, orgID int64, req dto.LeadQuery) *gorm.DB {
	db = db.Where("organization_id = ?", orgID)

	if req.Name != "" {
		db = db.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Phone != "" {
		db = db.Where("phone LIKE ?", req.Phone+"%")
	}
	if req.Keyword != "" {
		kw := "%" + req.Keyword + "%"
		db = db.Where("name LIKE ? OR phone LIKE ? OR remark LIKE ?", kw, kw, kw)
	}
	if req.LeadsProduct != "" {
		db = db.Where("product = ?", req.LeadsProduct)
	}
	if req.LeadsType != "" {
		db = db.Where("leads_type = ?", req.LeadsType)
	}
	if req.IsArrive != nil {
		db = db.Where("is_arrive = ?", *req.IsArrive)
	}

	db = applyTimeRange(db, "latest_follow_at", req.LatestFollowStart, req.LatestFollowEnd)
	db = applyTimeRange(db, "first_follow_at", req.FirstFollowStart, req.FirstFollowEnd)
	db = applyTimeRange(db, "next_follow_at", req.NextFollowStart, req.NextFollowEnd)
	return db
}

// applyTimeRange 解析区间两端。裸日期的上界按当天最后一秒处理。
func applyTimeRange(db *gorm.DB, column, start, end string) *gorm.DB {
	if start != "" {
		if t, err := utils.ParseFlexibleTime(start); err == nil {
			db = db.Where(column+" >= ?", t)
		}
	}
	if end != "" {
		if !strings.Contains(end, ":") {
			end = utils.EndOfDayString(end)
		}
		if t, err := utils.ParseFlexibleTime(end); err == nil {
			db = db.Where(column+" <= ?", t)
		}
	}
	return db
}

func leadToListItem(lead *model.Lead) dto.LeadWithLatestFollow {
	info := dto.LeadInfo{
		ID:         lead.ID,
		Name:       lead.Name,
		Phone:      lead.Phone,
		Source:     lead.Source,
		Product:    lead.Product,
		LeadsType:  lead.LeadsType,
		IsArrive:   lead.IsArrive,
		Follower:   lead.Follower,
		Remark:     lead.Remark,
		CreateTime: lead.CreatedAt.Format(timeLayout),
	}
	if lead.PlanVisitTime != nil {
		info.PlanVisitTime = lead.PlanVisitTime.Format(timeLayout)
	}

	item := dto.LeadWithLatestFollow{LeadInfo: info}
	if lead.LatestFollowAt != nil {
		follow := dto.LatestFollowInfo{
			FollowWay:  lead.LatestFollowWay,
			Content:    lead.LatestFollowMsg,
			FollowTime: lead.LatestFollowAt.Format(timeLayout),
		}
		if lead.NextFollowAt != nil {
			follow.NextFollowAt = lead.NextFollowAt.Format(timeLayout)
		}
		item.LatestFollow = &follow
	}
	return item
}
