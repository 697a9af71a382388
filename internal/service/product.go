package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"LeadDial/internal/cache"
	"LeadDial/internal/catalog"
	"LeadDial/internal/model"
	"LeadDial/pkg/logger"
	"LeadDial/storage/database"
	"LeadDial/utils"
)

type ProductService struct {
	catalogClient *catalog.Client
}

var (
	productService *ProductService
	productOnce    sync.Once
)

func Product() *ProductService {
	productOnce.Do(func() {
		productService = &ProductService{
			catalogClient: catalog.NewClient(),
		}
	})
	return productService
}

// Tree 返回产品树，优先命中缓存，缓存坏掉时直接回库
func (s *ProductService) Tree(ctx context.Context) ([]*model.ProductNode, error) {
	nodes, hit, err := cache.GetProductTree(ctx)
	if err != nil {
		logger.Logger.Warn("Product tree cache unavailable, falling back to database",
			zap.Error(err),
		)
	}
	if hit {
		return nodes, nil
	}

	nodes, err = s.loadTreeFromDB(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.SetProductTree(ctx, nodes); err != nil {
		logger.Logger.Warn("Failed to cache product tree", zap.Error(err))
	}
	return nodes, nil
}

// Options 返回扁平化后的下拉选项，label 为面包屑路径
func (s *ProductService) Options(ctx context.Context) ([]model.ProductOption, error) {
	nodes, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return utils.FlattenProducts(nodes), nil
}

// ValidProduct 产品名是否出现在当前目录里。
// 目录为空（尚未同步）时不做校验，放行任意取值。
func (s *ProductService) ValidProduct(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	options, err := s.Options(ctx)
	if err != nil {
		return false, err
	}
	return productInCatalog(options, name), nil
}

func productInCatalog(options []model.ProductOption, name string) bool {
	if len(options) == 0 {
		return true
	}
	for _, opt := range options {
		if opt.Value == name {
			return true
		}
	}
	return false
}

// SyncFromUpstream 拉取上游目录并整表替换本地产品表。
// 上游没配置时跳过，不报错。
func (s *ProductService) SyncFromUpstream(ctx context.Context) error {
	if !s.catalogClient.Enabled() {
		return nil
	}

	nodes, err := s.catalogClient.FetchTree(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch upstream catalog: %w", err)
	}
	if len(nodes) == 0 {
		// 空目录大概率是上游故障，保留本地数据
		logger.Logger.Warn("Upstream catalog returned empty tree, keeping local products")
		return nil
	}

	err = database.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(&model.Product{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		return insertNodes(tx, nodes, 0)
	})
	if err != nil {
		return err
	}

	if err := cache.InvalidateProductTree(ctx); err != nil {
		logger.Logger.Warn("Failed to invalidate product tree cache", zap.Error(err))
	}

	logger.Logger.Info("Product catalog synced", zap.Int("roots", len(nodes)))
	return nil
}

func (s *ProductService) loadTreeFromDB(ctx context.Context) ([]*model.ProductNode, error) {
	var products []*model.Product
	if err := database.DB().WithContext(ctx).
		Order("sort ASC, id ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return utils.BuildProductTree(products), nil
}

func insertNodes(tx *gorm.DB, nodes []*model.ProductNode, parentID int64) error {
	for i, node := range nodes {
		product := model.Product{
			Name:     node.Name,
			ParentID: parentID,
			Sort:     i,
		}
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to insert product %q: %w", node.Name, err)
		}
		if len(node.Children) > 0 {
			if err := insertNodes(tx, node.Children, product.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
