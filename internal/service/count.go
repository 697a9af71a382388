package service

import (
	"context"
	"strconv"
	"sync"

	"LeadDial/internal/cache"
	"LeadDial/internal/model/dto"
)

// 筛选计数接口会被向导高频触发，慢响应可能晚于更新的查询回来。
// 每个组织一个查询槽：请求先推进世代号，算完再对比当前世代，
// 落后的响应打上 stale 标记，调用方直接丢弃。

type CountService struct{}

var (
	countService *CountService
	countOnce    sync.Once
)

func Count() *CountService {
	countOnce.Do(func() {
		countService = &CountService{}
	})
	return countService
}

// FilteredCount 带世代保护的筛选计数
func (s *CountService) FilteredCount(ctx context.Context, orgID int64, req dto.FilteredCountRequest) (*dto.FilteredCountResponse, error) {
	slot := strconv.FormatInt(orgID, 10)

	gen, err := cache.NextCountGeneration(ctx, slot)
	if err != nil {
		// 世代号拿不到时退化为普通计数
		count, countErr := Lead().FilteredCount(ctx, orgID, req)
		if countErr != nil {
			return nil, countErr
		}
		return &dto.FilteredCountResponse{Count: count}, nil
	}

	count, err := Lead().FilteredCount(ctx, orgID, req)
	if err != nil {
		return nil, err
	}

	current, err := cache.CurrentCountGeneration(ctx, slot)
	if err != nil {
		current = gen
	}

	return &dto.FilteredCountResponse{
		Count:      count,
		Generation: int(gen),
		Stale:      staleGeneration(gen, current),
	}, nil
}

// staleGeneration 判断响应是否已被更新的查询取代。
// 世代号 TTL 过期重置后 current 可能反而小于 gen，不相等一律判废。
func staleGeneration(gen, current int64) bool {
	return gen != current
}
