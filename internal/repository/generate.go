package repository

import (
	"fmt"
	"os"

	"gorm.io/gen"

	"LeadDial/internal/model"
	"LeadDial/storage/database"
)

// ========== AdminUser 相关查询接口 ==========

// AdminUserQuerier 管理员查询接口
type AdminUserQuerier interface {
	// GetByPublicID 根据 PublicID 查询管理员（API 中 userID 是 public_id）
	//
	// SELECT * FROM @@table WHERE public_id = @publicID LIMIT 1
	GetByPublicID(publicID int64) (*gen.T, error)

	// GetByPhone 根据手机号查询管理员
	//
	// SELECT * FROM @@table WHERE phone = @phone LIMIT 1
	GetByPhone(phone string) (*gen.T, error)
}

// ========== Lead 相关查询接口 ==========

// LeadQuerier 线索查询接口
type LeadQuerier interface {
	// GetByID 根据主键查询线索
	//
	// SELECT * FROM @@table WHERE id = @id AND organization_id = @orgID LIMIT 1
	GetByID(orgID, id int64) (*gen.T, error)

	// GetByPhone 组织内按手机号查线索（建线索查重用）
	//
	// SELECT * FROM @@table
	// WHERE organization_id = @orgID AND phone = @phone
	// LIMIT 1
	GetByPhone(orgID int64, phone string) (*gen.T, error)

	// CountByProduct 按意向车型分组统计线索数
	//
	// SELECT leads_product, COUNT(*) as count
	// FROM @@table
	// WHERE organization_id = @orgID
	// GROUP BY leads_product
	CountByProduct(orgID int64) ([]gen.M, error)

	// CountByLeadsType 按客户等级分组统计线索数
	//
	// SELECT leads_type, COUNT(*) as count
	// FROM @@table
	// WHERE organization_id = @orgID
	// GROUP BY leads_type
	CountByLeadsType(orgID int64) ([]gen.M, error)
}

// ========== FollowRecord 相关查询接口 ==========

// FollowRecordQuerier 跟进记录查询接口
type FollowRecordQuerier interface {
	// ListByLeadID 查询线索的全部跟进记录，新的在前
	//
	// SELECT * FROM @@table
	// WHERE lead_id = @leadID
	// ORDER BY created_at DESC
	ListByLeadID(leadID int64) ([]*gen.T, error)

	// GetLatestByLeadID 查询线索最近一次跟进
	//
	// SELECT * FROM @@table
	// WHERE lead_id = @leadID
	// ORDER BY created_at DESC
	// LIMIT 1
	GetLatestByLeadID(leadID int64) (*gen.T, error)
}

// ========== CallTask 相关查询接口 ==========

// CallTaskQuerier 外呼任务查询接口
type CallTaskQuerier interface {
	// GetByID 组织内按主键查任务
	//
	// SELECT * FROM @@table
	// WHERE id = @id AND organization_id = @orgID
	// LIMIT 1
	GetByID(orgID, id int64) (*gen.T, error)

	// ListByState 按状态查询任务（分页）
	//
	// SELECT * FROM @@table
	// WHERE organization_id = @orgID
	//   {{if state != ""}}
	//   AND state = @state
	//   {{end}}
	// ORDER BY created_at DESC
	// LIMIT @limit OFFSET @offset
	ListByState(orgID int64, state string, limit, offset int) ([]*gen.T, error)

	// ListDueScheduled 查询到期的预约任务（用于调度器）
	//
	// SELECT * FROM @@table
	// WHERE state = 'created'
	//   AND scheduled_at IS NOT NULL
	//   AND scheduled_at <= NOW()
	//   AND script_id > 0
	ListDueScheduled() ([]*gen.T, error)

	// CountByState 按状态统计任务数量
	//
	// SELECT state, COUNT(*) as count
	// FROM @@table
	// WHERE organization_id = @orgID
	// GROUP BY state
	CountByState(orgID int64) ([]gen.M, error)
}

// ========== CallRecord 相关查询接口 ==========

// CallRecordQuerier 通话记录查询接口
type CallRecordQuerier interface {
	// ListByTaskID 查询任务下的全部通话记录
	//
	// SELECT * FROM @@table
	// WHERE task_id = @taskID
	// ORDER BY created_at DESC
	ListByTaskID(taskID int64) ([]*gen.T, error)

	// GetByTaskAndLead 查询某任务对某线索的通话记录（幂等性检查）
	//
	// SELECT * FROM @@table
	// WHERE task_id = @taskID AND lead_id = @leadID
	// LIMIT 1
	GetByTaskAndLead(taskID, leadID int64) (*gen.T, error)

	// CountConnectedByTaskID 统计任务的接通数
	//
	// SELECT COUNT(*) as count
	// FROM @@table
	// WHERE task_id = @taskID AND connected = true
	CountConnectedByTaskID(taskID int64) (int64, error)
}

// ========== Scene 相关查询接口 ==========

// SceneQuerier 话术场景查询接口
type SceneQuerier interface {
	// ListVisible 查询组织可见的场景，官方在前
	//
	// SELECT * FROM @@table
	// WHERE scene_type = 1 OR organization_id = @orgID
	// ORDER BY scene_type ASC, id DESC
	ListVisible(orgID int64) ([]*gen.T, error)

	// GetByScriptID 根据话术ID查询场景
	//
	// SELECT * FROM @@table WHERE script_id = @scriptID LIMIT 1
	GetByScriptID(scriptID int64) (*gen.T, error)
}

func Generate() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 运行数据库迁移（确保表存在）
	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migration: %w", err)
	}

	db := database.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./internal/repository/query", // 生成代码的输出路径
		ModelPkgPath:      "LeadDial/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// 注册现有的 model，GORM Gen 会使用这些 model 而不是生成新的
	g.ApplyBasic(
		&model.AdminUser{},
		&model.Lead{},
		&model.FollowRecord{},
		&model.CallTask{},
		&model.CallRecord{},
		&model.Scene{},
		&model.Product{},
	)

	// 直接应用接口，GORM Gen 会根据接口中的类型自动匹配已注册的 model
	g.ApplyInterface(func(AdminUserQuerier) {}, &model.AdminUser{})
	g.ApplyInterface(func(LeadQuerier) {}, &model.Lead{})
	g.ApplyInterface(func(FollowRecordQuerier) {}, &model.FollowRecord{})
	g.ApplyInterface(func(CallTaskQuerier) {}, &model.CallTask{})
	g.ApplyInterface(func(CallRecordQuerier) {}, &model.CallRecord{})
	g.ApplyInterface(func(SceneQuerier) {}, &model.Scene{})

	g.Execute()

	return nil
}

func RunGenerate() {
	if err := Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}
