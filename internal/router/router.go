package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"LeadDial/internal/handler"
	"LeadDial/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	api := h.Group("/api")

	// 认证相关路由
	auth := api.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口限流
	auth.Use(middleware.CSRFMiddleware())
	{
		auth.POST("/token/refresh", handler.RefreshToken)
		auth.GET("/profile", middleware.AuthMiddleware(), handler.GetProfile)

		// 验证码相关路由
		captcha := auth.Group("/phone", middleware.CaptchaRateLimitMiddleware())
		{
			captcha.POST("/send-captcha", handler.SendCaptcha)
			captcha.POST("/verify", handler.Login)
			captcha.POST("/verify-slider", handler.VerifySlider)
		}
	}

	// 线索管理路由，路径沿用前端既有调用
	leads := api.Group("")
	leads.Use(middleware.AuthMiddleware())
	leads.Use(middleware.GeneralRateLimitMiddleware())
	{
		leads.POST("/leads/query_with_latest_follow", handler.QueryLeads)
		leads.POST("/leads/filtered_count", handler.FilteredCount)
		leads.POST("/create_leads", handler.CreateLead)
		leads.GET("/follows/:lead_id", handler.ListFollows)
		leads.POST("/create_follow", handler.CreateFollow)
	}

	// 产品目录路由
	products := api.Group("/products")
	products.Use(middleware.AuthMiddleware())
	{
		products.GET("/tree", handler.ProductTree)
		products.GET("/options", handler.ProductOptions)
	}

	// 旧版任务路由，保留给存量前端页面
	legacy := api.Group("")
	legacy.Use(middleware.AuthMiddleware())
	{
		legacy.GET("/tasks/tasks", handler.ListTasks)
		legacy.POST("/tasks/create_task", handler.CreateTask)
		legacy.POST("/tasks/update_status", handler.UpdateTaskStatus)
		legacy.GET("/task_detail/:id", handler.TaskDetail)
	}

	// 外呼任务路由
	tasks := api.Group("/call_tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("/statistics", handler.TaskStatistics)
		tasks.GET("/list", handler.ListTasks)
		tasks.GET("/script_tasks", handler.ScriptTasks)
		tasks.GET("/:task_id", handler.CallTaskDetail)
		tasks.POST("/create", handler.CreateTask)
		tasks.POST("/:task_id/start", middleware.TaskStartRateLimitMiddleware(), handler.StartTask) // 发起外呼限流
		tasks.POST("/:task_id/script", handler.UpdateTaskScript)
	}

	// 话术场景路由
	scenes := api.Group("/scenes")
	scenes.Use(middleware.AuthMiddleware())
	{
		scenes.GET("", handler.ListScenes)
		scenes.POST("", handler.CreateScene)
		scenes.PUT("/:scene_id", handler.UpdateScene)
		scenes.DELETE("/:scene_id", handler.DeleteScene)
	}

	// 筛选条件模板路由
	filters := api.Group("/filters")
	filters.Use(middleware.AuthMiddleware())
	{
		filters.GET("/condition_templates", handler.ConditionTemplates)
	}

	// 创建向导路由
	wizard := api.Group("/wizard")
	wizard.Use(middleware.AuthMiddleware())
	{
		wizard.POST("/:kind/start", handler.StartWizard)
		wizard.POST("/:kind/event", handler.WizardEvent)
		wizard.GET("/:kind/state", handler.WizardState)
		wizard.DELETE("/:kind", handler.CancelWizard)
	}
}
