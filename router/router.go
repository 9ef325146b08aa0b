package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rennixx/ServiceQR/controllers"
	"github.com/rennixx/ServiceQR/middlewares"
	"github.com/rennixx/ServiceQR/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	tableCtrl := controllers.NewTableController(db)
	requestCtrl := controllers.NewRequestController(db)
	feedbackCtrl := controllers.NewFeedbackController(db)
	analyticsCtrl := controllers.NewAnalyticsController(services.NewAnalyticsService(db))

	// ----------------------------------------------------------------
	//                         PUBLIC ROUTES
	// ----------------------------------------------------------------
	// Auth staff/admin
	r.POST("/auth/register", userCtrl.Register)
	r.POST("/auth/login", userCtrl.Login)

	// Guest: page shell + lookup meja
	r.GET("/restaurants/:slug", restaurantCtrl.GetRestaurantBySlug)
	r.GET("/scan/:qr_code_id", tableCtrl.ScanTable)
	r.GET("/restaurants/:slug/tables/:table_number", tableCtrl.GetTableBySlugAndNumber)

	// Guest: submit request & feedback (tanpa login)
	r.POST("/requests", requestCtrl.CreateRequest)
	r.POST("/feedback", feedbackCtrl.CreateFeedback)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// TABLES
	auth.GET("/restaurants/:slug/tables", tableCtrl.GetTablesByRestaurant)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// REQUESTS (dashboard staff)
	auth.GET("/restaurants/:slug/requests", requestCtrl.GetPendingRequests)
	auth.POST("/requests/:request_id/done", requestCtrl.MarkRequestDone)

	// THEME (settings editor)
	auth.PATCH("/restaurants/:restaurant_id/theme", restaurantCtrl.UpdateRestaurantTheme)

	// FEEDBACK
	auth.GET("/restaurants/:slug/feedback", feedbackCtrl.GetFeedbackByRestaurant)
	auth.GET("/restaurants/:slug/feedback/stats", feedbackCtrl.GetFeedbackStats)

	// ANALYTICS
	auth.GET("/restaurants/:slug/analytics", analyticsCtrl.GetAnalytics)
	auth.GET("/restaurants/:slug/analytics/export", analyticsCtrl.ExportCSV)
	auth.GET("/restaurants/:slug/analytics/chart", analyticsCtrl.ExportChart)
	auth.GET("/restaurants/:slug/analytics/export-pdf", analyticsCtrl.ExportPDF)

	// WebSocket dashboard
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/dashboard", controllers.DashboardWSHandler)
	}

	return r
}
