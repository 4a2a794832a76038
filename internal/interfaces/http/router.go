package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexile/pharmacy-api/internal/application/analytics"
	"github.com/nexile/pharmacy-api/internal/application/auth"
	"github.com/nexile/pharmacy-api/internal/application/directory"
	"github.com/nexile/pharmacy-api/internal/application/insights"
	"github.com/nexile/pharmacy-api/internal/application/pos"
	"github.com/nexile/pharmacy-api/internal/application/reports"
	"github.com/nexile/pharmacy-api/internal/application/usecase"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	DirectoryUC   *directory.UseCase
	ProductUC     *usecase.ProductUseCase
	TransactionUC *usecase.TransactionUseCase
	CheckoutUC    *pos.CheckoutUseCase
	PerformanceUC *analytics.PerformanceUseCase
	StatisticalUC *insights.StatisticalUseCase
	AIUC          *insights.AIUseCase
	ReportsUC     *reports.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y suscripción vigente)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret, deps.AuthUC),
		RequireActiveSubscription(deps.AuthUC),
	)

	protected.Get("/auth/me", authHandler.Me)

	ownerOnly := RequireRole(entity.RoleOwner)

	// Branches: listado para todos, mutaciones solo dueño
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.DirectoryUC)
	branches.Get("/", branchHandler.List)
	branches.Post("/", ownerOnly, branchHandler.Create)
	branches.Delete("/:id", ownerOnly, branchHandler.Delete)
	branches.Post("/assign", ownerOnly, branchHandler.AssignManager)
	branches.Post("/unassign", ownerOnly, branchHandler.UnassignManager)

	// Users: directorio de gerentes (solo dueño)
	users := protected.Group("/users", ownerOnly)
	userHandler := NewUserHandler(deps.DirectoryUC)
	users.Post("/managers", userHandler.CreateManager)
	users.Get("/managers", userHandler.ListManagers)
	users.Post("/managers/:id/access-code", userHandler.RegenerateAccessCode)
	users.Delete("/:id", userHandler.DeleteUser)

	// Products (protegido, filtrado por alcance)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// POS: checkout y ventas. Solo los farmacéuticos venden: la transacción
	// se imputa a la sucursal propia del caller.
	posGroup := protected.Group("/pos")
	posHandler := NewPOSHandler(deps.CheckoutUC, deps.TransactionUC)
	posGroup.Post("/checkout", RequireRole(entity.RolePharmacist), posHandler.Checkout)
	posGroup.Get("/transactions", posHandler.ListTransactions)

	// Dashboard: agregados financieros
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.PerformanceUC)
	dashboard.Get("/branches/:id/performance", dashboardHandler.BranchPerformance)
	dashboard.Get("/executive-summary", dashboardHandler.ExecutiveSummary)
	dashboard.Get("/products/:id/sales", dashboardHandler.ProductSales)

	// Insights: estadísticos + IA
	insightsGroup := protected.Group("/insights")
	insightHandler := NewInsightHandler(deps.StatisticalUC, deps.AIUC)
	insightsGroup.Get("/statistical", insightHandler.Statistical)
	insightsGroup.Get("/business", insightHandler.Business)

	// Reports descargables
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/branches/:id/sales.pdf", reportHandler.SalesPDF)
	reportsGroup.Get("/branches/:id/sales.xml", reportHandler.SalesSpreadsheet)
}
