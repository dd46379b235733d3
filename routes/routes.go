package routes

import (
	"os"

	"subserp-backend/config"
	"subserp-backend/controllers"
	"subserp-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if appURL := os.Getenv("APP_URL"); appURL != "" {
		allowedOrigins = append(allowedOrigins, appURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.POST("/signup", controllers.Signup)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(utils.AuthMiddleware())
	{
		// Entity CRUD: reads need dashboard visibility, writes need the
		// managing capability for the resource family
		view := utils.RequireCapability(utils.CapDashboardView)
		catalog := utils.RequireCapability(utils.CapCatalogManage)
		billing := utils.RequireCapability(utils.CapBillingManage)
		users := utils.RequireCapability(utils.CapUsersManage)

		protected.GET("/customers", view, controllers.GetCustomers)
		protected.POST("/customers", billing, controllers.CreateCustomer)
		protected.PUT("/customers", billing, controllers.UpdateCustomer)
		protected.DELETE("/customers", billing, controllers.DeleteCustomer)

		protected.GET("/products", view, controllers.GetProducts)
		protected.POST("/products", catalog, controllers.CreateProduct)
		protected.PUT("/products", catalog, controllers.UpdateProduct)
		protected.DELETE("/products", catalog, controllers.DeleteProduct)

		protected.GET("/plans", view, controllers.GetPlans)
		protected.POST("/plans", catalog, controllers.CreatePlan)
		protected.PUT("/plans", catalog, controllers.UpdatePlan)
		protected.DELETE("/plans", catalog, controllers.DeletePlan)

		protected.GET("/taxes", view, controllers.GetTaxes)
		protected.POST("/taxes", catalog, controllers.CreateTax)
		protected.PUT("/taxes", catalog, controllers.UpdateTax)
		protected.DELETE("/taxes", catalog, controllers.DeleteTax)

		protected.GET("/discounts", view, controllers.GetDiscounts)
		protected.POST("/discounts", catalog, controllers.CreateDiscount)
		protected.PUT("/discounts", catalog, controllers.UpdateDiscount)
		protected.DELETE("/discounts", catalog, controllers.DeleteDiscount)

		protected.GET("/users", users, controllers.GetUsers)
		protected.POST("/users", users, controllers.CreateUser)
		protected.PUT("/users", users, controllers.UpdateUser)
		protected.DELETE("/users", users, controllers.DeleteUser)

		protected.GET("/subscriptions", view, controllers.GetSubscriptions)
		protected.POST("/subscriptions", billing, controllers.CreateSubscription)
		protected.PUT("/subscriptions", billing, controllers.UpdateSubscription)
		protected.DELETE("/subscriptions", billing, controllers.DeleteSubscription)

		protected.GET("/invoices", view, controllers.GetInvoices)
		protected.POST("/invoices", billing, controllers.CreateInvoice)
		protected.PUT("/invoices", billing, controllers.UpdateInvoice)
		protected.DELETE("/invoices", billing, controllers.DeleteInvoice)

		protected.GET("/payments", view, controllers.GetPayments)
		protected.POST("/payments", billing, controllers.CreatePayment)
		protected.PUT("/payments", billing, controllers.UpdatePayment)
		protected.DELETE("/payments", billing, controllers.DeletePayment)

		protected.GET("/dashboard/stats", view, controllers.GetDashboardStats)
	}

	return r
}
