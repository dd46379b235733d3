package main

import (
	"fmt"
	"log"
	"os"

	"subserp-backend/config"
	"subserp-backend/models"
	"subserp-backend/routes"
	"subserp-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Product{},
		&models.RecurringPlan{},
		&models.Tax{},
		&models.Discount{},
		&models.Subscription{},
		&models.SubscriptionLine{},
		&models.Invoice{},
		&models.Payment{},
		&models.ReminderLog{},
	)
}

func main() {
	services.NewBillingService(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
