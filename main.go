package main

import (
	"fmt"
	"log"
	"os"
	"rotationcrm-backend/config"
	"rotationcrm-backend/models"
	"rotationcrm-backend/routes"
	"rotationcrm-backend/services"

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
		&models.Service{},
		&models.Client{},
		&models.AddOnSelection{},
		&models.Appointment{},
		&models.BookingRequest{},
		&models.OutreachTemplate{},
		&models.OutreachLog{},
	)
}

func main() {
	outreach := services.NewOutreachService(config.DB)
	outreach.StartScheduler()

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
