package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinic-api/internal/config"
	"github.com/harentsoaR/clinic-api/internal/handlers"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"github.com/harentsoaR/clinic-api/internal/ws"
	"github.com/harentsoaR/clinic-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logg := logger.New(cfg.Env)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logg.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDB)
	logg.Info().Str("database", cfg.MongoDB).Msg("Connected to MongoDB")

	if err := store.EnsureIndexes(ctx, db); err != nil {
		logg.Fatal().Err(err).Msg("Failed to create indexes")
	}

	users := store.NewMongoUserStore(db)
	if err := seed(ctx, users, cfg.BcryptCost); err != nil {
		logg.Fatal().Err(err).Msg("Failed to seed initial accounts")
	}

	// --- Initialize Services ---
	tokens := utils.NewTokenService(cfg.JWTSecret)
	hub := ws.NewHub(logg)
	h := handlers.NewHandler(users, tokens, hub, cfg.BcryptCost, logg)

	// --- Gin Router ---
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// ---  Middleware ---
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	api := r.Group("/api")
	{
		api.POST("/login", h.Login)
		api.POST("/signup", h.Signup)
	}

	doctorRoutes := api.Group("", middleware.RequireRole(tokens, models.RoleDoctor))
	{
		doctorRoutes.POST("/delete-account", h.DeleteAccount)
		doctorRoutes.GET("/patients", h.ListPatients)
		doctorRoutes.POST("/update-patient", h.UpdatePatient)
	}

	patientRoutes := api.Group("", middleware.RequireRole(tokens, models.RolePatient))
	{
		patientRoutes.GET("/patient-info", h.PatientInfo)
	}

	r.GET("/ws", hub.ServeWS)

	logg.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal().Err(err).Msg("Server stopped")
	}
}

// seed creates the doctor account on first run, plus a demo patient so a
// fresh install has something to show. Idempotent.
func seed(ctx context.Context, users store.UserStore, bcryptCost int) error {
	doctors, err := users.ListByRole(ctx, models.RoleDoctor)
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		hashed, err := utils.HashPassword("admin123", bcryptCost)
		if err != nil {
			return err
		}
		err = users.Insert(ctx, &models.User{
			Role:     models.RoleDoctor,
			ID:       "admin",
			Password: hashed,
			Name:     "Dr. Boukhatem",
		})
		if err != nil {
			return err
		}
	}

	if _, err := users.FindByID(ctx, "P001"); errors.Is(err, store.ErrNotFound) {
		hashed, err := utils.HashPassword("123456", bcryptCost)
		if err != nil {
			return err
		}
		err = users.Insert(ctx, &models.User{
			Role:        models.RolePatient,
			ID:          "P001",
			Password:    hashed,
			Name:        "Mohamed Ali",
			MedicalInfo: "stable condition",
			Notifications: []models.Notification{
				{Message: "Welcome!", Date: time.Now()},
			},
		})
		if err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return nil
}
