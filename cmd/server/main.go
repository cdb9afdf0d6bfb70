package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/config"
	"github.com/estudiocobogo/catalogo-api/internal/database"
	"github.com/estudiocobogo/catalogo-api/internal/handler"
	"github.com/estudiocobogo/catalogo-api/internal/middleware"
	"github.com/estudiocobogo/catalogo-api/internal/queue"
	"github.com/estudiocobogo/catalogo-api/internal/repository"
	"github.com/estudiocobogo/catalogo-api/internal/router"
	"github.com/estudiocobogo/catalogo-api/internal/service"
	"github.com/estudiocobogo/catalogo-api/internal/storage"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	products := repository.NewProductRepo(db)
	categories := repository.NewCategoryRepo(db)
	subcategories := repository.NewSubcategoryRepo(db)
	messages := repository.NewMessageRepo(db)

	seedAdmin(ctx, cfg, users)
	cancel()

	// Cloudinary is optional: without it image uploads fail cleanly and
	// the rest of the dashboard keeps working.
	var assets storage.AssetStore
	if cfg.CloudinaryURL != "" {
		store, err := storage.NewCloudinaryStore(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
		assets = store
	} else {
		log.Println("CLOUDINARY_URL not set; image uploads disabled")
	}

	productSvc := service.NewProductService(products, categories, assets)
	categorySvc := service.NewCategoryService(categories, subcategories)

	// Redis backs the public response cache and the contact rate limit;
	// both middlewares no-op when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(products, categories, subcategories)
	contactH := handler.NewContactHandler(messages, service.AMQPNotifier{})
	adminProductsH := handler.NewAdminProductHandler(productSvc, products)
	adminCategoriesH := handler.NewAdminCategoryHandler(categorySvc, categories, subcategories)
	adminSubcategoriesH := handler.NewAdminSubcategoryHandler(categorySvc)
	adminMessagesH := handler.NewAdminMessageHandler(messages)

	go func() {
		if err := queue.StartContactConsumer(); err != nil {
			log.Printf("contact-consumer: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, contactH, cache, limit)
	router.RegisterAdmin(e, cfg.JWTSecret, adminProductsH, adminCategoriesH, adminSubcategoriesH, adminMessagesH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the owner account from ADMIN_EMAIL/ADMIN_PASSWORD
// when the users table is empty.  There is no registration endpoint, so
// this is the only way an account comes into existence.
func seedAdmin(ctx context.Context, cfg config.Config, users *repository.UserRepo) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	n, err := users.Count(ctx)
	if err != nil {
		log.Fatalf("seed admin: count users: %v", err)
	}
	if n > 0 {
		return
	}
	id, err := users.Create(ctx, cfg.AdminEmail, cfg.AdminPassword, "ADMIN", cfg.BcryptCost)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("seeded admin user %s (id=%d)", cfg.AdminEmail, id)
}
