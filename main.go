package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"kovan/cache"
	"kovan/config"
	"kovan/content"
	"kovan/database"
	"kovan/handlers"
	"kovan/messaging"
	"kovan/middleware"
	"kovan/push"
	"kovan/routes"
	"kovan/services"
	"kovan/storage"
	"kovan/store"
	"kovan/websocket"
)

func main() {
	log.Println("🚀 Starting Kovan Backend Server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration: ", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// ===== STORE =====
	var st store.Store
	closeStore := func() {}
	mongoState := "disabled"
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Println("⚠️ Using in-memory store, data is lost on restart")
		st = store.NewMemoryStore()
	default:
		log.Println("🔌 Connecting to MongoDB...")
		client, err := database.ConnectWithRetry(ctx, cfg.MongoURI, 3, 2*time.Second)
		if err != nil {
			log.Fatal("❌ Failed to connect to MongoDB: ", err)
		}
		ms := store.NewMongoStore(client, cfg.MongoDatabase)
		indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := database.EnsureIndexes(indexCtx, ms.Database()); err != nil {
			log.Println("⚠️ Index creation failed:", err)
		}
		cancel()
		log.Println("✅ MongoDB connected successfully")
		st = ms
		mongoState = "ok"
		closeStore = func() {
			if err := database.Disconnect(client); err != nil {
				log.Println("⚠️ MongoDB disconnect:", err)
			}
		}
	}

	// ===== OPTIONAL SERVICES =====
	var profiles cache.ProfileCache = cache.Nop{}
	var redisClient *cache.Redis
	redisState := "disabled"
	if cfg.RedisAddr != "" {
		r, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Println("⚠️ Redis unavailable, profile cache disabled:", err)
			redisState = "unavailable"
		} else {
			profiles, redisClient, redisState = r, r, "ok"
		}
	}

	var publisher messaging.Publisher = messaging.Nop{}
	var bus *messaging.NATS
	natsState := "disabled"
	if cfg.NatsURL != "" {
		n, err := messaging.Connect(cfg.NatsURL)
		if err != nil {
			log.Println("⚠️ NATS unavailable, domain events disabled:", err)
			natsState = "unavailable"
		} else {
			publisher, bus, natsState = n, n, "ok"
			if cfg.GinMode != gin.ReleaseMode {
				if _, err := n.Subscribe(">", func(ev messaging.Event) {
					log.Printf("[events] %s", ev.Subject)
				}); err != nil {
					log.Println("⚠️ Event logger not subscribed:", err)
				}
			}
		}
	}

	var blob storage.Blob
	if cfg.CloudinaryURL != "" {
		c, err := storage.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("❌ Invalid CLOUDINARY_URL: ", err)
		}
		blob = c
		log.Println("✅ Cloudinary storage configured")
	} else {
		log.Println("⚠️ CLOUDINARY_URL not set, uploads are kept in memory")
		blob = storage.NewMemory(cfg.MediaBaseURL)
	}

	webPush := push.New(st, cfg.VapidPublicKey, cfg.VapidPrivateKey, cfg.VapidSubject)
	if !webPush.Enabled() {
		log.Println("⚠️ VAPID keys not set, web push disabled")
	}

	// ===== WEBSOCKET =====
	log.Println("🔌 Initializing WebSocket manager...")
	wsManager := websocket.NewManager(st, cfg.JWTSecret)
	go wsManager.Start(ctx)

	svc := services.New(services.Deps{
		Store:       st,
		Publisher:   publisher,
		Pusher:      webPush,
		Blob:        blob,
		Profiles:    profiles,
		Broadcaster: wsManager,
		Google: services.NewGoogleAuth(services.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		}),
	})

	// ===== GIN MODE =====
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
		log.Println("⚙️ Running in RELEASE mode")
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("⚙️ Running in DEBUG mode")
	}

	// ===== ROUTER =====
	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimit, cfg.RateWindow)
		go func() {
			ticker := time.NewTicker(cfg.RateWindow)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					limiter.Sweep()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	h := handlers.New(handlers.Options{
		Services:  svc,
		Pages:     content.NewLoader(cfg.ContentDir),
		Blob:      blob,
		Push:      webPush,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	})
	router := routes.SetupRouter(h, routes.Config{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    limiter,
		WebSocket:      wsManager.ServeWS,
		Health: func() map[string]string {
			return map[string]string{
				"mongo": mongoState,
				"redis": redisState,
				"nats":  natsState,
			}
		},
	})
	log.Println("✅ WebSocket endpoint: /ws")
	log.Printf("📄 Serving pages from %s", filepath.Join(cfg.ContentDir, "pages"))

	// ===== SERVER CONFIG =====
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error: ", err)
		}
	}()

	log.Println("✅ Server is ready and accepting connections")

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}
	if bus != nil {
		bus.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Println("⚠️ Redis close:", err)
		}
	}
	closeStore()

	log.Println("👋 Server stopped gracefully")
}
