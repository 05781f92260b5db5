package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"lokapasar/internal/adapter/api"
	"lokapasar/internal/adapter/api/handler"
	apimiddleware "lokapasar/internal/adapter/api/middleware"
	"lokapasar/internal/adapter/api/router"
	"lokapasar/internal/adapter/repository"
	"lokapasar/internal/infrastructure/firebase"
	"lokapasar/internal/infrastructure/storage"
	"lokapasar/internal/infrastructure/websocket"
	"lokapasar/internal/usecase"
	"lokapasar/internal/worker"
	"lokapasar/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH must be set")
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
	}
	defer rdb.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	coinRepo := repository.NewFirestoreCoinRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	wishlistRepo := repository.NewFirestoreWishlistRepository(firestoreClient)
	kycRepo := repository.NewFirestoreKycRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient, cfg.FirebaseApiKey)
	fallbackUpload := storage.NewFallbackUploader(cfg.ImageFallbackURL, cfg.ImageFallbackKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	taskClient := worker.NewClient(rdb)
	defer taskClient.Close()
	rewardEnqueuer := worker.NewEnqueuer(taskClient)

	coinUseCase := usecase.NewCoinUseCase(coinRepo, userRepo, listingRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, storageClient, fallbackUpload, cfg.ProfileSaveTimeout)
	listingUseCase := usecase.NewListingUseCase(listingRepo, userRepo, rewardEnqueuer, coinUseCase)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, listingRepo, wsManager)
	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo, listingRepo)
	kycUseCase := usecase.NewKycUseCase(kycRepo, userRepo, storageClient, coinUseCase)
	adminUseCase := usecase.NewAdminUseCase(userRepo, listingRepo, coinRepo, kycRepo, coinUseCase)

	// Reward worker runs in-process; a dedicated worker binary can host the
	// same processor when the queue needs to scale out.
	processor := worker.NewTaskProcessor(coinUseCase, userRepo)
	srv, mux := worker.SetupServer(rdb, processor)
	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("Reward worker stopped: %v", err)
		}
	}()

	generalLimiter := apimiddleware.NewRateLimiter(60, time.Minute)
	authLimiter := apimiddleware.NewRateLimiter(5, time.Minute)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(generalLimiter.Middleware())

	e.Validator = api.NewValidator()

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase),
		User:      handler.NewUserHandler(userUseCase),
		Listing:   handler.NewListingHandler(listingUseCase),
		Coin:      handler.NewCoinHandler(coinUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		Wishlist:  handler.NewWishlistHandler(wishlistUseCase),
		Kyc:       handler.NewKycHandler(kycUseCase),
		Admin:     handler.NewAdminHandler(adminUseCase),
		File:      handler.NewFileHandler(storageClient, fallbackUpload),
		WebSocket: handler.NewWebSocketHandler(wsManager),
		Health:    handler.NewHealthHandler(),
	}

	middlewares := router.Middlewares{
		Auth:        apimiddleware.NewAuthMiddleware(authClient),
		Admin:       apimiddleware.NewAdminMiddleware(userRepo),
		Kyc:         apimiddleware.NewKycMiddleware(userRepo),
		AuthLimiter: authLimiter,
	}

	router.Setup(e, handlers, middlewares)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
