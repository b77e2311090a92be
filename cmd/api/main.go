package main

import (
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envはあれば読む（コンテナでは環境変数を直接渡す）
	_ = godotenv.Load("../.env")

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Marchand{},
		&model.Boutique{},
		&model.Produit{},
		&model.Panier{},
		&model.LignePanier{},
		&model.Order{},
		&model.OrderItem{},
		&model.RemiseType{},
		&model.Badge{},
		&model.ReferralRule{},
		&model.Discount{},
		&model.Notification{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal().Err(err).Msg("migrate failed")
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	remiseTypeRepo := infraRepo.NewRemiseTypeGormRepository(gormDB)
	boutiqueRepo := infraRepo.NewBoutiqueGormRepository(gormDB)
	clientRepo := infraRepo.NewClientGormRepository(gormDB)
	badgeRepo := infraRepo.NewBadgeGormRepository(gormDB)
	discountRepo := infraRepo.NewDiscountGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	paymentUC := usecase.NewPaymentUsecase(txManager, clock, idGen, logger)
	orderUC := usecase.NewOrderUsecase(txManager, clock, logger)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, clock, logger)
	cartUC := usecase.NewCartUsecase(txManager)
	remiseTypeUC := usecase.NewRemiseTypeUsecase(remiseTypeRepo, boutiqueRepo, validator.NewRemiseTypeValidator(), logger)
	loyaltyUC := usecase.NewLoyaltyUsecase(clientRepo, badgeRepo, discountRepo, notificationRepo)

	//Handler生成
	handlers := server.Handlers{
		Payment:    handler.NewPaymentHandler(paymentUC),
		Order:      handler.NewOrderHandler(orderUC),
		Cart:       handler.NewCartHandler(cartUC),
		RemiseType: handler.NewRemiseTypeHandler(remiseTypeUC),
		Loyalty:    handler.NewLoyaltyHandler(loyaltyUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
	}

	//Server起動
	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := server.Start(cfg, handlers); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
