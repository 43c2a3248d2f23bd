package main

import (
	"context"

	courthandler "courtside/internal/courts/handler"
	courtrepo "courtside/internal/courts/repository"
	courtservice "courtside/internal/courts/service"
	courtvalidator "courtside/internal/courts/validator"
	"courtside/internal/pricing"
	reservationhandler "courtside/internal/reservations/handler"
	reservationrepo "courtside/internal/reservations/repository"
	reservationservice "courtside/internal/reservations/service"
	reservationvalidator "courtside/internal/reservations/validator"
	userhandler "courtside/internal/users/handler"
	userrepo "courtside/internal/users/repository"
	userservice "courtside/internal/users/service"
	uservalidator "courtside/internal/users/validator"
	"courtside/pkg/app"
	"courtside/pkg/config"
	"courtside/pkg/events"
)

const ServiceName = "courtside"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher := initPublisher(cfg)
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				cfg.Log.Error("Failed to close event producer", "error", err)
			}
		}()
	}

	cfg.Log.Info("Starting Courtside service")

	courtRepo := courtrepo.NewMongoCourtRepository(cfg)
	userRepo := userrepo.NewMongoUserRepository(cfg)
	reservationRepo := reservationrepo.NewMongoReservationRepository(cfg)
	lockRepo := reservationrepo.NewReservationLockRepository(cfg)

	courtService := courtservice.NewCourtService(courtRepo, courtvalidator.NewCourtValidator(cfg.Log), cfg)
	userService := userservice.NewUserService(userRepo, uservalidator.NewUserValidator(cfg.Log), cfg)
	reservationService := reservationservice.NewReservationService(
		reservationRepo,
		lockRepo,
		courtRepo,
		userRepo,
		reservationvalidator.NewReservationValidator(cfg.Log),
		pricing.NewEngine(pricing.NewPriceList(cfg.SurfaceRates)),
		wrapPublisher(publisher),
		cfg,
	)

	if err := courtService.Seed(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to seed default courts", "error", err)
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		courthandler.NewCourtHandler(courtService, cfg.Log),
		userhandler.NewUserHandler(userService, cfg.Log),
		reservationhandler.NewReservationHandler(reservationService, cfg.Log),
	)
	serverApp.Run()
}

// initPublisher builds the Kafka producer when brokers are configured.
// Without brokers the service runs fine; lifecycle events are simply not
// emitted.
func initPublisher(cfg *config.Config) *events.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, reservation events disabled")
		return nil
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create event producer", "error", err)
	}

	cfg.Log.Info("Event producer initialized", "topic", cfg.KafkaEventsTopic)
	return producer
}

// wrapPublisher keeps a nil *Producer from becoming a non-nil Publisher
// interface value.
func wrapPublisher(p *events.Producer) events.Publisher {
	if p == nil {
		return nil
	}
	return p
}
