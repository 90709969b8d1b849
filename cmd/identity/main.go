package main

import (
	"context"
	"log/slog"
	"os"

	"identity/config"
	"identity/internal/delivery"
	"identity/internal/delivery/api"
	apimiddleware "identity/internal/delivery/api/middleware"
	"identity/internal/delivery/api/router/handler"
	"identity/internal/domain/service"
	"identity/internal/infra/async"
	"identity/internal/infra/auth"
	"identity/internal/infra/auth/facebook"
	"identity/internal/infra/auth/google"
	"identity/internal/infra/auth/jwks"
	logs "identity/internal/infra/log"
	"identity/internal/infra/notification"
	"identity/internal/infra/persistence/postgres"
	"identity/internal/infra/pubsub"
	"identity/internal/infra/scheduler"
	"identity/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startSweeper,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		async.NewDispatcher,
		pubsub.NewEventPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewRefreshSessionRepository,
			postgres.NewVerificationTicketRepository,
			postgres.NewPasswordResetRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			jwks.NewAccessTokenVerifier,
			notification.NewNotifier,
			socialFetcher(google.NewFetcher),
			socialFetcher(facebook.NewFetcher),
		),
	)
}

// socialFetcher registers a provider fetcher in the group the resolver consumes.
func socialFetcher(constructor any) any {
	return fx.Annotate(
		constructor,
		fx.As(new(service.SocialProfileFetcher)),
		fx.ResultTags(`group:"social_fetchers"`),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCredentialAuthenticator,
			impl.NewRefreshTokenStore,
			impl.NewEmailVerificationManager,
			impl.NewSocialIdentityResolver,
			impl.NewIdentityAuthority,
			scheduler.NewSweeper,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewKeyHandler,
			handler.NewVerificationHandler,
			handler.NewUserHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startSweeper forces construction so the sweeper's lifecycle hooks are registered.
func startSweeper(*scheduler.Sweeper) {}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
