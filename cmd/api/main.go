package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	cartapp "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/app"
	cartadapter "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/infra/adapter"
	cartfs "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/infra/firestore"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/infra/local"
	cartpg "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/infra/postgres"
	catalogapp "github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/app"
	catalogfs "github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/infra/firestore"
	catalogpg "github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/infra/postgres"
	checkoutapp "github.com/ReactByHarsh/Apex-Perfumes/internal/checkout/app"
	checkoutadapter "github.com/ReactByHarsh/Apex-Perfumes/internal/checkout/infra/adapter"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/checkout/infra/razorpay"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/identity"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/notify"
	orderapp "github.com/ReactByHarsh/Apex-Perfumes/internal/order/app"
	orderpg "github.com/ReactByHarsh/Apex-Perfumes/internal/order/infra/postgres"
	profileapp "github.com/ReactByHarsh/Apex-Perfumes/internal/profile/app"
	profilepg "github.com/ReactByHarsh/Apex-Perfumes/internal/profile/infra/postgres"
	wishlistapp "github.com/ReactByHarsh/Apex-Perfumes/internal/wishlist/app"
	wishlistpg "github.com/ReactByHarsh/Apex-Perfumes/internal/wishlist/infra/postgres"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/config"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/logger"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/postgres"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/secrets"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	pool, err := postgres.Open(ctx, postgres.Config{
		Host: cfg.Postgres.Host,
		Port: cfg.Postgres.Port,
		User: cfg.Postgres.User,
		Pass: cfg.Postgres.Pass,
		DB:   cfg.Postgres.DB,
	})
	if err != nil {
		log.Error("postgres connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()

	var remote cartapp.RemoteCart = cartpg.NewCartRepo(pool)
	var products catalogapp.ProductRepo = catalogpg.NewProductRepo(pool)
	var verifier identity.Verifier

	if cfg.FirestoreProjectID != "" {
		var opts []option.ClientOption
		if cfg.GoogleCredentials != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentials))
		}

		fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirestoreProjectID}, opts...)
		if err != nil {
			log.Error("firebase init failed", slog.Any("err", err))
			os.Exit(1)
		}
		if verifier, err = identity.NewFirebaseVerifier(ctx, fbApp); err != nil {
			log.Error("firebase verifier init failed", slog.Any("err", err))
			os.Exit(1)
		}

		if cfg.CartBackend == "firestore" {
			fsClient, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
			if err != nil {
				log.Error("firestore connect failed", slog.Any("err", err))
				os.Exit(1)
			}
			defer fsClient.Close()

			remote = cartfs.NewCartRepo(fsClient)
			products = catalogfs.NewProductRepo(fsClient)
			log.Info("cart backend: firestore", slog.String("project", cfg.FirestoreProjectID))
		}
	}

	razorpaySecret := cfg.RazorpaySecret
	if cfg.RazorpaySecretName != "" && cfg.FirestoreProjectID != "" {
		provider, err := secrets.NewProvider(ctx, cfg.FirestoreProjectID)
		if err != nil {
			log.Error("secret manager init failed", slog.Any("err", err))
			os.Exit(1)
		}
		if razorpaySecret, err = provider.Get(ctx, cfg.RazorpaySecretName); err != nil {
			log.Error("razorpay secret fetch failed", slog.Any("err", err))
			os.Exit(1)
		}
		_ = provider.Close()
	}

	catalogSvc := catalogapp.NewService(products)
	cartSvc := cartapp.NewService(remote, local.NewStore(), cartadapter.NewCatalogReader(catalogSvc), 0)
	orderSvc := orderapp.NewService(orderpg.NewOrderRepo(pool))
	profileSvc := profileapp.NewService(profilepg.NewProfileRepo(pool))
	wishlistSvc := wishlistapp.NewService(wishlistpg.NewWishlistRepo(pool))

	var mailer checkoutapp.ConfirmationMailer
	if cfg.SendGridKey != "" {
		mailer = notify.NewMailer(
			notify.NewSendGridClient(cfg.SendGridKey, cfg.StoreName),
			cfg.MailFrom, cfg.StoreName,
		)
	}

	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartGateway(cartSvc),
		razorpay.NewClient(cfg.RazorpayKeyID, razorpaySecret),
		orderSvc,
		mailer,
		log,
	)

	a := &api{
		cart:     cartSvc,
		catalog:  catalogSvc,
		checkout: checkoutSvc,
		orders:   orderSvc,
		profile:  profileSvc,
		wishlist: wishlistSvc,
		verifier: verifier,
		log:      log,
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
