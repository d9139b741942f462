package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/bassamfouad/mouhajer-api/api"
	"github.com/bassamfouad/mouhajer-api/api/background"
	"github.com/bassamfouad/mouhajer-api/config"
	"github.com/bassamfouad/mouhajer-api/core/ads"
	"github.com/bassamfouad/mouhajer-api/core/cart"
	"github.com/bassamfouad/mouhajer-api/core/inquiry"
	"github.com/bassamfouad/mouhajer-api/core/order"
	"github.com/bassamfouad/mouhajer-api/core/product"
	"github.com/bassamfouad/mouhajer-api/email"
	"github.com/bassamfouad/mouhajer-api/rate"
	"github.com/bassamfouad/mouhajer-api/store"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting server")
	defer logger.Info("shutdown complete")

	const prefix = "MID"
	var cfg config.Config
	if _, err := conf.Parse(prefix, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	lw := logger.Writer()
	defer lw.Close()
	errLog := stdlog.New(lw, "", 0)

	products, err := store.Open[product.Product](filepath.Join(cfg.Store.Dir, "products.json"), logger)
	if err != nil {
		return fmt.Errorf("opening products collection: %w", err)
	}

	adverts, err := store.Open[ads.Advertisement](filepath.Join(cfg.Store.Dir, "ads.json"), logger)
	if err != nil {
		return fmt.Errorf("opening ads collection: %w", err)
	}

	inquiries, err := store.Open[inquiry.Inquiry](filepath.Join(cfg.Store.Dir, "inquiries.json"), logger)
	if err != nil {
		return fmt.Errorf("opening inquiries collection: %w", err)
	}

	orders, err := store.Open[order.Order](filepath.Join(cfg.Store.Dir, "orders.json"), logger)
	if err != nil {
		return fmt.Errorf("opening orders collection: %w", err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime

	mail := email.New(cfg.Email.Address, cfg.Email.Password, cfg.Email.Host, cfg.Email.Port)

	bg := background.New(logger)

	pp, err := paypal.NewClient(
		cfg.Paypal.ClientID,
		cfg.Paypal.Secret,
		cfg.Paypal.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to build the paypal client: %w", err)
	}

	if _, err = pp.GetAccessToken(context.TODO()); err != nil {
		return fmt.Errorf("failed to get the first paypal access token: %w", err)
	}

	strp := &stripecl.API{}
	strp.Init(cfg.Stripe.APISecret, nil)

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:   cfg.Cors.Origin,
		Log:          logger,
		Session:      sessionManager,
		Catalog:      product.NewCatalog(products),
		Ads:          ads.NewLedger(adverts),
		Inquiries:    inquiry.NewBook(inquiries),
		Orders:       order.NewBook(orders),
		CartStore:    &cart.SessionStore{Session: sessionManager, Log: logger},
		Mailer:       mail,
		Inbox:        cfg.Email.Inbox,
		Background:   bg,
		Paypal:       pp,
		Stripe:       strp,
		StripeCfg:    cfg.Stripe,
		AdminCfg:     cfg.Admin,
		TrackLimiter: rate.NewLimiter(cfg.Track.Burst, cfg.Track.Interval, cfg.Track.ClientTTL),
	})

	srv := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}

		if err := bg.Shutdown(ctx); err != nil {
			return fmt.Errorf("could not complete all background tasks: %w", err)
		}
	}
	return nil
}
