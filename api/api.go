package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/bassamfouad/mouhajer-api/api/background"
	"github.com/bassamfouad/mouhajer-api/api/middleware"
	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/config"
	"github.com/bassamfouad/mouhajer-api/core/ads"
	"github.com/bassamfouad/mouhajer-api/core/auth"
	"github.com/bassamfouad/mouhajer-api/core/cart"
	"github.com/bassamfouad/mouhajer-api/core/inquiry"
	"github.com/bassamfouad/mouhajer-api/core/order"
	"github.com/bassamfouad/mouhajer-api/core/product"
	"github.com/bassamfouad/mouhajer-api/rate"
	"github.com/gorilla/mux"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	Session    *scs.SessionManager

	Catalog   *product.Catalog
	Ads       *ads.Ledger
	Inquiries *inquiry.Book
	Orders    *order.Book
	CartStore cart.Store

	Mailer     inquiry.Mailer
	Inbox      string
	Background *background.Background

	Paypal    *paypal.Client
	Stripe    *stripecl.API
	StripeCfg config.Stripe
	AdminCfg  config.Admin

	TrackLimiter *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	admin := auth.Admin(cfg.Session)
	limited := middleware.RateLimit(cfg.TrackLimiter)

	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.Session, cfg.AdminCfg))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))
	a.Handle(http.MethodGet, "/auth/current", auth.HandleCurrent(), admin)

	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.Catalog))
	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.Catalog))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.Catalog), admin)
	a.Handle(http.MethodPut, "/products/{id}", product.HandleUpdate(cfg.Catalog), admin)
	a.Handle(http.MethodDelete, "/products/{id}", product.HandleDelete(cfg.Catalog), admin)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.CartStore))
	a.Handle(http.MethodDelete, "/cart", cart.HandleClear(cfg.CartStore))
	a.Handle(http.MethodPut, "/cart/items", cart.HandleAddItem(cfg.CartStore, cfg.Catalog))
	a.Handle(http.MethodPut, "/cart/items/{product_id}/{color}", cart.HandleUpdateItem(cfg.CartStore))
	a.Handle(http.MethodDelete, "/cart/items/{product_id}/{color}", cart.HandleDeleteItem(cfg.CartStore))
	a.Handle(http.MethodPut, "/cart/visibility", cart.HandleVisibility(cfg.CartStore))

	a.Handle(http.MethodGet, "/ads/active", ads.HandleActive(cfg.Ads))
	a.Handle(http.MethodPost, "/ads/{id}/impressions", ads.HandleImpression(cfg.Ads), limited)
	a.Handle(http.MethodPost, "/ads/{id}/clicks", ads.HandleClick(cfg.Ads), limited)
	a.Handle(http.MethodGet, "/ads/{id}", ads.HandleShow(cfg.Ads), admin)
	a.Handle(http.MethodGet, "/ads", ads.HandleList(cfg.Ads), admin)
	a.Handle(http.MethodPost, "/ads", ads.HandleCreate(cfg.Ads), admin)
	a.Handle(http.MethodPut, "/ads/{id}", ads.HandleUpdate(cfg.Ads), admin)
	a.Handle(http.MethodDelete, "/ads/{id}", ads.HandleDelete(cfg.Ads), admin)

	a.Handle(http.MethodPost, "/inquiries", inquiry.HandleCreate(cfg.Inquiries, cfg.Mailer, cfg.Inbox, cfg.Background), limited)
	a.Handle(http.MethodGet, "/inquiries/{id}", inquiry.HandleShow(cfg.Inquiries), admin)
	a.Handle(http.MethodGet, "/inquiries", inquiry.HandleList(cfg.Inquiries), admin)
	a.Handle(http.MethodPut, "/inquiries/{id}/status", inquiry.HandleUpdateStatus(cfg.Inquiries), admin)

	a.Handle(http.MethodPost, "/orders/paypal", order.HandlePaypalCheckout(cfg.Orders, cfg.CartStore, cfg.Paypal))
	a.Handle(http.MethodPost, "/orders/paypal/{id}/capture", order.HandlePaypalCapture(cfg.Orders, cfg.CartStore, cfg.Paypal))
	a.Handle(http.MethodPost, "/orders/stripe", order.HandleStripeCheckout(cfg.Orders, cfg.CartStore, cfg.Stripe, cfg.StripeCfg))
	a.Handle(http.MethodPost, "/orders/stripe/capture", order.HandleStripeCapture(cfg.Orders, cfg.StripeCfg))
	a.Handle(http.MethodPost, "/orders/complete", order.HandleCheckoutComplete(cfg.CartStore))
	a.Handle(http.MethodGet, "/orders", order.HandleList(cfg.Orders), admin)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
