package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/api/weberr"
	"github.com/bassamfouad/mouhajer-api/config"
	"github.com/bassamfouad/mouhajer-api/core/cart"
	"github.com/bassamfouad/mouhajer-api/validate"
	"github.com/plutov/paypal/v4"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"
)

// snapshot freezes the session cart into order items. The unit price
// applies the same sale-price precedence the cart totals use.
func snapshot(c cart.Cart) ([]Item, int, string) {
	items := make([]Item, 0, len(c.Items))
	currency := "AED"

	var tot int
	for _, l := range c.Items {
		items = append(items, Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Color:     l.Color.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice(),
		})
		tot += l.UnitPrice() * l.Quantity
		if l.Currency != "" {
			currency = l.Currency
		}
	}

	return items, tot, currency
}

func prepare(b *Book, provider, providerID, currency string, items []Item, total int) error {
	now := time.Now().UTC()
	ord := Order{
		ID:         validate.GenerateID(),
		ProviderID: providerID,
		Provider:   provider,
		Status:     Pending,
		Currency:   currency,
		Total:      total,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := b.Create(ord); err != nil {
		return fmt.Errorf("creating the order bound to payment[%s]: %w", providerID, err)
	}
	return nil
}

func fulfill(b *Book, providerID string) error {
	ord, err := b.MarkStatus(providerID, Success)
	if err != nil {
		return fmt.Errorf("fulfilling the order bound to payment[%s]: %w", providerID, err)
	}
	if ord == nil {
		return fmt.Errorf("no order bound to payment[%s]", providerID)
	}
	return nil
}

func HandlePaypalCheckout(b *Book, st cart.Store, pp *paypal.Client) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := st.Load(ctx)
		items, tot, currency := snapshot(c)

		if len(items) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		ppItems := make([]paypal.Item, 0, len(items))
		for _, it := range items {
			name := it.Name.En
			if it.Color != "" {
				name = name + " (" + it.Color + ")"
			}

			ppItems = append(ppItems, paypal.Item{
				Quantity: strconv.Itoa(it.Quantity),
				Name:     name,

				UnitAmount: &paypal.Money{
					Currency: currency,
					Value:    strconv.Itoa(it.UnitPrice),
				},
			})
		}

		units := []paypal.PurchaseUnitRequest{{
			Items: ppItems,

			Amount: &paypal.PurchaseUnitAmount{
				Currency: currency,
				Value:    strconv.Itoa(tot),

				Breakdown: &paypal.PurchaseUnitAmountBreakdown{ItemTotal: &paypal.Money{
					Currency: currency,
					Value:    strconv.Itoa(tot),
				}},
			},
		}}

		ord, err := pp.CreateOrder(ctx, "CAPTURE", units, nil, &paypal.ApplicationContext{})
		if err != nil {
			return fmt.Errorf("creating paypal order: %w", err)
		}

		if err := prepare(b, "paypal", ord.ID, currency, items, tot); err != nil {
			return err
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

// HandlePaypalCapture completes the PayPal payment and clears the
// session cart: this is the checkout-completion path for PayPal.
func HandlePaypalCapture(b *Book, st cart.Store, pp *paypal.Client) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		providerID := web.Param(r, "id")

		resp, err := pp.CaptureOrder(ctx, providerID, paypal.CaptureOrderRequest{})
		if err != nil {
			return fmt.Errorf("capturing paypal order[%s]: %w", providerID, err)
		}

		if resp.Status != "COMPLETED" {
			return fmt.Errorf("captured order[%s] with status[%s] different from 'COMPLETED'", providerID, resp.Status)
		}

		if err := fulfill(b, providerID); err != nil {
			return fmt.Errorf("the order was payed but its fulfillment failed: %w", err)
		}

		c := st.Load(ctx)
		c.Clear()
		if err := st.Save(ctx, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleStripeCheckout(b *Book, st cart.Store, strp *stripecl.API, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := st.Load(ctx)
		items, tot, currency := snapshot(c)

		if len(items) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		li := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
		for _, it := range items {
			name := it.Name.En
			if it.Color != "" {
				name = name + " (" + it.Color + ")"
			}

			li = append(li, &stripe.CheckoutSessionLineItemParams{
				Quantity: stripe.Int64(int64(it.Quantity)),

				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(currency)),
					UnitAmount: stripe.Int64(int64(it.UnitPrice) * 100),

					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
			})
		}

		params := &stripe.CheckoutSessionParams{
			SuccessURL: stripe.String(cfg.SuccessURL),
			CancelURL:  stripe.String(cfg.CancelURL),
			Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
			LineItems:  li,
		}

		s, err := strp.CheckoutSessions.New(params)
		if err != nil {
			return fmt.Errorf("creating stripe session: %w", err)
		}

		if err := prepare(b, "stripe", s.ID, currency, items, tot); err != nil {
			return err
		}

		return web.Respond(ctx, w, s.URL, http.StatusOK)
	}
}

func HandleStripeCapture(b *Book, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot read the request body: %w", err))
		}

		sig := r.Header.Get("Stripe-Signature")
		if sig == "" {
			return weberr.BadRequest(errors.New("received stripe event is not signed"))
		}

		event, err := webhook.ConstructEvent(body, sig, cfg.WebhookSecret)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot construct stripe event: %w", err))
		}

		if event.Type != "checkout.session.completed" {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		var session stripe.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &session); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode stripe event: %w", err))
		}

		if session.Mode != stripe.CheckoutSessionModePayment {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		if err := fulfill(b, session.ID); err != nil {
			return fmt.Errorf("the order was payed but its fulfillment failed: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleCheckoutComplete is the browser's landing call after a Stripe
// success redirect. The webhook already fulfilled the order; all that
// is left in this session is emptying the cart.
func HandleCheckoutComplete(st cart.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := st.Load(ctx)
		c.Clear()
		if err := st.Save(ctx, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleList(b *Book) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, b.List(), http.StatusOK)
	}
}
