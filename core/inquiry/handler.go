package inquiry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bassamfouad/mouhajer-api/api/background"
	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/api/weberr"
	"github.com/bassamfouad/mouhajer-api/validate"
)

// Mailer is what the inquiry alert needs from the email package.
type Mailer interface {
	Send(to, subject, body string) error
}

// HandleCreate accepts a public inquiry and alerts the back office
// inbox off the request path.
func HandleCreate(b *Book, mail Mailer, inbox string, bg *background.Background) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nq InquiryNew
		if err := web.Decode(w, r, &nq); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(nq); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		q, err := b.Create(nq)
		if err != nil {
			return err
		}

		if inbox != "" {
			bg.Add("inquiry-alert", func() error {
				subject := fmt.Sprintf("New inquiry %s from %s", q.Reference, q.Name)
				body := fmt.Sprintf(
					"Reference: %s\nName: %s\nEmail: %s\nPhone: %s\nProduct: %s\n\n%s\n",
					q.Reference, q.Name, q.Email, q.Phone, q.ProductID, q.Message,
				)
				return mail.Send(inbox, subject, body)
			})
		}

		return web.Respond(ctx, w, q, http.StatusCreated)
	}
}

func HandleList(b *Book) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		status := Status(r.URL.Query().Get("status"))

		items := b.List()
		out := make([]Inquiry, 0, len(items))
		for _, q := range items {
			if status != "" && q.Status != status {
				continue
			}
			out = append(out, q)
		}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

func HandleShow(b *Book) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		q := b.Get(id)
		if q == nil {
			return weberr.NotFound(errors.New("inquiry not found"))
		}

		return web.Respond(ctx, w, q, http.StatusOK)
	}
}

func HandleUpdateStatus(b *Book) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var up StatusUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		q, err := b.UpdateStatus(id, up.Status)
		if err != nil {
			return err
		}
		if q == nil {
			return weberr.NotFound(errors.New("inquiry not found"))
		}

		return web.Respond(ctx, w, q, http.StatusOK)
	}
}
