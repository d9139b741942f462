package product

import (
	"context"
	"errors"
	"net/http"

	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/api/weberr"
	"github.com/bassamfouad/mouhajer-api/validate"
)

func HandleList(ctl *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		category := r.URL.Query().Get("category")
		featured := r.URL.Query().Get("featured") == "true"

		items := ctl.List()
		out := make([]Product, 0, len(items))
		for _, p := range items {
			if category != "" && p.Category != category {
				continue
			}
			if featured && !p.Featured {
				continue
			}
			out = append(out, p)
		}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

func HandleShow(ctl *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		p := ctl.Get(id)
		if p == nil {
			return weberr.NotFound(errors.New("product not found"))
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleCreate(ctl *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var np ProductNew
		if err := web.Decode(w, r, &np); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(np); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		p, err := ctl.Create(np)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, p, http.StatusCreated)
	}
}

func HandleUpdate(ctl *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var up ProductUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		p, err := ctl.Update(id, up)
		if err != nil {
			return err
		}
		if p == nil {
			return weberr.NotFound(errors.New("product not found"))
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleDelete(ctl *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		removed, err := ctl.Delete(id)
		if err != nil {
			return err
		}
		if !removed {
			return weberr.NotFound(errors.New("product not found"))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
