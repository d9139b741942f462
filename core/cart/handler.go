package cart

import (
	"context"
	"errors"
	"net/http"

	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/api/weberr"
	"github.com/bassamfouad/mouhajer-api/core/product"
	"github.com/bassamfouad/mouhajer-api/validate"
)

type ItemNew struct {
	ProductID string `json:"productId" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type QuantityUp struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type VisibilityUp struct {
	Open bool `json:"open"`
}

func HandleShow(st Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, st.Load(ctx).View(), http.StatusOK)
	}
}

// HandleAddItem resolves the product and the named color variant and
// merges the quantity into the session cart.
func HandleAddItem(st Store, ctl *product.Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		p := ctl.Get(in.ProductID)
		if p == nil {
			return weberr.NotFound(errors.New("product not found"))
		}

		var color *product.Variant
		for _, v := range p.Colors {
			if v.Name == in.Color {
				v := v
				color = &v
				break
			}
		}
		if color == nil {
			err := errors.New("color is not a variant of this product")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c := st.Load(ctx)
		c.Add(*p, *color, in.Quantity)
		if err := st.Save(ctx, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, c.View(), http.StatusOK)
	}
}

func HandleUpdateItem(st Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in QuantityUp
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c := st.Load(ctx)
		c.UpdateQuantity(web.Param(r, "product_id"), web.Param(r, "color"), in.Quantity)
		if err := st.Save(ctx, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, c.View(), http.StatusOK)
	}
}

func HandleDeleteItem(st Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := st.Load(ctx)
		c.Remove(web.Param(r, "product_id"), web.Param(r, "color"))
		if err := st.Save(ctx, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, c.View(), http.StatusOK)
	}
}

func HandleClear(st Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := st.Load(ctx)
		c.Clear()
		if err := st.Save(ctx, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleVisibility(st Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in VisibilityUp
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		c := st.Load(ctx)
		c.Open = in.Open
		if err := st.Save(ctx, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, c.View(), http.StatusOK)
	}
}
