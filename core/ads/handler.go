package ads

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/api/weberr"
	"github.com/bassamfouad/mouhajer-api/validate"
)

// HandleActive serves the public rotation: active ads for a zone,
// optionally narrowed to a page path, highest priority first.
func HandleActive(l *Ledger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		zone := Zone(r.URL.Query().Get("zone"))
		if zone == "" {
			return weberr.BadRequest(errors.New("zone query parameter is required"))
		}

		page := r.URL.Query().Get("page")
		now := time.Now().UTC()

		out := make([]Advertisement, 0)
		for _, a := range l.List() {
			if a.VisibleIn(zone, page, now) {
				out = append(out, a)
			}
		}

		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority > out[j].Priority
		})

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

// HandleImpression records one display of the ad. The response is
// always 204: tracking an unknown id is not the viewer's problem.
func HandleImpression(l *Ledger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := l.RecordImpression(web.Param(r, "id")); err != nil {
			return err
		}
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleClick(l *Ledger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := l.RecordClick(web.Param(r, "id")); err != nil {
			return err
		}
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleList(l *Ledger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, l.List(), http.StatusOK)
	}
}

func HandleShow(l *Ledger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		a := l.Get(id)
		if a == nil {
			return weberr.NotFound(errors.New("advertisement not found"))
		}

		return web.Respond(ctx, w, a, http.StatusOK)
	}
}

func HandleCreate(l *Ledger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var na AdNew
		if err := web.Decode(w, r, &na); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(na); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		a, err := l.Create(na)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, a, http.StatusCreated)
	}
}

func HandleUpdate(l *Ledger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var up AdUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		a, err := l.Update(id, up)
		if err != nil {
			return err
		}
		if a == nil {
			return weberr.NotFound(errors.New("advertisement not found"))
		}

		return web.Respond(ctx, w, a, http.StatusOK)
	}
}

func HandleDelete(l *Ledger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		removed, err := l.Delete(id)
		if err != nil {
			return err
		}
		if !removed {
			return weberr.NotFound(errors.New("advertisement not found"))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
