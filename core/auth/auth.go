// Package auth binds the back-office operator to the scs session.
// There is a single configured admin credential; the password is
// compared against its bcrypt hash, never stored in clear.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/bassamfouad/mouhajer-api/api/web"
	"github.com/bassamfouad/mouhajer-api/api/weberr"
	"github.com/bassamfouad/mouhajer-api/config"
	"github.com/bassamfouad/mouhajer-api/core/claims"
	"github.com/bassamfouad/mouhajer-api/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	roleKey  = "auth-role"
	emailKey = "auth-email"
)

// LoadAndSave adapts the scs middleware to the web.Handler chain, so
// every route sees a loaded session and writes are committed on the
// way out.
func LoadAndSave(sm *scs.SessionManager) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error
			wrapped := sm.LoadAndSave(http.HandlerFunc(func(ww http.ResponseWriter, rr *http.Request) {
				err = handler(rr.Context(), ww, rr)
			}))
			wrapped.ServeHTTP(w, r.WithContext(ctx))
			return err
		}
	}
}

// Admin lets the request through only when the session carries the
// admin role, and puts the operator claims on the context.
func Admin(sm *scs.SessionManager) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if sm.GetString(ctx, roleKey) != claims.RoleAdmin {
				return weberr.NotAuthorized(errors.New("admin session required"))
			}

			ctx = claims.Set(ctx, claims.Claims{
				Email: sm.GetString(ctx, emailKey),
				Role:  claims.RoleAdmin,
			})

			return handler(ctx, w, r)
		}
	}
}

type LoginNew struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func HandleLogin(sm *scs.SessionManager, admin config.Admin) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in LoginNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		emailOK := subtle.ConstantTimeCompare([]byte(in.Email), []byte(admin.Email)) == 1
		passOK := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) == nil
		if !emailOK || !passOK {
			return weberr.NotAuthorized(errors.New("wrong credentials"))
		}

		if err := sm.RenewToken(ctx); err != nil {
			return err
		}
		sm.Put(ctx, roleKey, claims.RoleAdmin)
		sm.Put(ctx, emailKey, in.Email)

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleCurrent answers with the operator bound to the session.
func HandleCurrent() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		out := struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		}{clm.Email, clm.Role}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

func HandleLogout(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := sm.Destroy(ctx); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
