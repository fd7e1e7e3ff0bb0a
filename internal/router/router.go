// Package router wires the REST surface of the service: it parses and
// validates inbound payloads, delegates every decision to the service layer
// and maps the outcomes to HTTP status codes.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/patric-chuzhbe/usersvc/internal/gzippedhttp"
	"github.com/patric-chuzhbe/usersvc/internal/logger"
	"github.com/patric-chuzhbe/usersvc/internal/models"
	"github.com/patric-chuzhbe/usersvc/internal/user"
)

type userService interface {
	GetAllUsers(ctx context.Context) ([]user.User, error)

	GetActiveUsers(ctx context.Context) ([]user.User, error)

	GetUserByID(ctx context.Context, id int64) (*user.User, bool, error)

	GetUserByUsername(ctx context.Context, username string) (*user.User, bool, error)

	CreateUser(ctx context.Context, usr *user.User) (*user.User, error)

	UpdateUser(ctx context.Context, id int64, details *user.User) (*user.User, error)

	DeleteUser(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}

// Router holds the HTTP handlers of the users API.
type Router struct {
	service  userService
	validate *validator.Validate
}

// New returns a chi mux with the users API and the health endpoint mounted
// behind the logging and gzip middleware.
func New(service userService) *chi.Mux {
	theRouter := &Router{
		service:  service,
		validate: validator.New(),
	}

	router := chi.NewRouter()
	router.Use(
		logger.WithLoggingHTTPMiddleware,
		gzippedhttp.UngzipRequest,
		gzippedhttp.GzipResponse,
	)

	router.Get(`/ping`, theRouter.GetPing)
	router.Route(`/api/users`, func(api chi.Router) {
		api.Get(`/`, theRouter.GetApiusers)
		api.Get(`/active`, theRouter.GetApiusersactive)
		api.Get(`/username/{username}`, theRouter.GetApiusersusername)
		api.Get(`/{userID}`, theRouter.GetApiusersid)
		api.Post(`/`, theRouter.PostApiusers)
		api.Put(`/{userID}`, theRouter.PutApiusersid)
		api.Delete(`/{userID}`, theRouter.DeleteApiusersid)
	})

	return router
}

func writeJSON(res http.ResponseWriter, statusCode int, payload interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	if err := json.NewEncoder(res).Encode(payload); err != nil {
		logger.Log.Debugln("error while encoding the response:", err)
	}
}

// writeServiceError maps the service error taxonomy to HTTP status codes:
// duplicate username/email to 400, missing user to 404, everything else
// (storage failures) to 500.
func writeServiceError(res http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUsernameExists),
		errors.Is(err, models.ErrEmailExists):
		http.Error(res, err.Error(), http.StatusBadRequest)

	case errors.Is(err, models.ErrUserNotFound):
		http.Error(res, err.Error(), http.StatusNotFound)

	default:
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}

func getUserIDFromRequest(req *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(req, "userID"), 10, 64)
}

func (r *Router) getUserRequestFromBody(req *http.Request) (*models.UserRequest, error) {
	var userRequest models.UserRequest
	if err := json.NewDecoder(req.Body).Decode(&userRequest); err != nil {
		return nil, err
	}

	if err := r.validate.Struct(userRequest); err != nil {
		return nil, err
	}

	return &userRequest, nil
}

// GetApiusers handles GET /api/users and returns every user.
func (r *Router) GetApiusers(res http.ResponseWriter, req *http.Request) {
	users, err := r.service.GetAllUsers(req.Context())
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, users)
}

// GetApiusersactive handles GET /api/users/active and returns the users
// whose active flag is set.
func (r *Router) GetApiusersactive(res http.ResponseWriter, req *http.Request) {
	users, err := r.service.GetActiveUsers(req.Context())
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, users)
}

// GetApiusersid handles GET /api/users/{userID}. A missing record is a 404,
// not an error.
func (r *Router) GetApiusersid(res http.ResponseWriter, req *http.Request) {
	userID, err := getUserIDFromRequest(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	usr, found, err := r.service.GetUserByID(req.Context(), userID)
	if err != nil {
		writeServiceError(res, err)
		return
	}
	if !found {
		res.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(res, http.StatusOK, usr)
}

// GetApiusersusername handles GET /api/users/username/{username}.
func (r *Router) GetApiusersusername(res http.ResponseWriter, req *http.Request) {
	username := chi.URLParam(req, "username")

	usr, found, err := r.service.GetUserByUsername(req.Context(), username)
	if err != nil {
		writeServiceError(res, err)
		return
	}
	if !found {
		res.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(res, http.StatusOK, usr)
}

// PostApiusers handles POST /api/users. A structurally invalid payload is a
// 400 before the service is ever called; duplicate username/email are 400
// as well, reported by the service.
func (r *Router) PostApiusers(res http.ResponseWriter, req *http.Request) {
	userRequest, err := r.getUserRequestFromBody(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := r.service.CreateUser(
		req.Context(),
		&user.User{
			Username: userRequest.Username,
			Email:    userRequest.Email,
			FullName: userRequest.FullName,
			Active:   userRequest.IsActive(),
		},
	)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusCreated, created)
}

// PutApiusersid handles PUT /api/users/{userID}. The payload is a complete
// replacement of the mutable fields.
func (r *Router) PutApiusersid(res http.ResponseWriter, req *http.Request) {
	userID, err := getUserIDFromRequest(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	userRequest, err := r.getUserRequestFromBody(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := r.service.UpdateUser(
		req.Context(),
		userID,
		&user.User{
			Username: userRequest.Username,
			Email:    userRequest.Email,
			FullName: userRequest.FullName,
			Active:   userRequest.IsActive(),
		},
	)
	if err != nil {
		writeServiceError(res, err)
		return
	}

	writeJSON(res, http.StatusOK, updated)
}

// DeleteApiusersid handles DELETE /api/users/{userID}.
func (r *Router) DeleteApiusersid(res http.ResponseWriter, req *http.Request) {
	userID, err := getUserIDFromRequest(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.service.DeleteUser(req.Context(), userID); err != nil {
		writeServiceError(res, err)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// GetPing handles GET /ping and reports the health of the storage layer.
func (r *Router) GetPing(res http.ResponseWriter, req *http.Request) {
	if err := r.service.Ping(req.Context()); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}
