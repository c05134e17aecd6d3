package transport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	productapp "github.com/muhammadheryan/product-console/application/product"
	"github.com/muhammadheryan/product-console/cmd/config"
	"github.com/muhammadheryan/product-console/constant"
	"github.com/muhammadheryan/product-console/model"
	"github.com/muhammadheryan/product-console/transport/view"
	utilsContext "github.com/muhammadheryan/product-console/utils/context"
	"github.com/muhammadheryan/product-console/utils/errors"
	"github.com/muhammadheryan/product-console/utils/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// draftFields are the form fields copied into the draft before a submit.
var draftFields = []string{constant.FieldTitle, constant.FieldDescription, constant.FieldSellerID}

type RestHandler struct {
	ProductApp productapp.ProductApp
	View       *view.Renderer
}

func NewTransport(cfg *config.Config, ProductApp productapp.ProductApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		ProductApp: ProductApp,
		View:       view.MustNew(),
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	mux.HandleFunc("/health", rh.Health).Methods(http.MethodGet)
	mux.Handle("/metrics", InternalMiddleware(cfg.Server.MetricsAPIKey)(promhttp.Handler())).Methods(http.MethodGet)

	// page
	mux.HandleFunc("/", rh.Index).Methods(http.MethodGet)
	mux.HandleFunc("/products/reload", rh.Reload).Methods(http.MethodPost)
	mux.HandleFunc("/products/new", rh.OpenCreate).Methods(http.MethodPost)
	mux.HandleFunc("/products/save", rh.Save).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id:[0-9]+}/edit", rh.OpenEdit).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id:[0-9]+}/delete", rh.RequestDelete).Methods(http.MethodPost)
	mux.HandleFunc("/products/{id:[0-9]+}/delete/confirm", rh.ConfirmDelete).Methods(http.MethodPost)
	mux.HandleFunc("/draft", rh.ChangeDraft).Methods(http.MethodPost)
	mux.HandleFunc("/modal/cancel", rh.Cancel).Methods(http.MethodPost)
	mux.HandleFunc("/modal/close", rh.CloseModal).Methods(http.MethodPost)

	// api
	mux.HandleFunc("/api/state", rh.GetState).Methods(http.MethodGet)

	// middleware
	mux.Use(SessionMiddleware(cfg.Session.CookieName, cfg.Session.TTL))
	mux.Use(LoggingMiddleware())

	return otelhttp.NewHandler(mux, "product-console")
}

func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// Index renders the product page. The first render of a session loads the list.
func (s *RestHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := utilsContext.GetSessionID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	state, err := s.ProductApp.Page(ctx, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.View.Page(w, state); err != nil {
		logger.Error("[Index] err View.Page", zap.String("error", err.Error()))
		writeError(w, errors.SetCustomError(constant.ErrInternal))
	}
}

func (s *RestHandler) Reload(w http.ResponseWriter, r *http.Request) {
	s.action(w, r, s.ProductApp.Load)
}

func (s *RestHandler) OpenCreate(w http.ResponseWriter, r *http.Request) {
	s.action(w, r, s.ProductApp.OpenCreate)
}

func (s *RestHandler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	s.action(w, r, func(ctx context.Context, sessionID string) (*model.State, error) {
		return s.ProductApp.OpenEdit(ctx, sessionID, id)
	})
}

// ChangeDraft forwards a single field edit (form fields "name" and "value").
func (s *RestHandler) ChangeDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := utilsContext.GetSessionID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if _, err := s.ProductApp.Change(ctx, sessionID, r.PostFormValue("name"), r.PostFormValue("value")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Save copies the posted form into the draft and submits it. A failed save
// leaves the modal open with the draft; the banner reports the failure.
func (s *RestHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	s.action(w, r, func(ctx context.Context, sessionID string) (*model.State, error) {
		for _, field := range draftFields {
			values, posted := r.PostForm[field]
			if !posted || len(values) == 0 {
				continue
			}
			if _, err := s.ProductApp.Change(ctx, sessionID, field, values[0]); err != nil {
				return nil, err
			}
		}
		return s.ProductApp.Submit(ctx, sessionID)
	})
}

func (s *RestHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	s.action(w, r, func(ctx context.Context, sessionID string) (*model.State, error) {
		return s.ProductApp.RequestDelete(ctx, sessionID, id)
	})
}

// ConfirmDelete answers the confirmation prompt; only confirm=yes deletes.
func (s *RestHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	confirmed := r.PostFormValue("confirm") == "yes"
	s.action(w, r, func(ctx context.Context, sessionID string) (*model.State, error) {
		return s.ProductApp.Delete(ctx, sessionID, id, confirmed)
	})
}

func (s *RestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	s.action(w, r, s.ProductApp.Cancel)
}

func (s *RestHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	s.action(w, r, s.ProductApp.CloseModal)
}

// GetState handler
// @Summary Page state
// @Description Returns the product page state of the caller's session without triggering a load
// @Tags Products
// @Produce json
// @Success 200 {object} transport.Response{data=model.StateResponse}
// @Failure 500 {object} transport.Response
// @Router /api/state [get]
func (s *RestHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := utilsContext.GetSessionID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	state, err := s.ProductApp.State(ctx, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, model.StateResponse{SessionID: sessionID, State: state})
}

func (s *RestHandler) action(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, sessionID string) (*model.State, error)) {
	ctx := r.Context()

	sessionID, ok := utilsContext.GetSessionID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInternal))
		return
	}

	if _, err := fn(ctx, sessionID); err != nil {
		writeError(w, err)
		return
	}

	redirectHome(w, r)
}

func productID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return 0, false
	}
	return id, true
}
