package product

import (
	"context"

	"github.com/muhammadheryan/product-console/constant"
	"github.com/muhammadheryan/product-console/model"
	productRepo "github.com/muhammadheryan/product-console/repository/product"
	sessionRepo "github.com/muhammadheryan/product-console/repository/session"
	"github.com/muhammadheryan/product-console/utils/errors"
	"github.com/muhammadheryan/product-console/utils/logger"
	"go.uber.org/zap"
)

// ProductApp runs page actions against the state stored for a session.
//
// Failures of the products API are not returned as errors: they end up in
// State.Error, which is what the page shows. Returned errors mean the action
// itself could not run (bad input, session storage down).
type ProductApp interface {
	State(ctx context.Context, sessionID string) (*model.State, error)
	Page(ctx context.Context, sessionID string) (*model.State, error)
	Load(ctx context.Context, sessionID string) (*model.State, error)
	OpenCreate(ctx context.Context, sessionID string) (*model.State, error)
	OpenEdit(ctx context.Context, sessionID string, id uint64) (*model.State, error)
	Change(ctx context.Context, sessionID, field, value string) (*model.State, error)
	Submit(ctx context.Context, sessionID string) (*model.State, error)
	RequestDelete(ctx context.Context, sessionID string, id uint64) (*model.State, error)
	Delete(ctx context.Context, sessionID string, id uint64, confirmed bool) (*model.State, error)
	Cancel(ctx context.Context, sessionID string) (*model.State, error)
	CloseModal(ctx context.Context, sessionID string) (*model.State, error)
}

type productAppImpl struct {
	productRepo productRepo.ProductRepository
	sessionRepo sessionRepo.SessionRepository
}

func NewProductApp(productRepo productRepo.ProductRepository, sessionRepo sessionRepo.SessionRepository) ProductApp {
	return &productAppImpl{
		productRepo: productRepo,
		sessionRepo: sessionRepo,
	}
}

// State returns the stored state without side effects. Unknown sessions get a
// fresh, unsaved state.
func (s *productAppImpl) State(ctx context.Context, sessionID string) (*model.State, error) {
	state, err := s.sessionRepo.GetState(ctx, sessionID)
	if err != nil {
		logger.Error("[State] err sessionRepo.GetState", zap.String("session", sessionID), zap.String("error", err.Error()))
		return nil, errors.Wrap(constant.ErrInternal, err)
	}
	if state == nil {
		state = model.NewState()
	}
	return state, nil
}

// Page returns the state to render, loading the collection on the session's
// first render.
func (s *productAppImpl) Page(ctx context.Context, sessionID string) (*model.State, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Loaded {
		return state, nil
	}
	return s.apply(ctx, sessionID, state, func(store *Store, st *model.State) error {
		store.Load(ctx, st)
		return nil
	})
}

func (s *productAppImpl) Load(ctx context.Context, sessionID string) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		store.Load(ctx, st)
		return nil
	})
}

func (s *productAppImpl) OpenCreate(ctx context.Context, sessionID string) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		store.OpenCreate(st)
		return nil
	})
}

func (s *productAppImpl) OpenEdit(ctx context.Context, sessionID string, id uint64) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		store.OpenEdit(st, id)
		return nil
	})
}

func (s *productAppImpl) Change(ctx context.Context, sessionID, field, value string) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		return store.Change(st, field, value)
	})
}

func (s *productAppImpl) Submit(ctx context.Context, sessionID string) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		store.Submit(ctx, st)
		return nil
	})
}

func (s *productAppImpl) RequestDelete(ctx context.Context, sessionID string, id uint64) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		store.RequestDelete(st, id)
		return nil
	})
}

func (s *productAppImpl) Delete(ctx context.Context, sessionID string, id uint64, confirmed bool) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		store.Delete(ctx, st, id, confirmed)
		return nil
	})
}

func (s *productAppImpl) Cancel(ctx context.Context, sessionID string) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		store.Cancel(st)
		return nil
	})
}

func (s *productAppImpl) CloseModal(ctx context.Context, sessionID string) (*model.State, error) {
	return s.dispatch(ctx, sessionID, func(store *Store, st *model.State) error {
		store.CloseModal(st)
		return nil
	})
}

func (s *productAppImpl) dispatch(ctx context.Context, sessionID string, action func(store *Store, st *model.State) error) (*model.State, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, sessionID, state, action)
}

// apply runs action and saves the result. A failed action leaves the stored
// state untouched.
//
// Loading is cleared first: a snapshot read while another request's reload was
// pending still carries Loading=true, and saving it back would leave the page on
// the loading indicator. Load sets it again for its own request.
func (s *productAppImpl) apply(ctx context.Context, sessionID string, state *model.State, action func(store *Store, st *model.State) error) (*model.State, error) {
	state.Loading = false

	store := NewStore(s.productRepo, func(ctx context.Context, pending *model.State) {
		if err := s.sessionRepo.SaveState(ctx, sessionID, pending); err != nil {
			logger.Warn("[apply] err saving pending state", zap.String("session", sessionID), zap.String("error", err.Error()))
		}
	})

	if err := action(store, state); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.SaveState(ctx, sessionID, state); err != nil {
		logger.Error("[apply] err sessionRepo.SaveState", zap.String("session", sessionID), zap.String("error", err.Error()))
		return nil, errors.Wrap(constant.ErrInternal, err)
	}
	return state, nil
}
