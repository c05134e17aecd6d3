package product

import (
	"context"
	"strconv"

	"github.com/muhammadheryan/product-console/constant"
	"github.com/muhammadheryan/product-console/model"
	productRepo "github.com/muhammadheryan/product-console/repository/product"
	"github.com/muhammadheryan/product-console/utils/errors"
	"github.com/muhammadheryan/product-console/utils/logger"
	validatorx "github.com/muhammadheryan/product-console/utils/validator"
	"go.uber.org/zap"
)

// Store applies page actions to a State. It holds no state of its own, so one
// Store can serve any number of sessions.
//
// The product list is only ever replaced by a full reload; mutations never patch
// it locally.
type Store struct {
	productRepo productRepo.ProductRepository
	pending     func(ctx context.Context, state *model.State)
}

// NewStore returns a Store. pending, when not nil, is called with the state as soon
// as a reload starts so the loading indicator can be published before the list
// request returns.
func NewStore(productRepo productRepo.ProductRepository, pending func(ctx context.Context, state *model.State)) *Store {
	return &Store{productRepo: productRepo, pending: pending}
}

// Load replaces the collection with the server's. On failure the previous
// collection is kept and the error banner is set.
func (s *Store) Load(ctx context.Context, state *model.State) {
	state.Loading = true
	if s.pending != nil {
		s.pending(ctx, state)
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		logger.Error("[Load] err productRepo.List", zap.String("error", err.Error()))
		state.Error = errors.Wrap(constant.ErrFetchProducts, err).Error()
	} else {
		state.Products = products
		state.Error = ""
	}

	state.Loading = false
	state.Loaded = true
}

func (s *Store) OpenCreate(state *model.State) {
	state.Draft = model.Draft{}
	state.EditingID = nil
	state.ModalOpen = true
}

// OpenEdit copies the product with the given id into the draft. Only products of
// the current collection can be edited.
func (s *Store) OpenEdit(state *model.State, id uint64) {
	for _, p := range state.Products {
		if p.ID != id {
			continue
		}
		state.Draft = model.Draft{
			Title:       p.Title,
			Description: p.Description,
			SellerID:    strconv.FormatInt(p.SellerID, 10),
		}
		editingID := p.ID
		state.EditingID = &editingID
		state.ModalOpen = true
		return
	}

	logger.Warn("[OpenEdit] product not in collection", zap.Uint64("id", id))
	state.Error = errors.SetCustomError(constant.ErrNotFound).Error()
}

// Change sets a single draft field.
func (s *Store) Change(state *model.State, field, value string) error {
	switch field {
	case constant.FieldTitle:
		state.Draft.Title = value
	case constant.FieldDescription:
		state.Draft.Description = value
	case constant.FieldSellerID:
		state.Draft.SellerID = value
	default:
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

// Submit creates (no edit target) or updates the draft's product. On success the
// form is reset, the modal closed and the list reloaded. On failure only the
// error banner changes, so the user can retry from the same draft.
func (s *Store) Submit(ctx context.Context, state *model.State) {
	payload, err := toPayload(state.Draft)
	if err != nil {
		logger.Warn("[Submit] invalid draft", zap.Strings("fields", validatorx.FailedFields(err)), zap.String("error", err.Error()))
		state.Error = errors.Wrap(constant.ErrSaveProduct, err).Error()
		return
	}

	if state.EditingID == nil {
		err = s.productRepo.Create(ctx, payload)
	} else {
		err = s.productRepo.Update(ctx, *state.EditingID, payload)
	}
	if err != nil {
		logger.Error("[Submit] err productRepo save", zap.Bool("update", state.EditingID != nil), zap.String("error", err.Error()))
		state.Error = errors.Wrap(constant.ErrSaveProduct, err).Error()
		return
	}

	state.Draft = model.Draft{}
	state.EditingID = nil
	state.ModalOpen = false
	s.Load(ctx, state)
}

// RequestDelete asks for confirmation before Delete; nothing is sent yet.
func (s *Store) RequestDelete(state *model.State, id uint64) {
	pendingID := id
	state.PendingDeleteID = &pendingID
}

// Delete removes the product when confirmed and reloads the list. Without
// confirmation it only dismisses the prompt.
func (s *Store) Delete(ctx context.Context, state *model.State, id uint64, confirmed bool) {
	state.PendingDeleteID = nil
	if !confirmed {
		return
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("[Delete] err productRepo.Delete", zap.Uint64("id", id), zap.String("error", err.Error()))
		state.Error = errors.Wrap(constant.ErrDeleteProduct, err).Error()
		return
	}

	s.Load(ctx, state)
}

func (s *Store) Cancel(state *model.State) {
	state.Draft = model.Draft{}
	state.EditingID = nil
	state.ModalOpen = false
}

// CloseModal hides the modal and keeps the draft for the next time it opens.
func (s *Store) CloseModal(state *model.State) {
	state.ModalOpen = false
}

// toPayload is the only place the seller id text becomes a number.
func toPayload(draft model.Draft) (*model.ProductPayload, error) {
	if err := validatorx.ValidateStruct(&draft); err != nil {
		return nil, err
	}
	sellerID, err := strconv.ParseInt(draft.SellerID, 10, 64)
	if err != nil {
		return nil, err
	}
	return &model.ProductPayload{
		Title:       draft.Title,
		Description: draft.Description,
		SellerID:    sellerID,
	}, nil
}
