package errors_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/muhammadheryan/product-console/constant"
	cerr "github.com/muhammadheryan/product-console/utils/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := cerr.Wrap(constant.ErrFetchProducts, cause)

	assert.Equal(t, "Failed to fetch products", err.Error())
	assert.Equal(t, "0004", err.ErrorCode())
	assert.Equal(t, http.StatusBadGateway, err.ErrorHTTPCode())
	assert.True(t, errors.Is(err, cause))

	var ce cerr.CustomError
	assert.True(t, errors.As(error(err), &ce))
	assert.Equal(t, constant.ErrFetchProducts, ce.Type())
}

func TestSetCustomError(t *testing.T) {
	err := cerr.SetCustomError(constant.ErrInvalidRequest)

	assert.Equal(t, "invalid request", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.ErrorHTTPCode())
	assert.Nil(t, err.Unwrap())
}
