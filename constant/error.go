package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrFetchProducts
	ErrSaveProduct
	ErrDeleteProduct
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:        "success",
	ErrInternal:       "error internal",
	ErrNotFound:       "data not found",
	ErrInvalidRequest: "invalid request",
	ErrFetchProducts:  "Failed to fetch products",
	ErrSaveProduct:    "Failed to save product",
	ErrDeleteProduct:  "Failed to delete product",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:        http.StatusOK,
	ErrInternal:       http.StatusInternalServerError,
	ErrNotFound:       http.StatusNotFound,
	ErrInvalidRequest: http.StatusBadRequest,
	ErrFetchProducts:  http.StatusBadGateway,
	ErrSaveProduct:    http.StatusBadGateway,
	ErrDeleteProduct:  http.StatusBadGateway,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:        "0000",
	ErrInternal:       "0001",
	ErrNotFound:       "0002",
	ErrInvalidRequest: "0003",
	ErrFetchProducts:  "0004",
	ErrSaveProduct:    "0005",
	ErrDeleteProduct:  "0006",
}
