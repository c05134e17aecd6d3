package model

// Product is a record of the upstream products collection. ID is assigned by the server.
type Product struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SellerID    int64  `json:"seller_id"`
}

// ProductPayload is the body sent on create and update.
type ProductPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SellerID    int64  `json:"seller_id"`
}

// Draft holds the form values while they are being edited. SellerID stays text
// until submit.
type Draft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	SellerID    string `json:"seller_id" validate:"required,numeric"`
}
