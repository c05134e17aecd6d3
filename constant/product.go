package constant

type contextKey string

// SessionIDKey carries the browser session id through the request context.
const SessionIDKey contextKey = "session_id"

// Draft field names as posted by the product form.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldSellerID    = "seller_id"
)

const DeleteConfirmMessage = "Are you sure you want to delete this product?"

// DefaultProductAPIURL is the products collection used when PRODUCT_API_URL is unset.
const DefaultProductAPIURL = "http://go.megafinders.xyz/api/v1/products"
