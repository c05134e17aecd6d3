package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadheryan/product-console/model"
	"github.com/muhammadheryan/product-console/utils/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUnexpectedStatus is returned for any non-2xx answer of the products API.
var ErrUnexpectedStatus = errors.New("unexpected status")

type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, payload *model.ProductPayload) error
	Update(ctx context.Context, id uint64, payload *model.ProductPayload) error
	Delete(ctx context.Context, id uint64) error
}

type HTTP struct {
	baseURL string
	client  *http.Client
	metrics *metrics.APIMetrics
}

// NewHTTPClient returns a client whose round trips are traced by otelhttp.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// NewProductRepository talks to the products collection at baseURL, e.g.
// http://host/api/v1/products. A nil client falls back to http.DefaultClient.
func NewProductRepository(baseURL string, client *http.Client, m *metrics.APIMetrics) ProductRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		metrics: m,
	}
}

func (h *HTTP) List(ctx context.Context) ([]model.Product, error) {
	res, err := h.do(ctx, "list", http.MethodGet, h.baseURL, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var products []model.Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (h *HTTP) Create(ctx context.Context, payload *model.ProductPayload) error {
	return h.write(ctx, "create", http.MethodPost, h.baseURL, payload)
}

func (h *HTTP) Update(ctx context.Context, id uint64, payload *model.ProductPayload) error {
	return h.write(ctx, "update", http.MethodPut, h.itemURL(id), payload)
}

func (h *HTTP) Delete(ctx context.Context, id uint64) error {
	res, err := h.do(ctx, "delete", http.MethodDelete, h.itemURL(id), nil)
	if err != nil {
		return err
	}
	discard(res)
	return nil
}

func (h *HTTP) itemURL(id uint64) string {
	return h.baseURL + "/" + strconv.FormatUint(id, 10)
}

func (h *HTTP) write(ctx context.Context, operation, method, url string, payload *model.ProductPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	res, err := h.do(ctx, operation, method, url, body)
	if err != nil {
		return err
	}
	discard(res)
	return nil
}

// do sends the request and returns the response only when the status is 2xx.
// Failed responses are drained and closed here; their body is not read.
func (h *HTTP) do(ctx context.Context, operation, method, url string, body []byte) (*http.Response, error) {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		h.metrics.Observe(operation, metrics.OutcomeFailure, time.Since(start))
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := h.client.Do(req)
	if err != nil {
		h.metrics.Observe(operation, metrics.OutcomeFailure, time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		discard(res)
		h.metrics.Observe(operation, metrics.OutcomeFailure, time.Since(start))
		return nil, fmt.Errorf("%s %s: %w %d", method, url, ErrUnexpectedStatus, res.StatusCode)
	}

	h.metrics.Observe(operation, metrics.OutcomeSuccess, time.Since(start))
	return res, nil
}

func discard(res *http.Response) {
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
