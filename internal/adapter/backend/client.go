package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
)

var _ port.CatalogSource = (*Client)(nil)
var _ port.OrderSubmitter = (*Client)(nil)
var _ port.CustomerGateway = (*Client)(nil)
var _ port.ProductPublisher = (*Client)(nil)

type clientOpts struct {
	httpClient *http.Client
	timeout    time.Duration
}

type ClientOpt func(*clientOpts) error

func HTTPClientOpt(c *http.Client) ClientOpt {
	return func(opts *clientOpts) error {
		if c == nil {
			return errors.New("http client is nil")
		}
		opts.httpClient = c
		return nil
	}
}

func TimeoutOpt(d time.Duration) ClientOpt {
	return func(opts *clientOpts) error {
		if d <= 0 {
			return fmt.Errorf("invalid timeout %s", d)
		}
		opts.timeout = d
		return nil
	}
}

// Client talks to the store backend. Every call is made once, failures
// are reported as [domain.ErrBackend].
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func NewClient(baseURL string, opts ...ClientOpt) (*Client, error) {
	const op = "NewClient"

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: base url %q is not absolute", op, baseURL)
	}

	var options clientOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if options.timeout == 0 {
		options.timeout = defaultTimeout
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := *httpClient
	c.Timeout = options.timeout

	return &Client{baseURL: u, http: &c}, nil
}

func (c *Client) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	const op = "Client.FetchCatalog"

	var data catalogData
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products"}, &data); err != nil {
		return domain.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}
	return data.toDomain(), nil
}

// FetchProduct accepts both a single product and a one element list.
func (c *Client) FetchProduct(ctx context.Context, id int64) (domain.Product, error) {
	const op = "Client.FetchProduct"

	var raw json.RawMessage
	req := request{
		method: http.MethodGet,
		path:   "/getProducts/" + strconv.FormatInt(id, 10),
	}
	if err := c.do(ctx, req, &raw); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	products, err := decodeProducts(raw)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
	}
	if len(products) == 0 {
		return domain.Product{}, fmt.Errorf("%s: %w: product %d", op, domain.ErrNotFound, id)
	}
	return products[0].toDomain(""), nil
}

func (c *Client) FetchProducts(
	ctx context.Context, codes []int64,
) ([]domain.Product, error) {
	const op = "Client.FetchProducts"

	if len(codes) == 0 {
		return []domain.Product{}, nil
	}

	query, err := json.Marshal(productListFromCodes(codes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var raw json.RawMessage
	req := request{
		method: http.MethodGet,
		path:   "/getProducts/" + url.PathEscape(string(query)),
	}
	if err := c.do(ctx, req, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	dtos, err := decodeProducts(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
	}

	products := make([]domain.Product, len(dtos))
	for i, p := range dtos {
		products[i] = p.toDomain("")
	}
	return products, nil
}

func (c *Client) SubmitOrder(
	ctx context.Context, token string, o domain.Order,
) error {
	const op = "Client.SubmitOrder"

	auth, err := orderAuthorization(token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req := request{
		method: http.MethodPost,
		path:   "/saveOrder",
		header: http.Header{"Authorization": {auth}},
		body:   orderFromDomain(o),
	}
	if err := c.do(ctx, req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// orderAuthorization renders the token as a JSON string literal, quotes
// included. The order endpoint reads the header in that form.
func orderAuthorization(token string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(token); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (c *Client) CreateCustomer(
	ctx context.Context, cust domain.Customer,
) (domain.Customer, error) {
	const op = "Client.CreateCustomer"

	req := request{
		method: http.MethodPost,
		path:   "/saveCustomer",
		body:   customerFromDomain(cust),
	}
	saved, err := c.saveCustomer(ctx, req, cust)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

func (c *Client) UpdateCustomer(
	ctx context.Context, cust domain.Customer,
) (domain.Customer, error) {
	const op = "Client.UpdateCustomer"

	req := request{
		method: http.MethodPost,
		path:   "/updateCustomer/" + strconv.FormatInt(cust.ID, 10),
		body:   customerFromDomain(cust),
	}
	saved, err := c.saveCustomer(ctx, req, cust)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

func (c *Client) FetchCustomer(
	ctx context.Context, id int64,
) (domain.Customer, error) {
	const op = "Client.FetchCustomer"

	var raw json.RawMessage
	req := request{
		method: http.MethodGet,
		path:   "/getCustomers/" + strconv.FormatInt(id, 10),
	}
	if err := c.do(ctx, req, &raw); err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w", op, err)
	}

	customers, err := decodeOneOrMany[customerDTO](raw)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
	}
	if len(customers) == 0 {
		return domain.Customer{}, fmt.Errorf("%s: %w: customer %d", op, domain.ErrNotFound, id)
	}
	return customers[0].toDomain(), nil
}

func (c *Client) PublishProduct(
	ctx context.Context, token string, p domain.NewProduct,
) error {
	const op = "Client.PublishProduct"

	req := request{
		method: http.MethodPost,
		path:   "/products",
		header: http.Header{"Authorization": {"Bearer " + token}},
		body:   newProductFromDomain(p),
	}
	if err := c.do(ctx, req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// saveCustomer returns the stored customer when the backend echoes it,
// otherwise the submitted one.
func (c *Client) saveCustomer(
	ctx context.Context, req request, cust domain.Customer,
) (domain.Customer, error) {
	var raw json.RawMessage
	if err := c.do(ctx, req, &raw); err != nil {
		return domain.Customer{}, err
	}

	if !isSet(raw) {
		return cust, nil
	}

	customers, err := decodeOneOrMany[customerDTO](raw)
	if err != nil || len(customers) == 0 {
		return cust, nil
	}

	saved := customers[0].toDomain()
	if saved.ID == 0 {
		saved.ID = cust.ID
	}
	return saved, nil
}

type request struct {
	method string
	path   string
	header http.Header
	body   any
}

// do sends the request and decodes the envelope data into out when out is
// not nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	const op = "Client.do"
	log := slog.With("op", op, "method", r.method, "path", r.path)

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL.String() + r.path
	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed", "err", err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
	}
	defer resp.Body.Close()

	log.Debug("response received",
		"status", resp.StatusCode, "took", time.Since(start))

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, r.path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s: %w: status %d", op, domain.ErrBackend, resp.StatusCode)
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		if out != nil {
			return fmt.Errorf("%s: %w: empty response", op, domain.ErrBackend)
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
	}

	if isSet(env.Error) {
		log.Warn("backend reported error", "error", string(env.Error))
		return fmt.Errorf("%s: %w: %s", op, domain.ErrBackend, env.Error)
	}

	if out == nil {
		return nil
	}

	if raw, ok := out.(*json.RawMessage); ok {
		*raw = env.Data
		return nil
	}

	if !isSet(env.Data) {
		return fmt.Errorf("%s: %w: no data", op, domain.ErrBackend)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
	}
	return nil
}

func decodeProducts(raw json.RawMessage) ([]productDTO, error) {
	return decodeOneOrMany[productDTO](raw)
}

// decodeOneOrMany decodes either a JSON array or a single object. Absent
// data yields an empty result.
func decodeOneOrMany[T any](raw json.RawMessage) ([]T, error) {
	v := bytes.TrimSpace(raw)
	if !isSet(v) {
		return nil, nil
	}

	if v[0] == '[' {
		var many []T
		if err := json.Unmarshal(v, &many); err != nil {
			return nil, err
		}
		return many, nil
	}

	var one T
	if err := json.Unmarshal(v, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}
