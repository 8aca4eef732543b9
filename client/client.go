package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jub/client/dto"
	"jub/client/result"

	gonanoid "github.com/matoous/go-nanoid/v2"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	defaultImageURL   = "https://ivoice.live/wp-content/uploads/2019/12/no-image-1.jpg"
	defaultIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	defaultIDSize     = 21
	defaultTimeout    = 60
)

// Config holds the immutable connection configuration for a JubClient.
type Config struct {
	Hostname string
	Port     int

	// BaseURL, when set, is used verbatim and Hostname/Port are ignored.
	BaseURL string

	// Timeout is the per-request timeout in seconds.
	Timeout int

	// MaxRequestsPerSecond caps outgoing calls; 0 means unlimited.
	MaxRequestsPerSecond int

	// IDAlphabet and IDSize control generated resource identifiers.
	IDAlphabet string
	IDSize     int
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("http://%s:%d", c.Hostname, c.Port)
}

// JubClient provides CRUD methods for observatories, catalogs and products.
// Every operation issues exactly one network call and returns a Result:
// transport failures and non-2xx responses travel as the failure variant.
type JubClient interface {
	CreateObservatory(ctx context.Context, observatory *dto.Observatory) result.Result[string]
	GetObservatory(ctx context.Context, obid string) result.Result[*dto.Observatory]
	GetObservatories(ctx context.Context, skip, limit int) result.Result[[]dto.Observatory]
	UpdateObservatoryCatalogs(ctx context.Context, obid string, refs []dto.LevelRef) result.Result[string]
	DeleteObservatory(ctx context.Context, obid string) result.Result[string]

	CreateCatalog(ctx context.Context, catalog *dto.Catalog) result.Result[string]
	GetCatalog(ctx context.Context, cid string) result.Result[*dto.Catalog]
	GetCatalogs(ctx context.Context) result.Result[[]dto.Catalog]
	DeleteCatalog(ctx context.Context, cid string) result.Result[string]

	CreateProducts(ctx context.Context, products []dto.Product) result.Result[[]string]
	GetProducts(ctx context.Context, skip, limit int) result.Result[[]dto.Product]
	QueryProducts(ctx context.Context, obid string, filter dto.ProductFilter, skip, limit int) result.Result[[]dto.Product]
	DeleteProduct(ctx context.Context, pid string) result.Result[string]
}

type jubClient struct {
	rl         ratelimit.Limiter
	config     Config
	httpClient *resty.Client

	baseURL          string
	observatoriesURL string
	catalogsURL      string
	productsURL      string
}

// New creates a JubClient from the given connection configuration. The
// configuration is held as immutable state for the client's lifetime, so
// concurrent calls on one instance are safe.
func New(cfg Config) JubClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.IDAlphabet == "" {
		cfg.IDAlphabet = defaultIDAlphabet
	}
	if cfg.IDSize <= 0 {
		cfg.IDSize = defaultIDSize
	}

	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("Accept", "application/json")

	var rl ratelimit.Limiter
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	} else {
		rl = ratelimit.NewUnlimited()
	}

	base := cfg.baseURL()
	return &jubClient{
		rl:               rl,
		config:           cfg,
		httpClient:       httpClient,
		baseURL:          base,
		observatoriesURL: base + "/observatories",
		catalogsURL:      base + "/catalogs",
		productsURL:      base + "/products",
	}
}

func (c *jubClient) CreateObservatory(ctx context.Context, observatory *dto.Observatory) result.Result[string] {
	// Server side validation for image_url and obid
	if observatory.ImageURL == "" {
		observatory.ImageURL = defaultImageURL
	}
	if observatory.OBID == "" {
		obid, err := c.newID()
		if err != nil {
			return result.Err[string](err)
		}
		observatory.OBID = obid
	}

	if err := c.do(ctx, http.MethodPost, c.observatoriesURL, observatory, nil); err != nil {
		return result.Err[string](err)
	}

	log.Debugf("Created observatory %s", observatory.OBID)
	return result.Ok(observatory.OBID)
}

func (c *jubClient) GetObservatory(ctx context.Context, obid string) result.Result[*dto.Observatory] {
	url := fmt.Sprintf("%s/%s", c.observatoriesURL, obid)

	var observatory dto.Observatory
	if err := c.do(ctx, http.MethodGet, url, nil, &observatory); err != nil {
		return result.Err[*dto.Observatory](err)
	}
	return result.Ok(&observatory)
}

func (c *jubClient) GetObservatories(ctx context.Context, skip, limit int) result.Result[[]dto.Observatory] {
	url := fmt.Sprintf("%s?skip=%d&limit=%d", c.observatoriesURL, skip, limit)

	var observatories []dto.Observatory
	if err := c.do(ctx, http.MethodGet, url, nil, &observatories); err != nil {
		return result.Err[[]dto.Observatory](err)
	}
	return result.Ok(observatories)
}

func (c *jubClient) UpdateObservatoryCatalogs(ctx context.Context, obid string, refs []dto.LevelRef) result.Result[string] {
	url := fmt.Sprintf("%s/%s", c.observatoriesURL, obid)

	if err := c.do(ctx, http.MethodPost, url, refs, nil); err != nil {
		return result.Err[string](err)
	}

	log.Debugf("Updated catalogs of observatory %s", obid)
	return result.Ok(obid)
}

func (c *jubClient) DeleteObservatory(ctx context.Context, obid string) result.Result[string] {
	url := fmt.Sprintf("%s/%s", c.observatoriesURL, obid)

	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return result.Err[string](err)
	}
	return result.Ok(obid)
}

func (c *jubClient) CreateCatalog(ctx context.Context, catalog *dto.Catalog) result.Result[string] {
	if catalog.CID == "" {
		cid, err := c.newID()
		if err != nil {
			return result.Err[string](err)
		}
		catalog.CID = cid
	}

	if err := c.do(ctx, http.MethodPost, c.catalogsURL, catalog, nil); err != nil {
		return result.Err[string](err)
	}

	log.Debugf("Created catalog %s", catalog.CID)
	return result.Ok(catalog.CID)
}

func (c *jubClient) GetCatalog(ctx context.Context, cid string) result.Result[*dto.Catalog] {
	url := fmt.Sprintf("%s/%s", c.catalogsURL, cid)

	var catalog dto.Catalog
	if err := c.do(ctx, http.MethodGet, url, nil, &catalog); err != nil {
		return result.Err[*dto.Catalog](err)
	}
	return result.Ok(&catalog)
}

func (c *jubClient) GetCatalogs(ctx context.Context) result.Result[[]dto.Catalog] {
	start := time.Now()

	var catalogs []dto.Catalog
	if err := c.do(ctx, http.MethodGet, c.catalogsURL, nil, &catalogs); err != nil {
		return result.Err[[]dto.Catalog](err)
	}

	log.WithFields(log.Fields{
		"event":         "GET.CATALOGS",
		"url":           c.catalogsURL,
		"response_time": time.Since(start).Seconds(),
	}).Info("Fetched catalog listing")

	return result.Ok(catalogs)
}

func (c *jubClient) DeleteCatalog(ctx context.Context, cid string) result.Result[string] {
	url := fmt.Sprintf("%s/%s", c.catalogsURL, cid)

	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return result.Err[string](err)
	}
	return result.Ok(cid)
}

func (c *jubClient) CreateProducts(ctx context.Context, products []dto.Product) result.Result[[]string] {
	pids := make([]string, len(products))
	for i := range products {
		if products[i].PID == "" {
			pid, err := c.newID()
			if err != nil {
				return result.Err[[]string](err)
			}
			products[i].PID = pid
		}
		pids[i] = products[i].PID
	}

	if err := c.do(ctx, http.MethodPost, c.productsURL, products, nil); err != nil {
		return result.Err[[]string](err)
	}

	log.Debugf("Created %d products", len(products))
	return result.Ok(pids)
}

func (c *jubClient) GetProducts(ctx context.Context, skip, limit int) result.Result[[]dto.Product] {
	url := fmt.Sprintf("%s?skip=%d&limit=%d", c.productsURL, skip, limit)

	var products []dto.Product
	if err := c.do(ctx, http.MethodGet, url, nil, &products); err != nil {
		return result.Err[[]dto.Product](err)
	}
	return result.Ok(products)
}

func (c *jubClient) QueryProducts(ctx context.Context, obid string, filter dto.ProductFilter, skip, limit int) result.Result[[]dto.Product] {
	url := fmt.Sprintf("%s/%s/products/nid?skip=%d&limit=%d", c.observatoriesURL, obid, skip, limit)

	var products []dto.Product
	if err := c.do(ctx, http.MethodPost, url, filter, &products); err != nil {
		return result.Err[[]dto.Product](err)
	}
	return result.Ok(products)
}

func (c *jubClient) DeleteProduct(ctx context.Context, pid string) result.Result[string] {
	url := fmt.Sprintf("%s/%s", c.productsURL, pid)

	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return result.Err[string](err)
	}
	return result.Ok(pid)
}

func (c *jubClient) newID() (string, error) {
	id, err := gonanoid.Generate(c.config.IDAlphabet, c.config.IDSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate resource id: %w", err)
	}
	return id, nil
}

// do issues one HTTP call and maps the outcome: transport failures become a
// *TransportError, non-2xx responses a *APIError. When out is non-nil the
// 2xx response body is decoded into it.
func (c *jubClient) do(ctx context.Context, method, url string, body, out any) error {
	c.rl.Take()

	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}

	var resp *resty.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = req.Get(url)
	case http.MethodPost:
		resp, err = req.Post(url)
	case http.MethodDelete:
		resp, err = req.Delete(url)
	default:
		return fmt.Errorf("unsupported HTTP method %s", method)
	}

	if err != nil {
		return &TransportError{URL: url, Err: err}
	}

	if resp.IsError() {
		return newAPIError(url, resp)
	}

	if out != nil {
		if err := json.Unmarshal([]byte(resp.String()), out); err != nil {
			return &APIError{
				URL:        url,
				StatusCode: resp.StatusCode(),
				Status:     resp.Status(),
				Message:    fmt.Sprintf("failed to decode response body: %v", err),
			}
		}
	}

	return nil
}

func newAPIError(url string, resp *resty.Response) *APIError {
	apiErr := &APIError{
		URL:        url,
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
	}

	raw := resp.String()
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err == nil {
		apiErr.Body = body
	} else {
		apiErr.Message = raw
	}
	return apiErr
}
