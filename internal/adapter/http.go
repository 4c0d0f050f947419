package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-envstore/internal/config"
	"github.com/MKhiriev/go-envstore/internal/logger"
	"github.com/MKhiriev/go-envstore/internal/registry"
)

type httpRegistryAdapter struct {
	client *resty.Client

	logger *logger.Logger
}

// environmentBody matches the server's environment and load responses.
type environmentBody struct {
	Environment string `json:"environment"`
}

// extendBody matches the server's extend request.
type extendBody struct {
	Extends []string `json:"extends"`
}

// NewHTTPRegistryAdapter constructs an HTTP/REST implementation of
// [RegistryAdapter]. A base URL without a scheme is treated as http.
//
// Returns an error if cfg.RemoteAddress is empty or is not a valid URL.
func NewHTTPRegistryAdapter(cfg config.Adapter, logger *logger.Logger) (RegistryAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.RemoteAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	logger.Debug().Str("base_url", baseURL).Msg("registry adapter created")

	return &httpRegistryAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRegistryAdapter) Environment(ctx context.Context) (string, error) {
	var body environmentBody

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/api/environment")
	if err != nil {
		return "", fmt.Errorf("environment request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return body.Environment, nil
}

func (h *httpRegistryAdapter) Environments(ctx context.Context) ([]string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/environments")
	if err != nil {
		return nil, fmt.Errorf("environments request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var names []string
	if err = json.Unmarshal(resp.Body(), &names); err != nil {
		return nil, fmt.Errorf("decode environments response: %w", err)
	}

	return names, nil
}

func (h *httpRegistryAdapter) Config(ctx context.Context) (registry.Tree, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/config")
	if err != nil {
		return nil, fmt.Errorf("config request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var tree registry.Tree
	if err = json.Unmarshal(resp.Body(), &tree); err != nil {
		return nil, fmt.Errorf("decode config response: %w", err)
	}

	return tree, nil
}

func (h *httpRegistryAdapter) Read(ctx context.Context, key string) (registry.Value, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("key", key).
		Get("/api/config/{key}")
	if err != nil {
		return registry.Value{}, fmt.Errorf("read request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return registry.Value{}, err
	}

	var value registry.Value
	if err = json.Unmarshal(resp.Body(), &value); err != nil {
		return registry.Value{}, fmt.Errorf("decode read response: %w", err)
	}

	return value, nil
}

func (h *httpRegistryAdapter) Set(ctx context.Context, key string, value registry.Value) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("key", key).
		SetBody(value).
		Put("/api/config/{key}")
	if err != nil {
		return fmt.Errorf("set request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRegistryAdapter) Load(ctx context.Context, name string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("name", name).
		Post("/api/environments/{name}/load")
	if err != nil {
		return fmt.Errorf("load request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRegistryAdapter) Extend(ctx context.Context, name string, extendsFrom []string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("name", name).
		SetBody(extendBody{Extends: extendsFrom}).
		Post("/api/environments/{name}/extend")
	if err != nil {
		return fmt.Errorf("extend request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRegistryAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}
