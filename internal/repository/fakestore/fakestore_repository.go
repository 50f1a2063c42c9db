package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"myFitLane/domain"
	"myFitLane/pkg/metrics"
	"net/http"
	"time"
)

type FakeStoreConfig struct {
	BaseURL string
	Timeout time.Duration
}

// FakeStoreRepository talks to the fakestoreapi-compatible demo API that
// backs the catalog and the login flow.
type FakeStoreRepository struct {
	cfg    FakeStoreConfig
	client *http.Client
}

func NewFakeStoreRepository(cfg FakeStoreConfig) *FakeStoreRepository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &FakeStoreRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (r *FakeStoreRepository) FetchProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	url := fmt.Sprintf("%s/products?limit=%d", r.cfg.BaseURL, limit)

	var products []domain.Product
	if err := r.getJSON(ctx, url, &products); err != nil {
		metrics.UpstreamFetchTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	metrics.UpstreamFetchTotal.WithLabelValues("success").Inc()
	return products, nil
}

func (r *FakeStoreRepository) FetchCategories(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/products/categories", r.cfg.BaseURL)

	var categories []string
	if err := r.getJSON(ctx, url, &categories); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	return categories, nil
}

// Login exchanges credentials for the upstream's token. The token itself is
// only proof of a successful login; the service issues its own session JWT.
func (r *FakeStoreRepository) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("marshal login payload: %w", err)
	}

	url := fmt.Sprintf("%s/auth/login", r.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream login: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upstream login: unexpected status %d", res.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("upstream login: empty token")
	}

	return out.Token, nil
}

func (r *FakeStoreRepository) GetUser(ctx context.Context, id int) (domain.UpstreamUser, error) {
	url := fmt.Sprintf("%s/users/%d", r.cfg.BaseURL, id)

	var user domain.UpstreamUser
	if err := r.getJSON(ctx, url, &user); err != nil {
		return domain.UpstreamUser{}, fmt.Errorf("fetch user: %w", err)
	}

	return user, nil
}

func (r *FakeStoreRepository) UpdateUser(ctx context.Context, id int, user domain.UpstreamUser) (domain.UpstreamUser, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return domain.UpstreamUser{}, fmt.Errorf("marshal user payload: %w", err)
	}

	url := fmt.Sprintf("%s/users/%d", r.cfg.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return domain.UpstreamUser{}, fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return domain.UpstreamUser{}, fmt.Errorf("upstream update user: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return domain.UpstreamUser{}, fmt.Errorf("upstream update user: unexpected status %d", res.StatusCode)
	}

	var updated domain.UpstreamUser
	if err := json.NewDecoder(res.Body).Decode(&updated); err != nil {
		return domain.UpstreamUser{}, fmt.Errorf("decode update response: %w", err)
	}

	return updated, nil
}

func (r *FakeStoreRepository) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
