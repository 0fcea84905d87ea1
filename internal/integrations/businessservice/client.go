package businessservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с BusinessService (владелец бизнесов, услуг и сотрудников)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BusinessService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusiness получает бизнес вместе с расписанием работы
func (c *Client) GetBusiness(ctx context.Context, businessID string) (*Business, error) {
	var business Business
	path := fmt.Sprintf("/internal/businesses/%s", url.PathEscape(businessID))
	if err := c.get(ctx, path, ErrBusinessNotFound, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

// GetService получает услугу бизнеса
func (c *Client) GetService(ctx context.Context, businessID, serviceID string) (*Service, error) {
	var service Service
	path := fmt.Sprintf("/internal/businesses/%s/services/%s", url.PathEscape(businessID), url.PathEscape(serviceID))
	if err := c.get(ctx, path, ErrServiceNotFound, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// GetProvider получает сотрудника бизнеса
func (c *Client) GetProvider(ctx context.Context, businessID, providerID string) (*Provider, error) {
	var provider Provider
	path := fmt.Sprintf("/internal/businesses/%s/providers/%s", url.PathEscape(businessID), url.PathEscape(providerID))
	if err := c.get(ctx, path, ErrProviderNotFound, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// get выполняет GET запрос; 404 превращается в notFoundErr
func (c *Client) get(ctx context.Context, path string, notFoundErr error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("BusinessService request GET %s failed: %v", path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	case http.StatusBadRequest:
		return fmt.Errorf("%w: bad request: %s", ErrInvalidResponse, readError(resp.Body))
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, readError(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// readError достает message из ErrorResponse, иначе возвращает тело как есть
func readError(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(data)
}

// IsNotFound возвращает true для любой ошибки "не найдено" этого клиента
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBusinessNotFound) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrProviderNotFound)
}
