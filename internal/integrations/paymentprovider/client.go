package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// Client клиент платежного провайдера.
// Сессии адресуются reference (ID бронирования), поэтому отдельный session id хранить не нужно.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreatePaymentIntent создает платежную сессию и возвращает ссылку на оплату
func (c *Client) CreatePaymentIntent(ctx context.Context, amount domain.Money, reference string) (string, error) {
	body, err := json.Marshal(createIntentRequest{
		AmountMinor: amount.MinorUnits(),
		Currency:    amount.Currency(),
		Reference:   reference,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment-intents", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("PaymentProvider: create intent for reference=%s failed: %v", reference, err)
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusCreated, http.StatusOK); err != nil {
		c.log.Error("PaymentProvider: create intent for reference=%s rejected: %v", reference, err)
		return "", err
	}

	var intent createIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if intent.Link == "" {
		return "", fmt.Errorf("%w: empty payment link", ErrInvalidResponse)
	}

	c.log.Info("PaymentProvider: created intent session=%s for reference=%s amount=%s", intent.SessionID, reference, amount)
	return intent.Link, nil
}

// VerifyPayment true, если сессия оплачена
func (c *Client) VerifyPayment(ctx context.Context, sessionID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/v1/payment-intents/%s", c.baseURL, url.PathEscape(sessionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("PaymentProvider: verify session=%s failed: %v", sessionID, err)
		return false, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return false, err
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("PaymentProvider: session=%s status=%s", sessionID, session.Status)
	return session.Status == statusPaid, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func checkStatus(resp *http.Response, expected ...int) error {
	for _, code := range expected {
		if resp.StatusCode == code {
			return nil
		}
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
}
