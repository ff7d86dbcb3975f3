package edge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the Supabase edge functions that own payment processing,
// referral bookkeeping, and password resets. Those stay server-side behind the
// hosted backend; this client never reimplements them.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type PaymentIntentRequest struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Email       string `json:"email"`
}

type PaymentIntentResult struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
}

type VerifyPaymentResult struct {
	IntentID string `json:"intent_id"`
	OrderID  string `json:"order_id"`
	Paid     bool   `json:"paid"`
}

type ReferralResult struct {
	Code    string `json:"code"`
	Valid   bool   `json:"valid"`
	Credits int64  `json:"credits"`
}

func (c *Client) post(function string, reqBody, result interface{}) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/" + function
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s failed: status %d, body: %s", function, resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) CreatePaymentIntent(orderID string, amountCents int64, email string) (*PaymentIntentResult, error) {
	var result PaymentIntentResult
	err := c.post("create-payment-intent", PaymentIntentRequest{
		OrderID:     orderID,
		AmountCents: amountCents,
		Email:       email,
	}, &result)
	if err != nil {
		return nil, err
	}
	if result.ClientSecret == "" {
		return nil, fmt.Errorf("client_secret is empty in response")
	}
	return &result, nil
}

func (c *Client) VerifyPayment(intentID string) (*VerifyPaymentResult, error) {
	var result VerifyPaymentResult
	err := c.post("verify-payment", map[string]string{"intent_id": intentID}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) TriggerPasswordReset(email string) error {
	return c.post("reset-password", map[string]string{"email": email}, nil)
}

func (c *Client) ProcessReferral(code, userID string) (*ReferralResult, error) {
	var result ReferralResult
	err := c.post("process-referral", map[string]string{
		"code":    code,
		"user_id": userID,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func (c *Client) RetryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
