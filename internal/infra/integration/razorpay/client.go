package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xavierca1/leadrunner/internal/usecase"
)

// Client cria payment links pros leads IN, com basic auth key/secret.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		baseURL:   "https://api.razorpay.com/v1",
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreatePaymentLink(ctx context.Context, input usecase.PaymentLinkInput) (usecase.PaymentLink, error) {
	payload := paymentLinkRequest{
		Amount:      int64(input.Amount) * 100, // rúpias -> paise
		Currency:    "INR",
		Description: "Consulting services for " + input.Company,
		Customer: customer{
			Name:  input.Name,
			Email: input.Email,
		},
		Notes: map[string]string{"lead_id": input.LeadID},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return usecase.PaymentLink{}, fmt.Errorf("failed to marshal razorpay payload: %w", err)
	}

	url := fmt.Sprintf("%s/payment_links", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return usecase.PaymentLink{}, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return usecase.PaymentLink{}, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return usecase.PaymentLink{}, fmt.Errorf("razorpay rejected the link (status %d): %s", resp.StatusCode, string(body))
	}

	var result paymentLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return usecase.PaymentLink{}, fmt.Errorf("failed to decode razorpay response: %w", err)
	}

	return usecase.PaymentLink{URL: result.ShortURL, Ref: result.ID}, nil
}
