package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/leadrunner/internal/usecase"
)

// Client cria payment links pros leads US. Fluxo da API: product ->
// price -> payment link, tudo form-encoded com bearer da secret key.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		baseURL:   "https://api.stripe.com/v1",
		secretKey: secretKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreatePaymentLink(ctx context.Context, input usecase.PaymentLinkInput) (usecase.PaymentLink, error) {
	company := input.Company
	if company == "" {
		company = "Your Business"
	}

	var product productResponse
	err := c.post(ctx, "/products", url.Values{
		"name":        {"Consulting Services for " + company},
		"description": {"Custom business consulting services"},
	}, &product)
	if err != nil {
		return usecase.PaymentLink{}, err
	}

	var price priceResponse
	err = c.post(ctx, "/prices", url.Values{
		"product":     {product.ID},
		"unit_amount": {strconv.Itoa(input.Amount * 100)}, // dólares -> centavos
		"currency":    {"usd"},
	}, &price)
	if err != nil {
		return usecase.PaymentLink{}, err
	}

	var link paymentLinkResponse
	err = c.post(ctx, "/payment_links", url.Values{
		"line_items[0][price]":    {price.ID},
		"line_items[0][quantity]": {"1"},
		"metadata[lead_id]":       {input.LeadID},
	}, &link)
	if err != nil {
		return usecase.PaymentLink{}, err
	}

	return usecase.PaymentLink{URL: link.URL, Ref: link.ID}, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("stripe rejected %s (status %d): %s", path, resp.StatusCode, apiErr.Error.Message)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
