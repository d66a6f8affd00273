package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/leadrunner/internal/entity"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

const searchPageSize = 100

// revenueBounds traduz o filtro do dashboard pras faixas do Apollo.
var revenueBounds = map[string][2]int64{
	"0-1M":    {0, 1_000_000},
	"1M-10M":  {1_000_000, 10_000_000},
	"10M-50M": {10_000_000, 50_000_000},
	"50M+":    {50_000_000, 0},
}

// Search consulta o mixed_people/search e mapeia cada pessoa num Lead
// novo (status New, source Apollo.io).
func (c *Client) Search(ctx context.Context, country entity.Country, industry, revenue string) ([]*entity.Lead, error) {
	payload := searchRequest{
		APIKey:   c.apiKey,
		Page:     1,
		PerPage:  searchPageSize,
		Country:  string(country),
		Industry: industry,
		Titles:   []string{"owner"},
	}
	if bounds, ok := revenueBounds[revenue]; ok {
		payload.RevenueMin = bounds[0]
		payload.RevenueMax = bounds[1]
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal apollo query: %w", err)
	}

	url := fmt.Sprintf("%s/mixed_people/search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apollo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("apollo rejected the search (status %d): %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode apollo response: %w", err)
	}

	leads := make([]*entity.Lead, 0, len(result.People))
	for _, p := range result.People {
		if p.Email == "" {
			continue // sem email não tem outreach
		}
		leads = append(leads, mapLead(p, country))
	}
	return leads, nil
}

func mapLead(p person, country entity.Country) *entity.Lead {
	now := time.Now()
	return &entity.Lead{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(p.FirstName + " " + p.LastName),
		Company:     p.Organization.Name,
		Title:       p.Title,
		Email:       p.Email,
		Phone:       p.Phone,
		Industry:    p.Organization.Industry,
		CompanySize: p.Organization.EmployeeCount,
		Country:     country,
		Status:      entity.StatusNew,
		Source:      "Apollo.io",
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
