// Package nominatim implements the reverse-geocoding port against a
// Nominatim server. Calls are never retried; a failure degrades the
// narrative to the coordinate form upstream.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New requires a contact identifier; Nominatim's usage policy rejects
// anonymous clients.
func New(baseURL, contact string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  contact,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		Village       string `json:"village"`
		CityDistrict  string `json:"city_district"`
		Town          string `json:"town"`
		City          string `json:"city"`
		County        string `json:"county"`
		State         string `json:"state"`
		Road          string `json:"road"`
	} `json:"address"`
}

func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*domain.Address, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("zoom", "14")
	params.Set("addressdetails", "1")
	params.Set("accept-language", "id")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create reverse request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim reverse request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("nominatim reverse status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode reverse response: %w", err)
	}

	return &domain.Address{
		Neighbourhood: payload.Address.Neighbourhood,
		Suburb:        payload.Address.Suburb,
		Village:       payload.Address.Village,
		CityDistrict:  payload.Address.CityDistrict,
		Town:          payload.Address.Town,
		City:          payload.Address.City,
		County:        payload.Address.County,
		State:         payload.Address.State,
		Road:          payload.Address.Road,
		DisplayName:   payload.DisplayName,
	}, nil
}
