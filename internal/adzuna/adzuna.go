package adzuna

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL = "https://api.adzuna.com/v1/api/jobs"
	// Fixed page size for search requests. Only the first page is fetched.
	perPage = 20
)

// supportedCountries lists the country codes Adzuna exposes a search
// endpoint for.
var supportedCountries = []string{
	"gb", "us", "au", "br", "ca", "de", "fr", "in", "it", "nl", "nz", "pl", "ru", "sg", "za",
}

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	appID      string
	appKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, appID, appKey string) *Client {
	return &Client{
		ctx:    ctx,
		appID:  appID,
		appKey: appKey,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Search requests the first page of postings for the given params.
func (c *Client) Search(params *SearchParams) (*SearchResult, error) {
	return c.search(params)
}

// Countries returns the supported country codes in their display order.
func Countries() []string {
	out := make([]string, len(supportedCountries))
	copy(out, supportedCountries)
	return out
}

func IsSupportedCountry(code string) bool {
	for _, c := range supportedCountries {
		if c == code {
			return true
		}
	}
	return false
}
