package adzuna

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

type SearchParams struct {
	Query    string `yaml:"query"`
	Location string `yaml:"location"`
	Country  string `yaml:"country"`
}

func (c *Client) search(params *SearchParams) (*SearchResult, error) {
	country := params.Country
	if !IsSupportedCountry(country) {
		return nil, fmt.Errorf("unsupported country code: %q", country)
	}

	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("results_per_page", strconv.Itoa(perPage))
	q.Set("what", params.Query)
	q.Set("where", params.Location)
	q.Set("content-type", contentType)

	searchURL := fmt.Sprintf("%s/%s/search/1", c.APIURL, country)

	var raw map[string]any
	if err := c.getJSON(searchURL, q, &raw); err != nil {
		return nil, err
	}

	// Postings carry optional fields only. Decoding the parsed body through
	// mapstructure keeps absent keys as zero values instead of failing.
	var result SearchResult
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &result,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	c.logger.Debug("got response from adzuna",
		zap.String("query", params.Query),
		zap.Int("postings", result.Len()),
	)

	return &result, nil
}

func (c *Client) getJSON(rawURL string, q url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	// credentials travel in the query string, log the bare endpoint only
	c.logger.Debug("make request", zap.String("url", rawURL))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return err
	}

	return nil
}
