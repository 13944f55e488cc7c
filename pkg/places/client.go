// Package places provides a thin client for the Google Places API (v1),
// scoped to the lookups the audit pipeline needs: text search and place
// detail with reviews and photos.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

const (
	searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.rating,places.userRatingCount"
	detailFieldMask = "id,displayName,formattedAddress,nationalPhoneNumber,websiteUri,rating,userRatingCount," +
		"types,editorialSummary,regularOpeningHours,pureServiceAreaBusiness,photos,reviews," +
		"takeout,delivery,dineIn,curbsidePickup"
)

// Client performs Google Places API operations.
type Client interface {
	TextSearch(ctx context.Context, query string) (*TextSearchResponse, error)
	GetPlace(ctx context.Context, placeID string) (*Place, error)
}

// TextSearchResponse is the response from Places Text Search.
type TextSearchResponse struct {
	Places []PlaceSummary `json:"places"`
}

// PlaceSummary is the short form of a place returned by text search.
type PlaceSummary struct {
	ID               string      `json:"id"`
	DisplayName      DisplayName `json:"displayName"`
	FormattedAddress string      `json:"formattedAddress"`
	Rating           float64     `json:"rating"`
	UserRatingCount  int         `json:"userRatingCount"`
}

// Place is the detail view of a business profile.
type Place struct {
	ID                      string        `json:"id"`
	DisplayName             DisplayName   `json:"displayName"`
	FormattedAddress        string        `json:"formattedAddress"`
	NationalPhoneNumber     string        `json:"nationalPhoneNumber"`
	WebsiteURI              string        `json:"websiteUri"`
	Rating                  float64       `json:"rating"`
	UserRatingCount         int           `json:"userRatingCount"`
	Types                   []string      `json:"types"`
	EditorialSummary        *Localized    `json:"editorialSummary,omitempty"`
	RegularOpeningHours     *OpeningHours `json:"regularOpeningHours,omitempty"`
	PureServiceAreaBusiness bool          `json:"pureServiceAreaBusiness"`
	Photos                  []Photo       `json:"photos"`
	Reviews                 []Review      `json:"reviews"`
	Takeout                 *bool         `json:"takeout,omitempty"`
	Delivery                *bool         `json:"delivery,omitempty"`
	DineIn                  *bool         `json:"dineIn,omitempty"`
	CurbsidePickup          *bool         `json:"curbsidePickup,omitempty"`
}

// HasServiceOptions reports whether the profile declares any service
// option attributes (takeout, delivery, dine-in, curbside pickup).
func (p *Place) HasServiceOptions() bool {
	return p.Takeout != nil || p.Delivery != nil || p.DineIn != nil || p.CurbsidePickup != nil
}

// DisplayName holds the place's display name.
type DisplayName struct {
	Text string `json:"text"`
}

// Localized is a language-tagged text value.
type Localized struct {
	Text string `json:"text"`
}

// OpeningHours holds the weekly schedule. Only presence matters to the
// audit, so the period detail is left opaque.
type OpeningHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

// Photo is a single profile photo reference.
type Photo struct {
	Name string `json:"name"`
}

// Review is a single customer review on the profile.
type Review struct {
	Rating                         float64        `json:"rating"`
	Text                           *Localized     `json:"text,omitempty"`
	PublishTime                    time.Time      `json:"publishTime"`
	RelativePublishTimeDescription string         `json:"relativePublishTimeDescription"`
	OwnerResponse                  *OwnerResponse `json:"ownerResponse,omitempty"`
}

// OwnerResponse is the business owner's reply to a review, when present.
type OwnerResponse struct {
	Text        string    `json:"text"`
	PublishTime time.Time `json:"publishTime"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets a per-second rate limit for Places API calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Google Places API client. Calls are throttled to
// 5 req/s by default.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

type textSearchRequest struct {
	TextQuery string `json:"textQuery"`
	PageSize  int    `json:"pageSize"`
}

func (c *httpClient) TextSearch(ctx context.Context, query string) (*TextSearchResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: rate limit")
	}

	body, err := json.Marshal(textSearchRequest{TextQuery: query, PageSize: 5})
	if err != nil {
		return nil, eris.Wrap(err, "places: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)

	var result TextSearchResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) GetPlace(ctx context.Context, placeID string) (*Place, error) {
	if placeID == "" {
		return nil, eris.New("places: place id is required")
	}
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/places/"+url.PathEscape(placeID), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", detailFieldMask)

	var result Place
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do executes the request and decodes a 200 response into out.
func (c *httpClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "places: unmarshal response")
	}
	return nil
}
