// Package rebrickable imports the Star Wars catalog from the Rebrickable
// v3 API into the local sets and minifigures tables. It is run as a
// one-shot process; upserts keep re-runs idempotent.
package rebrickable

import (
	"context"       // Request cancellation
	"encoding/json" // Response decoding
	"fmt"           // Error wrapping
	"net/http"      // Outbound API calls
	"net/url"       // Query building
	"strconv"       // Query values
	"time"          // Inter-page delay

	"brickfolio/internal/domain" // Catalog models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert support
)

// API parameters
const (
	BaseURL         = "https://rebrickable.com/api/v3/lego" // Rebrickable v3 root
	StarWarsThemeID = 158                                   // Theme filter for the import
	pageSize        = 50                                    // Items per page, keeps the API happy
	pageDelay       = 500 * time.Millisecond                // Pause between pages
)

// Client talks to the Rebrickable API
type Client struct {
	apiKey     string       // API key, passed as a query parameter
	baseURL    string       // Overridable for tests
	httpClient *http.Client // Shared HTTP client
}

// NewClient builds a client with a sane request timeout
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    BaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// apiSet is the wire shape of a Rebrickable set
type apiSet struct {
	SetNum   string  `json:"set_num"`     // External catalog code
	Name     string  `json:"name"`        // Set name
	Year     int     `json:"year"`        // Release year
	NumParts int     `json:"num_parts"`   // Piece count
	ImgURL   *string `json:"set_img_url"` // Image URL
}

// apiMinifig is the wire shape of a Rebrickable minifigure
type apiMinifig struct {
	SetNum   string  `json:"set_num"`     // External catalog code
	Name     string  `json:"name"`        // Minifigure name
	NumParts int     `json:"num_parts"`   // Used as appearance proxy
	ImgURL   *string `json:"set_img_url"` // Image URL
}

// page is the generic paged response envelope
type page[T any] struct {
	Next    *string `json:"next"`    // URL of the next page, nil on the last
	Results []T     `json:"results"` // Items on this page
}

// fetchPage performs one GET against a listing endpoint
func fetchPage[T any](ctx context.Context, c *Client, path string, pageNum int, extra url.Values) (*page[T], error) {
	q := url.Values{}
	q.Set("key", c.apiKey)                       // Auth
	q.Set("page", strconv.Itoa(pageNum))         // Page number
	q.Set("page_size", strconv.Itoa(pageSize))   // Batch size
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v) // Endpoint-specific filters
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rebrickable: unexpected status %d for %s", resp.StatusCode, path)
	}
	var out page[T]
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportSets walks every Star Wars set page and upserts rows keyed by the
// external set code. Returns the number of rows imported.
func (c *Client) ImportSets(ctx context.Context, db *gorm.DB) (int, error) {
	logrus.Info("Importing Star Wars sets")
	total := 0
	filters := url.Values{"theme_id": {strconv.Itoa(StarWarsThemeID)}}
	for pageNum := 1; ; pageNum++ {
		p, err := fetchPage[apiSet](ctx, c, "/sets/", pageNum, filters)
		if err != nil {
			return total, err
		}
		if len(p.Results) == 0 {
			break // Past the last page
		}
		for _, s := range p.Results {
			year := s.Year
			set := domain.Set{
				SetID:   s.SetNum,          // External catalog code
				Name:    s.Name,            // Set name
				Year:    &year,             // Release year
				Pieces:  &s.NumParts,       // Piece count
				Image:   s.ImgURL,          // Image URL
				Retired: s.Year < 2020,     // Pre-2020 sets are retired
				// price_usd stays NULL; the pricing batch fills it later
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "set_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "year", "pieces", "image", "retired"}),
			}).Create(&set).Error
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"set_id": s.SetNum,    // External catalog code
					"error":  err.Error(), // Error message
				}).Error("Set upsert failed")
				continue // One bad row must not abort the import
			}
			total++
		}
		if p.Next == nil {
			break // Last page
		}
		// Pause so the import does not hammer the API
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case <-time.After(pageDelay):
		}
	}
	logrus.WithField("total", total).Info("Set import completed")
	return total, nil
}

// ImportMinifigures walks every Star Wars minifigure page and upserts rows
// keyed by the external minifigure code
func (c *Client) ImportMinifigures(ctx context.Context, db *gorm.DB) (int, error) {
	logrus.Info("Importing Star Wars minifigures")
	total := 0
	filters := url.Values{"in_theme_id": {strconv.Itoa(StarWarsThemeID)}}
	for pageNum := 1; ; pageNum++ {
		p, err := fetchPage[apiMinifig](ctx, c, "/minifigs/", pageNum, filters)
		if err != nil {
			return total, err
		}
		if len(p.Results) == 0 {
			break
		}
		for _, m := range p.Results {
			appearances := m.NumParts
			minifig := domain.Minifigure{
				MinifigID:   m.SetNum,     // External catalog code
				Name:        m.Name,       // Minifigure name
				Appearances: &appearances, // Appearance count
				Image:       m.ImgURL,     // Image URL
				// year stays NULL here; the pricing batch recovers it from the id
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "minifig_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "appearances", "image"}),
			}).Create(&minifig).Error
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"minifig_id": m.SetNum,    // External catalog code
					"error":      err.Error(), // Error message
				}).Error("Minifigure upsert failed")
				continue
			}
			total++
		}
		if p.Next == nil {
			break
		}
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case <-time.After(pageDelay):
		}
	}
	logrus.WithField("total", total).Info("Minifigure import completed")
	return total, nil
}
