// Package marketfeed provides a client for the external quote provider
package marketfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/foliohq/folio/internal/common"
	"github.com/foliohq/folio/internal/interfaces"
	"github.com/foliohq/folio/internal/models"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
// The provider returns "N/A" or an empty string for missing numerics.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the QuoteClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	format     SymbolFormatter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithSymbolFormatter sets the symbol formatting strategy applied to
// every request.
func WithSymbolFormatter(f SymbolFormatter) ClientOption {
	return func(c *Client) {
		c.format = f
	}
}

// NewClient creates a new quote provider client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
		format:  PassthroughFormatter,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a provider API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quote provider error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("quote provider request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// quoteResponse is the raw real-time quote shape
type quoteResponse struct {
	Code          string      `json:"code"`
	Timestamp     int64       `json:"timestamp"`
	Open          flexFloat64 `json:"open"`
	High          flexFloat64 `json:"high"`
	Low           flexFloat64 `json:"low"`
	Close         flexFloat64 `json:"close"`
	PreviousClose flexFloat64 `json:"previousClose"`
	Change        flexFloat64 `json:"change"`
	ChangePct     flexFloat64 `json:"change_p"`
	Volume        flexFloat64 `json:"volume"`
	MarketCap     flexFloat64 `json:"marketCap"`
}

// GetQuote retrieves the current price snapshot for a symbol
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.RealTimeQuote, error) {
	ticker := c.format(symbol)
	path := fmt.Sprintf("/real-time/%s", ticker)

	var resp quoteResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	return &models.RealTimeQuote{
		Code:          resp.Code,
		Open:          float64(resp.Open),
		High:          float64(resp.High),
		Low:           float64(resp.Low),
		Close:         float64(resp.Close),
		PreviousClose: float64(resp.PreviousClose),
		Change:        float64(resp.Change),
		ChangePct:     float64(resp.ChangePct),
		Volume:        int64(resp.Volume),
		MarketCap:     float64(resp.MarketCap),
		Timestamp:     time.Unix(resp.Timestamp, 0),
	}, nil
}

// companyResponse is the raw company info shape
type companyResponse struct {
	General struct {
		Code         string `json:"Code"`
		Name         string `json:"Name"`
		Sector       string `json:"Sector"`
		Industry     string `json:"Industry"`
		CurrencyCode string `json:"CurrencyCode"`
	} `json:"General"`
	Highlights struct {
		MarketCapitalization flexFloat64 `json:"MarketCapitalization"`
		PERatio              flexFloat64 `json:"PERatio"`
		EarningsShare        flexFloat64 `json:"EarningsShare"`
		DividendYield        flexFloat64 `json:"DividendYield"`
	} `json:"Highlights"`
	Valuation struct {
		PriceBookMRQ flexFloat64 `json:"PriceBookMRQ"`
	} `json:"Valuation"`
	SharesStats struct {
		SharesOutstanding flexFloat64 `json:"SharesOutstanding"`
	} `json:"SharesStats"`
	Technicals struct {
		Beta       flexFloat64 `json:"Beta"`
		WeekHigh52 flexFloat64 `json:"52WeekHigh"`
		WeekLow52  flexFloat64 `json:"52WeekLow"`
	} `json:"Technicals"`
}

// GetCompanyInfo retrieves company metadata and fundamentals
func (c *Client) GetCompanyInfo(ctx context.Context, symbol string) (*models.CompanyInfo, error) {
	ticker := c.format(symbol)
	path := fmt.Sprintf("/fundamentals/%s", ticker)

	var resp companyResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	return &models.CompanyInfo{
		Symbol:            symbol,
		Name:              resp.General.Name,
		Sector:            resp.General.Sector,
		Industry:          resp.General.Industry,
		Currency:          resp.General.CurrencyCode,
		PE:                float64(resp.Highlights.PERatio),
		PB:                float64(resp.Valuation.PriceBookMRQ),
		EPS:               float64(resp.Highlights.EarningsShare),
		DividendYield:     float64(resp.Highlights.DividendYield),
		Beta:              float64(resp.Technicals.Beta),
		SharesOutstanding: int64(resp.SharesStats.SharesOutstanding),
		MarketCap:         float64(resp.Highlights.MarketCapitalization),
		High52Week:        float64(resp.Technicals.WeekHigh52),
		Low52Week:         float64(resp.Technicals.WeekLow52),
		LastUpdated:       time.Now(),
	}, nil
}

// GetSummary retrieves the highlights-only summary, the cheap second
// source for market capitalization.
func (c *Client) GetSummary(ctx context.Context, symbol string) (*models.SummaryInfo, error) {
	ticker := c.format(symbol)
	path := fmt.Sprintf("/fundamentals/%s", ticker)

	params := url.Values{}
	params.Set("filter", "Highlights")

	var resp struct {
		MarketCapitalization flexFloat64 `json:"MarketCapitalization"`
	}
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	return &models.SummaryInfo{
		Symbol:    symbol,
		MarketCap: float64(resp.MarketCapitalization),
	}, nil
}

// barResponse is the raw EOD bar shape
type barResponse struct {
	Date          string      `json:"date"`
	Open          flexFloat64 `json:"open"`
	High          flexFloat64 `json:"high"`
	Low           flexFloat64 `json:"low"`
	Close         *float64    `json:"close"` // nil on holiday/sparse gaps
	AdjustedClose flexFloat64 `json:"adjusted_close"`
	Volume        int64       `json:"volume"`
}

// GetHistory retrieves ordered (oldest to newest) OHLCV bars. Bars with
// a null close are dropped; the provider emits them on holiday gaps.
func (c *Client) GetHistory(ctx context.Context, symbol string, opts ...interfaces.HistoryOption) (*models.HistoryResponse, error) {
	params := &interfaces.HistoryParams{
		Period: "d",
	}
	for _, opt := range opts {
		opt(params)
	}

	urlParams := url.Values{}
	urlParams.Set("period", params.Period)
	urlParams.Set("order", "a") // ascending, oldest first

	if !params.From.IsZero() {
		urlParams.Set("from", params.From.Format("2006-01-02"))
	}
	if !params.To.IsZero() {
		urlParams.Set("to", params.To.Format("2006-01-02"))
	}

	ticker := c.format(symbol)
	path := fmt.Sprintf("/eod/%s", ticker)

	var bars []barResponse
	if err := c.get(ctx, path, urlParams, &bars); err != nil {
		return nil, err
	}

	result := &models.HistoryResponse{
		Data: make([]models.PriceBar, 0, len(bars)),
	}
	for _, bar := range bars {
		if bar.Close == nil {
			continue
		}
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			continue
		}
		result.Data = append(result.Data, models.PriceBar{
			Date:     date,
			Open:     float64(bar.Open),
			High:     float64(bar.High),
			Low:      float64(bar.Low),
			Close:    *bar.Close,
			AdjClose: float64(bar.AdjustedClose),
			Volume:   bar.Volume,
		})
	}

	return result, nil
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
