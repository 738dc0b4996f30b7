package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/FundFlow/internal/model"
	platformhttp "github.com/Alias1177/FundFlow/internal/platform/http"
)

// DefaultDepthLimit is the historical depth cap per side.
const DefaultDepthLimit = 1000

// Client fetches klines and depth snapshots from Binance for both the spot
// and the USD-margined futures market.
type Client struct {
	spotURL    string
	futuresURL string
	httpClient *platformhttp.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Client.
type ClientOptions struct {
	SpotBaseURL    string
	FuturesBaseURL string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new Binance API client.
func NewClient(opts ClientOptions) *Client {
	if opts.SpotBaseURL == "" {
		opts.SpotBaseURL = "https://api.binance.com"
	}
	if opts.FuturesBaseURL == "" {
		opts.FuturesBaseURL = "https://fapi.binance.com"
	}

	return &Client{
		spotURL:    opts.SpotBaseURL,
		futuresURL: opts.FuturesBaseURL,
		httpClient: platformhttp.NewClient(platformhttp.ClientOptions{
			Timeout:        opts.RequestTimeout,
			RequestsPerSec: opts.RequestsPerSec,
		}),
		logger: log.With().Str("component", "binance_client").Logger(),
	}
}

func (c *Client) endpoint(market model.MarketKind, spotPath, futuresPath string) string {
	if market == model.MarketFutures {
		return c.futuresURL + futuresPath
	}
	return c.spotURL + spotPath
}

// GetKlines fetches raw kline rows, oldest first. The last row is the still
// forming candle; callers pass limit+1 when they need `limit` completed bars.
func (c *Client) GetKlines(ctx context.Context, market model.MarketKind, symbol string, interval model.Interval, limit int) ([]model.RawBar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", string(interval))
	q.Set("limit", strconv.Itoa(limit))
	endpoint := c.endpoint(market, "/api/v3/klines", "/fapi/v1/klines") + "?" + q.Encode()

	c.logger.Debug().Str("symbol", symbol).Str("market", string(market)).Int("limit", limit).Msg("Fetching klines")

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching klines for %s %s: %w", symbol, market, err)
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing klines JSON")
		return nil, fmt.Errorf("parsing klines JSON: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty kline response for %s", model.ErrInvalidInput, symbol)
	}

	bars := make([]model.RawBar, 0, len(rows))
	for i, row := range rows {
		bar, err := parseKlineRow(row)
		if err != nil {
			return nil, fmt.Errorf("parsing kline row %d: %w", i, err)
		}
		bars = append(bars, bar)
	}

	c.logger.Debug().Int("count", len(bars)).Msg("Fetched klines")
	return bars, nil
}

// depthResponse matches the Binance depth payload; prices and quantities
// arrive as decimal strings.
type depthResponse struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// GetDepth fetches one order-book snapshot. Bids come sorted descending by
// price, asks ascending, each side capped at limit levels.
func (c *Client) GetDepth(ctx context.Context, market model.MarketKind, symbol string, limit int) (bids, asks []model.PriceLevel, err error) {
	if limit <= 0 {
		limit = DefaultDepthLimit
	}
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("limit", strconv.Itoa(limit))
	endpoint := c.endpoint(market, "/api/v3/depth", "/fapi/v1/depth") + "?" + q.Encode()

	c.logger.Debug().Str("symbol", symbol).Str("market", string(market)).Int("limit", limit).Msg("Fetching depth")

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching depth for %s %s: %w", symbol, market, err)
	}

	var data depthResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing depth JSON")
		return nil, nil, fmt.Errorf("parsing depth JSON: %w", err)
	}

	if bids, err = parseLevels(data.Bids); err != nil {
		return nil, nil, fmt.Errorf("parsing bids: %w", err)
	}
	if asks, err = parseLevels(data.Asks); err != nil {
		return nil, nil, fmt.Errorf("parsing asks: %w", err)
	}

	c.logger.Debug().Int("bids", len(bids)).Int("asks", len(asks)).Msg("Fetched depth")
	return bids, asks, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// parseKlineRow decodes one Binance kline row. The row is a mixed-type
// array: millisecond timestamps as numbers, prices and volumes as strings.
func parseKlineRow(row []json.RawMessage) (model.RawBar, error) {
	// openTime, O, H, L, C, volume, closeTime, quoteVolume, ...
	if len(row) < 8 {
		return model.RawBar{}, fmt.Errorf("%w: kline row has %d fields", model.ErrInvalidInput, len(row))
	}

	var openMs, closeMs int64
	if err := json.Unmarshal(row[0], &openMs); err != nil {
		return model.RawBar{}, fmt.Errorf("open time: %w", err)
	}
	if err := json.Unmarshal(row[6], &closeMs); err != nil {
		return model.RawBar{}, fmt.Errorf("close time: %w", err)
	}

	fields := make([]float64, 6)
	for i, idx := range []int{1, 2, 3, 4, 5, 7} {
		var s string
		if err := json.Unmarshal(row[idx], &s); err != nil {
			return model.RawBar{}, fmt.Errorf("field %d: %w", idx, err)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.RawBar{}, fmt.Errorf("field %d: %w", idx, err)
		}
		fields[i] = v
	}

	return model.RawBar{
		OpenTime:    time.UnixMilli(openMs).UTC(),
		CloseTime:   time.UnixMilli(closeMs).UTC(),
		Open:        fields[0],
		High:        fields[1],
		Low:         fields[2],
		Close:       fields[3],
		Volume:      fields[4],
		QuoteVolume: fields[5],
	}, nil
}

func parseLevels(raw [][]string) ([]model.PriceLevel, error) {
	levels := make([]model.PriceLevel, 0, len(raw))
	for i, pair := range raw {
		if len(pair) < 2 {
			return nil, fmt.Errorf("%w: level %d has %d fields", model.ErrInvalidInput, i, len(pair))
		}
		price, err := strconv.ParseFloat(pair[0], 64)
		if err != nil {
			return nil, fmt.Errorf("level %d price: %w", i, err)
		}
		qty, err := strconv.ParseFloat(pair[1], 64)
		if err != nil {
			return nil, fmt.Errorf("level %d quantity: %w", i, err)
		}
		levels = append(levels, model.PriceLevel{Price: price, Quantity: qty})
	}
	return levels, nil
}
