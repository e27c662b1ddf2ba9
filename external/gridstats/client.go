package gridstats

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/resilience"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

const (
	defaultBaseURL  = "https://api.gridstats.example.com/v1"
	defaultPoolSize = 8
)

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)
var errGridStatsTransient = crerr.New("gridstats transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	PoolSize       int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls NFL week data from the GridStats feed. It satisfies
// usecase.StatsProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	retryBaseDelay time.Duration
	poolSize       int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	poolSize := cfg.PoolSize
	if poolSize < 1 {
		poolSize = defaultPoolSize
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		retryBaseDelay: time.Second,
		poolSize:       poolSize,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type gameDTO struct {
	ID        string `json:"id"`
	Week      int    `json:"week"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	KickoffAt string `json:"kickoffAt"`
	Status    string `json:"status"`
	HomeScore *int   `json:"homeScore"`
	AwayScore *int   `json:"awayScore"`
}

type gamesEnvelope struct {
	Data []gameDTO `json:"data"`
}

type playerStatsDTO struct {
	PlayerID string `json:"playerId"`

	PassCompletions int `json:"passCompletions"`
	PassAttempts    int `json:"passAttempts"`
	PassYards       int `json:"passYards"`
	PassTDs         int `json:"passTds"`
	Interceptions   int `json:"interceptions"`
	PassTwoPoint    int `json:"passTwoPoint"`

	RushYards    int `json:"rushYards"`
	RushTDs      int `json:"rushTds"`
	RushTwoPoint int `json:"rushTwoPoint"`

	Receptions  int `json:"receptions"`
	RecYards    int `json:"recYards"`
	RecTDs      int `json:"recTds"`
	RecTwoPoint int `json:"recTwoPoint"`

	FumblesLost int `json:"fumblesLost"`

	FGMadeUnder53   int `json:"fgMadeUnder53"`
	FGMade53to54    int `json:"fgMade53To54"`
	FGMade55Plus    int `json:"fgMade55Plus"`
	FGMissedUnder40 int `json:"fgMissedUnder40"`
	FGMissed40Plus  int `json:"fgMissed40Plus"`
	FGLongest       int `json:"fgLongest"`
	XPMade          int `json:"xpMade"`
	XPMissed        int `json:"xpMissed"`
}

type playerStatsEnvelope struct {
	Data []playerStatsDTO `json:"data"`
}

type defenseStatsDTO struct {
	NFLTeam          string `json:"nflTeam"`
	PointsAllowed    int    `json:"pointsAllowed"`
	YardsAllowed     int    `json:"yardsAllowed"`
	Sacks            int    `json:"sacks"`
	Interceptions    int    `json:"interceptions"`
	FumbleRecoveries int    `json:"fumbleRecoveries"`
	BlockedKicks     int    `json:"blockedKicks"`
	DefensiveTDs     int    `json:"defensiveTds"`
	ReturnTDs        int    `json:"returnTds"`
	Safeties         int    `json:"safeties"`
}

type defenseStatsEnvelope struct {
	Data []defenseStatsDTO `json:"data"`
}

func (c *Client) FetchWeekGames(ctx context.Context, week int) ([]schedule.Game, error) {
	var envelope gamesEnvelope
	path := "/weeks/" + strconv.Itoa(week) + "/games"
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch week games week=%d", week)
	}

	out := make([]schedule.Game, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		game := schedule.Game{
			ID:        strings.TrimSpace(item.ID),
			Week:      week,
			HomeTeam:  strings.TrimSpace(item.HomeTeam),
			AwayTeam:  strings.TrimSpace(item.AwayTeam),
			Status:    item.Status,
			HomeScore: item.HomeScore,
			AwayScore: item.AwayScore,
		}
		if kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(item.KickoffAt)); err == nil {
			game.Kickoff = kickoff.UTC()
		}
		out = append(out, game)
	}
	return out, nil
}

// FetchWeekPlayerStats fans out one request per game of the week on a
// bounded worker pool and merges the per-game stat lines.
func (c *Client) FetchWeekPlayerStats(ctx context.Context, week int) ([]stats.PlayerGameStats, error) {
	games, err := c.FetchWeekGames(ctx, week)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(c.poolSize)
	if err != nil {
		return nil, crerr.Wrap(err, "create stats worker pool")
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		byPlayer = make(map[string]stats.PlayerGameStats, 64)
	)

	for _, game := range games {
		gameID := game.ID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			var envelope playerStatsEnvelope
			path := "/games/" + url.PathEscape(gameID) + "/player-stats"
			reqErr := c.doJSON(ctx, path, nil, &envelope)

			mu.Lock()
			defer mu.Unlock()
			if reqErr != nil {
				if firstErr == nil {
					firstErr = crerr.Wrapf(reqErr, "fetch player stats game=%s", gameID)
				}
				return
			}
			for _, item := range envelope.Data {
				playerID := strings.TrimSpace(item.PlayerID)
				if playerID == "" {
					continue
				}
				byPlayer[playerID] = playerStatsFromDTO(playerID, week, item)
			}
		})
		if submitErr != nil {
			wg.Done()
			return nil, crerr.Wrap(submitErr, "submit stats fetch")
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	out := make([]stats.PlayerGameStats, 0, len(byPlayer))
	for _, item := range byPlayer {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (c *Client) FetchWeekDefenseStats(ctx context.Context, week int) ([]stats.DefenseGameStats, error) {
	var envelope defenseStatsEnvelope
	path := "/weeks/" + strconv.Itoa(week) + "/defense-stats"
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch week defense stats week=%d", week)
	}

	out := make([]stats.DefenseGameStats, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		out = append(out, stats.DefenseGameStats{
			NFLTeam:          strings.TrimSpace(item.NFLTeam),
			Week:             week,
			PointsAllowed:    item.PointsAllowed,
			YardsAllowed:     item.YardsAllowed,
			Sacks:            item.Sacks,
			Interceptions:    item.Interceptions,
			FumbleRecoveries: item.FumbleRecoveries,
			BlockedKicks:     item.BlockedKicks,
			DefensiveTDs:     item.DefensiveTDs,
			ReturnTDs:        item.ReturnTDs,
			Safeties:         item.Safeties,
		})
	}
	return out, nil
}

func playerStatsFromDTO(playerID string, week int, item playerStatsDTO) stats.PlayerGameStats {
	return stats.PlayerGameStats{
		PlayerID: playerID,
		Week:     week,

		PassCompletions: item.PassCompletions,
		PassAttempts:    item.PassAttempts,
		PassYards:       item.PassYards,
		PassTDs:         item.PassTDs,
		Interceptions:   item.Interceptions,
		PassTwoPoint:    item.PassTwoPoint,

		RushYards:    item.RushYards,
		RushTDs:      item.RushTDs,
		RushTwoPoint: item.RushTwoPoint,

		Receptions:  item.Receptions,
		RecYards:    item.RecYards,
		RecTDs:      item.RecTDs,
		RecTwoPoint: item.RecTwoPoint,

		FumblesLost: item.FumblesLost,

		FGMadeUnder53:   item.FGMadeUnder53,
		FGMade53to54:    item.FGMade53to54,
		FGMade55Plus:    item.FGMade55Plus,
		FGMissedUnder40: item.FGMissedUnder40,
		FGMissed40Plus:  item.FGMissed40Plus,
		FGLongest:       item.FGLongest,
		XPMade:          item.XPMade,
		XPMissed:        item.XPMissed,
	}
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gridstats circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_key", c.apiKey)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errGridStatsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errGridStatsTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errGridStatsTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errGridStatsTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBaseDelay
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "gridstats request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
}

func redactAPIURL(fullURL string) string {
	return apiKeyParamRegex.ReplaceAllString(fullURL, "api_key=REDACTED")
}

func abbreviateBody(raw []byte) string {
	const maxLen = 512
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "...(truncated)"
	}
	return body
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
