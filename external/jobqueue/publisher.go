package jobqueue

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/resilience"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

const (
	defaultQueueBaseURL = "https://qstash.upstash.io"
	defaultQueueTimeout = 15 * time.Second
	recomputeJobPath    = "/v1/internal/jobs/recompute-week"
)

var errQueueTransient = crerr.New("job queue transient failure")

type PublisherConfig struct {
	Client           *fasthttp.Client
	BaseURL          string
	Token            string
	TargetBaseURL    string
	InternalJobToken string
	Timeout          time.Duration
	Retries          int
	Logger           *logging.Logger
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// Publisher hands recompute jobs to the Upstash QStash delivery queue,
// which calls back into the internal jobs API. It satisfies
// usecase.RecomputePublisher.
type Publisher struct {
	client           *fasthttp.Client
	baseURL          string
	token            string
	targetBaseURL    string
	internalJobToken string
	timeout          time.Duration
	retries          int
	retryBaseDelay   time.Duration
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
	circuitEnabled   bool
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	client := cfg.Client
	if client == nil {
		client = &fasthttp.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultQueueTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultQueueBaseURL
	}
	if err := validateHTTPBaseURL(baseURL); err != nil {
		return nil, crerr.Wrap(err, "job queue base url")
	}

	targetBaseURL := strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/")
	if err := validateHTTPBaseURL(targetBaseURL); err != nil {
		return nil, crerr.Wrap(err, "job queue target base url")
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, crerr.New("job queue token is required")
	}

	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Publisher{
		client:           client,
		baseURL:          baseURL,
		token:            token,
		targetBaseURL:    targetBaseURL,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		timeout:          timeout,
		retries:          retries,
		retryBaseDelay:   time.Second,
		logger:           logger,
		breaker:          resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled:   breakerCfg.Enabled,
	}, nil
}

type recomputeJobPayload struct {
	Week int `json:"week"`
}

// PublishRecompute enqueues a deduplicated recompute job for the week.
// The queue retries delivery on its side; a duplicate publish for the
// same week collapses onto the in-flight message.
func (p *Publisher) PublishRecompute(ctx context.Context, week int) error {
	if week < 1 {
		return crerr.Newf("invalid week %d", week)
	}

	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "job queue circuit breaker rejected publish",
				"week", week, "state", p.breaker.State())
			return fmt.Errorf("%w: job queue is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body, err := sonic.Marshal(recomputeJobPayload{Week: week})
	if err != nil {
		return crerr.Wrap(err, "encode recompute payload")
	}

	targetURL := p.targetBaseURL + recomputeJobPath
	publishURL := p.baseURL + "/v2/publish/" + targetURL

	err = p.publish(ctx, publishURL, body, week)
	if p.circuitEnabled {
		if err != nil && stderrors.Is(err, errQueueTransient) {
			p.breaker.RecordFailure()
		} else {
			p.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return crerr.Wrapf(err, "publish recompute week=%d", week)
	}

	p.logger.InfoContext(ctx, "recompute job published", "week", week, "target", targetURL)
	return nil
}

func (p *Publisher) publish(ctx context.Context, publishURL string, body []byte, week int) error {
	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		status, raw, err := p.send(publishURL, body, week)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send publish request: %s", errQueueTransient, sanitizeToken(err.Error(), p.token))
		case status >= 200 && status < 300:
			return nil
		case status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError:
			lastErr = fmt.Errorf("%w: queue status=%d body=%s", errQueueTransient, status, strings.TrimSpace(string(raw)))
		default:
			p.logger.ErrorContext(ctx, "job queue rejected publish",
				"status", status, "curl", p.curlPreview(publishURL, body, week))
			return fmt.Errorf("queue status=%d body=%s", status, strings.TrimSpace(string(raw)))
		}

		if attempt == p.retries {
			break
		}
		backoff := time.Duration(attempt+1) * p.retryBaseDelay
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

func (p *Publisher) send(publishURL string, body []byte, week int) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(publishURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.SetContentType("application/json")
	req.Header.Set("Upstash-Method", fasthttp.MethodPost)
	req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	req.Header.Set("Upstash-Deduplication-Id", "recompute-week-"+strconv.Itoa(week))
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-X-Internal-Job-Token", p.internalJobToken)
	}
	req.SetBody(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		return 0, nil, err
	}

	raw := make([]byte, len(resp.Body()))
	copy(raw, resp.Body())
	return resp.StatusCode(), raw, nil
}

// curlPreview renders a reproducible request for debugging, with the
// queue token redacted.
func (p *Publisher) curlPreview(publishURL string, body []byte, week int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -X POST '")
	_, _ = buf.WriteString(publishURL)
	_, _ = buf.WriteString("' -H 'Authorization: Bearer REDACTED'")
	_, _ = buf.WriteString(" -H 'Content-Type: application/json'")
	_, _ = buf.WriteString(" -H 'Upstash-Deduplication-Id: recompute-week-")
	_, _ = buf.WriteString(strconv.Itoa(week))
	_, _ = buf.WriteString("' -d '")
	_, _ = buf.Write(body)
	_, _ = buf.WriteString("'")
	return buf.String()
}

func validateHTTPBaseURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return crerr.New("url is empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return crerr.Wrap(err, "parse url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return crerr.Newf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return crerr.New("url host is empty")
	}
	return nil
}

func sanitizeToken(value, token string) string {
	if token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}
