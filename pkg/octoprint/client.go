// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/octolink/internal/logging"
	"github.com/tomtom215/octolink/internal/metrics"
)

// Version is reported in the User-Agent header.
const Version = "0.3.0"

const (
	// DefaultPort is used when Builder.Port is not called.
	DefaultPort uint16 = 80

	// DefaultTimeout bounds one round trip when no HTTP client is supplied.
	DefaultTimeout = 30 * time.Second

	apiKeyHeader    = "X-Api-Key"
	requestIDHeader = "X-Request-Id"
)

// PrinterAPI defines every operation of the OctoPrint REST surface.
// Both Printer and CircuitBreakerClient implement this interface.
type PrinterAPI interface {
	GetAPIVersion(ctx context.Context) (*APIVersion, error)

	GetConnection(ctx context.Context) (*ConnectionInfo, error)
	SetConnection(ctx context.Context, cmd ConnectionCommand) error

	GetFiles(ctx context.Context, q FilesQuery) (*FileList, error)
	GetFile(ctx context.Context, q FileQuery) (Entry, error)
	IssueFileCommand(ctx context.Context, file FilePath, cmd FileCommand) error
	DeleteFile(ctx context.Context, file FilePath) error

	GetJob(ctx context.Context) (*JobInfo, error)
	IssueJobCommand(ctx context.Context, cmd JobCommand) error

	GetPrinterState(ctx context.Context, q PrinterStateQuery) (*PrinterState, error)
	IssuePrintheadCommand(ctx context.Context, cmd PrintheadCommand) error
	ChangePrintheadFeedrate(ctx context.Context, factor float64) error
	GetToolState(ctx context.Context, q HistoryQuery) (*ToolState, error)
	IssueToolCommand(ctx context.Context, cmd ToolCommand) error
	ChangeToolFlowrate(ctx context.Context, factor float64) error
	GetBedState(ctx context.Context, q HistoryQuery) (*BedState, error)
	IssueBedCommand(ctx context.Context, cmd BedCommand) error
	GetSDState(ctx context.Context) (*SDState, error)
	IssueSDCommand(ctx context.Context, cmd SDCommand) error
	SendCommands(ctx context.Context, commands ...string) error
}

// Ensure Printer implements PrinterAPI
var _ PrinterAPI = (*Printer)(nil)

// Printer is a session handle for one OctoPrint host. It holds only
// configuration fixed at Build time, plus the optional rate limiter, and is
// safe for concurrent use.
type Printer struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
	logger     *zerolog.Logger
	// limiter paces outgoing requests; nil means unlimited.
	limiter *rate.Limiter
}

// Builder configures a Printer.
type Builder struct {
	address    string
	apiKey     string
	port       uint16
	timeout    time.Duration
	httpClient *http.Client
	logger     *zerolog.Logger
	rateLimit  rate.Limit
	rateBurst  int
}

// NewBuilder starts configuring a Printer for address, which is a host
// name or IP with an optional http:// or https:// prefix.
func NewBuilder(address, apiKey string) *Builder {
	return &Builder{
		address: address,
		apiKey:  apiKey,
		port:    DefaultPort,
	}
}

// Port sets the TCP port (default 80).
func (b *Builder) Port(port uint16) *Builder {
	b.port = port
	return b
}

// Timeout bounds each round trip, including reading the response body.
func (b *Builder) Timeout(d time.Duration) *Builder {
	b.timeout = d
	return b
}

// HTTPClient supplies the transport handle. The client is used as is
// unless Timeout is also set, in which case a copy with that timeout is used.
func (b *Builder) HTTPClient(c *http.Client) *Builder {
	b.httpClient = c
	return b
}

// Logger sets the logger used for request logs. By default the global
// logger from internal/logging (or one stored in the call's context) is used.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (b *Builder) Logger(l zerolog.Logger) *Builder {
	b.logger = &l
	return b
}

// RateLimit paces requests to at most perSecond with the given burst
// (minimum 1). Waiting for a token honors the call's context; a wait that
// cannot finish before the deadline fails as a transport error. Zero
// disables pacing.
func (b *Builder) RateLimit(perSecond float64, burst int) *Builder {
	b.rateLimit = rate.Limit(perSecond)
	b.rateBurst = burst
	return b
}

// Build validates the configuration and returns the Printer.
func (b *Builder) Build() (*Printer, error) {
	scheme := "http"
	host := strings.TrimSpace(b.address)
	switch {
	case strings.HasPrefix(host, "https://"):
		scheme = "https"
		host = strings.TrimPrefix(host, "https://")
	case strings.HasPrefix(host, "http://"):
		host = strings.TrimPrefix(host, "http://")
	}
	host = strings.TrimSuffix(host, "/")

	if host == "" {
		return nil, errors.New("octoprint: address is required")
	}
	if strings.ContainsAny(host, "/?#@") {
		return nil, fmt.Errorf("octoprint: address %q must be a bare host name", b.address)
	}
	if b.apiKey == "" {
		return nil, errors.New("octoprint: API key is required")
	}
	if b.port == 0 {
		return nil, errors.New("octoprint: port must be non-zero")
	}
	if b.rateLimit < 0 {
		return nil, errors.New("octoprint: rate limit must not be negative")
	}

	client := b.httpClient
	switch {
	case client == nil:
		timeout := b.timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	case b.timeout > 0:
		c := *client
		c.Timeout = b.timeout
		client = &c
	}

	var limiter *rate.Limiter
	if b.rateLimit > 0 {
		burst := b.rateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(b.rateLimit, burst)
	}

	return &Printer{
		baseURL:    scheme + "://" + net.JoinHostPort(host, strconv.Itoa(int(b.port))),
		host:       host,
		apiKey:     b.apiKey,
		httpClient: client,
		logger:     b.logger,
		limiter:    limiter,
	}, nil
}

// BaseURL returns the scheme, host and port requests are sent to.
func (p *Printer) BaseURL() string {
	return p.baseURL
}

func (p *Printer) log(ctx context.Context) zerolog.Logger {
	if p.logger != nil {
		ctx = logging.ContextWithLogger(ctx, *p.logger)
	}
	return logging.CtxWith(ctx).
		Str("component", "octoprint").
		Str("printer", p.host).
		Str("api_key", logging.SanitizeToken(p.apiKey)).
		Logger()
}

// call performs one exchange for ep and classifies the result into dst.
// reqBody is JSON-encoded when non-nil.
func (p *Printer) call(ctx context.Context, ep endpoint, method, path string, reqBody, dst any) error {
	ctx, requestID := logging.EnsureRequestID(ctx)
	start := time.Now()

	status, body, transportErr := p.roundTrip(ctx, method, path, requestID, reqBody)
	err := classify(ep, status, body, transportErr, dst)
	duration := time.Since(start)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = KindOf(err).String()
	}
	metrics.RecordPrinterRequest(ep.op, outcome, status, duration)

	logger := p.log(ctx)
	var evt *zerolog.Event
	switch KindOf(err) {
	case KindUnknown:
		evt = logger.Debug()
	case KindParse, KindUnexpectedStatus, KindServer:
		evt = logger.Warn().Err(err)
	default:
		evt = logger.Debug().Err(err)
	}
	evt.Str("op", ep.op).
		Str("method", method).
		Str("url", logging.SanitizeURL(p.baseURL+path)).
		Int("status", status).
		Dur("duration", duration).
		Str("outcome", outcome).
		Msg("printer request")

	return err
}

// roundTrip sends the request and reads the whole response body. A non-nil
// error means no usable response was received.
func (p *Printer) roundTrip(ctx context.Context, method, path, requestID string, reqBody any) (int, []byte, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var body io.Reader = http.NoBody
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(apiKeyHeader, p.apiKey)
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "octolink/"+Version)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > maxResponseSize {
		return 0, nil, fmt.Errorf("response body exceeds %d bytes", maxResponseSize)
	}
	return resp.StatusCode, data, nil
}

// rejected logs and counts a call refused by a local check. No request is
// sent.
func (p *Printer) rejected(ctx context.Context, e *Error) error {
	metrics.RecordCommandRejected(e.Op)
	logger := p.log(ctx)
	logger.Debug().
		Str("op", e.Op).
		Strs("fields", e.Fields).
		Err(e.Err).
		Msg("command rejected before sending")
	return e
}
