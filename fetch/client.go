package fetch

import (
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds client-wide request defaults. Every request starts from the
// current Config snapshot and overlays its own RequestOptions on top.
//
// A Config attached to a client is immutable: Configure never mutates the
// current snapshot, it publishes a new one. In-flight requests keep the
// snapshot they loaded at call start.
type Config struct {
	// BaseURL, when set, is prefixed to request URLs that do not carry
	// a scheme of their own.
	BaseURL string

	// Header contains default headers applied to every request.
	// Per-request headers override these key-by-key.
	Header http.Header

	// Query contains default query parameters applied to every request.
	// Per-request parameters override these key-by-key.
	Query url.Values

	// Timeout bounds a single request via its context. Zero means no
	// pipeline-level timeout; the underlying http.Client timeout still
	// applies.
	Timeout time.Duration

	// UserAgent sets the User-Agent header when no explicit one is
	// configured.
	UserAgent string

	// DecodePolicy is the default policy for unrecognized response
	// content types. DecodeDefault resolves to DecodeStrict.
	DecodePolicy DecodePolicy
}

// clientState is the atomically swapped snapshot of mutable client state.
// A request loads the pointer once at call start; later Configure or
// SetObserver calls never affect an in-flight request.
type clientState struct {
	config   Config
	observer Observer
}

// Client is a thin convenience wrapper around an *http.Client. It adds
// method shortcuts, layered configuration, lifecycle observers,
// content-type based response decoding, and in-process analytics.
//
//	client := fetch.New(
//	    fetch.WithBaseURL("https://api.example.com"),
//	    fetch.WithHeader("Authorization", "Bearer "+token),
//	)
//
//	resp, err := client.Get(ctx, "/users", nil)
//
// The client deliberately implements no retries, circuit breaking, or
// request coalescing; callers wanting resilience wrap it externally.
type Client struct {
	httpClient *http.Client

	// mu serializes snapshot writers; readers go through state directly.
	mu    sync.Mutex
	state atomic.Pointer[clientState]

	analytics *Analytics
	debug     bool
	logger    zerolog.Logger
}

// Option configures a Client at construction time.
type Option func(*Client, *clientState)

// New creates a Client with the given options. Without options the client
// uses http.DefaultClient semantics: a fresh *http.Client with no timeout.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		analytics:  NewAnalytics(),
		logger:     debugLogger,
	}
	st := &clientState{}
	for _, opt := range opts {
		opt(c, st)
	}
	c.state.Store(st)
	return c
}

// WithHTTPClient sets the underlying *http.Client. Its transport and
// timeout configuration are passed through untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client, _ *clientState) {
		c.httpClient = hc
	}
}

// WithTransport sets the transport on the underlying *http.Client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client, _ *clientState) {
		c.httpClient.Transport = rt
	}
}

// WithConfig sets the initial configuration snapshot.
func WithConfig(cfg Config) Option {
	return func(_ *Client, st *clientState) {
		st.config = cfg
	}
}

// WithBaseURL sets the base URL prefixed to relative request URLs.
func WithBaseURL(baseURL string) Option {
	return func(_ *Client, st *clientState) {
		st.config.BaseURL = baseURL
	}
}

// WithHeader adds a default header applied to every request.
func WithHeader(key, value string) Option {
	return func(_ *Client, st *clientState) {
		if st.config.Header == nil {
			st.config.Header = make(http.Header)
		}
		st.config.Header.Set(key, value)
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(_ *Client, st *clientState) {
		st.config.Timeout = d
	}
}

// WithDecodePolicy sets the default policy for unrecognized response
// content types.
func WithDecodePolicy(p DecodePolicy) Option {
	return func(_ *Client, st *clientState) {
		st.config.DecodePolicy = p
	}
}

// WithObserver sets the client-wide observer.
func WithObserver(o Observer) Option {
	return func(_ *Client, st *clientState) {
		st.observer = o
	}
}

// WithAnalytics attaches a specific analytics accumulator, e.g. one shared
// between several clients.
func WithAnalytics(a *Analytics) Option {
	return func(c *Client, _ *clientState) {
		c.analytics = a
	}
}

// WithDebug enables request/response debug logging via zerolog.
func WithDebug(enabled bool) Option {
	return func(c *Client, _ *clientState) {
		c.debug = enabled
	}
}

// WithLogger sets the zerolog logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client, _ *clientState) {
		c.logger = logger
	}
}

// HTTP returns the underlying *http.Client for advanced use cases.
func (c *Client) HTTP() *http.Client {
	return c.httpClient
}

// Analytics returns the client's analytics accumulator.
func (c *Client) Analytics() *Analytics {
	return c.analytics
}

// Config returns the current configuration snapshot.
func (c *Client) Config() Config {
	return c.state.Load().config
}

// Configure shallow-merges partial into the current configuration and
// publishes the result as a new immutable snapshot. Scalar fields override
// only when non-zero; Header and Query merge key-by-key with the new
// values winning. Visible to all subsequent requests on this client.
func (c *Client) Configure(partial Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.state.Load()
	merged := mergeConfig(cur.config, partial)
	c.state.Store(&clientState{config: merged, observer: cur.observer})
}

// SetObserver replaces the client-wide observer wholesale. There is no
// merging of observer scopes: a caller wanting to add one hook while
// keeping others must recombine explicitly, e.g. with ChainObservers.
func (c *Client) SetObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.state.Load()
	c.state.Store(&clientState{config: cur.config, observer: o})
}

// mergeConfig overlays partial onto base, producing a new Config.
func mergeConfig(base, partial Config) Config {
	out := base
	if partial.BaseURL != "" {
		out.BaseURL = partial.BaseURL
	}
	if partial.Timeout != 0 {
		out.Timeout = partial.Timeout
	}
	if partial.UserAgent != "" {
		out.UserAgent = partial.UserAgent
	}
	if partial.DecodePolicy != DecodeDefault {
		out.DecodePolicy = partial.DecodePolicy
	}
	out.Header = mergeHeaders(base.Header, partial.Header)
	out.Query = mergeValues(base.Query, partial.Query)
	return out
}

func mergeHeaders(base, overlay http.Header) http.Header {
	if base == nil && overlay == nil {
		return nil
	}
	out := make(http.Header, len(base)+len(overlay))
	for k, v := range base {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range overlay {
		out[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return out
}

func mergeValues(base, overlay url.Values) url.Values {
	if base == nil && overlay == nil {
		return nil
	}
	out := make(url.Values, len(base)+len(overlay))
	for k, v := range base {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range overlay {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// defaultClient backs the package-level convenience functions. It exists so
// small programs can call fetch.Get / fetch.Configure directly; tests and
// larger applications should construct their own Client.
var (
	defaultMu     sync.Mutex
	defaultClient atomic.Pointer[Client]
)

func init() {
	defaultClient.Store(New())
}

// Default returns the package-level client used by the top-level
// convenience functions.
func Default() *Client {
	return defaultClient.Load()
}

// SetDefault replaces the package-level client.
func SetDefault(c *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient.Store(c)
}

// ResetDefault restores the package-level client to a fresh zero-configured
// one. Intended for test isolation between runs.
func ResetDefault() {
	SetDefault(New())
}

// Configure shallow-merges partial into the package-level client's
// configuration. See (*Client).Configure.
func Configure(partial Config) {
	Default().Configure(partial)
}

// SetObserver replaces the package-level client's observer wholesale.
func SetObserver(o Observer) {
	Default().SetObserver(o)
}

// GetAnalytics returns a snapshot of the package-level client's analytics.
func GetAnalytics() AnalyticsSnapshot {
	return Default().Analytics().Snapshot()
}

// ResetAnalytics zeroes the package-level client's analytics counters.
func ResetAnalytics() {
	Default().Analytics().Reset()
}
