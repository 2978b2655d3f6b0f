package yemek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mekedron/yemek-cli/internal/domain"
)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:5000"

	requestIDHeader = "X-Request-ID"
)

// Doer sends one HTTP request; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the food-ordering backend.
type Client struct {
	doer    Doer
	baseURL string
	timeout time.Duration
	pace    pacer
	trace   tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through doer instead of a cookie-jar client.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithBaseURL sets the backend origin, e.g. http://localhost:5000.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout sets a per-request timeout on the default HTTP client. Zero
// leaves requests bounded only by their context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout < 0 {
			timeout = 0
		}
		c.timeout = timeout
	}
}

// WithRequestMinInterval spaces consecutive requests at least interval apart.
func WithRequestMinInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.pace.gap = max(interval, 0)
	}
}

// WithVerboseOutput writes an [http] line per request start and finish.
func WithVerboseOutput(out io.Writer) Option {
	return func(c *Client) {
		c.trace.setOutput(out)
	}
}

// NewClient creates a backend client. The default HTTP client keeps a cookie
// jar so the session cookie issued on login is sent with later calls.
func NewClient(opts ...Option) *Client {
	c := &Client{baseURL: DefaultBaseURL}
	for _, apply := range opts {
		apply(c)
	}
	if c.doer == nil {
		jar, _ := cookiejar.New(nil)
		c.doer = &http.Client{Jar: jar, Timeout: c.timeout}
	}
	return c
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetVerboseOutput starts (or, with nil, stops) request tracing to out.
func (c *Client) SetVerboseOutput(out io.Writer) {
	c.trace.setOutput(out)
}

// FetchJSON issues a GET for path and decodes a 2xx body into out.
func (c *Client) FetchJSON(ctx context.Context, path string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeInto(http.MethodGet, c.resolve(path), raw, out)
}

// PostJSON issues a POST with a JSON body and decodes a 2xx body into out.
func (c *Client) PostJSON(ctx context.Context, path string, body any, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeInto(http.MethodPost, c.resolve(path), raw, out)
}

func decodeInto(method, rawURL string, raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if target, ok := out.(*json.RawMessage); ok {
		*target = append((*target)[:0], raw...)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s %s response: %v", ErrUpstream, method, rawURL, err)
	}
	return nil
}

func (c *Client) resolve(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	rawURL := c.resolve(path)

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("prepare %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.pace.wait(ctx); err != nil {
		return nil, err
	}

	ex := exchange{method: method, url: rawURL, started: time.Now()}
	c.trace.sent(ex, len(payload))

	res, err := c.doer.Do(req)
	if err != nil {
		return nil, c.trace.failed(ex, &TransportError{Method: method, URL: rawURL, Cause: err})
	}
	defer func() {
		_ = res.Body.Close()
	}()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, c.trace.failed(ex, &TransportError{Method: method, URL: rawURL, Cause: fmt.Errorf("read body: %w", err)})
	}
	if res.StatusCode/100 != 2 {
		return nil, c.trace.failed(ex, &HTTPError{
			Method:     method,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Message:    errorMessage(raw),
			Body:       string(raw),
		})
	}
	c.trace.received(ex, res.StatusCode, len(raw))
	return raw, nil
}

// errorMessage extracts the "error" field of an error payload. Bodies that
// are not a JSON object read as an empty payload.
func errorMessage(raw []byte) string {
	var payload struct {
		Error any `json:"error"`
	}
	if json.Unmarshal(raw, &payload) != nil {
		return ""
	}
	if text, ok := payload.Error.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

// pacer keeps consecutive requests gap apart across goroutines.
type pacer struct {
	gap  time.Duration
	mu   sync.Mutex
	next time.Time
}

func (p *pacer) wait(ctx context.Context) error {
	if p.gap <= 0 {
		return nil
	}
	for {
		p.mu.Lock()
		now := time.Now()
		if !now.Before(p.next) {
			p.next = now.Add(p.gap)
			p.mu.Unlock()
			return nil
		}
		delay := p.next.Sub(now)
		p.mu.Unlock()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// exchange identifies one request in the trace.
type exchange struct {
	method  string
	url     string
	started time.Time
}

func (e exchange) elapsed() time.Duration {
	return time.Since(e.started).Round(time.Millisecond)
}

type tracer struct {
	mu  sync.RWMutex
	out io.Writer
}

func (t *tracer) setOutput(out io.Writer) {
	t.mu.Lock()
	t.out = out
	t.mu.Unlock()
}

func (t *tracer) sent(ex exchange, bodyBytes int) {
	line := fmt.Sprintf("[http] -> %s %s", ex.method, ex.url)
	if bodyBytes > 0 {
		line += fmt.Sprintf(" body_bytes=%d", bodyBytes)
	}
	t.emit(line)
}

func (t *tracer) received(ex exchange, status, size int) {
	t.emit(fmt.Sprintf("[http] <- %s %s status=%d duration=%s bytes=%d", ex.method, ex.url, status, ex.elapsed(), size))
}

// failed traces err and hands it back.
func (t *tracer) failed(ex exchange, err error) error {
	t.emit(fmt.Sprintf("[http] <- %s %s error=%v duration=%s", ex.method, ex.url, err, ex.elapsed()))
	return err
}

func (t *tracer) emit(line string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.out != nil {
		_, _ = fmt.Fprintln(t.out, line)
	}
}

func restaurantPath(restaurantID int, suffix string) string {
	return "/api/restaurants/" + strconv.Itoa(restaurantID) + suffix
}

// Restaurants returns the catalog.
func (c *Client) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var page catalogPage
	if err := c.FetchJSON(ctx, "/api/restaurants", &page); err != nil {
		return nil, err
	}
	restaurants := make([]domain.Restaurant, 0, len(page.Restaurants))
	for _, entry := range page.Restaurants {
		restaurants = append(restaurants, entry.restaurant())
	}
	return restaurants, nil
}

// Menu returns the customer-facing menu flattened in category order.
func (c *Client) Menu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	return c.menu(ctx, restaurantID)
}

// OwnerMenu returns the owner's menu rows.
func (c *Client) OwnerMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	return c.menu(ctx, restaurantID)
}

func (c *Client) menu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	var raw json.RawMessage
	path := restaurantPath(restaurantID, "/menu")
	if err := c.FetchJSON(ctx, path, &raw); err != nil {
		return nil, err
	}
	items, err := decodeMenu(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return items, nil
}

// Reviews returns reviews for a restaurant, newest first as served.
func (c *Client) Reviews(ctx context.Context, restaurantID int) ([]domain.Review, error) {
	var rows []reviewRow
	if err := c.FetchJSON(ctx, restaurantPath(restaurantID, "/reviews"), &rows); err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, row.review())
	}
	return reviews, nil
}

// PostReview submits a review and returns the stored record.
func (c *Client) PostReview(ctx context.Context, restaurantID int, review ReviewRequest) (domain.Review, error) {
	var row reviewRow
	if err := c.PostJSON(ctx, restaurantPath(restaurantID, "/reviews"), review, &row); err != nil {
		return domain.Review{}, err
	}
	return row.review(), nil
}

// PlaceOrder submits an order.
func (c *Client) PlaceOrder(ctx context.Context, order OrderRequest) (OrderReceipt, error) {
	if order.Items == nil {
		order.Items = []OrderLineRequest{}
	}
	var row receiptRow
	if err := c.PostJSON(ctx, "/api/orders", order, &row); err != nil {
		return OrderReceipt{}, err
	}
	return OrderReceipt{OrderID: row.OrderID.Int(), Total: row.Total.Float()}, nil
}

// OwnerOrders returns orders placed at a restaurant.
func (c *Client) OwnerOrders(ctx context.Context, restaurantID int) ([]domain.Order, error) {
	params := url.Values{}
	params.Set("restaurant_id", strconv.Itoa(restaurantID))
	var rows []orderRow
	if err := c.FetchJSON(ctx, "/api/orders?"+params.Encode(), &rows); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.order())
	}
	return orders, nil
}

// AddMenuItem creates a menu item for the owner's restaurant.
func (c *Client) AddMenuItem(ctx context.Context, restaurantID int, item MenuItemRequest) (domain.MenuItem, error) {
	var row ownerMenuRow
	if err := c.PostJSON(ctx, restaurantPath(restaurantID, "/menu"), item, &row); err != nil {
		return domain.MenuItem{}, err
	}
	return row.item(), nil
}

// Authenticate logs in or registers for the given role.
func (c *Client) Authenticate(ctx context.Context, role domain.Role, action AuthAction, credentials Credentials) (AuthResult, error) {
	if !role.Valid() {
		return AuthResult{}, fmt.Errorf("authenticate: unsupported role %q", role)
	}
	if action != AuthLogin && action != AuthRegister {
		return AuthResult{}, fmt.Errorf("authenticate: unsupported action %q", action)
	}
	if action == AuthLogin {
		credentials.Name = ""
	}
	var row authRow
	path := "/api/" + string(role) + "/" + string(action)
	if err := c.PostJSON(ctx, path, credentials, &row); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Message: row.Message,
		UserID:  row.UserID.Int(),
		Role:    row.Role,
		Target:  role,
	}, nil
}
