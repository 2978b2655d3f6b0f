package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mekedron/yemek-cli/internal/domain"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/service/profile"
)

type mockAPI struct {
	restaurants []domain.Restaurant
	menus       map[int][]domain.MenuItem
	reviews     map[int][]domain.Review
	orders      map[int][]domain.Order

	restaurantsErr error
	menuErr        error
	reviewsErr     error
	placeOrderErr  error
	postReviewErr  error
	addItemErr     error
	authErr        error

	receipt yemekgateway.OrderReceipt

	mu           sync.Mutex
	calls        map[string]int
	placedOrders []yemekgateway.OrderRequest
	postedReview []yemekgateway.ReviewRequest
	addedItems   []yemekgateway.MenuItemRequest
	authCalls    []yemekgateway.Credentials
	verboseOut   io.Writer
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		restaurants: []domain.Restaurant{
			domain.NewRestaurant(1, "Pizza Roma", []string{"İtalyan"}, 100, "555 0101"),
			domain.NewRestaurant(2, "IZGARA EVİ", []string{"Türk"}, 80, ""),
		},
		menus: map[int][]domain.MenuItem{
			1: {
				{ID: 11, Name: "Margherita", Price: 150, Category: "Pizza", Description: "Domates, mozzarella"},
				{ID: 12, Name: "Ayran", Price: 20, Category: "İçecek"},
			},
			2: {
				{ID: 21, Name: "Adana", Price: 220, Category: "Kebap"},
			},
		},
		reviews: map[int][]domain.Review{
			1: {{UserName: "Ayşe", Rating: 4, Comment: "Güzel", CreatedAt: "2024-03-01T18:30:00Z"}},
		},
		orders:  map[int][]domain.Order{},
		receipt: yemekgateway.OrderReceipt{OrderID: 42, Total: 150},
	}
}

func (m *mockAPI) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

func (m *mockAPI) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockAPI) SetVerboseOutput(out io.Writer) {
	m.verboseOut = out
}

func (m *mockAPI) Restaurants(context.Context) ([]domain.Restaurant, error) {
	m.record("restaurants")
	return m.restaurants, m.restaurantsErr
}

func (m *mockAPI) Menu(_ context.Context, id int) ([]domain.MenuItem, error) {
	m.record("menu")
	if m.menuErr != nil {
		return nil, m.menuErr
	}
	return m.menus[id], nil
}

func (m *mockAPI) OwnerMenu(_ context.Context, id int) ([]domain.MenuItem, error) {
	m.record("owner_menu")
	return m.menus[id], nil
}

func (m *mockAPI) Reviews(_ context.Context, id int) ([]domain.Review, error) {
	m.record("reviews")
	if m.reviewsErr != nil {
		return nil, m.reviewsErr
	}
	return m.reviews[id], nil
}

func (m *mockAPI) PostReview(_ context.Context, _ int, review yemekgateway.ReviewRequest) (domain.Review, error) {
	m.record("post_review")
	if m.postReviewErr != nil {
		return domain.Review{}, m.postReviewErr
	}
	m.mu.Lock()
	m.postedReview = append(m.postedReview, review)
	m.mu.Unlock()
	return domain.Review{UserName: review.UserName, Rating: review.Rating, Comment: review.Comment, CreatedAt: "2024-03-02T10:00:00Z"}, nil
}

func (m *mockAPI) PlaceOrder(_ context.Context, order yemekgateway.OrderRequest) (yemekgateway.OrderReceipt, error) {
	m.record("place_order")
	if m.placeOrderErr != nil {
		return yemekgateway.OrderReceipt{}, m.placeOrderErr
	}
	m.mu.Lock()
	m.placedOrders = append(m.placedOrders, order)
	m.mu.Unlock()
	return m.receipt, nil
}

func (m *mockAPI) OwnerOrders(_ context.Context, id int) ([]domain.Order, error) {
	m.record("owner_orders")
	return m.orders[id], nil
}

func (m *mockAPI) AddMenuItem(_ context.Context, id int, item yemekgateway.MenuItemRequest) (domain.MenuItem, error) {
	m.record("add_menu_item")
	if m.addItemErr != nil {
		return domain.MenuItem{}, m.addItemErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addedItems = append(m.addedItems, item)
	created := domain.MenuItem{ID: 100 + len(m.addedItems), Name: item.Name, Price: item.Price, Category: item.Category, Description: item.Description, IsVegan: item.IsVegan}
	m.menus[id] = append(m.menus[id], created)
	return created, nil
}

func (m *mockAPI) Authenticate(_ context.Context, role domain.Role, _ yemekgateway.AuthAction, credentials yemekgateway.Credentials) (yemekgateway.AuthResult, error) {
	m.record("auth")
	m.mu.Lock()
	m.authCalls = append(m.authCalls, credentials)
	m.mu.Unlock()
	if m.authErr != nil {
		return yemekgateway.AuthResult{}, m.authErr
	}
	return yemekgateway.AuthResult{Message: "ok", UserID: 7, Role: string(role), Target: role}, nil
}

type mockProfiles struct {
	settings profile.Settings
	err      error
	requests []profile.Request
}

func (m *mockProfiles) Resolve(_ context.Context, req profile.Request) (profile.Settings, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return profile.Settings{}, m.err
	}
	settings := m.settings
	if settings.BaseURL == "" {
		settings.BaseURL = firstNonBlank(req.BaseURL, settings.Profile.BaseURL, req.EnvBaseURL, req.FallbackBaseURL)
	}
	return settings, nil
}

type mockConfig struct {
	path     string
	cfg      domain.Config
	upserted []domain.Profile
}

func (m *mockConfig) Path() string { return m.path }

func (m *mockConfig) Load(context.Context) (domain.Config, error) {
	return m.cfg, nil
}

func (m *mockConfig) Upsert(_ context.Context, p domain.Profile) (domain.Config, error) {
	m.upserted = append(m.upserted, p)
	m.cfg.Profiles = append(m.cfg.Profiles, p)
	return m.cfg, nil
}

func testDeps(api *mockAPI) Dependencies {
	return Dependencies{
		NewAPI:   func(string) yemekgateway.API { return api },
		Profiles: &mockProfiles{},
		Config:   &mockConfig{path: "/tmp/yemek-test.json"},
		Location: time.UTC,
		Version:  "v0.0.0-test",
	}
}

type runResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, deps Dependencies, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, deps, &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func runShellScript(t *testing.T, deps Dependencies, lines ...string) runResult {
	t.Helper()
	deps.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")
	return runCLI(t, deps, "shell")
}
