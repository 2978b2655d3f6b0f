package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/mekedron/yemek-cli/internal/cli"
	"github.com/mekedron/yemek-cli/internal/config"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/service/profile"
)

const sessionCookie = "yemek_session"

type menuRow struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsVegan     bool    `json:"is_vegan"`
}

type reviewRow struct {
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type orderLineRow struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderRow struct {
	ID           int            `json:"id"`
	RestaurantID int            `json:"-"`
	CustomerName string         `json:"customer_name"`
	Address      string         `json:"address"`
	Phone        string         `json:"phone"`
	Notes        string         `json:"notes"`
	PlacedAt     string         `json:"placed_at"`
	Total        float64        `json:"total"`
	Items        []orderLineRow `json:"items"`
}

type account struct {
	ID       int
	Name     string
	Password string
	Role     string
}

// fakeBackend serves the routes the CLI talks to, keeping state in memory.
type fakeBackend struct {
	mu          sync.Mutex
	restaurants []map[string]any
	menus       map[int][]menuRow
	reviews     map[int][]reviewRow
	orders      []orderRow
	accounts    map[string]account
	sessions    map[string]account
	nextID      int
	requests    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		restaurants: []map[string]any{
			{"restaurant_id": 1, "name": "Pizza Roma", "cuisines": []string{"İtalyan"}, "min_order_amount": 100, "phone": "0212 555 0101"},
			{"restaurant_id": 2, "name": "Kebapçı Halil", "cuisines": []string{}, "min_order_amount": "80.50", "phone": ""},
		},
		menus: map[int][]menuRow{
			1: {
				{ID: 11, Name: "Margherita", Description: "Domates, mozzarella", Price: 150, Category: "Pizza"},
				{ID: 12, Name: "Ayran", Price: 20, Category: "İçecek"},
				{ID: 13, Name: "Sebzeli Pizza", Price: 170, Category: "Pizza", IsVegan: true},
			},
			2: {
				{ID: 21, Name: "Adana", Price: 220, Category: "Kebap"},
			},
		},
		reviews: map[int][]reviewRow{
			1: {{UserName: "Ayşe", Rating: 4, Comment: "Hamur çok iyi", CreatedAt: "2024-03-01T18:30:00Z"}},
		},
		accounts: map[string]account{
			"sahip@yemek.test": {ID: 1, Name: "Sahip", Password: "sifre", Role: "owner"},
			"ali@yemek.test":   {ID: 2, Name: "Ali", Password: "sifre", Role: "customer"},
		},
		sessions: map[string]account{},
		nextID:   100,
	}
}

func (b *fakeBackend) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(b.recordRequests)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/restaurants", b.listRestaurants).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{id:[0-9]+}/menu", b.getMenu).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{id:[0-9]+}/menu", b.addMenuItem).Methods(http.MethodPost)
	api.HandleFunc("/restaurants/{id:[0-9]+}/reviews", b.getReviews).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{id:[0-9]+}/reviews", b.addReview).Methods(http.MethodPost)
	api.HandleFunc("/orders", b.listOrders).Methods(http.MethodGet).Queries("restaurant_id", "{restaurant_id:[0-9]+}")
	api.HandleFunc("/orders", b.placeOrder).Methods(http.MethodPost)
	api.HandleFunc("/{role:customer|owner}/{action:login|register}", b.authenticate).Methods(http.MethodPost)
	return r
}

func (b *fakeBackend) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, req.Method+" "+req.URL.Path)
		b.mu.Unlock()
		next.ServeHTTP(w, req)
	})
}

func (b *fakeBackend) requestCount(line string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, request := range b.requests {
		if request == line {
			count++
		}
	}
	return count
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func restaurantID(req *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(req)["id"])
	return id
}

func (b *fakeBackend) sessionOf(req *http.Request) (account, bool) {
	cookie, err := req.Cookie(sessionCookie)
	if err != nil {
		return account{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.sessions[cookie.Value]
	return acc, ok
}

func (b *fakeBackend) listRestaurants(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"restaurants": b.restaurants})
}

// getMenu serves the categorised page to customers and flat rows to a
// signed-in owner.
func (b *fakeBackend) getMenu(w http.ResponseWriter, req *http.Request) {
	acc, signedIn := b.sessionOf(req)
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := b.menus[restaurantID(req)]
	if signedIn && acc.Role == "owner" {
		out := append([]menuRow{}, rows...)
		writeJSON(w, http.StatusOK, out)
		return
	}
	type product struct {
		ProductID   int     `json:"product_id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		BasePrice   float64 `json:"base_price"`
	}
	type category struct {
		Name     string    `json:"name"`
		Products []product `json:"products"`
	}
	categories := []*category{}
	index := map[string]*category{}
	for _, row := range rows {
		cat, ok := index[row.Category]
		if !ok {
			cat = &category{Name: row.Category}
			index[row.Category] = cat
			categories = append(categories, cat)
		}
		cat.Products = append(cat.Products, product{ProductID: row.ID, Name: row.Name, Description: row.Description, BasePrice: row.Price})
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (b *fakeBackend) addMenuItem(w http.ResponseWriter, req *http.Request) {
	acc, ok := b.sessionOf(req)
	if !ok || acc.Role != "owner" {
		writeFailure(w, http.StatusUnauthorized, "Giriş gerekli")
		return
	}
	var row menuRow
	if err := json.NewDecoder(req.Body).Decode(&row); err != nil || strings.TrimSpace(row.Name) == "" {
		writeFailure(w, http.StatusBadRequest, "Ürün adı zorunludur")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	row.ID = b.nextID
	id := restaurantID(req)
	b.menus[id] = append(b.menus[id], row)
	writeJSON(w, http.StatusCreated, row)
}

func (b *fakeBackend) getReviews(w http.ResponseWriter, req *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]reviewRow{}, b.reviews[restaurantID(req)]...)
	writeJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) addReview(w http.ResponseWriter, req *http.Request) {
	var row reviewRow
	if err := json.NewDecoder(req.Body).Decode(&row); err != nil {
		writeFailure(w, http.StatusBadRequest, "Geçersiz istek")
		return
	}
	if row.Rating < 1 || row.Rating > 5 {
		writeFailure(w, http.StatusBadRequest, "Puan 1 ile 5 arasında olmalı")
		return
	}
	row.CreatedAt = "2024-03-02T10:00:00Z"
	b.mu.Lock()
	defer b.mu.Unlock()
	id := restaurantID(req)
	b.reviews[id] = append([]reviewRow{row}, b.reviews[id]...)
	writeJSON(w, http.StatusCreated, row)
}

func (b *fakeBackend) listOrders(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(req)["restaurant_id"])
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []orderRow{}
	for i := len(b.orders) - 1; i >= 0; i-- {
		if b.orders[i].RestaurantID == id {
			out = append(out, b.orders[i])
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) placeOrder(w http.ResponseWriter, req *http.Request) {
	var body struct {
		RestaurantID int    `json:"restaurant_id"`
		CustomerName string `json:"customer_name"`
		Address      string `json:"address"`
		Phone        string `json:"phone"`
		Notes        string `json:"notes"`
		Items        []struct {
			MenuItemID int `json:"menu_item_id"`
			Quantity   int `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeFailure(w, http.StatusBadRequest, "Geçersiz istek")
		return
	}
	if strings.TrimSpace(body.CustomerName) == "" || strings.TrimSpace(body.Address) == "" {
		writeFailure(w, http.StatusBadRequest, "Ad ve adres zorunludur")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	order := orderRow{
		RestaurantID: body.RestaurantID,
		CustomerName: body.CustomerName,
		Address:      body.Address,
		Phone:        body.Phone,
		Notes:        body.Notes,
		PlacedAt:     "2024-03-01 19:05:00",
	}
	for _, line := range body.Items {
		for _, row := range b.menus[body.RestaurantID] {
			if row.ID == line.MenuItemID {
				order.Items = append(order.Items, orderLineRow{ItemName: row.Name, Quantity: line.Quantity, Price: row.Price})
				order.Total += row.Price * float64(line.Quantity)
			}
		}
	}
	b.nextID++
	order.ID = b.nextID
	b.orders = append(b.orders, order)
	writeJSON(w, http.StatusCreated, map[string]any{"order_id": order.ID, "total": order.Total})
}

func (b *fakeBackend) authenticate(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeFailure(w, http.StatusBadRequest, "Geçersiz istek")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, exists := b.accounts[body.Email]
	switch vars["action"] {
	case "register":
		if exists {
			writeFailure(w, http.StatusConflict, "Bu e-posta zaten kayıtlı")
			return
		}
		b.nextID++
		acc = account{ID: b.nextID, Name: body.Name, Password: body.Password, Role: vars["role"]}
		b.accounts[body.Email] = acc
	default:
		if !exists || acc.Password != body.Password || acc.Role != vars["role"] {
			writeJSON(w, http.StatusUnauthorized, map[string]string{})
			return
		}
	}
	token := "s" + strconv.Itoa(len(b.sessions)+1)
	b.sessions[token] = acc
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "user_id": acc.ID, "role": acc.Role})
}

type harness struct {
	backend    *fakeBackend
	server     *httptest.Server
	configPath string
	envBaseURL string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := newFakeBackend()
	server := httptest.NewServer(backend.router())
	t.Cleanup(server.Close)
	return &harness{
		backend:    backend,
		server:     server,
		configPath: filepath.Join(t.TempDir(), "config.json"),
		envBaseURL: server.URL,
	}
}

func (h *harness) deps(stdin string) cli.Dependencies {
	store := config.NewStoreAt(h.configPath)
	return cli.Dependencies{
		NewAPI: func(baseURL string) yemekgateway.API {
			return yemekgateway.NewClient(yemekgateway.WithBaseURL(baseURL), yemekgateway.WithTimeout(5*time.Second))
		},
		Profiles:   profile.NewResolver(store),
		Config:     store,
		EnvBaseURL: h.envBaseURL,
		Location:   time.UTC,
		Stdin:      strings.NewReader(stdin),
		Version:    "e2e",
	}
}

type run struct {
	code   int
	stdout string
	stderr string
}

func (h *harness) run(t *testing.T, args ...string) run {
	t.Helper()
	return h.runWithInput(t, "", args...)
}

func (h *harness) runWithInput(t *testing.T, stdin string, args ...string) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli.Execute(context.Background(), args, h.deps(stdin), &stdout, &stderr)
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func decodeEnvelope(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, raw)
	}
	return payload
}
