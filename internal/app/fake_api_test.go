package app

import (
	"context"
	"errors"
	"sync"

	"github.com/mekedron/yemek-cli/internal/domain"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
)

var errBackendDown = errors.New("backend down")

type fakeAPI struct {
	restaurantsFn  func(context.Context) ([]domain.Restaurant, error)
	menuFn         func(context.Context, int) ([]domain.MenuItem, error)
	ownerMenuFn    func(context.Context, int) ([]domain.MenuItem, error)
	reviewsFn      func(context.Context, int) ([]domain.Review, error)
	postReviewFn   func(context.Context, int, yemekgateway.ReviewRequest) (domain.Review, error)
	placeOrderFn   func(context.Context, yemekgateway.OrderRequest) (yemekgateway.OrderReceipt, error)
	ownerOrdersFn  func(context.Context, int) ([]domain.Order, error)
	addMenuItemFn  func(context.Context, int, yemekgateway.MenuItemRequest) (domain.MenuItem, error)
	authenticateFn func(context.Context, domain.Role, yemekgateway.AuthAction, yemekgateway.Credentials) (yemekgateway.AuthResult, error)

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	f.record("restaurants")
	if f.restaurantsFn != nil {
		return f.restaurantsFn(ctx)
	}
	return nil, nil
}

func (f *fakeAPI) Menu(ctx context.Context, id int) ([]domain.MenuItem, error) {
	f.record("menu")
	if f.menuFn != nil {
		return f.menuFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeAPI) OwnerMenu(ctx context.Context, id int) ([]domain.MenuItem, error) {
	f.record("owner_menu")
	if f.ownerMenuFn != nil {
		return f.ownerMenuFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeAPI) Reviews(ctx context.Context, id int) ([]domain.Review, error) {
	f.record("reviews")
	if f.reviewsFn != nil {
		return f.reviewsFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeAPI) PostReview(ctx context.Context, id int, review yemekgateway.ReviewRequest) (domain.Review, error) {
	f.record("post_review")
	if f.postReviewFn != nil {
		return f.postReviewFn(ctx, id, review)
	}
	return domain.Review{}, nil
}

func (f *fakeAPI) PlaceOrder(ctx context.Context, order yemekgateway.OrderRequest) (yemekgateway.OrderReceipt, error) {
	f.record("place_order")
	if f.placeOrderFn != nil {
		return f.placeOrderFn(ctx, order)
	}
	return yemekgateway.OrderReceipt{}, nil
}

func (f *fakeAPI) OwnerOrders(ctx context.Context, id int) ([]domain.Order, error) {
	f.record("owner_orders")
	if f.ownerOrdersFn != nil {
		return f.ownerOrdersFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeAPI) AddMenuItem(ctx context.Context, id int, item yemekgateway.MenuItemRequest) (domain.MenuItem, error) {
	f.record("add_menu_item")
	if f.addMenuItemFn != nil {
		return f.addMenuItemFn(ctx, id, item)
	}
	return domain.MenuItem{}, nil
}

func (f *fakeAPI) Authenticate(ctx context.Context, role domain.Role, action yemekgateway.AuthAction, credentials yemekgateway.Credentials) (yemekgateway.AuthResult, error) {
	f.record("auth")
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, role, action, credentials)
	}
	return yemekgateway.AuthResult{}, nil
}

func twoRestaurants() []domain.Restaurant {
	return []domain.Restaurant{
		domain.NewRestaurant(1, "Pizza Roma", []string{"İtalyan"}, 100, "555"),
		domain.NewRestaurant(2, "Kebapçı", nil, 50, ""),
	}
}

func catalogAPI() *fakeAPI {
	return &fakeAPI{
		restaurantsFn: func(context.Context) ([]domain.Restaurant, error) {
			return twoRestaurants(), nil
		},
		menuFn: func(_ context.Context, id int) ([]domain.MenuItem, error) {
			return []domain.MenuItem{
				{ID: id*10 + 1, Name: "Margherita", Price: 150, Category: "Pizza"},
				{ID: id*10 + 2, Name: "Ayran", Price: 20, Category: "İçecek"},
			}, nil
		},
	}
}

type recordingRenderer struct {
	mu      sync.Mutex
	regions []Region
}

func (r *recordingRenderer) Render(regions []Region, _ State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions = append(r.regions, regions...)
}

func (r *recordingRenderer) saw(region Region) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, candidate := range r.regions {
		if candidate == region {
			return true
		}
	}
	return false
}
