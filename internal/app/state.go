package app

import (
	"slices"

	"github.com/mekedron/yemek-cli/internal/domain"
)

// Region names a part of the screen that is redrawn as a unit.
type Region string

const (
	RegionRole        Region = "role"
	RegionRestaurants Region = "restaurants"
	RegionHeader      Region = "header"
	RegionMenu        Region = "menu"
	RegionCart        Region = "cart"
	RegionReviews     Region = "reviews"
	RegionAuth        Region = "auth"
	RegionOwnerSelect Region = "owner-select"
	RegionOwnerOrders Region = "owner-orders"
	RegionOwnerMenu   Region = "owner-menu"
)

// Regions lists every region in display order.
var Regions = []Region{
	RegionRole,
	RegionRestaurants,
	RegionHeader,
	RegionMenu,
	RegionCart,
	RegionReviews,
	RegionAuth,
	RegionOwnerSelect,
	RegionOwnerOrders,
	RegionOwnerMenu,
}

// Notice replaces a region's list with a single line, e.g. while loading or
// after a failed fetch. Hint overrides the region's computed hint.
type Notice struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	Hint string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Active reports whether the notice should be shown.
func (n Notice) Active() bool {
	return n.Text != ""
}

// Notices holds per-region notices.
type Notices struct {
	Restaurants Notice
	Menu        Notice
	Reviews     Notice
	OwnerOrders Notice
	OwnerMenu   Notice
}

// Statuses holds per-form outcome lines.
type Statuses struct {
	Order        domain.Status
	Review       domain.Status
	OwnerMenu    domain.Status
	CustomerAuth domain.Status
	OwnerAuth    domain.Status
}

// OrderForm is the delivery details entered before placing an order.
type OrderForm struct {
	CustomerName string
	Address      string
	Phone        string
	Notes        string
}

// ReviewForm is the review being written.
type ReviewForm struct {
	UserName string
	Rating   int
	Comment  string
}

// OwnerItemForm is the owner's new menu item.
type OwnerItemForm struct {
	Name        string
	Category    string
	Price       float64
	Description string
	IsVegan     bool
}

// Forms holds the input fields of every form.
type Forms struct {
	Order     OrderForm
	Review    ReviewForm
	OwnerItem OwnerItemForm
}

// State is the client-side view model. It is owned by a Controller; values
// handed out by Controller.Snapshot are deep copies.
type State struct {
	Role              domain.Role
	OverlayVisible    bool
	Restaurants       []domain.Restaurant
	SelectedID        *int
	Menu              []domain.MenuItem
	Reviews           []domain.Review
	Cart              domain.Cart
	OwnerRestaurantID *int
	OwnerOrders       []domain.Order
	OwnerMenu         []domain.MenuItem
	Forms             Forms
	Notices           Notices
	Statuses          Statuses
}

func newState(orderDefaults OrderForm) State {
	return State{
		Cart: domain.NewCart(),
		Forms: Forms{
			Order:  orderDefaults,
			Review: ReviewForm{Rating: defaultReviewRating},
		},
	}
}

// Restaurant looks up a catalog entry by id.
func (s State) Restaurant(id int) (domain.Restaurant, bool) {
	for _, restaurant := range s.Restaurants {
		if restaurant.ID == id {
			return restaurant, true
		}
	}
	return domain.Restaurant{}, false
}

// Selected returns the restaurant selected in the customer view.
func (s State) Selected() (domain.Restaurant, bool) {
	if s.SelectedID == nil {
		return domain.Restaurant{}, false
	}
	return s.Restaurant(*s.SelectedID)
}

// OwnerRestaurant returns the restaurant managed in the owner view.
func (s State) OwnerRestaurant() (domain.Restaurant, bool) {
	if s.OwnerRestaurantID == nil {
		return domain.Restaurant{}, false
	}
	return s.Restaurant(*s.OwnerRestaurantID)
}

// IsSelected reports whether id is the customer's selected restaurant.
func (s State) IsSelected(id int) bool {
	return s.SelectedID != nil && *s.SelectedID == id
}

// CanSubmitOrder reports whether order submission is enabled.
func (s State) CanSubmitOrder() bool {
	return s.SelectedID != nil && !s.Cart.IsEmpty()
}

func (s State) clone() State {
	out := s
	out.Restaurants = slices.Clone(s.Restaurants)
	out.SelectedID = cloneID(s.SelectedID)
	out.Menu = slices.Clone(s.Menu)
	out.Reviews = slices.Clone(s.Reviews)
	out.Cart = s.Cart.Clone()
	out.OwnerRestaurantID = cloneID(s.OwnerRestaurantID)
	out.OwnerOrders = make([]domain.Order, len(s.OwnerOrders))
	for i, order := range s.OwnerOrders {
		order.Items = slices.Clone(order.Items)
		out.OwnerOrders[i] = order
	}
	out.OwnerMenu = slices.Clone(s.OwnerMenu)
	return out
}

func cloneID(id *int) *int {
	if id == nil {
		return nil
	}
	value := *id
	return &value
}

// Renderer redraws regions from a state snapshot.
type Renderer interface {
	Render(regions []Region, snapshot State)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(regions []Region, snapshot State)

// Render implements Renderer.
func (f RenderFunc) Render(regions []Region, snapshot State) {
	f(regions, snapshot)
}
