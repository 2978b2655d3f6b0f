package yemek

import (
	"context"

	"github.com/mekedron/yemek-cli/internal/domain"
)

// API describes every backend operation used by the client.
type API interface {
	Restaurants(ctx context.Context) ([]domain.Restaurant, error)
	Menu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	OwnerMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	Reviews(ctx context.Context, restaurantID int) ([]domain.Review, error)
	PostReview(ctx context.Context, restaurantID int, review ReviewRequest) (domain.Review, error)
	PlaceOrder(ctx context.Context, order OrderRequest) (OrderReceipt, error)
	OwnerOrders(ctx context.Context, restaurantID int) ([]domain.Order, error)
	AddMenuItem(ctx context.Context, restaurantID int, item MenuItemRequest) (domain.MenuItem, error)
	Authenticate(ctx context.Context, role domain.Role, action AuthAction, credentials Credentials) (AuthResult, error)
}

// AuthAction selects the login or register endpoint.
type AuthAction string

const (
	AuthLogin    AuthAction = "login"
	AuthRegister AuthAction = "register"
)

// ReviewRequest is the review submission body.
type ReviewRequest struct {
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// OrderLineRequest references one cart entry.
type OrderLineRequest struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

// OrderRequest is the order placement body.
type OrderRequest struct {
	RestaurantID int                `json:"restaurant_id"`
	CustomerName string             `json:"customer_name"`
	Address      string             `json:"address"`
	Phone        string             `json:"phone"`
	Notes        string             `json:"notes"`
	Items        []OrderLineRequest `json:"items"`
}

// OrderReceipt is the server confirmation of a placed order.
type OrderReceipt struct {
	OrderID int     `json:"order_id"`
	Total   float64 `json:"total"`
}

// MenuItemRequest is the owner's new menu item body.
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	IsVegan     bool    `json:"is_vegan"`
}

// Credentials is the login/register body. Name is only sent on register.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the role confirmation returned on login/register.
type AuthResult struct {
	Message string      `json:"message"`
	UserID  int         `json:"user_id"`
	Role    string      `json:"role"`
	Target  domain.Role `json:"-"`
}
