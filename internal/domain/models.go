package domain

import (
	"fmt"
	"strings"
)

// Catalog display defaults for fields the backend does not provide.
const (
	DefaultCuisine      = "Genel"
	DefaultAvgRating    = "-"
	DefaultDeliveryTime = "30-45 dk"
	DefaultDescription  = "Restoran"
)

// Restaurant is the client projection of a catalog entry.
type Restaurant struct {
	ID           int     `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Cuisine      string  `json:"cuisine" yaml:"cuisine"`
	AvgRating    string  `json:"avg_rating" yaml:"avg_rating"`
	ReviewCount  int     `json:"review_count" yaml:"review_count"`
	DeliveryTime string  `json:"delivery_time" yaml:"delivery_time"`
	MinOrder     float64 `json:"min_order" yaml:"min_order"`
	Description  string  `json:"description" yaml:"description"`
}

// NewRestaurant fills display placeholders for a raw catalog entry.
func NewRestaurant(id int, name string, cuisines []string, minOrder float64, phone string) Restaurant {
	cuisine := DefaultCuisine
	if len(cuisines) > 0 && strings.TrimSpace(cuisines[0]) != "" {
		cuisine = cuisines[0]
	}
	description := DefaultDescription
	if strings.TrimSpace(phone) != "" {
		description = "Tel: " + phone
	}
	return Restaurant{
		ID:           id,
		Name:         name,
		Cuisine:      cuisine,
		AvgRating:    DefaultAvgRating,
		ReviewCount:  0,
		DeliveryTime: DefaultDeliveryTime,
		MinOrder:     minOrder,
		Description:  description,
	}
}

// MenuItem is one orderable product.
type MenuItem struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	IsVegan     bool    `json:"is_vegan" yaml:"is_vegan"`
}

// CartEntry is a menu item snapshot with a positive quantity.
type CartEntry struct {
	Item     MenuItem `json:"item" yaml:"item"`
	Quantity int      `json:"quantity" yaml:"quantity"`
}

// Subtotal returns price times quantity.
func (e CartEntry) Subtotal() float64 {
	return e.Item.Price * float64(e.Quantity)
}

// Review is a display-only review record.
type Review struct {
	UserName  string `json:"user_name" yaml:"user_name"`
	Rating    int    `json:"rating" yaml:"rating"`
	Comment   string `json:"comment" yaml:"comment"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// OrderLine is one line of an owner-visible order.
type OrderLine struct {
	ItemName string  `json:"item_name" yaml:"item_name"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	Price    float64 `json:"price" yaml:"price"`
}

// Subtotal returns unit price times quantity.
func (l OrderLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Order is a placed order as seen by the restaurant owner.
type Order struct {
	ID           int         `json:"id" yaml:"id"`
	CustomerName string      `json:"customer_name" yaml:"customer_name"`
	Address      string      `json:"address" yaml:"address"`
	Phone        string      `json:"phone" yaml:"phone"`
	Notes        string      `json:"notes" yaml:"notes"`
	PlacedAt     string      `json:"placed_at" yaml:"placed_at"`
	Total        float64     `json:"total" yaml:"total"`
	Items        []OrderLine `json:"items" yaml:"items"`
}

// Role selects which view is active.
type Role string

const (
	RoleNone     Role = ""
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// ParseRole validates role names.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleOwner:
		return RoleOwner, nil
	default:
		return RoleNone, fmt.Errorf("unsupported role %q (use customer or owner)", raw)
	}
}

// Valid reports whether the role is one of the selectable roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleOwner
}

// Label renders the role for tables.
func (r Role) Label() string {
	if r == RoleNone {
		return "-"
	}
	return string(r)
}

// Status is a one-line outcome message for a form region.
type Status struct {
	Text    string `json:"text" yaml:"text"`
	IsError bool   `json:"is_error" yaml:"is_error"`
}

// OK builds a success status.
func OK(text string) Status {
	return Status{Text: text}
}

// Failure builds an error status.
func Failure(text string) Status {
	return Status{Text: text, IsError: true}
}
