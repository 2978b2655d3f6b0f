package yemek

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mekedron/yemek-cli/internal/domain"
)

type catalogPage struct {
	Restaurants []catalogEntry `json:"restaurants"`
}

type catalogEntry struct {
	RestaurantID   domain.Amount `json:"restaurant_id"`
	Name           string        `json:"name"`
	Cuisines       []string      `json:"cuisines"`
	MinOrderAmount domain.Amount `json:"min_order_amount"`
	Phone          string        `json:"phone"`
}

func (e catalogEntry) restaurant() domain.Restaurant {
	return domain.NewRestaurant(e.RestaurantID.Int(), e.Name, e.Cuisines, e.MinOrderAmount.Float(), e.Phone)
}

type menuPage struct {
	Categories []menuCategory `json:"categories"`
}

type menuCategory struct {
	Name     string        `json:"name"`
	Products []menuProduct `json:"products"`
}

type menuProduct struct {
	ProductID   domain.Amount `json:"product_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	BasePrice   domain.Amount `json:"base_price"`
}

type ownerMenuRow struct {
	ID          domain.Amount `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       domain.Amount `json:"price"`
	Category    string        `json:"category"`
	IsVegan     bool          `json:"is_vegan"`
}

func (r ownerMenuRow) item() domain.MenuItem {
	return domain.MenuItem{
		ID:          r.ID.Int(),
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price.Float(),
		Category:    r.Category,
		IsVegan:     r.IsVegan,
	}
}

// flattenMenu turns the categorised menu into items in category order. The
// vegan flag is not part of this shape.
func flattenMenu(page menuPage) []domain.MenuItem {
	items := make([]domain.MenuItem, 0)
	for _, category := range page.Categories {
		for _, product := range category.Products {
			items = append(items, domain.MenuItem{
				ID:          product.ProductID.Int(),
				Name:        product.Name,
				Description: product.Description,
				Price:       product.BasePrice.Float(),
				Category:    category.Name,
			})
		}
	}
	return items
}

// decodeMenu accepts either menu shape the backend serves on the same route:
// the categorised customer page or the owner's flat array.
func decodeMenu(raw []byte) ([]domain.MenuItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.MenuItem{}, nil
	}
	if trimmed[0] == '[' {
		var rows []ownerMenuRow
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("decode menu rows: %w", err)
		}
		items := make([]domain.MenuItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, row.item())
		}
		return items, nil
	}
	var page menuPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("decode menu page: %w", err)
	}
	return flattenMenu(page), nil
}

type reviewRow struct {
	UserName  string        `json:"user_name"`
	Rating    domain.Amount `json:"rating"`
	Comment   string        `json:"comment"`
	CreatedAt string        `json:"created_at"`
}

func (r reviewRow) review() domain.Review {
	return domain.Review{
		UserName:  r.UserName,
		Rating:    r.Rating.Int(),
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

type orderRow struct {
	ID           domain.Amount  `json:"id"`
	CustomerName string         `json:"customer_name"`
	Address      string         `json:"address"`
	Phone        string         `json:"phone"`
	Notes        string         `json:"notes"`
	PlacedAt     string         `json:"placed_at"`
	Total        domain.Amount  `json:"total"`
	Items        []orderLineRow `json:"items"`
}

type orderLineRow struct {
	ItemName string        `json:"item_name"`
	Quantity domain.Amount `json:"quantity"`
	Price    domain.Amount `json:"price"`
}

func (r orderRow) order() domain.Order {
	lines := make([]domain.OrderLine, 0, len(r.Items))
	for _, line := range r.Items {
		lines = append(lines, domain.OrderLine{
			ItemName: line.ItemName,
			Quantity: line.Quantity.Int(),
			Price:    line.Price.Float(),
		})
	}
	return domain.Order{
		ID:           r.ID.Int(),
		CustomerName: r.CustomerName,
		Address:      r.Address,
		Phone:        r.Phone,
		Notes:        r.Notes,
		PlacedAt:     r.PlacedAt,
		Total:        r.Total.Float(),
		Items:        lines,
	}
}

type receiptRow struct {
	OrderID domain.Amount `json:"order_id"`
	Total   domain.Amount `json:"total"`
}

type authRow struct {
	Message string        `json:"message"`
	UserID  domain.Amount `json:"user_id"`
	Role    string        `json:"role"`
}
