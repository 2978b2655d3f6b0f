// Package view projects controller state into what each screen region shows.
// Projections are pure and rebuild the whole region on every call.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mekedron/yemek-cli/internal/app"
	"github.com/mekedron/yemek-cli/internal/domain"
	"github.com/mekedron/yemek-cli/internal/service/output"
)

const (
	textHeaderPlaceholder     = "Önce bir restoran seçin"
	textHeaderPlaceholderHint = "Menü, yorum ve sipariş için listeden seçim yapın."
	textMenuNoSelection       = "Menüyü görmek için bir restoran seçin."
	textMenuEmptyHint         = "Henüz menü eklenmedi"
	textCartEmpty             = "Menüden ürün ekleyin."
	textCartEmptyHint         = "Sepet boş"
	textReviewsNoSelection    = "Henüz bir restoran seçmediniz."
	textReviewsEmpty          = "Bu restoran için yorum yok. İlk yorumu sen yaz!"
	textReviewsEmptyHint      = "İlk yorumu sen ekle"
	textOwnerNoRestaurant     = "Restoran seçin."
	textOwnerOrdersEmpty      = "Bu restoran için henüz sipariş yok."
	textOwnerOrdersEmptyHint  = "Sipariş bulunamadı"
	textOwnerMenuEmpty        = "Henüz ürün yok, eklemeye başlayın."
	textOwnerMenuEmptyHint    = "Ürün ekleyin"
	textRolePrompt            = "Rol seçin: customer | owner"
	placeholder               = "-"
)

// Block is a projected region.
type Block interface {
	Text() string
}

// StatusLine is a form outcome shown under a region.
type StatusLine struct {
	Text  string `json:"text" yaml:"text"`
	Error bool   `json:"error" yaml:"error"`
}

func statusLine(status domain.Status) *StatusLine {
	if status.Text == "" {
		return nil
	}
	return &StatusLine{Text: status.Text, Error: status.IsError}
}

func (s *StatusLine) text() string {
	if s == nil {
		return ""
	}
	if s.Error {
		return "! " + s.Text
	}
	return "✓ " + s.Text
}

func titled(title, hint string) string {
	if hint == "" {
		return title
	}
	return title + " (" + hint + ")"
}

func noticeText(title, hint, line string) string {
	return titled(title, hint) + "\n" + line
}

func withStatus(body string, status *StatusLine) string {
	if line := status.text(); line != "" {
		return body + "\n" + line
	}
	return body
}

// RestaurantCard is one catalog entry.
type RestaurantCard struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Cuisine      string `json:"cuisine" yaml:"cuisine"`
	Rating       string `json:"rating" yaml:"rating"`
	ReviewCount  int    `json:"review_count" yaml:"review_count"`
	DeliveryTime string `json:"delivery_time" yaml:"delivery_time"`
	MinOrder     string `json:"min_order" yaml:"min_order"`
	Description  string `json:"description" yaml:"description"`
	Selected     bool   `json:"selected" yaml:"selected"`
}

// RestaurantList is the catalog region.
type RestaurantList struct {
	Notice      string           `json:"notice,omitempty" yaml:"notice,omitempty"`
	Restaurants []RestaurantCard `json:"restaurants" yaml:"restaurants"`
}

// Restaurants projects the catalog with the customer's selection marked.
func Restaurants(s app.State) RestaurantList {
	list := RestaurantList{Restaurants: make([]RestaurantCard, 0, len(s.Restaurants))}
	if s.Notices.Restaurants.Active() {
		list.Notice = s.Notices.Restaurants.Text
		return list
	}
	for _, restaurant := range s.Restaurants {
		list.Restaurants = append(list.Restaurants, RestaurantCard{
			ID:           restaurant.ID,
			Name:         restaurant.Name,
			Cuisine:      restaurant.Cuisine,
			Rating:       domain.FallbackString(restaurant.AvgRating, placeholder),
			ReviewCount:  restaurant.ReviewCount,
			DeliveryTime: restaurant.DeliveryTime,
			MinOrder:     domain.FormatPrice(restaurant.MinOrder),
			Description:  restaurant.Description,
			Selected:     s.IsSelected(restaurant.ID),
		})
	}
	return list
}

// Text implements Block.
func (v RestaurantList) Text() string {
	if v.Notice != "" {
		return noticeText("Restoranlar", "", v.Notice)
	}
	rows := make([][]string, 0, len(v.Restaurants))
	for _, card := range v.Restaurants {
		marker := ""
		if card.Selected {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			strconv.Itoa(card.ID),
			card.Name,
			card.Cuisine,
			ratingText(card.Rating, card.ReviewCount),
			card.DeliveryTime,
			"Min " + card.MinOrder,
			card.Description,
		})
	}
	return output.RenderTable("Restoranlar", []string{"", "ID", "RESTORAN", "MUTFAK", "PUAN", "TESLİMAT", "MİN. SİPARİŞ", "AÇIKLAMA"}, rows)
}

func ratingText(rating string, reviewCount int) string {
	return fmt.Sprintf("⭐ %s (%d yorum)", rating, reviewCount)
}

// Header is the selected restaurant's summary.
type Header struct {
	Selected     bool   `json:"selected" yaml:"selected"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Rating       string `json:"rating" yaml:"rating"`
	MinOrder     string `json:"min_order" yaml:"min_order"`
	DeliveryTime string `json:"delivery_time" yaml:"delivery_time"`
}

// RestaurantHeader projects the header, or a placeholder without a selection.
func RestaurantHeader(s app.State) Header {
	restaurant, ok := s.Selected()
	if !ok {
		return Header{
			Name:         textHeaderPlaceholder,
			Description:  textHeaderPlaceholderHint,
			Rating:       placeholder,
			MinOrder:     placeholder,
			DeliveryTime: placeholder,
		}
	}
	rating := domain.FallbackString(restaurant.AvgRating, placeholder)
	return Header{
		Selected:     true,
		Name:         restaurant.Name,
		Description:  restaurant.Description,
		Rating:       fmt.Sprintf("%s (%d yorum)", rating, restaurant.ReviewCount),
		MinOrder:     domain.FormatPrice(restaurant.MinOrder),
		DeliveryTime: restaurant.DeliveryTime,
	}
}

// Text implements Block.
func (v Header) Text() string {
	return output.RenderTable(v.Name, nil, [][]string{
		{v.Description},
		{"Puan:", v.Rating},
		{"Min. sipariş:", v.MinOrder},
		{"Teslimat:", v.DeliveryTime},
	})
}

// MenuLine is one orderable item.
type MenuLine struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       string `json:"price" yaml:"price"`
	Vegan       bool   `json:"vegan" yaml:"vegan"`
}

// MenuCategory groups items under one category heading.
type MenuCategory struct {
	Name  string     `json:"name" yaml:"name"`
	Items []MenuLine `json:"items" yaml:"items"`
}

// MenuView is the customer menu region.
type MenuView struct {
	Hint       string         `json:"hint" yaml:"hint"`
	Notice     string         `json:"notice,omitempty" yaml:"notice,omitempty"`
	Categories []MenuCategory `json:"categories" yaml:"categories"`
}

// Menu groups the customer menu by category in first-seen order.
func Menu(s app.State) MenuView {
	v := MenuView{Categories: []MenuCategory{}}
	if s.SelectedID == nil {
		v.Notice = textMenuNoSelection
		return v
	}
	if s.Notices.Menu.Active() {
		v.Notice = s.Notices.Menu.Text
		v.Hint = s.Notices.Menu.Hint
		return v
	}
	if len(s.Menu) == 0 {
		v.Hint = textMenuEmptyHint
		return v
	}
	v.Hint = fmt.Sprintf("%d ürün", len(s.Menu))

	index := map[string]int{}
	for _, item := range s.Menu {
		pos, ok := index[item.Category]
		if !ok {
			pos = len(v.Categories)
			index[item.Category] = pos
			v.Categories = append(v.Categories, MenuCategory{Name: item.Category})
		}
		v.Categories[pos].Items = append(v.Categories[pos].Items, MenuLine{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       domain.FormatPrice(item.Price),
			Vegan:       item.IsVegan,
		})
	}
	return v
}

// Text implements Block.
func (v MenuView) Text() string {
	if v.Notice != "" {
		return noticeText("Menü", v.Hint, v.Notice)
	}
	var rows [][]string
	for _, category := range v.Categories {
		rows = append(rows, []string{"", strings.ToUpper(category.Name), "", ""})
		for _, item := range category.Items {
			rows = append(rows, []string{strconv.Itoa(item.ID), item.Name + veganTag(item.Vegan), item.Price, item.Description})
		}
	}
	return output.RenderTable(titled("Menü", v.Hint), []string{"ID", "ÜRÜN", "FİYAT", "AÇIKLAMA"}, rows)
}

func veganTag(vegan bool) string {
	if vegan {
		return " [Vegan]"
	}
	return ""
}

// CartLine is one cart entry.
type CartLine struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Price    string `json:"price" yaml:"price"`
	Category string `json:"category" yaml:"category"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Subtotal string `json:"subtotal" yaml:"subtotal"`
}

// CartView is the cart region with its order status.
type CartView struct {
	Hint      string      `json:"hint" yaml:"hint"`
	Empty     string      `json:"empty,omitempty" yaml:"empty,omitempty"`
	Lines     []CartLine  `json:"lines" yaml:"lines"`
	Total     string      `json:"total" yaml:"total"`
	CanSubmit bool        `json:"can_submit" yaml:"can_submit"`
	Status    *StatusLine `json:"status,omitempty" yaml:"status,omitempty"`
}

// Cart projects the cart in insertion order.
func Cart(s app.State) CartView {
	v := CartView{
		Lines:  []CartLine{},
		Total:  domain.FormatPrice(s.Cart.Total()),
		Status: statusLine(s.Statuses.Order),
	}
	entries := s.Cart.Entries()
	if len(entries) == 0 {
		v.Empty = textCartEmpty
		v.Hint = textCartEmptyHint
		return v
	}
	v.Hint = fmt.Sprintf("%d ürün eklendi", len(entries))
	v.CanSubmit = s.CanSubmitOrder()
	for _, entry := range entries {
		v.Lines = append(v.Lines, CartLine{
			ID:       entry.Item.ID,
			Name:     entry.Item.Name,
			Price:    domain.FormatPrice(entry.Item.Price),
			Category: entry.Item.Category,
			Quantity: entry.Quantity,
			Subtotal: domain.FormatPrice(entry.Subtotal()),
		})
	}
	return v
}

// Text implements Block.
func (v CartView) Text() string {
	var body string
	if v.Empty != "" {
		body = noticeText("Sepet", v.Hint, v.Empty)
	} else {
		rows := make([][]string, 0, len(v.Lines))
		for _, line := range v.Lines {
			rows = append(rows, []string{strconv.Itoa(line.ID), line.Name, line.Price + " • " + line.Category, strconv.Itoa(line.Quantity), line.Subtotal})
		}
		body = output.RenderTable(titled("Sepet", v.Hint), []string{"ID", "ÜRÜN", "FİYAT", "ADET", "TUTAR"}, rows)
	}
	body += "\nToplam: " + v.Total
	return withStatus(body, v.Status)
}

// ReviewLine is one review.
type ReviewLine struct {
	UserName  string `json:"user_name" yaml:"user_name"`
	Rating    int    `json:"rating" yaml:"rating"`
	Comment   string `json:"comment" yaml:"comment"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// ReviewsView is the reviews region with its review status.
type ReviewsView struct {
	Hint    string       `json:"hint" yaml:"hint"`
	Notice  string       `json:"notice,omitempty" yaml:"notice,omitempty"`
	Reviews []ReviewLine `json:"reviews" yaml:"reviews"`
	Status  *StatusLine  `json:"status,omitempty" yaml:"status,omitempty"`
}

// Reviews projects the selected restaurant's reviews, newest first as the
// backend returned them. Timestamps are shown in loc.
func Reviews(s app.State, loc *time.Location) ReviewsView {
	v := ReviewsView{Reviews: []ReviewLine{}, Status: statusLine(s.Statuses.Review)}
	switch {
	case s.SelectedID == nil:
		v.Notice = textReviewsNoSelection
		return v
	case s.Notices.Reviews.Active():
		v.Notice = s.Notices.Reviews.Text
		v.Hint = s.Notices.Reviews.Hint
		return v
	case len(s.Reviews) == 0:
		v.Notice = textReviewsEmpty
		v.Hint = textReviewsEmptyHint
		return v
	}
	v.Hint = fmt.Sprintf("%d yorum", len(s.Reviews))
	for _, review := range s.Reviews {
		v.Reviews = append(v.Reviews, ReviewLine{
			UserName:  review.UserName,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: domain.FormatTimestamp(review.CreatedAt, loc),
		})
	}
	return v
}

// Text implements Block.
func (v ReviewsView) Text() string {
	if v.Notice != "" {
		return withStatus(noticeText("Yorumlar", v.Hint, v.Notice), v.Status)
	}
	rows := make([][]string, 0, len(v.Reviews))
	for _, review := range v.Reviews {
		rows = append(rows, []string{review.UserName, "⭐ " + strconv.Itoa(review.Rating), review.Comment, review.CreatedAt})
	}
	return withStatus(output.RenderTable(titled("Yorumlar", v.Hint), []string{"KULLANICI", "PUAN", "YORUM", "TARİH"}, rows), v.Status)
}

// OwnerOption is one entry of the owner's restaurant picker.
type OwnerOption struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// OwnerSelectView is the owner's restaurant picker.
type OwnerSelectView struct {
	Options []OwnerOption `json:"options" yaml:"options"`
}

// OwnerSelect projects the owner's restaurant picker.
func OwnerSelect(s app.State) OwnerSelectView {
	v := OwnerSelectView{Options: make([]OwnerOption, 0, len(s.Restaurants))}
	for _, restaurant := range s.Restaurants {
		v.Options = append(v.Options, OwnerOption{
			ID:       restaurant.ID,
			Name:     restaurant.Name,
			Selected: s.OwnerRestaurantID != nil && *s.OwnerRestaurantID == restaurant.ID,
		})
	}
	return v
}

// Text implements Block.
func (v OwnerSelectView) Text() string {
	rows := make([][]string, 0, len(v.Options))
	for _, option := range v.Options {
		marker := ""
		if option.Selected {
			marker = "*"
		}
		rows = append(rows, []string{marker, strconv.Itoa(option.ID), option.Name})
	}
	return output.RenderTable("Yönetilen restoran", []string{"", "ID", "RESTORAN"}, rows)
}

// OwnerOrderLine is one ordered item with its subtotal.
type OwnerOrderLine struct {
	Text     string `json:"text" yaml:"text"`
	Subtotal string `json:"subtotal" yaml:"subtotal"`
}

// OwnerOrderCard is one incoming order.
type OwnerOrderCard struct {
	ID           int              `json:"id" yaml:"id"`
	CustomerName string           `json:"customer_name" yaml:"customer_name"`
	PlacedAt     string           `json:"placed_at" yaml:"placed_at"`
	Address      string           `json:"address" yaml:"address"`
	Phone        string           `json:"phone" yaml:"phone"`
	Lines        []OwnerOrderLine `json:"lines" yaml:"lines"`
	Total        string           `json:"total" yaml:"total"`
	Notes        string           `json:"notes" yaml:"notes"`
}

// OwnerOrdersView is the owner's order list.
type OwnerOrdersView struct {
	Hint   string           `json:"hint" yaml:"hint"`
	Notice string           `json:"notice,omitempty" yaml:"notice,omitempty"`
	Orders []OwnerOrderCard `json:"orders" yaml:"orders"`
}

// OwnerOrders projects orders of the owner restaurant. Timestamps are shown
// in loc.
func OwnerOrders(s app.State, loc *time.Location) OwnerOrdersView {
	v := OwnerOrdersView{Orders: []OwnerOrderCard{}}
	switch {
	case s.OwnerRestaurantID == nil:
		v.Notice = textOwnerNoRestaurant
		return v
	case s.Notices.OwnerOrders.Active():
		v.Notice = s.Notices.OwnerOrders.Text
		return v
	case len(s.OwnerOrders) == 0:
		v.Notice = textOwnerOrdersEmpty
		v.Hint = textOwnerOrdersEmptyHint
		return v
	}
	v.Hint = fmt.Sprintf("%d sipariş", len(s.OwnerOrders))
	for _, order := range s.OwnerOrders {
		card := OwnerOrderCard{
			ID:           order.ID,
			CustomerName: order.CustomerName,
			PlacedAt:     domain.FormatTimestamp(order.PlacedAt, loc),
			Address:      order.Address,
			Phone:        order.Phone,
			Lines:        make([]OwnerOrderLine, 0, len(order.Items)),
			Total:        domain.FormatPrice(order.Total),
			Notes:        domain.FallbackString(order.Notes, placeholder),
		}
		for _, line := range order.Items {
			card.Lines = append(card.Lines, OwnerOrderLine{
				Text:     fmt.Sprintf("%d x %s", line.Quantity, line.ItemName),
				Subtotal: domain.FormatPrice(line.Subtotal()),
			})
		}
		v.Orders = append(v.Orders, card)
	}
	return v
}

// Text implements Block.
func (v OwnerOrdersView) Text() string {
	if v.Notice != "" {
		return noticeText("Siparişler", v.Hint, v.Notice)
	}
	blocks := []string{titled("Siparişler", v.Hint)}
	for _, order := range v.Orders {
		rows := make([][]string, 0, len(order.Lines)+3)
		rows = append(rows, []string{order.Address + " • " + order.Phone, ""})
		for _, line := range order.Lines {
			rows = append(rows, []string{line.Text, line.Subtotal})
		}
		rows = append(rows, []string{"Toplam", order.Total}, []string{"Not: " + order.Notes, ""})
		title := fmt.Sprintf("#%d • %s  [%s]", order.ID, order.CustomerName, order.PlacedAt)
		blocks = append(blocks, output.RenderTable(title, nil, rows))
	}
	return output.JoinBlocks(blocks...)
}

// OwnerMenuLine is one item of the owner's menu.
type OwnerMenuLine struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Price       string `json:"price" yaml:"price"`
	Vegan       bool   `json:"vegan" yaml:"vegan"`
}

// OwnerMenuView is the owner's menu with the add-item status.
type OwnerMenuView struct {
	Hint   string          `json:"hint" yaml:"hint"`
	Notice string          `json:"notice,omitempty" yaml:"notice,omitempty"`
	Items  []OwnerMenuLine `json:"items" yaml:"items"`
	Status *StatusLine     `json:"status,omitempty" yaml:"status,omitempty"`
}

// OwnerMenu projects the owner's menu as a flat list.
func OwnerMenu(s app.State) OwnerMenuView {
	v := OwnerMenuView{Items: []OwnerMenuLine{}, Status: statusLine(s.Statuses.OwnerMenu)}
	switch {
	case s.Notices.OwnerMenu.Active():
		v.Notice = s.Notices.OwnerMenu.Text
		return v
	case len(s.OwnerMenu) == 0:
		v.Notice = textOwnerMenuEmpty
		v.Hint = textOwnerMenuEmptyHint
		return v
	}
	v.Hint = fmt.Sprintf("%d ürün", len(s.OwnerMenu))
	for _, item := range s.OwnerMenu {
		v.Items = append(v.Items, OwnerMenuLine{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			Price:       domain.FormatPrice(item.Price),
			Vegan:       item.IsVegan,
		})
	}
	return v
}

// Text implements Block.
func (v OwnerMenuView) Text() string {
	if v.Notice != "" {
		return withStatus(noticeText("Menü yönetimi", v.Hint, v.Notice), v.Status)
	}
	rows := make([][]string, 0, len(v.Items))
	for _, item := range v.Items {
		rows = append(rows, []string{strconv.Itoa(item.ID), item.Name + veganTag(item.Vegan), item.Category, item.Price, item.Description})
	}
	return withStatus(output.RenderTable(titled("Menü yönetimi", v.Hint), []string{"ID", "ÜRÜN", "KATEGORİ", "FİYAT", "AÇIKLAMA"}, rows), v.Status)
}

// AuthView holds the login/register outcome per role.
type AuthView struct {
	Customer *StatusLine `json:"customer,omitempty" yaml:"customer,omitempty"`
	Owner    *StatusLine `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// Auth projects both auth statuses.
func Auth(s app.State) AuthView {
	return AuthView{
		Customer: statusLine(s.Statuses.CustomerAuth),
		Owner:    statusLine(s.Statuses.OwnerAuth),
	}
}

// Text implements Block.
func (v AuthView) Text() string {
	var lines []string
	if line := v.Customer.text(); line != "" {
		lines = append(lines, "Müşteri: "+line)
	}
	if line := v.Owner.text(); line != "" {
		lines = append(lines, "Restoran sahibi: "+line)
	}
	return strings.Join(lines, "\n")
}

// RoleView is the role overlay and the active view.
type RoleView struct {
	Role           string `json:"role" yaml:"role"`
	OverlayVisible bool   `json:"overlay_visible" yaml:"overlay_visible"`
	Prompt         string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
}

// Role projects the role switch.
func Role(s app.State) RoleView {
	v := RoleView{Role: s.Role.Label(), OverlayVisible: s.OverlayVisible}
	if s.OverlayVisible {
		v.Prompt = textRolePrompt
	}
	return v
}

// Text implements Block.
func (v RoleView) Text() string {
	if v.Prompt != "" {
		return v.Prompt
	}
	return "Rol: " + v.Role
}

// Region projects a single region.
func Region(region app.Region, s app.State, loc *time.Location) (Block, bool) {
	switch region {
	case app.RegionRole:
		return Role(s), true
	case app.RegionRestaurants:
		return Restaurants(s), true
	case app.RegionHeader:
		return RestaurantHeader(s), true
	case app.RegionMenu:
		return Menu(s), true
	case app.RegionCart:
		return Cart(s), true
	case app.RegionReviews:
		return Reviews(s, loc), true
	case app.RegionAuth:
		return Auth(s), true
	case app.RegionOwnerSelect:
		return OwnerSelect(s), true
	case app.RegionOwnerOrders:
		return OwnerOrders(s, loc), true
	case app.RegionOwnerMenu:
		return OwnerMenu(s), true
	default:
		return nil, false
	}
}

// ParseRegion resolves a region name.
func ParseRegion(name string) (app.Region, error) {
	want := app.Region(strings.ToLower(strings.TrimSpace(name)))
	for _, region := range app.Regions {
		if region == want {
			return region, nil
		}
	}
	names := make([]string, 0, len(app.Regions))
	for _, region := range app.Regions {
		names = append(names, string(region))
	}
	return "", fmt.Errorf("unknown region %q (available: %s)", name, strings.Join(names, ", "))
}

// Screen is every region of the active role, keyed for machine output.
type Screen struct {
	Role        RoleView         `json:"role" yaml:"role"`
	Restaurants *RestaurantList  `json:"restaurants,omitempty" yaml:"restaurants,omitempty"`
	Header      *Header          `json:"header,omitempty" yaml:"header,omitempty"`
	Menu        *MenuView        `json:"menu,omitempty" yaml:"menu,omitempty"`
	Cart        *CartView        `json:"cart,omitempty" yaml:"cart,omitempty"`
	Reviews     *ReviewsView     `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	OwnerSelect *OwnerSelectView `json:"owner_select,omitempty" yaml:"owner_select,omitempty"`
	OwnerOrders *OwnerOrdersView `json:"owner_orders,omitempty" yaml:"owner_orders,omitempty"`
	OwnerMenu   *OwnerMenuView   `json:"owner_menu,omitempty" yaml:"owner_menu,omitempty"`
	Auth        AuthView         `json:"auth" yaml:"auth"`
}

// FullScreen projects the regions visible for the current role. Without a
// role the customer regions are shown behind the overlay.
func FullScreen(s app.State, loc *time.Location) Screen {
	screen := Screen{Role: Role(s), Auth: Auth(s)}
	if s.Role == domain.RoleOwner {
		ownerSelect, orders, menu := OwnerSelect(s), OwnerOrders(s, loc), OwnerMenu(s)
		screen.OwnerSelect, screen.OwnerOrders, screen.OwnerMenu = &ownerSelect, &orders, &menu
		return screen
	}
	restaurants, header, menu, cart, reviews := Restaurants(s), RestaurantHeader(s), Menu(s), Cart(s), Reviews(s, loc)
	screen.Restaurants, screen.Header, screen.Menu, screen.Cart, screen.Reviews = &restaurants, &header, &menu, &cart, &reviews
	return screen
}

// Text implements Block.
func (v Screen) Text() string {
	blocks := []string{v.Role.Text()}
	if v.Restaurants != nil {
		blocks = append(blocks, v.Restaurants.Text(), v.Header.Text(), v.Menu.Text(), v.Cart.Text(), v.Reviews.Text())
	}
	if v.OwnerSelect != nil {
		blocks = append(blocks, v.OwnerSelect.Text(), v.OwnerOrders.Text(), v.OwnerMenu.Text())
	}
	blocks = append(blocks, v.Auth.Text())
	return output.JoinBlocks(blocks...)
}
