package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mekedron/yemek-cli/internal/app"
	"github.com/mekedron/yemek-cli/internal/domain"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/service/view"
)

var turkishLower = cases.Lower(language.Turkish)

func newRestaurantsCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var search string

	cmd := &cobra.Command{
		Use:   "restaurants",
		Short: "List restaurants with cuisine, rating, delivery time and minimum order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			if err := s.loadCatalog(); err != nil {
				return err
			}
			list := filterRestaurants(view.Restaurants(s.controller.Snapshot()), search)
			return s.write(list, nil, list)
		},
	}
	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&search, "search", "", "Only show restaurants whose name, cuisine or description contains this text.")
	return cmd
}

// filterRestaurants keeps cards matching query with Turkish case rules, so
// "ızgara" matches "IZGARA" and "istanbul" matches "İSTANBUL".
func filterRestaurants(list view.RestaurantList, query string) view.RestaurantList {
	needle := turkishLower.String(strings.TrimSpace(query))
	if needle == "" {
		return list
	}
	kept := make([]view.RestaurantCard, 0, len(list.Restaurants))
	for _, card := range list.Restaurants {
		haystack := turkishLower.String(card.Name + " " + card.Cuisine + " " + card.Description)
		if strings.Contains(haystack, needle) {
			kept = append(kept, card)
		}
	}
	list.Restaurants = kept
	return list
}

// selectForCommand loads the catalog and selects the restaurant named by
// args. Only a failure of the region the command shows is fatal; the other
// region's failure becomes a warning.
func selectForCommand(s *session, args []string, shown app.Region) ([]string, error) {
	if err := s.loadCatalog(); err != nil {
		return nil, err
	}
	id, err := s.restaurantID(args)
	if err != nil {
		return nil, err
	}
	selectErr := s.controller.SelectRestaurant(s.cmd.Context(), id)
	if selectErr == nil {
		return nil, nil
	}
	state := s.controller.Snapshot()
	notices := []struct {
		region app.Region
		notice app.Notice
	}{
		{app.RegionMenu, state.Notices.Menu},
		{app.RegionReviews, state.Notices.Reviews},
	}
	warnings := []string{}
	for _, entry := range notices {
		if !entry.notice.Active() {
			continue
		}
		if entry.region == shown {
			return nil, s.emitUpstreamError(selectErr)
		}
		warnings = append(warnings, entry.notice.Text)
	}
	return warnings, nil
}

type menuPage struct {
	Restaurant view.Header   `json:"restaurant" yaml:"restaurant"`
	Menu       view.MenuView `json:"menu" yaml:"menu"`
}

func newMenuCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "menu [restaurant-id]",
		Short: "Show a restaurant's menu grouped by category (defaults to the first restaurant).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			warnings, err := selectForCommand(s, args, app.RegionMenu)
			if err != nil {
				return err
			}
			state := s.controller.Snapshot()
			page := menuPage{Restaurant: view.RestaurantHeader(state), Menu: view.Menu(state)}
			return s.write(page, warnings, page.Restaurant, page.Menu)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

type reviewsPage struct {
	Restaurant view.Header      `json:"restaurant" yaml:"restaurant"`
	Reviews    view.ReviewsView `json:"reviews" yaml:"reviews"`
}

func newReviewsCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "reviews [restaurant-id]",
		Short: "Show a restaurant's reviews, newest first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			warnings, err := selectForCommand(s, args, app.RegionReviews)
			if err != nil {
				return err
			}
			state := s.controller.Snapshot()
			page := reviewsPage{Restaurant: view.RestaurantHeader(state), Reviews: view.Reviews(state, deps.Location)}
			return s.write(page, warnings, page.Restaurant, page.Reviews)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newReviewCommand(deps Dependencies) *cobra.Command {
	review := &cobra.Command{
		Use:   "review",
		Short: "Write restaurant reviews.",
	}
	review.AddCommand(newReviewAddCommand(deps))
	return review
}

func newReviewAddCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var form app.ReviewForm

	cmd := &cobra.Command{
		Use:   "add <restaurant-id>",
		Short: "Post a review; it is shown first in the restaurant's review list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			warnings, err := selectForCommand(s, args, "")
			if err != nil {
				return err
			}
			s.controller.SetReviewForm(form)
			review, err := s.controller.SubmitReview(cmd.Context())
			state := s.controller.Snapshot()
			if err != nil {
				return s.reject(err, codeReviewRejected, state.Statuses.Review.Text)
			}
			reviews := view.Reviews(state, deps.Location)
			data := map[string]any{"review": review, "reviews": reviews}
			return s.write(data, warnings, reviews)
		},
	}
	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&form.UserName, "name", "", "Name shown with the review.")
	cmd.Flags().IntVar(&form.Rating, "rating", 5, "Rating from 1 to 5.")
	cmd.Flags().StringVar(&form.Comment, "comment", "", "Review text.")
	return cmd
}

func newOrderCommand(deps Dependencies) *cobra.Command {
	order := &cobra.Command{
		Use:   "order",
		Short: "Place delivery orders.",
	}
	order.AddCommand(newOrderPlaceCommand(deps))
	return order
}

// cartRequest is one --item value.
type cartRequest struct {
	MenuItemID int
	Quantity   int
}

// parseCartItems parses "<menu-id>[:qty]" values; repeated ids add up.
func parseCartItems(values []string) ([]cartRequest, error) {
	index := map[int]int{}
	requests := make([]cartRequest, 0, len(values))
	for _, raw := range values {
		idPart, qtyPart, hasQty := strings.Cut(strings.TrimSpace(raw), ":")
		id, err := strconv.Atoi(strings.TrimSpace(idPart))
		if err != nil {
			return nil, fmt.Errorf("invalid --item %q: menu item id must be a number", raw)
		}
		quantity := 1
		if hasQty {
			quantity, err = strconv.Atoi(strings.TrimSpace(qtyPart))
			if err != nil || quantity < 1 {
				return nil, fmt.Errorf("invalid --item %q: quantity must be a positive number", raw)
			}
		}
		if pos, ok := index[id]; ok {
			requests[pos].Quantity += quantity
			continue
		}
		index[id] = len(requests)
		requests = append(requests, cartRequest{MenuItemID: id, Quantity: quantity})
	}
	return requests, nil
}

type orderResult struct {
	Receipt yemekgateway.OrderReceipt `json:"receipt" yaml:"receipt"`
	Cart    view.CartView             `json:"cart" yaml:"cart"`
}

func newOrderPlaceCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var items []string
	var form app.OrderForm

	cmd := &cobra.Command{
		Use:   "place <restaurant-id>",
		Short: "Fill a cart from the restaurant's menu and place the order.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := parseCartItems(items)
			if err != nil {
				return err
			}
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			warnings, err := selectForCommand(s, args, app.RegionMenu)
			if err != nil {
				return err
			}
			for _, request := range requests {
				if !s.controller.AddToCart(request.MenuItemID) {
					return s.emitError(codeInvalidArgument, fmt.Sprintf("menu item %d is not on the menu", request.MenuItemID))
				}
				s.controller.UpdateQuantity(request.MenuItemID, request.Quantity)
			}

			defaults := s.controller.Snapshot().Forms.Order
			s.controller.SetOrderForm(app.OrderForm{
				CustomerName: flagOr(cmd, "name", form.CustomerName, defaults.CustomerName),
				Address:      flagOr(cmd, "address", form.Address, defaults.Address),
				Phone:        flagOr(cmd, "phone", form.Phone, defaults.Phone),
				Notes:        flagOr(cmd, "notes", form.Notes, defaults.Notes),
			})

			receipt, err := s.controller.PlaceOrder(cmd.Context())
			state := s.controller.Snapshot()
			switch {
			case errors.Is(err, app.ErrEmptyCart), errors.Is(err, app.ErrNoRestaurantSelected):
				return s.emitError(codeInvalidArgument, state.Statuses.Order.Text)
			case err != nil:
				return s.reject(err, codeOrderRejected, state.Statuses.Order.Text)
			}
			result := orderResult{Receipt: receipt, Cart: view.Cart(state)}
			return s.write(result, warnings, result.Cart)
		},
	}
	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringArrayVar(&items, "item", nil, "Menu item to order as <menu-id>[:qty] (repeatable).")
	cmd.Flags().StringVar(&form.CustomerName, "name", "", "Customer name (defaults to the profile).")
	cmd.Flags().StringVar(&form.Address, "address", "", "Delivery address (defaults to the profile).")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number (defaults to the profile).")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "Notes for the restaurant.")
	return cmd
}

// flagOr returns value when the flag was given, otherwise fallback.
func flagOr(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

func parseRoleFlag(raw string) (domain.Role, error) {
	role, err := domain.ParseRole(raw)
	if err != nil {
		return domain.RoleNone, fmt.Errorf("--role: %w", err)
	}
	return role, nil
}
