package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mekedron/yemek-cli/internal/domain"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
)

// SelectRestaurant makes id the customer's restaurant, empties the cart and
// loads its menu and reviews in parallel. Every customer region is redrawn
// before the fetches start, menu and reviews with their loading notices; menu, cart and reviews after both finished. Fetch
// failures show in their region and are also returned. Responses that arrive
// after a newer selection are dropped and ErrSuperseded is returned.
func (c *Controller) SelectRestaurant(ctx context.Context, id int) error {
	c.mu.Lock()
	if _, ok := c.state.Restaurant(id); !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownRestaurant, id)
	}
	c.selectGen++
	gen := c.selectGen
	selected := id
	c.state.SelectedID = &selected
	c.state.Cart = domain.NewCart()
	c.state.Statuses.Order = domain.Status{}
	c.state.Statuses.Review = domain.Status{}
	c.state.Notices.Menu = Notice{Text: textLoading, Hint: textMenuLoadingHint}
	c.state.Notices.Reviews = Notice{Text: textLoading, Hint: textReviewsLoadingHint}
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.logger.Debug("restaurant selected", slog.Int("restaurant_id", id), slog.Uint64("generation", gen))
	c.emit(snapshot, RegionRestaurants, RegionHeader, RegionMenu, RegionCart, RegionReviews)

	var (
		menu       []domain.MenuItem
		reviews    []domain.Review
		menuErr    error
		reviewsErr error
	)
	fetchBoth(
		func() { menu, menuErr = c.api.Menu(ctx, id) },
		func() { reviews, reviewsErr = c.api.Reviews(ctx, id) },
	)

	c.mu.Lock()
	if gen != c.selectGen {
		c.mu.Unlock()
		c.logger.Debug("discarding stale restaurant data", slog.Int("restaurant_id", id), slog.Uint64("generation", gen))
		return ErrSuperseded
	}
	c.applyMenu(menu, menuErr)
	c.applyReviews(reviews, reviewsErr)
	snapshot = c.state.clone()
	c.mu.Unlock()

	c.emit(snapshot, RegionMenu, RegionCart, RegionReviews)
	return errors.Join(menuErr, reviewsErr)
}

func (c *Controller) applyMenu(menu []domain.MenuItem, err error) {
	if err != nil {
		c.state.Menu = nil
		c.state.Notices.Menu = Notice{Text: textMenuFailed}
		c.logger.Warn("menu fetch failed", slog.Any("error", err))
		return
	}
	c.state.Menu = menu
	c.state.Notices.Menu = Notice{}
}

func (c *Controller) applyReviews(reviews []domain.Review, err error) {
	if err != nil {
		c.state.Reviews = nil
		c.state.Notices.Reviews = Notice{Text: textReviewsFailed}
		c.logger.Warn("reviews fetch failed", slog.Any("error", err))
		return
	}
	c.state.Reviews = reviews
	c.state.Notices.Reviews = Notice{}
}

// reloadCustomerMenu refetches the menu of the selected restaurant if it is
// still restaurantID.
func (c *Controller) reloadCustomerMenu(ctx context.Context, restaurantID int) error {
	c.mu.Lock()
	if !c.state.IsSelected(restaurantID) {
		c.mu.Unlock()
		return nil
	}
	gen := c.selectGen
	c.mu.Unlock()

	menu, err := c.api.Menu(ctx, restaurantID)

	c.mu.Lock()
	if gen != c.selectGen {
		c.mu.Unlock()
		return ErrSuperseded
	}
	c.applyMenu(menu, err)
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.emit(snapshot, RegionMenu)
	return err
}

// AddToCart adds one unit of a menu item of the current menu. It reports
// false and changes nothing when the item is not on the menu.
func (c *Controller) AddToCart(menuItemID int) bool {
	added := false
	snapshot := c.update(func(s *State) {
		for _, item := range s.Menu {
			if item.ID == menuItemID {
				s.Cart.Add(item)
				added = true
				return
			}
		}
	})
	if added {
		c.emit(snapshot, RegionCart)
	}
	return added
}

// UpdateQuantity sets a cart entry's quantity; zero or less removes it.
// There is no upper bound.
func (c *Controller) UpdateQuantity(menuItemID, quantity int) bool {
	changed := false
	snapshot := c.update(func(s *State) {
		changed = s.Cart.SetQuantity(menuItemID, quantity)
	})
	if changed {
		c.emit(snapshot, RegionCart)
	}
	return changed
}

// SetOrderForm replaces the order form fields.
func (c *Controller) SetOrderForm(form OrderForm) {
	c.update(func(s *State) {
		s.Forms.Order = form
	})
}

// SetReviewForm replaces the review form fields.
func (c *Controller) SetReviewForm(form ReviewForm) {
	c.update(func(s *State) {
		s.Forms.Review = form
	})
}

// PlaceOrder submits the cart of the selected restaurant. Without a
// selection or with an empty cart it only sets the order status.
func (c *Controller) PlaceOrder(ctx context.Context) (yemekgateway.OrderReceipt, error) {
	c.mu.Lock()
	if c.state.SelectedID == nil {
		c.state.Statuses.Order = domain.Failure(textSelectFirst)
		snapshot := c.state.clone()
		c.mu.Unlock()
		c.emit(snapshot, RegionCart)
		return yemekgateway.OrderReceipt{}, ErrNoRestaurantSelected
	}
	if c.state.Cart.IsEmpty() {
		c.state.Statuses.Order = domain.Failure(textCartEmpty)
		snapshot := c.state.clone()
		c.mu.Unlock()
		c.emit(snapshot, RegionCart)
		return yemekgateway.OrderReceipt{}, ErrEmptyCart
	}
	form := c.state.Forms.Order
	request := yemekgateway.OrderRequest{
		RestaurantID: *c.state.SelectedID,
		CustomerName: strings.TrimSpace(form.CustomerName),
		Address:      strings.TrimSpace(form.Address),
		Phone:        strings.TrimSpace(form.Phone),
		Notes:        strings.TrimSpace(form.Notes),
	}
	for _, entry := range c.state.Cart.Entries() {
		request.Items = append(request.Items, yemekgateway.OrderLineRequest{
			MenuItemID: entry.Item.ID,
			Quantity:   entry.Quantity,
		})
	}
	gen := c.selectGen
	c.mu.Unlock()

	receipt, err := c.api.PlaceOrder(ctx, request)

	c.mu.Lock()
	if err != nil {
		c.state.Statuses.Order = domain.Failure(yemekgateway.MessageOr(err, textOrderFailed))
	} else {
		c.state.Statuses.Order = domain.OK(fmt.Sprintf(textOrderPlacedFormat, receipt.OrderID, domain.FormatPrice(receipt.Total)))
		c.state.Forms.Order = c.orderDefaults
		if gen == c.selectGen {
			c.state.Cart = domain.NewCart()
		}
	}
	snapshot := c.state.clone()
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("order rejected", slog.Int("restaurant_id", request.RestaurantID), slog.Any("error", err))
	} else {
		c.logger.Info("order placed", slog.Int("order_id", receipt.OrderID), slog.Float64("total", receipt.Total))
	}
	c.emit(snapshot, RegionCart)
	return receipt, err
}

// SubmitReview posts the review form for the selected restaurant. On success
// the returned review is put first in the list without refetching and the
// form is reset with the default rating.
func (c *Controller) SubmitReview(ctx context.Context) (domain.Review, error) {
	c.mu.Lock()
	if c.state.SelectedID == nil {
		c.state.Statuses.Review = domain.Failure(textSelectFirst)
		snapshot := c.state.clone()
		c.mu.Unlock()
		c.emit(snapshot, RegionReviews)
		return domain.Review{}, ErrNoRestaurantSelected
	}
	restaurantID := *c.state.SelectedID
	form := c.state.Forms.Review
	request := yemekgateway.ReviewRequest{
		UserName: strings.TrimSpace(form.UserName),
		Rating:   form.Rating,
		Comment:  strings.TrimSpace(form.Comment),
	}
	gen := c.selectGen
	c.mu.Unlock()

	review, err := c.api.PostReview(ctx, restaurantID, request)

	c.mu.Lock()
	if err != nil {
		c.state.Statuses.Review = domain.Failure(yemekgateway.MessageOr(err, textReviewFailed))
	} else {
		c.state.Statuses.Review = domain.OK(textReviewAdded)
		c.state.Forms.Review = ReviewForm{Rating: defaultReviewRating}
		if gen == c.selectGen {
			c.state.Reviews = append([]domain.Review{review}, c.state.Reviews...)
			c.state.Notices.Reviews = Notice{}
		}
	}
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.emit(snapshot, RegionReviews)
	return review, err
}
