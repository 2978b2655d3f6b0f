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

// ensureOwnerRestaurant defaults the owner scope to the first catalog entry.
// Callers hold c.mu.
func (c *Controller) ensureOwnerRestaurant() {
	if c.state.OwnerRestaurantID != nil || len(c.state.Restaurants) == 0 {
		return
	}
	first := c.state.Restaurants[0].ID
	c.state.OwnerRestaurantID = &first
}

// SwitchOwnerRestaurant changes the owner's restaurant and reloads its orders
// and menu in parallel. Both lists are replaced, never merged.
func (c *Controller) SwitchOwnerRestaurant(ctx context.Context, id int) error {
	c.mu.Lock()
	if _, ok := c.state.Restaurant(id); !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownRestaurant, id)
	}
	selected := id
	c.state.OwnerRestaurantID = &selected
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.emit(snapshot, RegionOwnerSelect)
	return c.loadOwnerData(ctx)
}

// loadOwnerData fetches orders and menu for the owner restaurant.
func (c *Controller) loadOwnerData(ctx context.Context) error {
	c.mu.Lock()
	if c.state.OwnerRestaurantID == nil {
		c.mu.Unlock()
		return nil
	}
	id := *c.state.OwnerRestaurantID
	c.ownerGen++
	gen := c.ownerGen
	c.mu.Unlock()

	var (
		orders    []domain.Order
		menu      []domain.MenuItem
		ordersErr error
		menuErr   error
	)
	fetchBoth(
		func() { orders, ordersErr = c.api.OwnerOrders(ctx, id) },
		func() { menu, menuErr = c.api.OwnerMenu(ctx, id) },
	)

	c.mu.Lock()
	if gen != c.ownerGen {
		c.mu.Unlock()
		c.logger.Debug("discarding stale owner data", slog.Int("restaurant_id", id), slog.Uint64("generation", gen))
		return ErrSuperseded
	}
	if ordersErr != nil {
		c.state.OwnerOrders = nil
		c.state.Notices.OwnerOrders = Notice{Text: textOwnerOrdersFailed}
		c.logger.Warn("owner orders fetch failed", slog.Int("restaurant_id", id), slog.Any("error", ordersErr))
	} else {
		c.state.OwnerOrders = orders
		c.state.Notices.OwnerOrders = Notice{}
	}
	c.applyOwnerMenu(id, menu, menuErr)
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.emit(snapshot, RegionOwnerOrders, RegionOwnerMenu)
	return errors.Join(ordersErr, menuErr)
}

// applyOwnerMenu stores a fetched owner menu. Callers hold c.mu.
func (c *Controller) applyOwnerMenu(id int, menu []domain.MenuItem, err error) {
	if err != nil {
		c.state.OwnerMenu = nil
		c.state.Notices.OwnerMenu = Notice{Text: textMenuFailed}
		c.logger.Warn("owner menu fetch failed", slog.Int("restaurant_id", id), slog.Any("error", err))
		return
	}
	c.state.OwnerMenu = menu
	c.state.Notices.OwnerMenu = Notice{}
}

func (c *Controller) reloadOwnerMenu(ctx context.Context, id int) error {
	c.mu.Lock()
	gen := c.ownerGen
	c.mu.Unlock()

	menu, err := c.api.OwnerMenu(ctx, id)

	c.mu.Lock()
	if gen != c.ownerGen || c.state.OwnerRestaurantID == nil || *c.state.OwnerRestaurantID != id {
		c.mu.Unlock()
		return ErrSuperseded
	}
	c.applyOwnerMenu(id, menu, err)
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.emit(snapshot, RegionOwnerMenu)
	return err
}

// SetOwnerItemForm replaces the owner's new item form fields.
func (c *Controller) SetOwnerItemForm(form OwnerItemForm) {
	c.update(func(s *State) {
		s.Forms.OwnerItem = form
	})
}

// AddOwnerMenuItem posts the owner item form. On success the owner menu is
// refetched, and so is the customer menu when the customer view shows the
// same restaurant.
func (c *Controller) AddOwnerMenuItem(ctx context.Context) (domain.MenuItem, error) {
	c.mu.Lock()
	if c.state.OwnerRestaurantID == nil {
		c.mu.Unlock()
		return domain.MenuItem{}, ErrNoOwnerRestaurant
	}
	id := *c.state.OwnerRestaurantID
	form := c.state.Forms.OwnerItem
	c.mu.Unlock()

	request := yemekgateway.MenuItemRequest{
		Name:        strings.TrimSpace(form.Name),
		Category:    strings.TrimSpace(form.Category),
		Price:       form.Price,
		Description: strings.TrimSpace(form.Description),
		IsVegan:     form.IsVegan,
	}
	item, err := c.api.AddMenuItem(ctx, id, request)

	snapshot := c.update(func(s *State) {
		if err != nil {
			s.Statuses.OwnerMenu = domain.Failure(yemekgateway.MessageOr(err, textOwnerItemFailed))
			return
		}
		s.Statuses.OwnerMenu = domain.OK(textOwnerItemAdded)
		s.Forms.OwnerItem = OwnerItemForm{}
	})
	c.emit(snapshot, RegionOwnerMenu)
	if err != nil {
		c.logger.Warn("menu item rejected", slog.Int("restaurant_id", id), slog.Any("error", err))
		return domain.MenuItem{}, err
	}

	c.logger.Info("menu item added", slog.Int("restaurant_id", id), slog.String("name", request.Name))
	refreshErr := c.reloadOwnerMenu(ctx, id)
	if errors.Is(refreshErr, ErrSuperseded) {
		refreshErr = nil
	}
	customerErr := c.reloadCustomerMenu(ctx, id)
	if errors.Is(customerErr, ErrSuperseded) {
		customerErr = nil
	}
	return item, errors.Join(refreshErr, customerErr)
}
