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

// LoadCatalog replaces the restaurant list. On failure the list region shows
// an error line.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	restaurants, err := c.api.Restaurants(ctx)
	snapshot := c.update(func(s *State) {
		if err != nil {
			s.Notices.Restaurants = Notice{Text: textCatalogFailed}
			return
		}
		s.Restaurants = restaurants
		s.Notices.Restaurants = Notice{}
	})
	c.emit(snapshot, RegionRestaurants)
	if err != nil {
		c.logger.Error("catalog fetch failed", slog.Any("error", err))
		return err
	}
	c.logger.Debug("catalog loaded", slog.Int("restaurants", len(restaurants)))
	return nil
}

// Bootstrap loads the catalog, selects the first restaurant, defaults the
// owner scope to it and shows the role overlay. No earlier role choice is
// restored. Only a catalog failure is returned; menu and review failures stay
// in their regions.
func (c *Controller) Bootstrap(ctx context.Context) error {
	if err := c.LoadCatalog(ctx); err != nil {
		return err
	}

	snapshot := c.Snapshot()
	if len(snapshot.Restaurants) > 0 {
		if err := c.SelectRestaurant(ctx, snapshot.Restaurants[0].ID); err != nil {
			c.logger.Debug("initial selection incomplete", slog.Any("error", err))
		}
		snapshot = c.update(func(s *State) {
			c.ensureOwnerRestaurant()
		})
		c.emit(snapshot, RegionOwnerSelect)
	}

	snapshot = c.update(func(s *State) {
		s.OverlayVisible = true
	})
	c.emit(snapshot, RegionRole)
	return nil
}

// Reload drops all client state, bootstraps again and returns to the role
// that was active. The gateway, and with it the backend session cookie, is
// kept.
func (c *Controller) Reload(ctx context.Context) error {
	return c.reload(ctx, c.Snapshot().Role)
}

// reload restarts from the bootstrap and then enters role. The role and the
// auth statuses survive; a chosen role never goes back to none.
func (c *Controller) reload(ctx context.Context, role domain.Role) error {
	c.mu.Lock()
	auth := c.state.Statuses
	c.state = newState(c.orderDefaults)
	c.state.Role = role
	c.state.Statuses.CustomerAuth = auth.CustomerAuth
	c.state.Statuses.OwnerAuth = auth.OwnerAuth
	c.selectGen++
	c.ownerGen++
	c.mu.Unlock()

	if err := c.Bootstrap(ctx); err != nil {
		return err
	}
	if !role.Valid() {
		return nil
	}
	return c.SetRole(ctx, role)
}

// SetRole switches the visible view. Entering the customer view selects the
// first restaurant if none is selected; entering the owner view defaults the
// owner restaurant and loads its orders and menu.
func (c *Controller) SetRole(ctx context.Context, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("set role: unsupported role %q", role)
	}
	snapshot := c.update(func(s *State) {
		s.Role = role
		s.OverlayVisible = false
	})
	c.emit(snapshot, RegionRole)
	c.logger.Debug("role changed", slog.String("role", string(role)))

	switch role {
	case domain.RoleCustomer:
		if snapshot.SelectedID == nil && len(snapshot.Restaurants) > 0 {
			return c.SelectRestaurant(ctx, snapshot.Restaurants[0].ID)
		}
		c.emit(snapshot, RegionRestaurants, RegionHeader, RegionMenu, RegionCart, RegionReviews)
		return nil
	default:
		snapshot = c.update(func(s *State) {
			c.ensureOwnerRestaurant()
		})
		c.emit(snapshot, RegionOwnerSelect)
		return c.loadOwnerData(ctx)
	}
}

// AfterAuth runs once a login or registration succeeded.
type AfterAuth func(ctx context.Context, c *Controller, role domain.Role) error

var (
	// EnterRole switches to the authenticated role's view.
	EnterRole AfterAuth = func(ctx context.Context, c *Controller, role domain.Role) error {
		return c.SetRole(ctx, role)
	}
	// ReloadSession starts over from the bootstrap, keeping the backend
	// session, and lands in the authenticated role's view.
	ReloadSession AfterAuth = func(ctx context.Context, c *Controller, role domain.Role) error {
		return c.reload(ctx, role)
	}
)

// Authenticate logs in or registers for role and then runs after. The
// outcome is reported in the role's auth status.
func (c *Controller) Authenticate(
	ctx context.Context,
	role domain.Role,
	action yemekgateway.AuthAction,
	credentials yemekgateway.Credentials,
	after AfterAuth,
) (yemekgateway.AuthResult, error) {
	if !role.Valid() {
		return yemekgateway.AuthResult{}, fmt.Errorf("authenticate: unsupported role %q", role)
	}
	credentials.Name = strings.TrimSpace(credentials.Name)
	credentials.Email = strings.TrimSpace(credentials.Email)

	result, err := c.api.Authenticate(ctx, role, action, credentials)

	success, failure := textLoginSucceeded, textLoginFailed
	if action == yemekgateway.AuthRegister {
		success, failure = textRegisterSucceeded, textRegisterFailed
	}
	status := domain.OK(success)
	if err != nil {
		status = domain.Failure(yemekgateway.MessageOr(err, failure))
	}
	snapshot := c.update(func(s *State) {
		if role == domain.RoleOwner {
			s.Statuses.OwnerAuth = status
		} else {
			s.Statuses.CustomerAuth = status
		}
	})
	c.emit(snapshot, RegionAuth)
	if err != nil {
		c.logger.Warn("authentication rejected", slog.String("role", string(role)), slog.String("action", string(action)), slog.Any("error", err))
		return result, err
	}
	if after == nil {
		return result, nil
	}
	if err := after(ctx, c, role); err != nil && !errors.Is(err, ErrSuperseded) {
		return result, err
	}
	return result, nil
}
