package cli

import (
	"github.com/spf13/cobra"

	"github.com/mekedron/yemek-cli/internal/app"
	"github.com/mekedron/yemek-cli/internal/service/view"
)

func newOwnerCommand(deps Dependencies) *cobra.Command {
	owner := &cobra.Command{
		Use:   "owner",
		Short: "Manage a restaurant: incoming orders and menu.",
	}
	owner.AddCommand(newOwnerOrdersCommand(deps))
	owner.AddCommand(newOwnerMenuCommand(deps))
	return owner
}

// switchOwnerForCommand loads the catalog and the owner data of the
// restaurant named by args, failing only when the shown region failed.
func switchOwnerForCommand(s *session, args []string, shown app.Region) ([]string, error) {
	if err := s.loadCatalog(); err != nil {
		return nil, err
	}
	id, err := s.restaurantID(args)
	if err != nil {
		return nil, err
	}
	switchErr := s.controller.SwitchOwnerRestaurant(s.cmd.Context(), id)
	if switchErr == nil {
		return nil, nil
	}
	state := s.controller.Snapshot()
	notices := []struct {
		region app.Region
		notice app.Notice
	}{
		{app.RegionOwnerOrders, state.Notices.OwnerOrders},
		{app.RegionOwnerMenu, state.Notices.OwnerMenu},
	}
	warnings := []string{}
	for _, entry := range notices {
		if !entry.notice.Active() {
			continue
		}
		if entry.region == shown {
			return nil, s.emitUpstreamError(switchErr)
		}
		warnings = append(warnings, entry.notice.Text)
	}
	return warnings, nil
}

type ownerOrdersPage struct {
	Restaurant view.OwnerSelectView `json:"restaurant" yaml:"restaurant"`
	Orders     view.OwnerOrdersView `json:"orders" yaml:"orders"`
}

func newOwnerOrdersCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "orders [restaurant-id]",
		Short: "Show orders placed at a restaurant, newest first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			warnings, err := switchOwnerForCommand(s, args, app.RegionOwnerOrders)
			if err != nil {
				return err
			}
			state := s.controller.Snapshot()
			page := ownerOrdersPage{Restaurant: view.OwnerSelect(state), Orders: view.OwnerOrders(state, deps.Location)}
			return s.write(page, warnings, page.Restaurant, page.Orders)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newOwnerMenuCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "menu [restaurant-id]",
		Short: "Show a restaurant's menu as the owner sees it, including vegan flags.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			warnings, err := switchOwnerForCommand(s, args, app.RegionOwnerMenu)
			if err != nil {
				return err
			}
			menu := view.OwnerMenu(s.controller.Snapshot())
			return s.write(menu, warnings, menu)
		},
	}
	addGlobalFlags(cmd, &flags)
	cmd.AddCommand(newOwnerMenuAddCommand(deps))
	return cmd
}

func newOwnerMenuAddCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var form app.OwnerItemForm

	cmd := &cobra.Command{
		Use:   "add <restaurant-id>",
		Short: "Add a menu item; customers see it on the next menu load.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			warnings, err := switchOwnerForCommand(s, args, "")
			if err != nil {
				return err
			}
			s.controller.SetOwnerItemForm(form)
			item, err := s.controller.AddOwnerMenuItem(cmd.Context())
			state := s.controller.Snapshot()
			if err != nil && state.Statuses.OwnerMenu.IsError {
				return s.reject(err, codeMenuRejected, state.Statuses.OwnerMenu.Text)
			}
			if err != nil {
				warnings = append(warnings, "menü yenilenemedi")
			}
			menu := view.OwnerMenu(state)
			data := map[string]any{"item": item, "menu": menu}
			return s.write(data, warnings, menu)
		},
	}
	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&form.Name, "name", "", "Item name.")
	cmd.Flags().StringVar(&form.Category, "category", "", "Menu category, for example Pizza.")
	cmd.Flags().Float64Var(&form.Price, "price", 0, "Price in lira.")
	cmd.Flags().StringVar(&form.Description, "description", "", "Short description.")
	cmd.Flags().BoolVar(&form.IsVegan, "vegan", false, "Mark the item as vegan.")
	return cmd
}
