package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/yemek-cli/internal/domain"
)

func newConfigureCommand(deps Dependencies) *cobra.Command {
	var profileName string
	var baseURL string
	var makeDefault bool
	var customer domain.CustomerDefaults

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save a profile with delivery defaults and the backend address.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deps.Config == nil {
				return fmt.Errorf("config store is not available")
			}
			if strings.TrimSpace(profileName) == "" {
				return errors.New(requiredArg("--profile-name"))
			}
			saved := domain.Profile{
				Name:      strings.TrimSpace(profileName),
				IsDefault: makeDefault,
				BaseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
				Customer: domain.CustomerDefaults{
					Name:    strings.TrimSpace(customer.Name),
					Address: strings.TrimSpace(customer.Address),
					Phone:   strings.TrimSpace(customer.Phone),
				},
			}
			cfg, err := deps.Config.Upsert(cmd.Context(), saved)
			if err != nil {
				return err
			}
			return writeTable(cmd, fmt.Sprintf("Profile %q saved to %s (%d profiles).", saved.Name, deps.Config.Path(), len(cfg.Profiles)), "")
		},
	}

	cmd.Flags().StringVar(&profileName, "profile-name", "default", "Profile name.")
	cmd.Flags().StringVar(&baseURL, "backend-url", "", "Backend address used with this profile.")
	cmd.Flags().BoolVar(&makeDefault, "default", false, "Use this profile when --profile is not given.")
	cmd.Flags().StringVar(&customer.Name, "customer-name", "", "Default customer name for orders.")
	cmd.Flags().StringVar(&customer.Address, "address", "", "Default delivery address.")
	cmd.Flags().StringVar(&customer.Phone, "phone", "", "Default phone number.")
	return cmd
}
