package cli

import (
	"github.com/spf13/cobra"

	"github.com/mekedron/yemek-cli/internal/domain"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/service/view"
)

func newAuthCommand(deps Dependencies) *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Check customer or owner credentials against the backend.",
	}
	auth.AddCommand(newAuthActionCommand(deps, yemekgateway.AuthLogin, "Sign in as a customer or restaurant owner."))
	auth.AddCommand(newAuthActionCommand(deps, yemekgateway.AuthRegister, "Create a customer or restaurant owner account."))
	return auth
}

type authResult struct {
	Result yemekgateway.AuthResult `json:"result" yaml:"result"`
	Status view.AuthView           `json:"status" yaml:"status"`
}

func newAuthActionCommand(deps Dependencies, action yemekgateway.AuthAction, short string) *cobra.Command {
	var flags globalFlags
	var roleValue string
	var credentials yemekgateway.Credentials

	cmd := &cobra.Command{
		Use:   string(action),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := parseRoleFlag(roleValue)
			if err != nil {
				return err
			}
			s, err := openSession(cmd, deps, flags)
			if err != nil {
				return err
			}
			result, err := s.controller.Authenticate(cmd.Context(), role, action, credentials, nil)
			state := s.controller.Snapshot()
			status := state.Statuses.CustomerAuth
			if role == domain.RoleOwner {
				status = state.Statuses.OwnerAuth
			}
			if err != nil {
				return s.reject(err, codeAuthRejected, status.Text)
			}
			result.Target = role
			out := authResult{Result: result, Status: view.Auth(state)}
			return s.write(out, nil, out.Status)
		},
	}
	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&roleValue, "role", "customer", "Account role: customer or owner.")
	cmd.Flags().StringVar(&credentials.Email, "email", "", "Account e-mail.")
	cmd.Flags().StringVar(&credentials.Password, "password", "", "Account password.")
	if action == yemekgateway.AuthRegister {
		cmd.Flags().StringVar(&credentials.Name, "name", "", "Display name for the new account.")
	}
	return cmd
}
