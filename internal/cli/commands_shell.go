package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	"github.com/mekedron/yemek-cli/internal/app"
	"github.com/mekedron/yemek-cli/internal/domain"
	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/service/output"
	"github.com/mekedron/yemek-cli/internal/service/view"
)

const (
	shellPrompt = "yemek> "
	shellBanner = "yemek shell: komutlar için help, çıkmak için exit yazın."
)

var (
	errShellExit = errors.New("shell exit")
	commandFold  = cases.Fold()
)

func newShellCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive session: choose a role, browse and order, or manage a restaurant.",
		Long: "Starts one client session. The catalog is loaded, the first restaurant is selected and a role must be chosen. " +
			"Every change redraws the affected regions. A backend login lasts until the shell exits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := &regionPrinter{out: cmd.OutOrStdout(), location: deps.Location}
			s, err := openSession(cmd, deps, flags, app.WithRenderer(printer))
			if err != nil {
				return err
			}
			printer.format, printer.profile, printer.baseURL = s.format, s.profileLabel(), s.settings.BaseURL
			return runShell(cmd.Context(), s, printer, cmd.InOrStdin())
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

// regionPrinter writes redrawn regions. Regions of the inactive role are
// skipped; role and auth regions are always written.
type regionPrinter struct {
	mu       sync.Mutex
	out      io.Writer
	format   output.Format
	profile  string
	baseURL  string
	location *time.Location
}

// Render implements app.Renderer.
func (p *regionPrinter) Render(regions []app.Region, snapshot app.State) {
	seen := map[app.Region]struct{}{}
	visible := make([]app.Region, 0, len(regions))
	for _, region := range regions {
		if _, dup := seen[region]; dup || !regionVisible(region, snapshot.Role) {
			continue
		}
		seen[region] = struct{}{}
		visible = append(visible, region)
	}
	p.show(snapshot, visible...)
}

func (p *regionPrinter) show(snapshot app.State, regions ...app.Region) {
	if len(regions) == 0 {
		return
	}
	blocks := make([]string, 0, len(regions))
	data := make(map[string]any, len(regions))
	for _, region := range regions {
		block, ok := view.Region(region, snapshot, p.location)
		if !ok {
			continue
		}
		blocks = append(blocks, block.Text())
		data[string(region)] = block
	}
	p.write(output.JoinBlocks(blocks...), data)
}

func (p *regionPrinter) showScreen(snapshot app.State) {
	screen := view.FullScreen(snapshot, p.location)
	p.write(screen.Text(), screen)
}

func (p *regionPrinter) write(text string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.format == output.FormatJSON || p.format == output.FormatYAML {
		rendered, err := output.RenderPayload(output.BuildEnvelope(p.profile, p.baseURL, data, nil), p.format)
		if err != nil {
			return
		}
		text = rendered
	}
	if strings.TrimSpace(text) == "" {
		return
	}
	_, _ = fmt.Fprintln(p.out, text)
}

func regionVisible(region app.Region, role domain.Role) bool {
	switch region {
	case app.RegionRole, app.RegionAuth:
		return true
	case app.RegionOwnerSelect, app.RegionOwnerOrders, app.RegionOwnerMenu:
		return role == domain.RoleOwner
	default:
		return role != domain.RoleOwner
	}
}

func isTerminal(in io.Reader) bool {
	file, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func runShell(ctx context.Context, s *session, printer *regionPrinter, in io.Reader) error {
	out := s.cmd.OutOrStdout()
	errOut := s.cmd.ErrOrStderr()
	interactive := isTerminal(in)
	if interactive {
		_, _ = fmt.Fprintln(out, shellBanner)
	}

	if err := s.controller.Bootstrap(ctx); err != nil {
		s.logger.Warn("bootstrap failed", slog.Any("error", err))
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			_, _ = fmt.Fprint(out, shellPrompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := splitShellWords(line)
		if err != nil {
			_, _ = fmt.Fprintln(errOut, "! "+err.Error())
			continue
		}
		words[0] = commandFold.String(words[0])

		tree := newShellTree(s, printer)
		tree.SetArgs(words)
		err = tree.ExecuteContext(ctx)
		if errors.Is(err, errShellExit) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintln(errOut, "! "+err.Error())
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read shell input: %w", err)
	}
	return nil
}

// rendered drops errors whose outcome is already visible in a region.
func rendered(s *session, err error) error {
	if err == nil || errors.Is(err, app.ErrSuperseded) {
		return nil
	}
	if errors.Is(err, yemekgateway.ErrUpstream) {
		s.logger.Debug("backend error shown in region", slog.Any("error", err))
		return nil
	}
	return err
}

func parseShellID(raw, what string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s bir sayı olmalı: %q", what, raw)
	}
	return id, nil
}

// newShellTree builds the command set for one input line. Form flags default
// to the current form contents, so a later line only changes what it names.
func newShellTree(s *session, printer *regionPrinter) *cobra.Command {
	c := s.controller
	current := c.Snapshot()

	root := &cobra.Command{
		Use:           "yemek>",
		Short:         "Shell commands.",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetOut(s.cmd.OutOrStdout())
	root.SetErr(s.cmd.ErrOrStderr())

	root.AddCommand(&cobra.Command{
		Use:   "role <customer|owner>",
		Short: "Choose the customer or the owner view.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := domain.ParseRole(args[0])
			if err != nil {
				return err
			}
			return rendered(s, c.SetRole(cmd.Context(), role))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "select <restaurant-id>",
		Short: "Select a restaurant; the cart is emptied.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseShellID(args[0], "restoran")
			if err != nil {
				return err
			}
			err = c.SelectRestaurant(cmd.Context(), id)
			if errors.Is(err, app.ErrUnknownRestaurant) {
				return fmt.Errorf("restoran bulunamadı: %d", id)
			}
			return rendered(s, err)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "add <menu-id>",
		Short: "Add one unit of a menu item to the cart.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseShellID(args[0], "ürün")
			if err != nil {
				return err
			}
			if !c.AddToCart(id) {
				return fmt.Errorf("ürün menüde yok: %d", id)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "qty <menu-id> <quantity>",
		Short: "Set a cart quantity; 0 removes the item.",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseShellID(args[0], "ürün")
			if err != nil {
				return err
			}
			quantity, err := parseShellID(args[1], "adet")
			if err != nil {
				return err
			}
			if !c.UpdateQuantity(id, quantity) {
				return fmt.Errorf("ürün sepette yok: %d", id)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "cart",
		Short: "Show the cart.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			printer.show(c.Snapshot(), app.RegionCart)
			return nil
		},
	})

	orderForm := current.Forms.Order
	order := &cobra.Command{
		Use:   "order",
		Short: "Place the order for the cart.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.SetOrderForm(orderForm)
			_, err := c.PlaceOrder(cmd.Context())
			if err != nil {
				s.logger.Debug("order not placed", slog.Any("error", err))
			}
			return nil
		},
	}
	order.Flags().StringVar(&orderForm.CustomerName, "name", orderForm.CustomerName, "Customer name.")
	order.Flags().StringVar(&orderForm.Address, "address", orderForm.Address, "Delivery address.")
	order.Flags().StringVar(&orderForm.Phone, "phone", orderForm.Phone, "Phone number.")
	order.Flags().StringVar(&orderForm.Notes, "notes", orderForm.Notes, "Notes for the restaurant.")
	root.AddCommand(order)

	reviewForm := current.Forms.Review
	review := &cobra.Command{
		Use:   "review",
		Short: "Post a review for the selected restaurant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.SetReviewForm(reviewForm)
			_, err := c.SubmitReview(cmd.Context())
			if err != nil {
				s.logger.Debug("review not posted", slog.Any("error", err))
			}
			return nil
		},
	}
	review.Flags().StringVar(&reviewForm.UserName, "name", reviewForm.UserName, "Name shown with the review.")
	review.Flags().IntVar(&reviewForm.Rating, "rating", reviewForm.Rating, "Rating from 1 to 5.")
	review.Flags().StringVar(&reviewForm.Comment, "comment", reviewForm.Comment, "Review text.")
	root.AddCommand(review)

	root.AddCommand(newShellOwnerCommand(s, printer, current.Forms.OwnerItem))
	root.AddCommand(newShellAuthCommand(s, yemekgateway.AuthLogin, current.Role, app.EnterRole))
	root.AddCommand(newShellAuthCommand(s, yemekgateway.AuthRegister, current.Role, app.ReloadSession))

	root.AddCommand(&cobra.Command{
		Use:   "show [region|all]",
		Short: "Redraw a region, or every region of the current view.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			snapshot := c.Snapshot()
			if len(args) == 0 || commandFold.String(args[0]) == "all" {
				printer.showScreen(snapshot)
				return nil
			}
			region, err := view.ParseRegion(args[0])
			if err != nil {
				return err
			}
			printer.show(snapshot, region)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "reload",
		Short: "Start over: reload the catalog and return to the current role.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rendered(s, c.Reload(cmd.Context()))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:     "exit",
		Aliases: []string{"quit"},
		Short:   "Leave the shell.",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return errShellExit
		},
	})
	return root
}

func newShellOwnerCommand(s *session, printer *regionPrinter, itemForm app.OwnerItemForm) *cobra.Command {
	c := s.controller
	owner := &cobra.Command{
		Use:   "owner",
		Short: "Owner view commands.",
	}

	owner.AddCommand(&cobra.Command{
		Use:   "switch <restaurant-id>",
		Short: "Manage another restaurant; orders and menu are reloaded.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseShellID(args[0], "restoran")
			if err != nil {
				return err
			}
			err = c.SwitchOwnerRestaurant(cmd.Context(), id)
			if errors.Is(err, app.ErrUnknownRestaurant) {
				return fmt.Errorf("restoran bulunamadı: %d", id)
			}
			return rendered(s, err)
		},
	})

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a menu item to the managed restaurant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.SetOwnerItemForm(itemForm)
			_, err := c.AddOwnerMenuItem(cmd.Context())
			if errors.Is(err, app.ErrNoOwnerRestaurant) {
				return errors.New("önce yönetilecek restoranı seçin")
			}
			return rendered(s, err)
		},
	}
	add.Flags().StringVar(&itemForm.Name, "name", itemForm.Name, "Item name.")
	add.Flags().StringVar(&itemForm.Category, "category", itemForm.Category, "Menu category.")
	add.Flags().Float64Var(&itemForm.Price, "price", itemForm.Price, "Price in lira.")
	add.Flags().StringVar(&itemForm.Description, "description", itemForm.Description, "Short description.")
	add.Flags().BoolVar(&itemForm.IsVegan, "vegan", itemForm.IsVegan, "Mark the item as vegan.")
	owner.AddCommand(add)

	for _, region := range []app.Region{app.RegionOwnerOrders, app.RegionOwnerMenu} {
		owner.AddCommand(&cobra.Command{
			Use:   strings.TrimPrefix(string(region), "owner-"),
			Short: "Show the " + string(region) + " region.",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				printer.show(c.Snapshot(), region)
				return nil
			},
		})
	}
	return owner
}

func newShellAuthCommand(s *session, action yemekgateway.AuthAction, currentRole domain.Role, after app.AfterAuth) *cobra.Command {
	var roleValue string
	var credentials yemekgateway.Credentials

	defaultRole := currentRole
	if !defaultRole.Valid() {
		defaultRole = domain.RoleCustomer
	}
	cmd := &cobra.Command{
		Use:   string(action),
		Short: "Sign in or register, then continue in that role.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := parseRoleFlag(roleValue)
			if err != nil {
				return err
			}
			_, err = s.controller.Authenticate(cmd.Context(), role, action, credentials, after)
			return rendered(s, err)
		},
	}
	cmd.Flags().StringVar(&roleValue, "role", string(defaultRole), "Account role: customer or owner.")
	cmd.Flags().StringVar(&credentials.Email, "email", "", "Account e-mail.")
	cmd.Flags().StringVar(&credentials.Password, "password", "", "Account password.")
	if action == yemekgateway.AuthRegister {
		cmd.Flags().StringVar(&credentials.Name, "name", "", "Display name for the new account.")
	}
	return cmd
}

// splitShellWords splits a line on spaces, keeping quoted parts together.
func splitShellWords(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("kapatılmamış tırnak: %s", line)
	}
	if escaped {
		current.WriteRune('\\')
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}
