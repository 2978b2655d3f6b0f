package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Help groups, in the order the root help lists them.
const (
	groupCustomer = "customer"
	groupOwner    = "owner"
	groupSession  = "session"
)

var helpGroups = []struct {
	id    string
	title string
}{
	{groupCustomer, "browse and order:"},
	{groupOwner, "restaurant owners:"},
	{groupSession, "sessions and setup:"},
}

var sharedGlobalOptionOrder = []string{
	"format",
	"profile",
	"base-url",
	"output",
	"verbose",
}

// NewRootCommand builds the complete command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	version := "yemek " + resolveVersion(deps.Version).String()

	root := &cobra.Command{
		Use:           "yemek",
		Short:         "Order food, review restaurants, and manage your restaurant's menu from the terminal.",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
				return errVersionShown
			}
			return nil
		},
	}
	root.Flags().BoolP("version", "v", false, "Show CLI version and exit.")
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	defaultHelpFunc := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == root {
			renderRootHelp(cmd.OutOrStdout(), root)
			return
		}
		defaultHelpFunc(cmd, args)
	})

	grouped := []struct {
		group string
		cmd   *cobra.Command
	}{
		{groupCustomer, newRestaurantsCommand(deps)},
		{groupCustomer, newMenuCommand(deps)},
		{groupCustomer, newReviewsCommand(deps)},
		{groupCustomer, newReviewCommand(deps)},
		{groupCustomer, newOrderCommand(deps)},
		{groupOwner, newOwnerCommand(deps)},
		{groupSession, newAuthCommand(deps)},
		{groupSession, newShellCommand(deps)},
		{groupSession, newConfigureCommand(deps)},
	}
	for _, group := range helpGroups {
		root.AddGroup(&cobra.Group{ID: group.id, Title: group.title})
	}
	for _, entry := range grouped {
		entry.cmd.GroupID = entry.group
		root.AddCommand(entry.cmd)
	}

	return root
}

type verboseHTTPTraceSetter interface {
	SetVerboseOutput(out io.Writer)
}

func attachVerboseHTTPTrace(cmd *cobra.Command, upstream any) {
	if cmd == nil || upstream == nil {
		return
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return
	}
	setter, ok := upstream.(verboseHTTPTraceSetter)
	if !ok {
		return
	}
	setter.SetVerboseOutput(cmd.ErrOrStderr())
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "[verbose] http trace enabled")
}

// renderRootHelp prints the command groups, the options every command
// shares, and a reference of each runnable command with its own options.
func renderRootHelp(out io.Writer, root *cobra.Command) {
	_, _ = fmt.Fprintf(out, "%s: %s\n\n", root.Name(), root.Short)
	_, _ = fmt.Fprintf(out, "usage: %s <command> [options]\n\n", root.Name())

	for _, group := range helpGroups {
		_, _ = fmt.Fprintln(out, group.title)
		for _, cmd := range root.Commands() {
			if cmd.Hidden || cmd.GroupID != group.id {
				continue
			}
			_, _ = fmt.Fprintf(out, "  %-12s %s\n", cmd.Name(), cmd.Short)
		}
		_, _ = fmt.Fprintln(out)
	}

	_, _ = fmt.Fprintln(out, "global options (accepted by every command that talks to the backend):")
	for _, option := range sharedGlobalOptions() {
		_, _ = fmt.Fprintf(out, "  %s: %s\n", option.token, option.usage)
	}
	_, _ = fmt.Fprintf(out, "  --version/-v: %s\n", root.Flags().Lookup("version").Usage)

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "notes:")
	_, _ = fmt.Fprintln(out, "  - each command is its own session; the backend login only lasts for one invocation. Use `shell` to stay signed in.")
	_, _ = fmt.Fprintln(out, "  - order fields not given as flags fall back to the customer defaults of the selected profile.")
	_, _ = fmt.Fprintln(out, "  - the backend address is taken from --base-url, then the profile, then YEMEK_BASE_URL.")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "full reference:")
	walkRunnable(root, func(cmd *cobra.Command) {
		_, _ = fmt.Fprintf(out, "- %s\n", commandSignature(cmd))
		_, _ = fmt.Fprintf(out, "  %s\n", cmd.Short)
		if options := commandOptions(cmd); len(options) > 0 {
			_, _ = fmt.Fprintln(out, "  options:")
			for _, option := range options {
				_, _ = fmt.Fprintf(out, "    %s: %s\n", option.token, option.usage)
			}
		}
	})
}

// walkRunnable visits every visible command that has a handler, depth first.
func walkRunnable(parent *cobra.Command, visit func(*cobra.Command)) {
	for _, cmd := range parent.Commands() {
		if cmd.Hidden {
			continue
		}
		if cmd.Runnable() {
			visit(cmd)
		}
		walkRunnable(cmd, visit)
	}
}

func commandSignature(cmd *cobra.Command) string {
	path := cmd.CommandPath()
	if _, args, found := strings.Cut(cmd.Use, " "); found {
		return path + " " + args
	}
	return path
}

type optionDoc struct {
	name  string
	token string
	usage string
}

func newOptionDoc(flag *pflag.Flag) optionDoc {
	token := "--" + flag.Name
	if flag.Shorthand != "" {
		token += "/-" + flag.Shorthand
	}
	usage := strings.TrimSpace(flag.Usage)
	if flag.DefValue != "" && flag.DefValue != "false" && flag.DefValue != "[]" && flag.DefValue != "0" {
		usage += fmt.Sprintf(" (default %s)", flag.DefValue)
	}
	return optionDoc{name: flag.Name, token: token, usage: usage}
}

// sharedGlobalOptions documents the flags added by addGlobalFlags.
func sharedGlobalOptions() []optionDoc {
	probe := &cobra.Command{Use: "probe"}
	addGlobalFlags(probe, &globalFlags{})
	options := make([]optionDoc, 0, len(sharedGlobalOptionOrder))
	for _, name := range sharedGlobalOptionOrder {
		if flag := probe.Flags().Lookup(name); flag != nil {
			options = append(options, newOptionDoc(flag))
		}
	}
	return options
}

// commandOptions lists a command's own options, leaving out the shared ones.
func commandOptions(cmd *cobra.Command) []optionDoc {
	options := make([]optionDoc, 0)
	cmd.NonInheritedFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden || flag.Name == "help" || isSharedGlobalFlag(flag) {
			return
		}
		options = append(options, newOptionDoc(flag))
	})
	sort.Slice(options, func(i, j int) bool {
		return options[i].name < options[j].name
	})
	return options
}

func isSharedGlobalOption(name string) bool {
	for _, shared := range sharedGlobalOptionOrder {
		if shared == name {
			return true
		}
	}
	return false
}

func isSharedGlobalFlag(flag *pflag.Flag) bool {
	if flag == nil || flag.Annotations == nil {
		return false
	}
	values, ok := flag.Annotations[sharedGlobalFlagAnnotation]
	return ok && len(values) > 0 && values[0] == "true"
}
