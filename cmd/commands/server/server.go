package server

import (
	"fmt"

	"upmgr/internal/config"
	"upmgr/internal/server/domain"
	"upmgr/internal/server/providers"
	"upmgr/internal/server/services"
	"upmgr/internal/services/auth"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage servers across cloud providers",
		Long:  `Create, list, modify, and delete servers from your configured cloud providers.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
		PersistentPreRunE: resolveProvider,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(ModifyCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(FirewallCommand())

	cmd.PersistentFlags().String("provider", "", "Cloud provider to use (overrides default)")

	return cmd
}

// resolveProvider ensures the --provider flag has a value, falling back to the
// configured default when the flag was not explicitly passed.
func resolveProvider(cmd *cobra.Command, args []string) error {
	if cmd.Flag("provider").Changed {
		return nil // explicitly provided -- nothing to do
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DefaultProvider != "" {
		cmd.Flag("provider").Value.Set(cfg.DefaultProvider)
		return nil
	}

	return fmt.Errorf("no provider specified: use --provider flag or set a default with 'upmgr config set default-provider <name>'")
}

// getService builds the business logic service for the resolved provider,
// pulling credentials from the default auth store.
func getService(cmd *cobra.Command) (*services.Service, domain.Provider, error) {
	providerName := cmd.Flag("provider").Value.String()

	provider, err := providers.Get(providerName, auth.DefaultStore())
	if err != nil {
		return nil, nil, err
	}
	return services.New(provider), provider, nil
}
