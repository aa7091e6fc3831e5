package server

import (
	"context"
	"fmt"
	"os"

	"upmgr/internal/tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a server",
		Long: `Permanently delete a server from the specified provider.

The server's storage disks are NOT deleted; they remain as detached
resources and must be removed separately.

A confirmation prompt is shown when running in a terminal; pass --force to
skip it (required for scripting).

Examples:
  # With confirmation prompt
  upmgr server delete --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46

  # Non-interactive (scripting)
  upmgr server delete --uuid 009d64ef-31d1-4684-a26b-c86c955cbf46 --force`,
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().String("uuid", "", "Server UUID to delete (required)")
	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	cmd.MarkFlagRequired("uuid")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	service, _, err := getService(cmd)
	if err != nil {
		return err
	}

	uuid, _ := cmd.Flags().GetString("uuid")
	force, _ := cmd.Flags().GetBool("force")
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	accessible := os.Getenv("ACCESSIBLE") != ""

	if !force {
		if !interactive {
			return fmt.Errorf("refusing to delete without confirmation: pass --force in non-interactive mode")
		}

		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete server %s?", uuid)).
				Description("The virtual machine is destroyed permanently. Its storage disks are kept and must be deleted separately.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		)).WithAccessible(accessible)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.ErrOrStderr(), "Server deletion cancelled.")
			return nil
		}
	}

	ctx := context.Background()
	if interactive {
		var deleteErr error
		spinErr := spinner.New().
			Title("Deleting server...").
			Accessible(accessible).
			Output(cmd.ErrOrStderr()).
			Action(func() {
				deleteErr = service.DeleteServer(ctx, uuid)
			}).
			Run()
		if spinErr != nil {
			return spinErr
		}
		err = deleteErr
	} else {
		err = service.DeleteServer(ctx, uuid)
	}
	if err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessText.Render(fmt.Sprintf("Server %s deleted.", uuid)))
	fmt.Fprintln(cmd.OutOrStdout(), styles.MutedText.Render("Note: the server's storage disks were not deleted."))
	return nil
}
