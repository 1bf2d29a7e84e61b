package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/icdeck/icdeck/cli"
	"github.com/icdeck/icdeck/git"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/provision"
	"github.com/spf13/cobra"
)

type provisionFlags struct {
	owner          string
	group          string
	branch         string
	ownerGroupOnly bool
}

func NewProvisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create and maintain shared bare repositories",
		Long: `Administrative commands for the bare repositories projects are cloned
from. Repositories are owned by OWNER:GROUP, directories are setgid 2770
and files 0660 (0770 for hooks). Changing ownership usually needs root.

Examples:
  icdeck provision create /srv/git/alpha.git --owner git --group asic
  icdeck provision verify /srv/git/alpha.git --json`,
	}

	cmd.AddCommand(
		newProvisionCreateCmd(),
		newProvisionHardenCmd(),
		newProvisionRefreshCmd(),
		newProvisionVerifyCmd(),
	)
	return cmd
}

func newProvisioner() *provision.Provisioner {
	return provision.New(git.NewCLIRepository(), provision.OSFileSystem{})
}

func addAccountFlags(cmd *cobra.Command, f *provisionFlags) {
	cmd.Flags().StringVar(&f.owner, "owner", "", "User that owns the repository")
	cmd.Flags().StringVar(&f.group, "group", "", "Group that shares the repository")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("group")
}

func newProvisionCreateCmd() *cobra.Command {
	f := &provisionFlags{}
	cmd := &cobra.Command{
		Use:   "create PATH",
		Short: "Create a group-shared bare repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := newProvisioner().Create(cmd.Context(), provision.Options{
				Path:           args[0],
				Owner:          f.owner,
				Group:          f.group,
				DefaultBranch:  f.branch,
				OwnerGroupOnly: f.ownerGroupOnly,
			})
			if err != nil {
				return err
			}
			return printReport(cmd, "Repository ready", report)
		},
	}
	addAccountFlags(cmd, f)
	cmd.Flags().StringVar(&f.branch, "branch", provision.DefaultBranch, "Branch HEAD points at")
	cmd.Flags().BoolVar(&f.ownerGroupOnly, "owner-group-only", false, "Share with owner and group only (core.sharedRepository=0660)")
	return cmd
}

func newProvisionHardenCmd() *cobra.Command {
	f := &provisionFlags{}
	cmd := &cobra.Command{
		Use:   "harden PATH",
		Short: "Reset ownership and modes of a repository tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProvisioner()
			if err := p.Harden(cmd.Context(), args[0], f.owner, f.group); err != nil {
				return err
			}
			report, err := p.Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printReport(cmd, "Permissions updated", report)
		},
	}
	addAccountFlags(cmd, f)
	return cmd
}

func newProvisionRefreshCmd() *cobra.Command {
	f := &provisionFlags{}
	cmd := &cobra.Command{
		Use:   "refresh PATH",
		Short: "Harden an existing bare repository after pushes by other users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProvisioner()
			if err := p.Refresh(cmd.Context(), args[0], f.owner, f.group); err != nil {
				return err
			}
			report, err := p.Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printReport(cmd, "Repository refreshed", report)
		},
	}
	addAccountFlags(cmd, f)
	return cmd
}

func newProvisionVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify PATH",
		Short: "Report whether PATH is a shared bare repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := newProvisioner().Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printReport(cmd, "Repository inspected", report)
		},
	}
}

func printReport(cmd *cobra.Command, title string, report provision.Report) error {
	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		return writeJSON(out, report)
	}

	pretty := logging.NewPrettyLogger().WithWriter(out)
	if report.Exists && report.IsBare {
		pretty.Success(title)
	} else {
		pretty.Warn("Not a bare repository")
	}
	pretty.Field("Path", report.Path)
	pretty.Field("Exists", report.Exists)
	pretty.Field("Bare", report.IsBare)
	if report.SharedRepository != "" {
		pretty.Field("Shared", report.SharedRepository)
	}
	if report.HeadRef != "" {
		pretty.Field("HEAD", report.HeadRef)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
