package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/caravan-pm/caravan"
	"github.com/caravan-pm/caravan/lockfile"
	"github.com/caravan-pm/caravan/version"
)

// envName is the scratch environment every one-shot command works in.
const envName = "cli"

type rootFlags struct {
	registryPath string
	verbose      bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "caravan",
		Short:         "Resolve package requirements against a registry snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.registryPath, "registry", "r", "", "path to a YAML registry snapshot")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log resolution steps to stderr")

	cmd.AddCommand(
		newResolveCommand(flags),
		newFindCommand(flags),
		newDepsCommand(flags),
		newVerifyCommand(flags),
		newDiffCommand(),
	)
	return cmd
}

// newManager builds a manager seeded from the --registry snapshot with
// a fresh scratch environment selected.
func (f *rootFlags) newManager() (*caravan.Manager, error) {
	if f.registryPath == "" {
		return nil, fmt.Errorf("--registry is required")
	}
	reg, err := caravan.LoadRegistryFile(f.registryPath)
	if err != nil {
		return nil, err
	}

	opts := []caravan.Option{caravan.WithRegistry(reg)}
	if f.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, caravan.WithLogger(logger))
	}

	m, err := caravan.NewManager(opts...)
	if err != nil {
		return nil, err
	}
	if err := m.CreateEnv(envName); err != nil {
		return nil, err
	}
	if err := m.UseEnv(envName); err != nil {
		return nil, err
	}
	return m, nil
}

func newResolveCommand(flags *rootFlags) *cobra.Command {
	var lockPath string

	cmd := &cobra.Command{
		Use:   "resolve <requirement>...",
		Short: "Resolve requirements and print the installed set",
		Long: `Resolve resolves each requirement in order against a fresh
environment and prints the resulting installed set with the reason each
package is present. With --lockfile the resolved set is also written as
a lockfile.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.newManager()
			if err != nil {
				return err
			}
			for _, req := range args {
				if err := m.Install(req); err != nil {
					return err
				}
			}

			pkgs, err := m.ListPackages(envName)
			if err != nil {
				return err
			}
			for _, pkg := range pkgs {
				reason, _, err := m.Why(pkg.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", pkg.String(), reason)
			}

			if lockPath != "" {
				lf, err := m.GenerateLockfile(envName)
				if err != nil {
					return err
				}
				if err := lf.WriteFile(lockPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d packages)\n", lockPath, lf.Len())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lockPath, "lockfile", "l", "", "write the resolved set to this lockfile")
	return cmd
}

func newFindCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find <package> [constraints]",
		Short: "List registered versions matching a constraint list",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.newManager()
			if err != nil {
				return err
			}

			constraints := ""
			if len(args) == 2 {
				constraints = args[1]
			}
			matches, err := m.FindPackage(args[0], constraints)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return fmt.Errorf("no registered version of %q matches %q", args[0], constraints)
			}

			versions := make([]string, len(matches))
			for i, pv := range matches {
				versions[i] = pv.Version
			}
			version.Sort(versions)
			for _, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s==%s\n", args[0], v)
			}
			return nil
		},
	}
}

func newDepsCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <package> <version>",
		Short: "Show the declared dependencies of a registered version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.newManager()
			if err != nil {
				return err
			}

			name, ver := args[0], args[1]
			if !m.Registry().Has(name) {
				return fmt.Errorf("package %q is not in the registry", name)
			}
			deps := m.DependenciesOf(name, ver)
			if deps == nil {
				return fmt.Errorf("version %s of %q is not registered", ver, name)
			}
			if len(deps) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s==%s has no dependencies\n", name, ver)
				return nil
			}
			for _, dep := range deps {
				fmt.Fprintln(cmd.OutOrStdout(), dep)
			}
			return nil
		},
	}
}

func newVerifyCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <lockfile>",
		Short: "Check that a lockfile still resolves against the registry",
		Long: `Verify replays every pin in the lockfile as an exact-version install
into a fresh environment. It fails if any pinned version is missing
from the registry or the pins are no longer mutually compatible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.newManager()
			if err != nil {
				return err
			}
			lf, err := lockfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := m.InstallFromLockfile(envName, lf); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d pinned packages resolve\n", lf.Len())
			return nil
		},
	}
}

func newDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old-lockfile> <new-lockfile>",
		Short: "Show pin changes between two lockfiles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldLF, err := lockfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			newLF, err := lockfile.ReadFile(args[1])
			if err != nil {
				return err
			}

			diff := lockfile.Compare(oldLF, newLF)
			if diff.IsEmpty() {
				fmt.Fprintln(cmd.OutOrStdout(), "lockfiles are identical")
				return nil
			}
			for _, name := range diff.Added {
				ver, _ := newLF.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "+ %s==%s\n", name, ver)
			}
			for _, name := range diff.Removed {
				ver, _ := oldLF.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "- %s==%s\n", name, ver)
			}
			for _, change := range diff.Changed {
				fmt.Fprintf(cmd.OutOrStdout(), "~ %s %s -> %s\n", change.Name, change.OldVersion, change.NewVersion)
			}
			return nil
		},
	}
}
