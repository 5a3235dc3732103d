package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nrminor/py-refman/internal/binding"
	"github.com/nrminor/py-refman/internal/buildinfo"
	"github.com/nrminor/py-refman/internal/domain"
	"github.com/nrminor/py-refman/internal/ui/tui"
)

func initCmd(a *app) *cobra.Command {
	var title, description string

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a registry (or update its title and description)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.binding.Init(cmd.Context(), binding.InitRequest{
				Title:       title,
				Description: description,
				Location:    a.location(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "registry ready")
			return nil
		},
	}

	c.Flags().StringVar(&title, "title", "", "registry title")
	c.Flags().StringVar(&description, "description", "", "registry description")
	return c
}

func registerCmd(a *app) *cobra.Command {
	slots := map[domain.FileKind]*string{}

	c := &cobra.Command{
		Use:   "register LABEL",
		Short: "Register a dataset (or add files to an existing one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := domain.FileSet{}
			for kind, v := range slots {
				if *v != "" {
					files[kind] = *v
				}
			}

			p, err := a.binding.Register(cmd.Context(), binding.RegisterRequest{
				Label:    args[0],
				Files:    files,
				Location: a.location(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "registered %s (%d dataset(s))\n", args[0], len(p.Datasets))
			return nil
		},
	}

	for _, kind := range domain.FileKinds {
		v := new(string)
		slots[kind] = v
		c.Flags().StringVar(v, string(kind), "", fmt.Sprintf("%s file path or URL", kind))
	}
	return c
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove LABEL",
		Short: "Remove a dataset from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.binding.Remove(cmd.Context(), args[0], a.location()); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "removed %s\n", args[0])
			return nil
		},
	}
}

func downloadCmd(a *app) *cobra.Command {
	var dest string

	c := &cobra.Command{
		Use:   "download LABEL",
		Short: "Download every file of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.binding.Download(cmd.Context(), args[0], dest, a.location()); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "downloaded %s\n", args[0])
			return nil
		},
	}

	c.Flags().StringVarP(&dest, "dest", "d", "", "destination directory (default: working directory)")
	return c
}

func listCmd(a *app) *cobra.Command {
	var format, expr string

	c := &cobra.Command{
		Use:   "list [LABEL]",
		Short: "Show the registry or a single dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := ""
			if len(args) == 1 {
				label = args[0]
			}

			p, err := a.binding.ReadRegistry(cmd.Context(), a.location())
			if err != nil {
				return err
			}
			datasets, err := a.binding.List(cmd.Context(), label, a.location())
			if err != nil {
				return err
			}

			view := newRegistryView(p, datasets)
			if expr != "" {
				return printQuery(a.stdout, view, expr)
			}
			return printRegistry(a.stdout, view, format)
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "pretty", "Output format: pretty|json|yaml")
	c.Flags().StringVar(&expr, "jsonpath", "", "print only the values matching this JSONPath expression")
	return c
}

func urlsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "urls LABEL",
		Short: "Print the remote URLs of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urls, err := a.binding.DatasetURLs(cmd.Context(), args[0], a.location())
			if err != nil {
				return err
			}
			for _, u := range urls {
				fmt.Fprintln(a.stdout, u)
			}
			return nil
		},
	}
}

func browseCmd(a *app) *cobra.Command {
	var dest string

	c := &cobra.Command{
		Use:   "browse",
		Short: "Browse the registry in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run(tui.Deps{
				Source:   a.binding,
				Location: a.location(),
				Dest:     dest,
				Logger:   a.logger,
				Debug:    a.settings.Debug,
			})
		},
	}

	c.Flags().StringVarP(&dest, "dest", "d", "", "download directory (default: working directory)")
	return c
}

func versionCmd() *cobra.Command {
	noop := func(*cobra.Command, []string) error { return nil }
	return &cobra.Command{
		Use:                "version",
		Short:              "Print version information",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  noop,
		PersistentPostRunE: noop,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}
}
