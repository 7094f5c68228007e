package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/soyeahso/enlight/internal/plugin"
	"github.com/soyeahso/enlight/internal/store"
)

func newPluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Discover and inspect plugins",
	}

	cmd.AddCommand(newPluginsListCmd())
	cmd.AddCommand(newPluginsShowCmd())
	cmd.AddCommand(newPluginsHistoryCmd())
	return cmd
}

func newPluginsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [namespace]",
		Short: "Load and list every plugin found below the prefix paths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg, paths, log)
			if err != nil {
				return err
			}
			defer a.Close()

			namespaces := a.plugins.Namespaces()
			if len(args) == 1 {
				ns, err := a.namespace(args[0])
				if err != nil {
					return err
				}
				namespaces = []*plugin.Namespace{ns}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAMESPACE\tNAME\tCLASS\tFILE")
			fmt.Fprintln(w, "---------\t----\t-----\t----")
			for _, ns := range namespaces {
				if err := ns.LoadAll(); err != nil {
					return fmt.Errorf("namespace %s: %w", ns.Name(), err)
				}
				for _, name := range ns.List() {
					info, _ := ns.Info(name)
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ns.Name(), name, info.Class, info.File)
				}
			}
			return w.Flush()
		},
	}
}

func newPluginsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <namespace> <name>",
		Short: "Load one plugin and print its details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg, paths, log)
			if err != nil {
				return err
			}
			defer a.Close()

			ns, err := a.namespace(args[0])
			if err != nil {
				return err
			}
			if _, err := ns.Get(args[1], true); err != nil {
				return err
			}

			info, _ := ns.Info(args[1])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:      %s\n", info.Name)
			fmt.Fprintf(out, "Namespace: %s\n", info.Namespace)
			fmt.Fprintf(out, "Class:     %s\n", info.Class)
			fmt.Fprintf(out, "Prefix:    %s\n", info.Prefix)
			fmt.Fprintf(out, "File:      %s\n", info.File)

			m, err := ns.Manifest(args[1])
			if err != nil {
				log.Warn().Err(err).Str("plugin", args[1]).Msg("reading bootstrap manifest")
				return nil
			}
			printManifest(out, m)
			return nil
		},
	}
}

func printManifest(out io.Writer, m *plugin.Manifest) {
	if m.Label != "" {
		fmt.Fprintf(out, "Label:     %s\n", m.Label)
	}
	if m.Version != "" {
		fmt.Fprintf(out, "Version:   %s\n", m.Version)
	}
	if m.Author != "" {
		fmt.Fprintf(out, "Author:    %s\n", m.Author)
	}
	if m.Description != "" {
		fmt.Fprintf(out, "\n%s\n", m.Description)
	}
}

func newPluginsHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [namespace]",
		Short: "Show recorded plugin loads",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg, paths, log)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.inventory == nil {
				return errors.New("inventory store is disabled")
			}

			var namespace string
			if len(args) == 1 {
				namespace = args[0]
			}
			records, err := a.inventory.List(cmd.Context(), namespace)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func printRecords(out io.Writer, records []store.Record) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "LOADED\tNAMESPACE\tNAME\tCLASS")
	fmt.Fprintln(w, "------\t---------\t----\t-----")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.LoadedAt.Local().Format(time.DateTime), r.Namespace, r.Name, r.Class)
	}
	w.Flush()
}
