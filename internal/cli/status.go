package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soyeahso/enlight/internal/config"
	"github.com/soyeahso/enlight/internal/version"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show enlight status and configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "enlight %s (commit %s)\n\n", version.Version, version.Commit)

			// Show paths
			fmt.Fprintf(out, "Config:    %s\n", paths.Config)
			fmt.Fprintf(out, "Data:      %s\n", paths.Data)
			fmt.Fprintf(out, "Plugins:   %s\n", paths.Plugins)
			fmt.Fprintln(out)

			// Store
			if cfg.StoreEnabled() {
				storePath := cfg.Store.Path
				if storePath == "" {
					storePath = paths.StorePath()
				}
				fmt.Fprintf(out, "Store:     %s\n", storePath)
			} else {
				fmt.Fprintln(out, "Store:     (disabled)")
			}
			fmt.Fprintf(out, "Bootstrap: %s\n", cfg.Plugins.BootstrapFile)

			// Namespaces
			for _, nc := range cfg.Plugins.Namespaces {
				prefixPaths := nc.PrefixPaths
				if len(prefixPaths) == 0 {
					prefixPaths = defaultPrefixPaths(nc.Name, paths)
				}
				var parts []string
				for _, pp := range prefixPaths {
					parts = append(parts, fmt.Sprintf("%s=%s", pp.Prefix, pp.Path))
				}
				fmt.Fprintf(out, "Namespace: %s [%s]", nc.Name, strings.Join(parts, ", "))
				if len(nc.Preload) > 0 {
					fmt.Fprintf(out, " preload=%s", strings.Join(nc.Preload, ","))
				}
				fmt.Fprintln(out)
			}

			// Validation
			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Fprintf(out, "\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(out, "  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}

	return cmd
}
