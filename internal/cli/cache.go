package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCacheCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or reset the response cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List cached URLs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(opts, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				c, closeCache, err := openCache(cfg)
				if err != nil {
					return fmt.Errorf("opening cache: %w", err)
				}
				defer closeCache() //nolint:errcheck

				WriteCacheTable(cmd.OutOrStdout(), c)
				return nil
			},
		},
		newCacheStatsCmd(opts),
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached response",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(opts, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				c, closeCache, err := openCache(cfg)
				if err != nil {
					return fmt.Errorf("opening cache: %w", err)
				}
				defer closeCache() //nolint:errcheck

				removed := c.Len()
				if err := c.Clear(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached responses.\n", removed)
				return nil
			},
		},
	)

	return cmd
}

func newCacheStatsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache size and location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(opts.format))
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
			}

			cfg, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c, closeCache, err := openCache(cfg)
			if err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			defer closeCache() //nolint:errcheck

			return WriteCacheStats(cmd.OutOrStdout(), NewCacheStats(c, cfg.CacheBackend, cfg.ResolvedCacheFile()), format)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	return cmd
}
