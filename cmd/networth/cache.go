package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/networth/internal/store"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the local result cache",
	}
	cmd.PersistentFlags().String("cache-path", "", "Cache database path (default: user cache dir)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List cached comparison results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, func(c *store.ResultCache) error {
				entries, err := c.Entries(cmd.Context())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tSIZE\tCREATED")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Key, e.SizeBytes, e.CreatedAt.Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached results older than --max-age",
		RunE: func(cmd *cobra.Command, args []string) error {
			maxAge, _ := cmd.Flags().GetDuration("max-age")
			return withCache(cmd, func(c *store.ResultCache) error {
				n, err := c.Prune(cmd.Context(), maxAge)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached results\n", n)
				return nil
			})
		},
	}
	prune.Flags().Duration("max-age", 30*24*time.Hour, "Maximum age of entries to keep")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, func(c *store.ResultCache) error {
				if err := c.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
				return nil
			})
		},
	}

	cmd.AddCommand(list, prune, clearCmd)
	return cmd
}

func withCache(cmd *cobra.Command, fn func(*store.ResultCache) error) error {
	path, _ := cmd.Flags().GetString("cache-path")
	if path == "" {
		path = store.DefaultPath()
	}
	c, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening result cache: %w", err)
	}
	defer func() { _ = c.Close() }()
	return fn(c)
}
