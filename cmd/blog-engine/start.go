// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [topic]",
	Short: "Create a workflow item on a running server",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStart,
}

func init() {
	addServerFlag(startCmd)
	startCmd.Flags().String("title", "", "post title (defaults to the topic)")
	startCmd.Flags().String("blog", "", "target blog ID")
	startCmd.Flags().String("instructions", "", "free-text authoring directions")
	startCmd.Flags().String("session", "", "session id to bind to the new item")
	startCmd.Flags().StringSlice("label", nil, "post label (repeatable)")

	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	blogID, _ := cmd.Flags().GetString("blog")
	instructions, _ := cmd.Flags().GetString("instructions")
	session, _ := cmd.Flags().GetString("session")
	labels, _ := cmd.Flags().GetStringSlice("label")

	item, err := newAPIClient(cmd).start(cmd.Context(), map[string]any{
		"topic":        strings.Join(args, " "),
		"title":        title,
		"blog_id":      blogID,
		"instructions": instructions,
		"session_id":   session,
		"labels":       labels,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Started %s (%s) [%s]\n", item.ID, item.Topic, item.State)
	return nil
}
