// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/orchestrator"
)

var statusCmd = &cobra.Command{
	Use:   "status [item-id]",
	Short: "Report an item's state and what happens next",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	addServerFlag(statusCmd)
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := newAPIClient(cmd).status(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Print(orchestrator.Summarize(st.Item))
	return nil
}
