// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [item-id]",
	Short: "Remove a workflow item from a running server",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	addServerFlag(deleteCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := newAPIClient(cmd).remove(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
