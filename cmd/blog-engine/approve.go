// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve [item-id]",
	Short: "Approve a draft waiting at the review checkpoint",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

func init() {
	addServerFlag(approveCmd)
	rootCmd.AddCommand(approveCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	item, err := newAPIClient(cmd).approve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Approved %s [%s]\n", item.ID, item.State)
	return nil
}
