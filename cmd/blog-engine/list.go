// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflow items on a running server",
	RunE:  runList,
}

func init() {
	addServerFlag(listCmd)
	listCmd.Flags().String("state", "", "only items in this workflow state")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	state, _ := cmd.Flags().GetString("state")
	items, err := newAPIClient(cmd).list(cmd.Context(), state)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No items.")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%s\t%s\t%s\n", item.ID, item.State, item.Topic)
	}
	return nil
}
