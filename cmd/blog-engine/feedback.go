// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [item-id] [text...]",
	Short: "Request a revision of a draft waiting at the review checkpoint",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFeedback,
}

func init() {
	addServerFlag(feedbackCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	item, err := newAPIClient(cmd).feedback(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("Feedback recorded for %s (revision %d) [%s]\n", item.ID, item.RevisionCount, item.State)
	return nil
}
