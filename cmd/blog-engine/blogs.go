// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/blogger"
)

var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "List blogs available on the publishing backend",
	RunE:  runBlogs,
}

var postsCmd = &cobra.Command{
	Use:   "posts [blog-id]",
	Short: "List posts on a blog",
	Args:  cobra.ExactArgs(1),
	RunE:  runPosts,
}

var postShowCmd = &cobra.Command{
	Use:   "show [blog-id] [post-id]",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostShow,
}

func init() {
	postsCmd.Flags().Int("max", 20, "maximum posts to list")
	postsCmd.Flags().Bool("drafts", false, "include draft posts")
	postsCmd.AddCommand(postShowCmd)

	rootCmd.AddCommand(blogsCmd)
	rootCmd.AddCommand(postsCmd)
}

func runBlogs(cmd *cobra.Command, args []string) error {
	client, err := blogger.New(pipelineConfig().Publisher)
	if err != nil {
		return err
	}

	blogs, err := client.ListBlogs(cmd.Context())
	if err != nil {
		return err
	}
	if len(blogs) == 0 {
		fmt.Println("No blogs.")
		return nil
	}
	for _, b := range blogs {
		fmt.Printf("%s\t%s\t%s\n", b.ID, b.Name, b.URL)
	}
	return nil
}

func runPostShow(cmd *cobra.Command, args []string) error {
	client, err := blogger.New(pipelineConfig().Publisher)
	if err != nil {
		return err
	}

	post, err := client.GetPost(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s\t%s\t%s\n%s\n", post.ID, post.Status, post.Title, post.URL)
	return nil
}

func runPosts(cmd *cobra.Command, args []string) error {
	client, err := blogger.New(pipelineConfig().Publisher)
	if err != nil {
		return err
	}

	maxResults, _ := cmd.Flags().GetInt("max")
	drafts, _ := cmd.Flags().GetBool("drafts")

	posts, err := client.ListPosts(cmd.Context(), args[0], maxResults, drafts)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Println("No posts.")
		return nil
	}
	for _, p := range posts {
		fmt.Printf("%s\t%s\t%s\n", p.ID, p.Status, p.Title)
	}
	return nil
}
