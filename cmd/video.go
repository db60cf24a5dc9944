package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// videoCmd represents the video command
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Video operations",
	Long:  `Operations for registered source videos.`,
}

// videoIndexCmd runs indexing for one video synchronously
var videoIndexCmd = &cobra.Command{
	Use:   "index [STORAGE_KEY] [VIDEO_ID]",
	Short: "Index an uploaded video",
	Long: `Register an uploaded video with the intelligence service and wait
until indexing reaches a terminal state.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.indexing.StartIndexing(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("indexing failed: %w", err)
		}

		fmt.Printf("Video %s indexed and ready for queries.\n", args[1])
		return nil
	},
}

// videoListCmd lists registered videos
var videoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered videos",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		videos, err := a.videos.List(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list videos: %w", err)
		}

		if len(videos) == 0 {
			fmt.Println("No videos found.")
			return nil
		}

		result, err := json.MarshalIndent(videos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		fmt.Println(string(result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(videoCmd)
	videoCmd.AddCommand(videoIndexCmd)
	videoCmd.AddCommand(videoListCmd)

	videoListCmd.Flags().Int("limit", 20, "Maximum number of videos to list")
	videoListCmd.Flags().Int("offset", 0, "Number of videos to skip")
}
