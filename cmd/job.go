package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/volleyclip/clipper/internal/model"
)

// jobCmd represents the job command
var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Clip job operations",
	Long:  `Operations for query-driven clip jobs.`,
}

// jobCreateCmd creates a pending job for a video
var jobCreateCmd = &cobra.Command{
	Use:   "create [VIDEO_ID] [QUERY]",
	Short: "Create a clip job for an indexed video",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		padding, _ := cmd.Flags().GetFloat64("padding")

		job := &model.Job{
			ID:      uuid.NewString(),
			VideoID: args[0],
			Query:   args[1],
			Padding: padding,
			Status:  model.JobStatusPending,
		}
		if err := a.jobs.Create(ctx, job); err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}

		fmt.Printf("Created job %s\n", job.ID)
		return nil
	},
}

// jobRunCmd executes one job synchronously
var jobRunCmd = &cobra.Command{
	Use:   "run [JOB_ID]",
	Short: "Run a clip job",
	Long:  `Query the indexed video and extract a clip for every matched segment.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.clipping.RunJob(ctx, args[0]); err != nil {
			return fmt.Errorf("job failed: %w", err)
		}

		clips, err := a.clips.ListByJobID(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list produced clips: %w", err)
		}

		fmt.Printf("Job completed with %d clip(s).\n", len(clips))
		return nil
	},
}

// jobClipsCmd lists the clips a job produced
var jobClipsCmd = &cobra.Command{
	Use:   "clips [JOB_ID]",
	Short: "List clips produced by a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		clips, err := a.clips.ListByJobID(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list clips: %w", err)
		}

		if len(clips) == 0 {
			fmt.Println("No clips found for this job.")
			return nil
		}

		result, err := json.MarshalIndent(clips, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		fmt.Println(string(result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(jobCreateCmd)
	jobCmd.AddCommand(jobRunCmd)
	jobCmd.AddCommand(jobClipsCmd)

	jobCreateCmd.Flags().Float64("padding", 2.0, "Seconds of context added on both sides of each match")
}
