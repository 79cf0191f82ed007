package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
	"github.com/clipperhq/clipper/internal/service"
)

// withApp wires the services, runs fn with a context cancelled on SIGINT or
// SIGTERM, and releases the store afterwards.
func withApp(cmd *cobra.Command, needGroq bool, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(needGroq)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return fn(ctx, a)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the transcription and clip workers until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, true, func(ctx context.Context, a *app) error {
				logger.Info.Printf("starting clipper workers, data=%s", a.cfg.DataDir)
				return a.pool.Run(ctx)
			})
		},
	}
}

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Register a local video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcribe, _ := cmd.Flags().GetBool("transcribe")
			src, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, false, func(ctx context.Context, a *app) error {
				v, err := a.videos.Upload(ctx, src)
				if err != nil {
					return err
				}
				out := map[string]any{"video": v}
				if transcribe {
					adm, err := a.coord.EnqueueTranscription(ctx, v.ID)
					if err != nil {
						return fmt.Errorf("video %s uploaded but not queued: %w", v.ID, err)
					}
					out["transcription"] = adm
				}
				return printJSON(cmd, out)
			})
		},
	}
	cmd.Flags().Bool("transcribe", false, "Queue transcription right after upload")
	return cmd
}

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <videoId>",
		Short: "Read and store the duration of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, false, func(ctx context.Context, a *app) error {
				v, err := a.videos.Probe(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, v)
			})
		},
	}
}

func transcribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <videoId>",
		Short: "Queue transcription of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, false, func(ctx context.Context, a *app) error {
				adm, err := a.coord.EnqueueTranscription(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, adm)
			})
		},
	}
}

func highlightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlights <videoId>",
		Short: "Select highlights from the latest transcript",
		Long: "Runs candidate extraction and final selection against the latest transcript " +
			"and stores a new highlight set. With --show, prints the latest set without generating.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, _ := cmd.Flags().GetBool("show")
			return withApp(cmd, !show, func(ctx context.Context, a *app) error {
				if show {
					hs, err := a.videos.Highlights(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, hs)
				}
				set, err := a.highlights.Generate(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, set)
			})
		},
	}
	cmd.Flags().Bool("show", false, "Print the latest highlight set instead of generating one")
	return cmd
}

func clipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clips <videoId>",
		Short: "Queue clip rendering for the latest highlight set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, false, func(ctx context.Context, a *app) error {
				adm, err := a.coord.EnqueueClipGeneration(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, adm)
			})
		},
	}
}

type videoStatus struct {
	Video      *domain.Video             `json:"video"`
	Transcript *service.TranscriptStatus `json:"transcript"`
	Highlights []domain.Highlight        `json:"highlights"`
	Clips      *service.ClipStatus       `json:"clips"`
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <videoId>",
		Short: "Show the processing state of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, false, func(ctx context.Context, a *app) error {
				id := args[0]
				v, err := a.videos.Get(ctx, id)
				if err != nil {
					return err
				}
				tr, err := a.videos.Transcript(ctx, id)
				if err != nil {
					return err
				}
				hs, err := a.videos.Highlights(ctx, id)
				if err != nil {
					return err
				}
				clips, err := a.videos.Clips(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, videoStatus{Video: v, Transcript: tr, Highlights: hs, Clips: clips})
			})
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, false, func(ctx context.Context, a *app) error {
				vs, err := a.videos.List(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, vs)
			})
		},
	}
}

func reapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reap",
		Short: "Return expired worker leases to the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, false, func(ctx context.Context, a *app) error {
				buried, err := a.pool.Reap(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reaped expired leases, %d job(s) failed\n", buried)
				return nil
			})
		},
	}
}
