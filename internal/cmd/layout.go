package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpumuk/lazytimeline/internal/timeline"
)

func newLayoutCmd() *cobra.Command {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed layout of a window as JSON.",
		Long: "Loads the groups and the entries of the canvas around --start/--end and prints " +
			"the resulting canvas state as indented JSON.",
		Args: cobra.NoArgs,
	}
	layoutCmd.Flags().String("start", "", "start of the visible window (RFC3339)")
	layoutCmd.Flags().String("end", "", "end of the visible window (RFC3339)")
	layoutCmd.Flags().Float64("width", 0, "visible width in pixels (default layout.viewport_width)")
	_ = layoutCmd.MarkFlagRequired("start")
	_ = layoutCmd.MarkFlagRequired("end")

	layoutCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		window, err := windowFlags(cmd)
		if err != nil {
			return err
		}
		width, err := cmd.Flags().GetFloat64("width")
		if err != nil {
			return fmt.Errorf("parse width flag: %w", err)
		}
		if width <= 0 {
			width = cfg.Layout.ViewportWidth
		}

		source, _, err := openSource(cmd, cfg, nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = source.Close()
		}()

		state, err := computeWindowLayout(cmd.Context(), source, window, width, cfg.Resolve())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}
	return layoutCmd
}

// entrySource is the part of store.Source the layout command reads.
type entrySource interface {
	Groups(ctx context.Context) ([]timeline.Group, error)
	Entries(ctx context.Context, window timeline.TimeWindow, groupIDs []string) ([]timeline.Entry, error)
}

// computeWindowLayout centres a fresh canvas on window and stacks the
// entries of every group on it.
func computeWindowLayout(ctx context.Context, source entrySource, window timeline.TimeWindow, width float64, layout timeline.LayoutConfig) (timeline.CanvasState, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := timeline.ReconcileHorizontalCanvas(window, timeline.TimeWindow{}, timeline.TimeWindow{}, true)
	if err != nil {
		return timeline.CanvasState{}, err
	}

	groups, err := source.Groups(ctx)
	if err != nil {
		return timeline.CanvasState{}, fmt.Errorf("load groups: %w", err)
	}
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	entries, err := source.Entries(ctx, res.Canvas, ids)
	if err != nil {
		return timeline.CanvasState{}, fmt.Errorf("load entries: %w", err)
	}

	return timeline.ComputeLayout(timeline.LayoutInput{
		Entries:     entries,
		Groups:      groups,
		Canvas:      res.Canvas,
		CanvasWidth: timeline.CanvasFactor * width,
		Config:      layout,
	})
}
