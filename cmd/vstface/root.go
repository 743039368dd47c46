package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vstface/vstface/pkg/debug"
	"github.com/vstface/vstface/pkg/host"
	"github.com/vstface/vstface/pkg/imaging"
)

// errUsage marks argument and flag mistakes; they exit 1 with the usage
// text, while capture failures exit 2.
var errUsage = errors.New("invalid usage")

type captureFunc func(bundlePath, outputPath string, opts host.Options) error

func newRootCommand(capture captureFunc) *cobra.Command {
	var (
		width   int
		height  int
		class   string
		classID string
		settle  time.Duration
		mode    string
		thumb   string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "vstface <plugin.vst3> <output.png>",
		Short: "Capture a VST3 plugin editor to a PNG",
		Long: `vstface loads a VST3 plugin bundle, opens its editor on an off-screen
surface, waits for the first render and writes the pixels to a PNG.

The plugin is never shown on screen and no audio is processed; each run is a
single, fully torn-down capture cycle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: expected <plugin.vst3> <output.png>", errUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := host.Options{
				Width:           width,
				Height:          height,
				ClassNameFilter: class,
				Settle:          settle,
			}

			if classID != "" {
				id, err := host.ParseClassID(classID)
				if err != nil {
					return fmt.Errorf("%w: %v", errUsage, err)
				}
				opts.ClassID = id
			}

			switch mode {
			case "window":
				opts.Mode = host.ModeWindow
			case "screen":
				opts.Mode = host.ModeScreen
			default:
				return fmt.Errorf("%w: unknown mode %q", errUsage, mode)
			}

			if thumb != "" {
				tw, th, err := imaging.ParseFitSpec(thumb)
				if err != nil {
					return fmt.Errorf("%w: %v", errUsage, err)
				}
				opts.ThumbWidth, opts.ThumbHeight = tw, th
			}

			if verbose {
				debug.Default().SetLevel(debug.LevelDebug)
			}

			return capture(args[0], args[1], opts)
		},
	}

	cmd.Flags().IntVar(&width, "width", host.DefaultWidth, "requested canvas width")
	cmd.Flags().IntVar(&height, "height", host.DefaultHeight, "requested canvas height")
	cmd.Flags().StringVar(&class, "class", "", "substring filter to pick among multiple effect classes")
	cmd.Flags().StringVar(&classID, "class-id", "", "exact class identifier (32 hex digits)")
	cmd.Flags().DurationVar(&settle, "settle", host.DefaultSettle, "render settle budget after attach")
	cmd.Flags().StringVar(&mode, "mode", "window", "capture mode: window (drawable readback) or screen (desktop grab)")
	cmd.Flags().StringVar(&thumb, "thumb", "", "downscale output to fit WxH, e.g. 320x240")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log capture stages")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	return cmd
}

// run executes the command and maps errors to the documented exit codes:
// 0 success, 1 usage, 2 capture failure.
func run(root *cobra.Command, stderr io.Writer) int {
	if err := root.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n\n%s", err, root.UsageString())
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
