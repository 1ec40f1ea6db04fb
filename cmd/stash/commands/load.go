package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stashfs/stashfs/pkg/store"
)

var (
	loadOutput string
	loadMode   string
)

var loadCmd = &cobra.Command{
	Use:   "load <logical-path>",
	Short: "Load content from a logical path",
	Long: `Load the content stored under a logical path and print it to stdout
or write it to --output.

Examples:
  # Print to stdout
  stash load saves/slot1.json

  # Write to a file
  stash load saves/slot1.json --output restored.json

  # Use the cooperative discipline
  stash load saves/slot1.json --mode coop`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&loadOutput, "output", "o", "", "Output file (default: stdout)")
	loadCmd.Flags().StringVar(&loadMode, "mode", "blocking", "Execution discipline: blocking, coop, async")
}

func runLoad(cmd *cobra.Command, args []string) error {
	logical := args[0]

	s, _, shutdown, err := newStore()
	if err != nil {
		return err
	}
	defer shutdown()

	ctx := context.Background()
	var res store.ReadResult

	switch loadMode {
	case "blocking":
		res = s.LoadText(ctx, logical)
	case "coop":
		op := s.BeginLoad(logical)
		for !op.Resume(ctx) {
		}
		res = op.Result()
	case "async":
		res = s.LoadAsync(ctx, logical).Wait(ctx)
	default:
		return fmt.Errorf("unknown mode %q (valid: blocking, coop, async)", loadMode)
	}

	if !res.OK {
		return fmt.Errorf("load failed (%s): %s", res.Kind, res.Message)
	}
	if res.Kind == store.KindEmptyContent {
		fmt.Fprintln(os.Stderr, "warning: file is empty")
	}

	if loadOutput != "" {
		if err := os.WriteFile(loadOutput, []byte(res.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", len(res.Text), loadOutput)
		return nil
	}

	fmt.Print(res.Text)
	return nil
}
