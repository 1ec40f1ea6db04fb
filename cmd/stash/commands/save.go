package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stashfs/stashfs/pkg/store"
)

var (
	saveFile  string
	saveCodec string
	saveMode  string
)

var saveCmd = &cobra.Command{
	Use:   "save <logical-path>",
	Short: "Save content to a logical path",
	Long: `Save content under the managed base directory.

Content is read from --file, or from stdin when no file is given. Payloads
above the chunking threshold are streamed in fixed-size chunks.

Examples:
  # Save from a file
  stash save saves/slot1.json --file player.json

  # Save from stdin
  cat player.json | stash save saves/slot1.json

  # Use the async discipline
  stash save saves/slot1.json --file player.json --mode async`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	saveCmd.Flags().StringVarP(&saveFile, "file", "f", "", "Input file (default: stdin)")
	saveCmd.Flags().StringVar(&saveCodec, "codec", "", "Codec override: json or yaml")
	saveCmd.Flags().StringVar(&saveMode, "mode", "blocking", "Execution discipline: blocking, coop, async")
}

func runSave(cmd *cobra.Command, args []string) error {
	logical := args[0]

	s, cfg, shutdown, err := newStore()
	if err != nil {
		return err
	}
	defer shutdown()
	if saveCodec != "" && saveCodec != cfg.Storage.Codec {
		s, err = store.New(s.Resolver(), codecFor(saveCodec), nil, s.Engine())
		if err != nil {
			return err
		}
	}

	text, err := readInput(saveFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var res store.WriteResult

	switch saveMode {
	case "blocking":
		res = s.SaveText(ctx, logical, text)
	case "coop":
		op := s.BeginSaveText(logical, text)
		for !op.Resume(ctx) {
		}
		res = op.Result()
	case "async":
		res = s.SaveTextAsync(ctx, logical, text).Wait(ctx)
	default:
		return fmt.Errorf("unknown mode %q (valid: blocking, coop, async)", saveMode)
	}

	if !res.OK {
		return fmt.Errorf("save failed (%s): %s", res.Kind, res.Message)
	}

	fmt.Printf("Saved %d bytes to %s\n", len(text), logical)
	return nil
}
