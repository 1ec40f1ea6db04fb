package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"

	"github.com/stashfs/stashfs/internal/cli/output"
	"github.com/stashfs/stashfs/pkg/transfer"
)

var statCmd = &cobra.Command{
	Use:   "stat <logical-path>",
	Short: "Show storage details for a logical path",
	Long: `Show how a stored file maps onto the transfer engine: its resolved
location, size, chunk plan, and a BLAKE2b content digest.

Examples:
  stash stat saves/slot1.json`,
	Args: cobra.ExactArgs(1),
	RunE: runStat,
}

func runStat(cmd *cobra.Command, args []string) error {
	logical := args[0]

	s, _, shutdown, err := newStore()
	if err != nil {
		return err
	}
	defer shutdown()

	abs, ok := s.Resolver().Resolve(logical)
	if !ok {
		return fmt.Errorf("cannot resolve path %q", logical)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no file stored at %q", logical)
		}
		return err
	}

	ecfg := s.Engine().Config()
	plan := transfer.PlanFor(info.Size(), ecfg.ChunkSize, ecfg.ChunkThreshold)

	text, err := s.Engine().Read(context.Background(), abs)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	digest := blake2b.Sum256([]byte(text))

	pairs := [][2]string{
		{"Path", logical},
		{"Location", abs},
		{"Size", fmt.Sprintf("%d bytes", info.Size())},
		{"Chunked", strconv.FormatBool(plan.Chunked())},
		{"Chunks", strconv.Itoa(plan.NumChunks())},
		{"Chunk size", fmt.Sprintf("%d bytes", ecfg.ChunkSize)},
		{"BLAKE2b-256", fmt.Sprintf("%x", digest)},
		{"Modified", info.ModTime().Format("2006-01-02 15:04:05")},
	}
	return output.SimpleTable(os.Stdout, pairs)
}
