package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tunevault/internal/storage"
)

func newSnapshotCommand(ctx *commandContext) *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Convert the catalog between storage kinds",
	}

	snapshotCmd.AddCommand(newSnapshotTransferCommand(ctx, true))
	snapshotCmd.AddCommand(newSnapshotTransferCommand(ctx, false))

	return snapshotCmd
}

// newSnapshotTransferCommand builds "export" (configured store to --kind) or
// "import" (--kind to configured store).
func newSnapshotTransferCommand(ctx *commandContext, export bool) *cobra.Command {
	var kind string
	var dir string

	use, short, verb := "import", "Replace the catalog with a snapshot of another kind", "Imported"
	if export {
		use, short, verb = "export", "Write the catalog as a snapshot of another kind", "Exported"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			configured, err := ctx.openStore("", "")
			if err != nil {
				return err
			}
			other, err := ctx.openStore(kind, dir)
			if err != nil {
				return err
			}

			var snap *storage.Snapshot
			var target storage.Store
			if export {
				if snap, err = loadSnapshot(cmd.Context(), configured); err != nil {
					return err
				}
				target = other
			} else {
				if snap, err = other.Load(cmd.Context()); err != nil {
					return fmt.Errorf("load %s snapshot: %w", other.Kind(), err)
				}
				target = configured
			}

			if err := target.Save(cmd.Context(), snap); err != nil {
				return fmt.Errorf("save %s snapshot: %w", target.Kind(), err)
			}
			printSnapshotSummary(cmd.OutOrStdout(), verb, target.Kind(), snap)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Snapshot kind: text, binary or sqlite")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Snapshot directory (defaults to the data directory)")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func printSnapshotSummary(out io.Writer, verb string, kind storage.Kind, snap *storage.Snapshot) {
	fmt.Fprintf(out, "%s to %s: %d artists, %d songs, %d playlists, %d customers\n", verb, kind,
		len(snap.Artists), len(snap.Songs), len(snap.PlayLists), len(snap.Customers))
}
