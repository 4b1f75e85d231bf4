package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/itchan-dev/tgchan/internal/setup"
	"github.com/itchan-dev/tgchan/shared/domain"
	"github.com/spf13/cobra"
)

type boardReader interface {
	GetBoards(ctx context.Context) (domain.BoardList, error)
	GetThreads(ctx context.Context, board string, page int) (domain.ThreadPage, error)
	GetThread(ctx context.Context, board, thread string) (domain.ThreadDetail, error)
}

// newReader is replaced in tests.
var newReader = func(cmd *cobra.Command) (boardReader, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	quietLogs(cfg)
	return setup.NewClient(cfg), nil
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(flagOutput, "o", outputTable, "output format: table or json")
}

func output(cmd *cobra.Command, v any, table func(io.Writer)) error {
	format, err := cmd.Flags().GetString(flagOutput)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch format {
	case outputTable:
		table(w)
		return nil
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func newBoardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := newReader(cmd)
			if err != nil {
				return err
			}
			list, err := reader.GetBoards(cmd.Context())
			if err != nil {
				return err
			}
			return output(cmd, list, func(w io.Writer) { renderBoards(w, list) })
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newThreadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threads <board>",
		Short: "List threads on one page of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := cmd.Flags().GetInt(flagPage)
			if err != nil {
				return err
			}
			reader, err := newReader(cmd)
			if err != nil {
				return err
			}
			threads, err := reader.GetThreads(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			return output(cmd, threads, func(w io.Writer) { renderThreads(w, threads) })
		},
	}
	cmd.Flags().Int(flagPage, 1, "page number, starting at 1")
	addOutputFlag(cmd)
	return cmd
}

func newThreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread <board> <id>",
		Short: "Print the posts of a thread",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.ParseUint(args[1], 10, 64); err != nil {
				return fmt.Errorf("thread id must be a number: %q", args[1])
			}
			reader, err := newReader(cmd)
			if err != nil {
				return err
			}
			thread, err := reader.GetThread(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return output(cmd, thread, func(w io.Writer) { renderThread(w, thread) })
		},
	}
	addOutputFlag(cmd)
	return cmd
}
