package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/itchan-dev/tgchan/internal/fallback"
	"github.com/itchan-dev/tgchan/internal/fetcher"
	"github.com/itchan-dev/tgchan/shared/domain"
	internal_errors "github.com/itchan-dev/tgchan/shared/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	boards    domain.BoardList
	threads   func(board string, page int) domain.ThreadPage
	thread    domain.ThreadDetail
	threadErr error
}

func (f *fakeReader) GetBoards(ctx context.Context) (domain.BoardList, error) {
	return f.boards, nil
}

func (f *fakeReader) GetThreads(ctx context.Context, board string, page int) (domain.ThreadPage, error) {
	return f.threads(board, page), nil
}

func (f *fakeReader) GetThread(ctx context.Context, board, thread string) (domain.ThreadDetail, error) {
	return f.thread, f.threadErr
}

func run(t *testing.T, reader boardReader, args ...string) (string, error) {
	t.Helper()
	orig := newReader
	newReader = func(cmd *cobra.Command) (boardReader, error) { return reader, nil }
	t.Cleanup(func() { newReader = orig })

	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--"+flagEnvFile, t.TempDir()+"/missing.env"))
	err := cmd.Execute()
	return out.String(), err
}

func TestBoardsCmd(t *testing.T) {
	out, err := run(t, &fakeReader{boards: fallback.Boards()}, "boards")

	require.NoError(t, err)
	assert.Contains(t, out, "/pr/")
	assert.Contains(t, out, "Техника и софт")
	assert.Contains(t, out, "built-in board list")
}

func TestBoardsCmd_JSON(t *testing.T) {
	list := domain.BoardList{Boards: []domain.Board{{Id: "b", Name: "Бред", Category: "Разное", Pages: 10}}}
	out, err := run(t, &fakeReader{boards: list}, "boards", "-o", "json")

	require.NoError(t, err)
	var got domain.BoardList
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, list, got)
}

func TestThreadsCmd(t *testing.T) {
	var gotPage int
	reader := &fakeReader{threads: func(board string, page int) domain.ThreadPage {
		gotPage = page
		return domain.ThreadPage{
			Board: board, Page: page, Pages: 7,
			Threads: []domain.ThreadSummary{{Id: 101, Title: "Go тред", PostsCount: 12, CreatedAt: time.Unix(1_700_000_000, 0)}},
		}
	}}

	out, err := run(t, reader, "threads", "pr", "--page", "3")

	require.NoError(t, err)
	assert.Equal(t, 3, gotPage)
	assert.Contains(t, out, "Go тред")
	assert.Contains(t, out, "/pr/ page 3 of 7")
}

func TestThreadCmd(t *testing.T) {
	reader := &fakeReader{thread: domain.ThreadDetail{
		Board: "b", Id: 5, Title: "тред",
		Posts: []domain.Post{
			{Num: 5, Op: true, Name: "Аноним", Comment: "первая<br>строка"},
			{Num: 6, Name: "Аноним", Comment: `<a class="post-reply-link">&gt;&gt;5</a> ответ`},
		},
	}}

	out, err := run(t, reader, "thread", "b", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "/b/5  тред")
	assert.Contains(t, out, "5 OP")
	assert.Contains(t, out, "первая строка")
	assert.Contains(t, out, ">>5 ответ")
}

func TestThreadCmd_Errors(t *testing.T) {
	t.Run("non numeric id", func(t *testing.T) {
		_, err := run(t, &fakeReader{}, "thread", "b", "abc")
		assert.Error(t, err)
	})

	t.Run("exhaustion is an error", func(t *testing.T) {
		reader := &fakeReader{threadErr: internal_errors.Wrap(fetcher.ErrExhausted, "thread /b/1 is unavailable", http.StatusBadGateway)}
		_, err := run(t, reader, "thread", "b", "1")

		assert.ErrorIs(t, err, fetcher.ErrExhausted)
	})

	t.Run("wrong arg count", func(t *testing.T) {
		_, err := run(t, &fakeReader{}, "thread", "b")
		assert.Error(t, err)
	})
}

func TestUnknownOutput(t *testing.T) {
	_, err := run(t, &fakeReader{}, "boards", "-o", "xml")
	assert.Error(t, err)
}
