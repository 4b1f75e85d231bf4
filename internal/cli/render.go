package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/itchan-dev/tgchan/internal/normalize"
	"github.com/itchan-dev/tgchan/shared/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const commentWidth = 80

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t
}

func renderBoards(w io.Writer, list domain.BoardList) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "Board", "Name", "Pages"})
	for _, b := range list.Boards {
		t.AppendRow(table.Row{b.Category, "/" + b.Id + "/", b.Name, b.Pages})
	}
	t.SortBy([]table.SortBy{{Number: 1, Mode: table.Asc}})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
	if list.Fallback {
		fmt.Fprintln(w, "(upstream unavailable, showing built-in board list)")
	}
}

func renderThreads(w io.Writer, page domain.ThreadPage) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Id", "Title", "Posts", "Files", "Created"})
	for _, th := range page.Threads {
		t.AppendRow(table.Row{th.Id, th.Title, th.PostsCount, th.FilesCount, formatTime(th.CreatedAt, th.Date)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 60},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.SetCaption("/%s/ page %d of %d", page.Board, page.Page, page.Pages)
	t.Render()
	if page.Fallback {
		fmt.Fprintln(w, "(upstream unavailable, showing placeholder threads)")
	}
}

func renderThread(w io.Writer, thread domain.ThreadDetail) {
	fmt.Fprintf(w, "/%s/%d  %s\n\n", thread.Board, thread.Id, thread.Title)
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Name", "Date", "Comment", "Files"})
	for _, p := range thread.Posts {
		num := fmt.Sprint(p.Num)
		if p.Op {
			num += " OP"
		}
		t.AppendRow(table.Row{num, p.Name, formatTime(p.CreatedAt, p.Date), plain(p.Comment), len(p.Files)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: commentWidth},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

var lineBreaks = strings.NewReplacer("<br>", " ", "<br/>", " ", "<br />", " ")

func plain(comment string) string {
	return strings.Join(strings.Fields(normalize.StripTags(lineBreaks.Replace(comment))), " ")
}

func formatTime(ts time.Time, display string) string {
	if !ts.IsZero() {
		return ts.Local().Format("2006-01-02 15:04")
	}
	return display
}
