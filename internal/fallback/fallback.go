// Package fallback holds the static data served when no proxy can reach
// the upstream board API.
package fallback

import (
	"strings"
	"time"

	"github.com/itchan-dev/tgchan/internal/normalize"
	"github.com/itchan-dev/tgchan/shared/domain"
)

// epoch anchors synthetic timestamps so repeated calls are identical.
var epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

var boards = []domain.Board{
	{Id: "b", Name: "Бред", Category: "Разное", Description: "Бред", BumpLimit: 500, Pages: 10},
	{Id: "soc", Name: "Общение", Category: "Разное", Description: "Общение", BumpLimit: 500, Pages: 10},
	{Id: "po", Name: "Политика", Category: "Политика", Description: "Политика", BumpLimit: 500, Pages: 10},
	{Id: "news", Name: "Новости", Category: "Политика", Description: "Новости", BumpLimit: 500, Pages: 10},
	{Id: "a", Name: "Аниме", Category: "Японская культура", Description: "Аниме", BumpLimit: 500, Pages: 10},
	{Id: "pr", Name: "Программирование", Category: "Техника и софт", Description: "Программирование", BumpLimit: 500, Pages: 10},
	{Id: "hw", Name: "Компьютерное железо", Category: "Техника и софт", Description: "Железо", BumpLimit: 500, Pages: 10},
	{Id: "s", Name: "Программы", Category: "Техника и софт", Description: "Софт", BumpLimit: 500, Pages: 10},
	{Id: "vg", Name: "Видеоигры", Category: "Игры", Description: "Видеоигры, general", BumpLimit: 500, Pages: 10},
	{Id: "mov", Name: "Фильмы", Category: "Творчество", Description: "Фильмы", BumpLimit: 500, Pages: 10},
	{Id: "mu", Name: "Музыка", Category: "Творчество", Description: "Музыка", BumpLimit: 500, Pages: 10},
	{Id: "sn", Name: "Паранормальные явления", Category: "Тематика", Description: "Паранормальное", BumpLimit: 500, Pages: 10},
}

// Boards returns a copy of the static board list.
func Boards() domain.BoardList {
	list := make([]domain.Board, len(boards))
	copy(list, boards)
	return domain.BoardList{Boards: list, Fallback: true}
}

type seed struct {
	subject string
	comment string
}

var seeds = []seed{
	{subject: "Сервер недоступен"},
	{comment: "Не удалось загрузить треды. <b>Проверьте соединение</b> и обновите страницу."},
	{comment: "Это временные данные, показанные пока доска не отвечает. " + strings.Repeat("Попробуйте позже. ", 8)},
	{subject: "Общий тред", comment: "Обсуждаем всё подряд"},
	{},
}

// Threads builds a synthetic page for board. The output depends only on
// its arguments.
func Threads(board string, page int) domain.ThreadPage {
	page = max(1, page)
	threads := make([]domain.ThreadSummary, 0, len(seeds))
	for i, s := range seeds {
		n := (page-1)*len(seeds) + i
		created := epoch.Add(-time.Duration(n) * time.Hour)
		threads = append(threads, domain.ThreadSummary{
			Id:         int64(n + 1),
			Title:      normalize.Title(s.subject, s.comment),
			Date:       created.Format("02/01/06 15:04:05"),
			CreatedAt:  created,
			PostsCount: 10 - i,
			FilesCount: i,
		})
	}
	return domain.ThreadPage{
		Board:    board,
		Threads:  threads,
		Page:     page,
		Pages:    1,
		Fallback: true,
	}
}
