// Package normalize turns raw upstream payloads into the domain records
// served to the Mini-App.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/itchan-dev/tgchan/shared/domain"
	"github.com/microcosm-cc/bluemonday"
)

type Normalizer struct {
	urls    URLBuilder
	comment *bluemonday.Policy
}

func New(baseURL string) *Normalizer {
	return &Normalizer{
		urls:    NewURLBuilder(baseURL),
		comment: commentPolicy(),
	}
}

func (n *Normalizer) URLs() URLBuilder {
	return n.urls
}

// commentPolicy keeps the markup upstream uses for spoilers, quotes and
// reply links and drops everything else.
func commentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^(spoiler|unkfunc|s|u|o|post-reply-link)$`)).OnElements("span", "a")
	p.AllowAttrs("data-thread", "data-num").Matching(regexp.MustCompile(`^\d+$`)).OnElements("a")
	p.RequireNoFollowOnLinks(false)
	p.AllowRelativeURLs(true)
	return p
}

func (n *Normalizer) Boards(raw []RawBoard) []domain.Board {
	boards := make([]domain.Board, 0, len(raw))
	for _, b := range raw {
		if b.Id == "" {
			continue
		}
		description := b.Info
		if description == "" {
			description = b.InfoOuter
		}
		boards = append(boards, domain.Board{
			Id:          b.Id,
			Name:        b.Name,
			Category:    Category(b.Category),
			Description: StripTags(description),
			BumpLimit:   int(b.BumpLimit),
			Pages:       max(1, int(b.MaxPages)),
		})
	}
	return boards
}

// Threads builds one page of thread summaries. Missing page count means 1.
func (n *Normalizer) Threads(board string, page int, raw RawThreadList) domain.ThreadPage {
	threads := make([]domain.ThreadSummary, 0, len(raw.Threads))
	for _, t := range raw.Threads {
		threads = append(threads, n.Summary(board, t))
	}
	return domain.ThreadPage{
		Board:   board,
		Threads: threads,
		Page:    page,
		Pages:   max(1, int(raw.Pages)),
	}
}

func (n *Normalizer) Summary(board string, t RawThread) domain.ThreadSummary {
	var op RawPost
	if len(t.Posts) > 0 {
		op = t.Posts[0]
	}

	summary := domain.ThreadSummary{
		Id:         int64(firstNonZero(t.Num, op.Num)),
		Title:      Title(op.Subject, op.Comment),
		Date:       firstNonEmpty(t.Date, op.Date),
		CreatedAt:  unixTime(firstNonZero(t.Timestamp, op.Timestamp)),
		PostsCount: int(t.PostsCount),
		FilesCount: int(t.FilesCount),
		Views:      int(t.Views),
		Score:      float64(t.Score),
	}
	if len(op.Files) > 0 && op.Files[0].Name != "" {
		thumb := n.urls.Thumbnail(board, op.Files[0].Name)
		image := n.urls.Image(board, op.Files[0].Name)
		summary.Thumbnail = &thumb
		summary.ImageURL = &image
	}
	return summary
}

// Thread flattens a thread payload. ok is false when it holds no posts.
func (n *Normalizer) Thread(board string, raw RawThreadDetail) (domain.ThreadDetail, bool) {
	var rawPosts []RawPost
	if len(raw.Threads) > 0 {
		rawPosts = raw.Threads[0].Posts
	}
	if len(rawPosts) == 0 {
		return domain.ThreadDetail{}, false
	}

	posts := make([]domain.Post, 0, len(rawPosts))
	filesCount := 0
	for i, p := range rawPosts {
		post := n.post(board, p)
		post.Op = i == 0 || p.Op == 1
		filesCount += len(post.Files)
		posts = append(posts, post)
	}

	op := rawPosts[0]
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = Title(op.Subject, op.Comment)
	}
	detail := domain.ThreadDetail{
		Board:      board,
		Id:         int64(op.Num),
		Title:      title,
		PostsCount: int(raw.PostsCount),
		FilesCount: int(raw.FilesCount),
		Posts:      posts,
	}
	if detail.PostsCount == 0 {
		detail.PostsCount = len(posts)
	}
	if detail.FilesCount == 0 {
		detail.FilesCount = filesCount
	}
	return detail, true
}

func (n *Normalizer) post(board string, p RawPost) domain.Post {
	files := make([]domain.File, 0, len(p.Files))
	for _, f := range p.Files {
		if f.Name == "" {
			continue
		}
		files = append(files, domain.File{
			Name:         f.Name,
			FullName:     f.Fullname,
			ImageURL:     n.urls.Image(board, f.Name),
			ThumbnailURL: n.urls.Thumbnail(board, f.Name),
			Width:        int(f.Width),
			Height:       int(f.Height),
			SizeKB:       int(f.Size),
		})
	}
	return domain.Post{
		Num:       int64(p.Num),
		Name:      StripTags(p.Name),
		Subject:   strings.TrimSpace(p.Subject),
		Comment:   n.comment.Sanitize(p.Comment),
		Date:      p.Date,
		CreatedAt: unixTime(p.Timestamp),
		Files:     files,
	}
}

func unixTime(ts FlexInt) time.Time {
	if ts <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(ts), 0).UTC()
}

func firstNonZero(vals ...FlexInt) FlexInt {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
