package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Raw* types mirror the upstream JSON. Every field is optional; absent
// values decode to zero and are defaulted by the Normalizer.

type RawBoard struct {
	Id        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Info      string  `json:"info"`
	InfoOuter string  `json:"info_outer"`
	BumpLimit FlexInt `json:"bump_limit"`
	MaxPages  FlexInt `json:"max_pages"`
}

type RawFile struct {
	Name     string  `json:"name"`
	Fullname string  `json:"fullname"`
	Width    FlexInt `json:"width"`
	Height   FlexInt `json:"height"`
	Size     FlexInt `json:"size"`
}

type RawPost struct {
	Num       FlexInt   `json:"num"`
	Op        FlexInt   `json:"op"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Comment   string    `json:"comment"`
	Date      string    `json:"date"`
	Timestamp FlexInt   `json:"timestamp"`
	Files     []RawFile `json:"files"`
}

type RawThread struct {
	Num        FlexInt   `json:"num"`
	Date       string    `json:"date"`
	Timestamp  FlexInt   `json:"timestamp"`
	PostsCount FlexInt   `json:"posts_count"`
	FilesCount FlexInt   `json:"files_count"`
	Views      FlexInt   `json:"views"`
	Score      FlexFloat `json:"score"`
	Posts      []RawPost `json:"posts"`
}

// RawThreadList is one page of a board.
type RawThreadList struct {
	Threads []RawThread `json:"threads"`
	Pages   PageCount   `json:"pages"`
}

// RawThreadDetail is a single thread with all its posts.
type RawThreadDetail struct {
	Title      string      `json:"title"`
	PostsCount FlexInt     `json:"posts_count"`
	FilesCount FlexInt     `json:"files_count"`
	Threads    []RawThread `json:"threads"`
}

// FlexInt accepts a JSON number, a numeric string or null.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = FlexInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*n = FlexInt(f)
	return nil
}

// FlexFloat accepts a JSON number, a numeric string or null.
type FlexFloat float64

func (n *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	*n = FlexFloat(f)
	return nil
}

// PageCount is either a plain count or the list of page indices some
// endpoints return instead; the list's length is the count.
type PageCount int

func (p *PageCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var pages []json.RawMessage
		if err := json.Unmarshal(b, &pages); err != nil {
			return err
		}
		*p = PageCount(len(pages))
		return nil
	}
	var n FlexInt
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*p = PageCount(n)
	return nil
}
