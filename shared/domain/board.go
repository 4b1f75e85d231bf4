package domain

type (
	BoardId  = string
	ThreadId = int64
	PostNum  = int64
)

type Board struct {
	Id          BoardId `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"` // localized
	Description string  `json:"description"`
	BumpLimit   int     `json:"bump_limit"`
	Pages       int     `json:"pages"`
}

// BoardList is the board index. Fallback is set when it comes from static data.
type BoardList struct {
	Boards   []Board `json:"boards"`
	Fallback bool    `json:"fallback"`
}
