package api

import "github.com/itchan-dev/tgchan/shared/domain"

// Request DTOs

type CreateSessionRequest struct {
	InitData    string `json:"init_data"`
	ColorScheme string `json:"color_scheme" validate:"omitempty,oneof=light dark"`
}

// Response DTOs

type BoardListResponse struct {
	domain.BoardList
}

type ThreadPageResponse struct {
	domain.ThreadPage
}

type ThreadResponse struct {
	domain.ThreadDetail
}

type SessionResponse struct {
	User  domain.User        `json:"user"`
	Theme domain.ColorScheme `json:"theme"`
	Token string             `json:"token,omitempty"`
}
