package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/tgchan/shared/api"
	"github.com/itchan-dev/tgchan/shared/utils"
)

const defaultPage = 1

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	list, err := h.boards.GetBoards(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.BoardListResponse{BoardList: list})
}

func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")

	page := defaultPage
	if q := r.URL.Query().Get("page"); q != "" {
		var err error
		if page, err = strconv.Atoi(q); err != nil || page < 1 {
			http.Error(w, "page must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	threads, err := h.boards.GetThreads(r.Context(), board, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ThreadPageResponse{ThreadPage: threads})
}
