package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/tgchan/shared/api"
	"github.com/itchan-dev/tgchan/shared/logger"
	"github.com/itchan-dev/tgchan/shared/utils"
)

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	thread := chi.URLParam(r, "thread")

	detail, err := h.boards.GetThread(r.Context(), board, thread)
	if err != nil {
		logger.Log.Warn("cannot load thread",
			"component", "handler",
			"board", board,
			"thread", thread,
			"error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ThreadResponse{ThreadDetail: detail})
}
