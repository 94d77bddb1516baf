package handler

import (
	"errors"
	"net/http"

	"quizduel/internal/app/store"
	"quizduel/internal/pkg/auth/jwt"
	"quizduel/internal/pkg/errs"
	"quizduel/internal/pkg/logx"
	"quizduel/internal/pkg/req"
	"quizduel/internal/pkg/resp"
)

// HandleLeaderboard returns every player ranked by score, best first, plus
// the total number of registered players.
func HandleLeaderboard(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.Store.GetAllUsers(r.Context())
		if err != nil {
			logx.Error(err, "leaderboard: failed to fetch users")
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		players, err := deps.Store.UserCount(r.Context())
		if err != nil {
			logx.Error(err, "leaderboard: failed to count users")
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"leaderboard": users,
			"players":     players,
		})
	}
}

// HandleGetProgress returns the authenticated player's progress record.
func HandleGetProgress(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		user, err := deps.Store.GetUserByUsername(r.Context(), identity.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "get_progress: user fetch failed", "username", identity.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": user,
		})
	}
}

type ProgressInput struct {
	Level           *int  `json:"level"`
	Gems            *int  `json:"gems"`
	Score           *int  `json:"score"`
	CompletedLevels []int `json:"completedLevels"`
}

// HandleUpdateProgress applies a partial update to the authenticated player's
// level, gems, score and completed levels.
func HandleUpdateProgress(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input ProgressInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, err := deps.Store.UpdateUser(r.Context(), identity.Username, store.UserUpdate{
			Level:           input.Level,
			Gems:            input.Gems,
			Score:           input.Score,
			CompletedLevels: input.CompletedLevels,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "update_progress: failed to update user", "username", identity.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": user,
		})
	}
}
