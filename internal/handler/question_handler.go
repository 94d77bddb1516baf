package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"quizduel/internal/app/store"
	"quizduel/internal/pkg/errs"
	"quizduel/internal/pkg/logx"
	"quizduel/internal/pkg/req"
	"quizduel/internal/pkg/resp"
)

const backupObjectKey = "backups/questions.json"

// backupDocument is the JSON layout stored in object storage. The exported
// timestamp lets operators tell backups apart without parsing object metadata.
type backupDocument struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Count      int              `json:"count"`
	Questions  []store.Question `json:"questions"`
}

// HandleListQuestions returns the full question bank.
func HandleListQuestions(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := deps.Store.GetAllQuestions(r.Context())
		if err != nil {
			logx.Error(err, "list_questions: failed to fetch questions")
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"questions": questions,
		})
	}
}

// HandleGetQuestion returns a single question by row id or levelId.
func HandleGetQuestion(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		question, err := deps.Store.GetQuestionByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrQuestionNotFound))
				return
			}

			logx.Error(err, "get_question: fetch failed", "id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"question": question,
		})
	}
}

type QuestionInputBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
}

func (b QuestionInputBody) validate() *errs.CustomError {
	if b.Title == "" || len(b.Options) < 2 {
		return errs.NewError(errs.ErrQuestionInvalid)
	}

	// Correct is the answer key as an option letter: "A" names the first
	// option and the letter must stay within the offered options.
	if len(b.Correct) != 1 || b.Correct[0] < 'A' || int(b.Correct[0]-'A') >= len(b.Options) {
		return errs.NewError(errs.ErrQuestionInvalid)
	}

	return nil
}

func (b QuestionInputBody) toInput() store.QuestionInput {
	return store.QuestionInput{
		Title:       b.Title,
		Description: b.Description,
		Options:     b.Options,
		Correct:     b.Correct,
		Category:    b.Category,
		Difficulty:  b.Difficulty,
	}
}

// HandleAddQuestion inserts a new question at the next free levelId.
func HandleAddQuestion(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body QuestionInputBody
		if customErr := req.BindJSON(r, &body); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := body.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		question, err := deps.Store.AddQuestion(r.Context(), body.toInput())
		if err != nil {
			logx.Error(err, "add_question: insert failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		logx.Info("question added", "level_id", question.LevelID, "category", question.Category)
		resp.RespondSuccess(w, r, map[string]any{
			"question": question,
		})
	}
}

// HandleUpdateQuestion replaces the editable fields of an existing question.
func HandleUpdateQuestion(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var body QuestionInputBody
		if customErr := req.BindJSON(r, &body); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := body.validate(); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		question, err := deps.Store.UpdateQuestion(r.Context(), id, body.toInput())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrQuestionNotFound))
				return
			}

			logx.Error(err, "update_question: update failed", "id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"question": question,
		})
	}
}

// HandleDeleteQuestion removes a question by row id or levelId.
func HandleDeleteQuestion(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		deleted, err := deps.Store.DeleteQuestion(r.Context(), id)
		if err != nil {
			logx.Error(err, "delete_question: delete failed", "id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		if !deleted {
			resp.RespondError(w, r, errs.NewError(errs.ErrQuestionNotFound))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"deleted": true,
		})
	}
}

// HandleQuestionStats reports bank size plus per-category and per-difficulty tallies.
func HandleQuestionStats(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := deps.Store.QuestionCount(r.Context())
		if err != nil {
			logx.Error(err, "question_stats: count failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		byCategory, err := deps.Store.QuestionsByCategory(r.Context())
		if err != nil {
			logx.Error(err, "question_stats: category tally failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		byDifficulty, err := deps.Store.QuestionsByDifficulty(r.Context())
		if err != nil {
			logx.Error(err, "question_stats: difficulty tally failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabaseUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"total":        total,
			"byCategory":   byCategory,
			"byDifficulty": byDifficulty,
		})
	}
}

// HandleBackupQuestions exports the question bank to object storage as a
// single JSON document.
func HandleBackupQuestions(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Backups == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrBackupStorageDisabled))
			return
		}

		questions, err := deps.Store.GetAllQuestions(r.Context())
		if err != nil {
			logx.Error(err, "backup: failed to fetch questions")
			resp.RespondError(w, r, errs.NewError(errs.ErrBackupFailed))
			return
		}

		doc := backupDocument{
			ExportedAt: time.Now().UTC(),
			Count:      len(questions),
			Questions:  questions,
		}

		payload, err := json.Marshal(doc)
		if err != nil {
			logx.Error(err, "backup: failed to encode document")
			resp.RespondError(w, r, errs.NewError(errs.ErrBackupFailed))
			return
		}

		location, err := deps.Backups.Upload(r.Context(), backupObjectKey, "application/json", payload)
		if err != nil {
			logx.Error(err, "backup: upload failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrBackupFailed))
			return
		}

		logx.Info("question bank backed up", "count", doc.Count, "location", location)
		resp.RespondSuccess(w, r, map[string]any{
			"count":      doc.Count,
			"exportedAt": doc.ExportedAt,
		})
	}
}

// HandleDeleteBackup removes the stored backup object.
func HandleDeleteBackup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Backups == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrBackupStorageDisabled))
			return
		}

		if err := deps.Backups.Delete(r.Context(), backupObjectKey); err != nil {
			logx.Error(err, "backup: delete failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrBackupFailed))
			return
		}

		logx.Info("question bank backup deleted")
		resp.RespondSuccess(w, r, map[string]any{
			"deleted": true,
		})
	}
}

// HandleRestoreQuestions replaces the question bank with the latest backup
// from object storage.
func HandleRestoreQuestions(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Backups == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrBackupStorageDisabled))
			return
		}

		payload, err := deps.Backups.Download(r.Context(), backupObjectKey)
		if err != nil {
			logx.Error(err, "restore: download failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrRestoreFailed))
			return
		}

		var doc backupDocument
		if err := json.Unmarshal(payload, &doc); err != nil {
			logx.Error(err, "restore: failed to decode document")
			resp.RespondError(w, r, errs.NewError(errs.ErrRestoreFailed))
			return
		}

		restored, err := deps.Store.ReplaceQuestions(r.Context(), doc.Questions)
		if err != nil {
			logx.Error(err, "restore: failed to replace question bank")
			resp.RespondError(w, r, errs.NewError(errs.ErrRestoreFailed))
			return
		}

		logx.Info("question bank restored", "count", restored, "exported_at", doc.ExportedAt)
		resp.RespondSuccess(w, r, map[string]any{
			"restored":   restored,
			"exportedAt": doc.ExportedAt,
		})
	}
}
