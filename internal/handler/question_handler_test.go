package handler

import (
	"fmt"
	"net/http"
	"testing"

	"quizduel/internal/app/store"
	"quizduel/internal/pkg/errs"
)

func questionBody(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "Pick the right answer",
		"options":     []string{"London", "Berlin", "Paris", "Madrid"},
		"correct":     "C",
		"category":    "geography",
		"difficulty":  "easy",
	}
}

func TestQuestionCRUD(t *testing.T) {
	deps := newTestDeps(t, newStubStore())
	router := Router(deps)

	// Create
	w, parsed := doJSON(t, router, http.MethodPost, "/api/questions/", "", questionBody("Capital of France?"))
	if w.Code != http.StatusOK || parsed.Code != 0 {
		t.Fatalf("add: expected success, got http %d code %d: %s", w.Code, parsed.Code, parsed.Message)
	}

	var created struct {
		Question store.Question `json:"question"`
	}
	mustUnmarshal(t, parsed.Data, &created)
	if created.Question.LevelID != 1 {
		t.Fatalf("add: expected levelId 1, got %d", created.Question.LevelID)
	}

	// Read by levelId
	path := fmt.Sprintf("/api/questions/%d", created.Question.LevelID)
	_, parsed = doJSON(t, router, http.MethodGet, path, "", nil)
	if parsed.Code != 0 {
		t.Fatalf("get: expected success, got code %d", parsed.Code)
	}

	// Update, moving the answer key to another option letter
	update := questionBody("Capital of France, updated?")
	update["correct"] = "D"
	_, parsed = doJSON(t, router, http.MethodPut, path, "", update)
	if parsed.Code != 0 {
		t.Fatalf("update: expected success, got code %d: %s", parsed.Code, parsed.Message)
	}

	var updated struct {
		Question store.Question `json:"question"`
	}
	mustUnmarshal(t, parsed.Data, &updated)
	if updated.Question.Title != "Capital of France, updated?" {
		t.Fatalf("update: title not applied: %q", updated.Question.Title)
	}
	if updated.Question.Correct != "D" {
		t.Fatalf("update: answer key not applied: %q", updated.Question.Correct)
	}

	// List
	_, parsed = doJSON(t, router, http.MethodGet, "/api/questions/", "", nil)
	var listed struct {
		Questions []store.Question `json:"questions"`
	}
	mustUnmarshal(t, parsed.Data, &listed)
	if len(listed.Questions) != 1 {
		t.Fatalf("list: expected 1 question, got %d", len(listed.Questions))
	}

	// Delete
	w, parsed = doJSON(t, router, http.MethodDelete, path, "", nil)
	if w.Code != http.StatusOK || parsed.Code != 0 {
		t.Fatalf("delete: expected success, got http %d code %d", w.Code, parsed.Code)
	}

	w, parsed = doJSON(t, router, http.MethodDelete, path, "", nil)
	if w.Code != http.StatusNotFound || parsed.Code != errs.ErrQuestionNotFound {
		t.Fatalf("delete twice: expected 404/%d, got %d/%d", errs.ErrQuestionNotFound, w.Code, parsed.Code)
	}
}

func TestAddQuestionValidation(t *testing.T) {
	deps := newTestDeps(t, newStubStore())
	router := Router(deps)

	missingTitle := questionBody("")
	_, parsed := doJSON(t, router, http.MethodPost, "/api/questions/", "", missingTitle)
	if parsed.Code != errs.ErrQuestionInvalid {
		t.Fatalf("missing title: expected code %d, got %d", errs.ErrQuestionInvalid, parsed.Code)
	}

	// The answer key is an option letter, not the option text.
	fullText := questionBody("Capital of France?")
	fullText["correct"] = "Paris"
	_, parsed = doJSON(t, router, http.MethodPost, "/api/questions/", "", fullText)
	if parsed.Code != errs.ErrQuestionInvalid {
		t.Fatalf("full-text correct: expected code %d, got %d", errs.ErrQuestionInvalid, parsed.Code)
	}

	outOfRange := questionBody("Capital of France?")
	outOfRange["correct"] = "E"
	_, parsed = doJSON(t, router, http.MethodPost, "/api/questions/", "", outOfRange)
	if parsed.Code != errs.ErrQuestionInvalid {
		t.Fatalf("letter beyond options: expected code %d, got %d", errs.ErrQuestionInvalid, parsed.Code)
	}

	lowercase := questionBody("Capital of France?")
	lowercase["correct"] = "c"
	_, parsed = doJSON(t, router, http.MethodPost, "/api/questions/", "", lowercase)
	if parsed.Code != errs.ErrQuestionInvalid {
		t.Fatalf("lowercase letter: expected code %d, got %d", errs.ErrQuestionInvalid, parsed.Code)
	}
}

func TestGetQuestionNotFound(t *testing.T) {
	deps := newTestDeps(t, newStubStore())
	router := Router(deps)

	w, parsed := doJSON(t, router, http.MethodGet, "/api/questions/42", "", nil)
	if w.Code != http.StatusNotFound || parsed.Code != errs.ErrQuestionNotFound {
		t.Fatalf("expected 404/%d, got %d/%d", errs.ErrQuestionNotFound, w.Code, parsed.Code)
	}

	w, parsed = doJSON(t, router, http.MethodGet, "/api/questions/not-a-number", "", nil)
	if w.Code != http.StatusBadRequest || parsed.Code != errs.ErrInvalidParams {
		t.Fatalf("bad id: expected 400/%d, got %d/%d", errs.ErrInvalidParams, w.Code, parsed.Code)
	}
}

func TestQuestionStats(t *testing.T) {
	deps := newTestDeps(t, newStubStore())
	router := Router(deps)

	for i := 0; i < 3; i++ {
		body := questionBody(fmt.Sprintf("Question %d", i))
		if i == 2 {
			body["category"] = "history"
			body["difficulty"] = "hard"
		}
		doJSON(t, router, http.MethodPost, "/api/questions/", "", body)
	}

	_, parsed := doJSON(t, router, http.MethodGet, "/api/questions/stats", "", nil)
	if parsed.Code != 0 {
		t.Fatalf("expected success, got code %d", parsed.Code)
	}

	var data struct {
		Total        int                     `json:"total"`
		ByCategory   []store.CategoryCount   `json:"byCategory"`
		ByDifficulty []store.DifficultyCount `json:"byDifficulty"`
	}
	mustUnmarshal(t, parsed.Data, &data)

	if data.Total != 3 {
		t.Fatalf("expected total 3, got %d", data.Total)
	}
	if len(data.ByCategory) != 2 || len(data.ByDifficulty) != 2 {
		t.Fatalf("expected 2 categories and 2 difficulties, got %d/%d",
			len(data.ByCategory), len(data.ByDifficulty))
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	deps := newTestDeps(t, newStubStore())
	router := Router(deps)

	doJSON(t, router, http.MethodPost, "/api/questions/", "", questionBody("Capital of France?"))
	doJSON(t, router, http.MethodPost, "/api/questions/", "", questionBody("Capital of Spain?"))

	w, parsed := doJSON(t, router, http.MethodPost, "/api/questions/backup", "", nil)
	if w.Code != http.StatusOK || parsed.Code != 0 {
		t.Fatalf("backup: expected success, got http %d code %d: %s", w.Code, parsed.Code, parsed.Message)
	}

	var backup struct {
		Count int `json:"count"`
	}
	mustUnmarshal(t, parsed.Data, &backup)
	if backup.Count != 2 {
		t.Fatalf("backup: expected count 2, got %d", backup.Count)
	}

	// Wipe the bank, then restore from the snapshot.
	doJSON(t, router, http.MethodDelete, "/api/questions/1", "", nil)
	doJSON(t, router, http.MethodDelete, "/api/questions/2", "", nil)

	w, parsed = doJSON(t, router, http.MethodPost, "/api/questions/restore", "", nil)
	if w.Code != http.StatusOK || parsed.Code != 0 {
		t.Fatalf("restore: expected success, got http %d code %d: %s", w.Code, parsed.Code, parsed.Message)
	}

	var restore struct {
		Restored int `json:"restored"`
	}
	mustUnmarshal(t, parsed.Data, &restore)
	if restore.Restored != 2 {
		t.Fatalf("restore: expected 2 questions, got %d", restore.Restored)
	}

	_, parsed = doJSON(t, router, http.MethodGet, "/api/questions/", "", nil)
	var listed struct {
		Questions []store.Question `json:"questions"`
	}
	mustUnmarshal(t, parsed.Data, &listed)
	if len(listed.Questions) != 2 {
		t.Fatalf("after restore: expected 2 questions, got %d", len(listed.Questions))
	}
}

func TestDeleteBackup(t *testing.T) {
	deps := newTestDeps(t, newStubStore())
	router := Router(deps)

	doJSON(t, router, http.MethodPost, "/api/questions/", "", questionBody("Capital of France?"))

	w, parsed := doJSON(t, router, http.MethodPost, "/api/questions/backup", "", nil)
	if w.Code != http.StatusOK || parsed.Code != 0 {
		t.Fatalf("backup: expected success, got http %d code %d", w.Code, parsed.Code)
	}

	w, parsed = doJSON(t, router, http.MethodDelete, "/api/questions/backup", "", nil)
	if w.Code != http.StatusOK || parsed.Code != 0 {
		t.Fatalf("delete backup: expected success, got http %d code %d", w.Code, parsed.Code)
	}

	// With the snapshot gone, restore has nothing to read.
	w, parsed = doJSON(t, router, http.MethodPost, "/api/questions/restore", "", nil)
	if w.Code != http.StatusInternalServerError || parsed.Code != errs.ErrRestoreFailed {
		t.Fatalf("restore after delete: expected 500/%d, got %d/%d", errs.ErrRestoreFailed, w.Code, parsed.Code)
	}
}

func TestBackupWithoutStorage(t *testing.T) {
	deps := newTestDeps(t, newStubStore())
	deps.Backups = nil
	router := Router(deps)

	w, parsed := doJSON(t, router, http.MethodPost, "/api/questions/backup", "", nil)
	if w.Code != http.StatusServiceUnavailable || parsed.Code != errs.ErrBackupStorageDisabled {
		t.Fatalf("expected 503/%d, got %d/%d", errs.ErrBackupStorageDisabled, w.Code, parsed.Code)
	}

	w, parsed = doJSON(t, router, http.MethodPost, "/api/questions/restore", "", nil)
	if w.Code != http.StatusServiceUnavailable || parsed.Code != errs.ErrBackupStorageDisabled {
		t.Fatalf("restore: expected 503/%d, got %d/%d", errs.ErrBackupStorageDisabled, w.Code, parsed.Code)
	}

	w, parsed = doJSON(t, router, http.MethodDelete, "/api/questions/backup", "", nil)
	if w.Code != http.StatusServiceUnavailable || parsed.Code != errs.ErrBackupStorageDisabled {
		t.Fatalf("delete: expected 503/%d, got %d/%d", errs.ErrBackupStorageDisabled, w.Code, parsed.Code)
	}
}
