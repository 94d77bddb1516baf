package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quizduel/internal/app/arena"
	"quizduel/internal/app/store"
	"quizduel/internal/configs"
	"quizduel/internal/pkg/auth/jwt"
)

// stubStore is an in-memory store.Store used by the handler tests.
type stubStore struct {
	users     map[string]store.User
	questions map[int64]store.Question
	nextID    int64
	failAll   bool
}

var errStubUnavailable = errors.New("stub store unavailable")

func newStubStore() *stubStore {
	return &stubStore{
		users:     make(map[string]store.User),
		questions: make(map[int64]store.Question),
		nextID:    1,
	}
}

func (s *stubStore) GetUserByUsername(_ context.Context, username string) (store.User, error) {
	if s.failAll {
		return store.User{}, errStubUnavailable
	}
	u, ok := s.users[username]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *stubStore) CreateUser(_ context.Context, username, passwordHash string) (store.User, error) {
	if s.failAll {
		return store.User{}, errStubUnavailable
	}
	if _, ok := s.users[username]; ok {
		// The handlers detect conflicts via store.IsUniqueViolation, which the
		// stub cannot fabricate, so tests pre-check with GetUserByUsername.
		return store.User{}, errors.New("duplicate username")
	}

	u := store.User{
		ID:              s.nextID,
		Username:        username,
		PasswordHash:    passwordHash,
		Level:           1,
		CompletedLevels: []int{},
		CreatedAt:       time.Now(),
	}
	s.nextID++
	s.users[username] = u
	return u, nil
}

func (s *stubStore) UpdateUser(_ context.Context, username string, upd store.UserUpdate) (store.User, error) {
	if s.failAll {
		return store.User{}, errStubUnavailable
	}
	u, ok := s.users[username]
	if !ok {
		return store.User{}, store.ErrNotFound
	}

	if upd.Level != nil {
		u.Level = *upd.Level
	}
	if upd.Gems != nil {
		u.Gems = *upd.Gems
	}
	if upd.Score != nil {
		u.Score = *upd.Score
	}
	if upd.CompletedLevels != nil {
		u.CompletedLevels = upd.CompletedLevels
	}

	s.users[username] = u
	return u, nil
}

func (s *stubStore) GetAllUsers(_ context.Context) ([]store.User, error) {
	if s.failAll {
		return nil, errStubUnavailable
	}
	users := make([]store.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Score > users[j].Score })
	return users, nil
}

func (s *stubStore) UserCount(_ context.Context) (int, error) {
	return len(s.users), nil
}

func (s *stubStore) GetAllQuestions(_ context.Context) ([]store.Question, error) {
	if s.failAll {
		return nil, errStubUnavailable
	}
	questions := make([]store.Question, 0, len(s.questions))
	for _, q := range s.questions {
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].LevelID < questions[j].LevelID })
	return questions, nil
}

func (s *stubStore) GetQuestionByID(_ context.Context, id int64) (store.Question, error) {
	if s.failAll {
		return store.Question{}, errStubUnavailable
	}
	for _, q := range s.questions {
		if q.ID == id || int64(q.LevelID) == id {
			return q, nil
		}
	}
	return store.Question{}, store.ErrNotFound
}

func (s *stubStore) AddQuestion(_ context.Context, in store.QuestionInput) (store.Question, error) {
	if s.failAll {
		return store.Question{}, errStubUnavailable
	}

	maxLevel := 0
	for _, q := range s.questions {
		if q.LevelID > maxLevel {
			maxLevel = q.LevelID
		}
	}

	q := store.Question{
		ID:          s.nextID,
		LevelID:     maxLevel + 1,
		Title:       in.Title,
		Description: in.Description,
		Options:     in.Options,
		Correct:     in.Correct,
		Category:    in.Category,
		Difficulty:  in.Difficulty,
		CreatedAt:   time.Now(),
	}
	s.nextID++
	s.questions[q.ID] = q
	return q, nil
}

func (s *stubStore) UpdateQuestion(_ context.Context, id int64, in store.QuestionInput) (store.Question, error) {
	if s.failAll {
		return store.Question{}, errStubUnavailable
	}
	for key, q := range s.questions {
		if q.ID == id || int64(q.LevelID) == id {
			q.Title = in.Title
			q.Description = in.Description
			q.Options = in.Options
			q.Correct = in.Correct
			q.Category = in.Category
			q.Difficulty = in.Difficulty
			s.questions[key] = q
			return q, nil
		}
	}
	return store.Question{}, store.ErrNotFound
}

func (s *stubStore) DeleteQuestion(_ context.Context, id int64) (bool, error) {
	if s.failAll {
		return false, errStubUnavailable
	}
	for key, q := range s.questions {
		if q.ID == id || int64(q.LevelID) == id {
			delete(s.questions, key)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) QuestionCount(_ context.Context) (int, error) {
	if s.failAll {
		return 0, errStubUnavailable
	}
	return len(s.questions), nil
}

func (s *stubStore) QuestionsByCategory(_ context.Context) ([]store.CategoryCount, error) {
	if s.failAll {
		return nil, errStubUnavailable
	}
	tally := make(map[string]int)
	for _, q := range s.questions {
		tally[q.Category]++
	}
	counts := make([]store.CategoryCount, 0, len(tally))
	for category, count := range tally {
		counts = append(counts, store.CategoryCount{Category: category, Count: count})
	}
	return counts, nil
}

func (s *stubStore) QuestionsByDifficulty(_ context.Context) ([]store.DifficultyCount, error) {
	if s.failAll {
		return nil, errStubUnavailable
	}
	tally := make(map[string]int)
	for _, q := range s.questions {
		tally[q.Difficulty]++
	}
	counts := make([]store.DifficultyCount, 0, len(tally))
	for difficulty, count := range tally {
		counts = append(counts, store.DifficultyCount{Difficulty: difficulty, Count: count})
	}
	return counts, nil
}

func (s *stubStore) ReplaceQuestions(_ context.Context, questions []store.Question) (int, error) {
	if s.failAll {
		return 0, errStubUnavailable
	}
	s.questions = make(map[int64]store.Question)
	for _, q := range questions {
		s.questions[q.ID] = q
	}
	return len(questions), nil
}

// stubBackups keeps uploaded objects in memory.
type stubBackups struct {
	objects map[string][]byte
}

func newStubBackups() *stubBackups {
	return &stubBackups{objects: make(map[string][]byte)}
}

func (b *stubBackups) Upload(_ context.Context, key string, _ string, payload []byte) (string, error) {
	b.objects[key] = payload
	return "memory://" + key, nil
}

func (b *stubBackups) Download(_ context.Context, key string) ([]byte, error) {
	payload, ok := b.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return payload, nil
}

func (b *stubBackups) Delete(_ context.Context, key string) error {
	delete(b.objects, key)
	return nil
}

const testJWTSecret = "test-secret"

func newTestDeps(t *testing.T, st store.Store) *AppDeps {
	t.Helper()

	hub := arena.NewHub(nil)
	t.Cleanup(hub.Shutdown)

	return &AppDeps{
		Hub: hub,
		Config: &configs.AppConfig{
			Environment: "development",
			Port:        8080,
			JWTSecret:   testJWTSecret,
		},
		Store:   st,
		Backups: newStubBackups(),
	}
}

// apiResponse mirrors the resp package's JSON envelope.
type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, parsed
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func userFixture(t *testing.T, username, password string) store.User {
	t.Helper()
	return store.User{
		ID:              1,
		Username:        username,
		PasswordHash:    hashPassword(t, password),
		Level:           1,
		CompletedLevels: []int{},
		CreatedAt:       time.Now(),
	}
}

func mintToken(t *testing.T, id, username string) string {
	t.Helper()
	token, err := jwt.GenerateToken(&jwt.Payload{ID: id, Username: username}, testJWTSecret, jwt.UserIdentityExpiration)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func mustUnmarshal(t *testing.T, raw json.RawMessage, dst any) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode data payload %q: %v", string(raw), err)
	}
}
