/*
Package store is the persistence layer for user accounts and the quiz-level
question bank, backed by PostgreSQL via pgx.

Handlers consume the Store interface and receive it as an explicit dependency;
nothing reaches the database through package-level state.
*/
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// User is one player account. CompletedLevels lists the levelIds the player
// has cleared.
type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"`
	Level           int       `json:"level"`
	Gems            int       `json:"gems"`
	Score           int       `json:"score"`
	CompletedLevels []int     `json:"completedLevels"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UserUpdate is a partial update of a user's progress. Nil fields are left
// untouched.
type UserUpdate struct {
	Level           *int
	Gems            *int
	Score           *int
	CompletedLevels []int
}

// Question is one entry in the quiz-level question bank. Correct holds the
// answer key as an option letter ("A" is the first option).
type Question struct {
	ID          int64     `json:"id"`
	LevelID     int       `json:"levelId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Options     []string  `json:"options"`
	Correct     string    `json:"correct"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// QuestionInput is the payload for creating or updating a question.
type QuestionInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
}

// CategoryCount is the per-category question tally.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DifficultyCount is the per-difficulty question tally.
type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Store is the persistence interface consumed by the REST handlers.
type Store interface {
	// Users
	GetUserByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (User, error)
	UpdateUser(ctx context.Context, username string, upd UserUpdate) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	UserCount(ctx context.Context) (int, error)

	// Questions
	GetAllQuestions(ctx context.Context) ([]Question, error)
	GetQuestionByID(ctx context.Context, id int64) (Question, error)
	AddQuestion(ctx context.Context, in QuestionInput) (Question, error)
	UpdateQuestion(ctx context.Context, id int64, in QuestionInput) (Question, error)
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
	QuestionCount(ctx context.Context) (int, error)
	QuestionsByCategory(ctx context.Context) ([]CategoryCount, error)
	QuestionsByDifficulty(ctx context.Context) ([]DifficultyCount, error)

	// ReplaceQuestions clears the bank and inserts the given questions,
	// preserving their levelIds. Used by restore.
	ReplaceQuestions(ctx context.Context, questions []Question) (int, error)
}
