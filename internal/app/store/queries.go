package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const userColumns = `id, username, password_hash, level, gems, score, completed_levels, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	var levelsRaw []byte

	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Level, &u.Gems, &u.Score, &levelsRaw, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}

	u.CompletedLevels = []int{}
	if len(levelsRaw) > 0 {
		if err := json.Unmarshal(levelsRaw, &u.CompletedLevels); err != nil {
			return User{}, fmt.Errorf("failed to decode completed_levels: %w", err)
		}
	}

	return u, nil
}

// GetUserByUsername returns the user with the given login name.
func (p *Postgres) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// CreateUser inserts a new account with the starting progress values.
func (p *Postgres) CreateUser(ctx context.Context, username, passwordHash string) (User, error) {
	row := p.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING `+userColumns,
		username, passwordHash)

	return scanUser(row)
}

// UpdateUser applies a partial progress update and returns the updated user.
func (p *Postgres) UpdateUser(ctx context.Context, username string, upd UserUpdate) (User, error) {
	var levelsRaw []byte
	if upd.CompletedLevels != nil {
		encoded, err := json.Marshal(upd.CompletedLevels)
		if err != nil {
			return User{}, fmt.Errorf("failed to encode completed_levels: %w", err)
		}
		levelsRaw = encoded
	}

	row := p.pool.QueryRow(ctx, `
		UPDATE users SET
			level = COALESCE($2, level),
			gems = COALESCE($3, gems),
			score = COALESCE($4, score),
			completed_levels = COALESCE($5, completed_levels)
		WHERE username = $1
		RETURNING `+userColumns,
		username, upd.Level, upd.Gems, upd.Score, levelsRaw)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// GetAllUsers returns every account ordered by score, best first.
func (p *Postgres) GetAllUsers(ctx context.Context) ([]User, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY score DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// UserCount returns the number of accounts.
func (p *Postgres) UserCount(ctx context.Context) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

const questionColumns = `id, level_id, title, description, options, correct, category, difficulty, created_at`

func scanQuestion(row pgx.Row) (Question, error) {
	var q Question
	var optionsRaw []byte

	err := row.Scan(&q.ID, &q.LevelID, &q.Title, &q.Description, &optionsRaw, &q.Correct, &q.Category, &q.Difficulty, &q.CreatedAt)
	if err != nil {
		return Question{}, err
	}

	if err := json.Unmarshal(optionsRaw, &q.Options); err != nil {
		return Question{}, fmt.Errorf("failed to decode options: %w", err)
	}

	return q, nil
}

// GetAllQuestions returns the question bank ordered by levelId.
func (p *Postgres) GetAllQuestions(ctx context.Context) ([]Question, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY level_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// GetQuestionByID looks a question up by row id or levelId, whichever matches.
func (p *Postgres) GetQuestionByID(ctx context.Context, id int64) (Question, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT `+questionColumns+` FROM questions
		WHERE id = $1 OR level_id = $1`, id)

	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}

// AddQuestion inserts a question at the next free levelId.
func (p *Postgres) AddQuestion(ctx context.Context, in QuestionInput) (Question, error) {
	optionsRaw, err := json.Marshal(in.Options)
	if err != nil {
		return Question{}, fmt.Errorf("failed to encode options: %w", err)
	}

	row := p.pool.QueryRow(ctx, `
		INSERT INTO questions (level_id, title, description, options, correct, category, difficulty)
		VALUES ((SELECT COALESCE(MAX(level_id), 0) + 1 FROM questions), $1, $2, $3, $4, $5, $6)
		RETURNING `+questionColumns,
		in.Title, in.Description, optionsRaw, in.Correct, in.Category, in.Difficulty)

	return scanQuestion(row)
}

// UpdateQuestion replaces the editable fields of the question matching id or
// levelId and returns the updated row.
func (p *Postgres) UpdateQuestion(ctx context.Context, id int64, in QuestionInput) (Question, error) {
	optionsRaw, err := json.Marshal(in.Options)
	if err != nil {
		return Question{}, fmt.Errorf("failed to encode options: %w", err)
	}

	row := p.pool.QueryRow(ctx, `
		UPDATE questions SET
			title = $2,
			description = $3,
			options = $4,
			correct = $5,
			category = $6,
			difficulty = $7
		WHERE id = $1 OR level_id = $1
		RETURNING `+questionColumns,
		id, in.Title, in.Description, optionsRaw, in.Correct, in.Category, in.Difficulty)

	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}

// DeleteQuestion removes the question matching id or levelId and reports
// whether a row was deleted.
func (p *Postgres) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1 OR level_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// QuestionCount returns the number of questions in the bank.
func (p *Postgres) QuestionCount(ctx context.Context) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

// QuestionsByCategory tallies questions per category.
func (p *Postgres) QuestionsByCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := p.pool.Query(ctx, `SELECT category, COUNT(*) FROM questions GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []CategoryCount{}
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// QuestionsByDifficulty tallies questions per difficulty.
func (p *Postgres) QuestionsByDifficulty(ctx context.Context) ([]DifficultyCount, error) {
	rows, err := p.pool.Query(ctx, `SELECT difficulty, COUNT(*) FROM questions GROUP BY difficulty`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []DifficultyCount{}
	for rows.Next() {
		var c DifficultyCount
		if err := rows.Scan(&c.Difficulty, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// ReplaceQuestions clears the bank and inserts the given questions inside one
// transaction, preserving their levelIds.
func (p *Postgres) ReplaceQuestions(ctx context.Context, questions []Question) (int, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions`); err != nil {
		return 0, err
	}

	for _, q := range questions {
		optionsRaw, err := json.Marshal(q.Options)
		if err != nil {
			return 0, fmt.Errorf("failed to encode options for level %d: %w", q.LevelID, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO questions (level_id, title, description, options, correct, category, difficulty)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			q.LevelID, q.Title, q.Description, optionsRaw, q.Correct, q.Category, q.Difficulty)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return len(questions), nil
}
