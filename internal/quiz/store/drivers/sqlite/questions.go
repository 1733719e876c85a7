package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
)

// bankSchema describes the per-variant question table. Identifiers come
// from the fixed domain variants, never from user input.
type bankSchema struct {
	table     string
	wrongCols []string
}

func schemaFor(v domain.BankVariant) bankSchema {
	cols := make([]string, v.WrongAnswers)
	for i := range cols {
		cols[i] = fmt.Sprintf("wrong%d", i+1)
	}
	return bankSchema{
		table:     "questions_" + v.Name,
		wrongCols: cols,
	}
}

func (s bankSchema) selectColumns() string {
	return "question, " + strings.Join(s.wrongCols, ", ") + ", correct, week"
}

type questionsRepo struct {
	q      querier
	schema bankSchema
}

func (r *questionsRepo) scanRow(scan func(dest ...any) error) (domain.Question, error) {
	q := domain.Question{WrongAnswers: make([]string, len(r.schema.wrongCols))}

	dest := make([]any, 0, len(r.schema.wrongCols)+3)
	dest = append(dest, &q.Text)
	for i := range q.WrongAnswers {
		dest = append(dest, &q.WrongAnswers[i])
	}
	dest = append(dest, &q.Correct, &q.Week)

	if err := scan(dest...); err != nil {
		return domain.Question{}, mapNotFound(err)
	}
	return q, nil
}

func (r *questionsRepo) Create(ctx context.Context, q domain.Question) error {
	if len(q.WrongAnswers) != len(r.schema.wrongCols) {
		return fmt.Errorf("sqlite: %s expects %d wrong answers, got %d",
			r.schema.table, len(r.schema.wrongCols), len(q.WrongAnswers))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(r.schema.wrongCols)+3), ", ")
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.schema.table, r.schema.selectColumns(), placeholders)

	args := make([]any, 0, len(q.WrongAnswers)+3)
	args = append(args, q.Text)
	for _, w := range q.WrongAnswers {
		args = append(args, w)
	}
	args = append(args, q.Correct, q.Week)

	_, err := r.q.ExecContext(ctx, query, args...)
	return mapConstraint(err)
}

func (r *questionsRepo) GetByTextAndWeek(ctx context.Context, text string, week int) (domain.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE question = ? AND week = ?`,
		r.schema.selectColumns(), r.schema.table)
	row := r.q.QueryRowContext(ctx, query, text, week)
	return r.scanRow(row.Scan)
}

func (r *questionsRepo) ListByWeek(ctx context.Context, week int) ([]domain.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE week = ? ORDER BY rowid`,
		r.schema.selectColumns(), r.schema.table)

	rows, err := r.q.QueryContext(ctx, query, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		q, err := r.scanRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *questionsRepo) TextExists(ctx context.Context, text string) (bool, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE question = ?`, r.schema.table)
	if err := r.q.QueryRowContext(ctx, query, text).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *questionsRepo) CountForWeek(ctx context.Context, week int) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE week = ?`, r.schema.table)
	if err := r.q.QueryRowContext(ctx, query, week).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *questionsRepo) DeleteWeek(ctx context.Context, week int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE week = ?`, r.schema.table)
	_, err := r.q.ExecContext(ctx, query, week)
	return err
}

func (r *questionsRepo) IsCorrect(ctx context.Context, text, answer string) (bool, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE question = ? AND correct = ?`, r.schema.table)
	if err := r.q.QueryRowContext(ctx, query, text, answer).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
