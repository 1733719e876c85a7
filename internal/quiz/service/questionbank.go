package service

import (
	"context"
	"errors"

	"github.com/sgronlund/latias-backend/internal/quiz/domain"
	"github.com/sgronlund/latias-backend/internal/quiz/store"
)

var (
	ErrInvalidArity      = errors.New("invalid_answer_count")
	ErrInvalidWeek       = errors.New("invalid_week")
	ErrDuplicateQuestion = errors.New("duplicate_question")
	ErrBankFull          = errors.New("bank_full")
)

// QuestionBankService manages one bank variant. Construct one instance
// per variant; they share the store but write to separate tables.
type QuestionBankService struct {
	Store   store.Store
	Variant domain.BankVariant
}

// AddQuestion inserts a question for a week. Checks run in order: input
// presence, answer arity, week range, duplicate text, weekly capacity.
// The answers slice carries the wrong answers first and the correct
// answer last. The duplicate and capacity checks share a transaction
// with the insert.
func (s *QuestionBankService) AddQuestion(ctx context.Context, text string, answers []string, week int) error {
	if text == "" || answers == nil || week == 0 {
		return ErrInvalidInput
	}
	for _, a := range answers {
		if a == "" {
			return ErrInvalidInput
		}
	}
	if len(answers) != s.Variant.WrongAnswers+1 {
		return ErrInvalidArity
	}
	if week < domain.MinWeek || week > domain.MaxWeek {
		return ErrInvalidWeek
	}

	q := domain.Question{
		Text:         text,
		WrongAnswers: answers[:len(answers)-1],
		Correct:      answers[len(answers)-1],
		Week:         week,
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		qs := tx.Questions(s.Variant)

		// Question text is unique across the whole bank, not per week.
		exists, err := qs.TextExists(ctx, text)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateQuestion
		}

		count, err := qs.CountForWeek(ctx, week)
		if err != nil {
			return err
		}
		if count >= domain.BankCapacity {
			return ErrBankFull
		}

		err = qs.Create(ctx, q)
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrDuplicateQuestion
		}
		return err
	})
}

// GetQuestion fetches a single question by its text and week. Missing
// inputs read as a miss, the same answer as an unknown question.
func (s *QuestionBankService) GetQuestion(ctx context.Context, text string, week int) (domain.Question, error) {
	if text == "" || week == 0 {
		return domain.Question{}, store.ErrNotFound
	}
	return s.Store.Questions(s.Variant).GetByTextAndWeek(ctx, text, week)
}

// QuestionsForWeek returns the week's questions in insertion order. A
// missing or out-of-range week, and an empty week, all report
// store.ErrNotFound rather than an empty list, so callers can treat
// "no quiz this week" uniformly.
func (s *QuestionBankService) QuestionsForWeek(ctx context.Context, week int) ([]domain.Question, error) {
	if week < domain.MinWeek || week > domain.MaxWeek {
		return nil, store.ErrNotFound
	}
	qs, err := s.Store.Questions(s.Variant).ListByWeek(ctx, week)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, store.ErrNotFound
	}
	return qs, nil
}

// ResetWeek deletes every question for a week. It reports false only
// when the week is missing; any provided week succeeds, even when
// nothing matched.
func (s *QuestionBankService) ResetWeek(ctx context.Context, week int) (bool, error) {
	if week == 0 {
		return false, nil
	}
	if err := s.Store.Questions(s.Variant).DeleteWeek(ctx, week); err != nil {
		return false, err
	}
	return true, nil
}

// CheckAnswer reports whether the answer is the stored correct answer
// for the question. Missing inputs and unknown questions are simply
// wrong, never errors.
func (s *QuestionBankService) CheckAnswer(ctx context.Context, text, answer string) (bool, error) {
	if text == "" || answer == "" {
		return false, nil
	}
	return s.Store.Questions(s.Variant).IsCorrect(ctx, text, answer)
}
