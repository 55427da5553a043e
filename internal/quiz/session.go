package quiz

import (
	"math/rand"

	"github.com/san-kum/periodix/internal/chem"
)

// Result records how one question was answered. Skipped questions have an
// empty Choice.
type Result struct {
	Question Question
	Choice   string
	Correct  bool
}

// Quiz walks through a generated question set one question at a time.
type Quiz struct {
	questions []Question
	results   []Result
	score     int
}

func New(cat *chem.Catalog, s Settings, rng *rand.Rand) *Quiz {
	return FromQuestions(Generate(cat, s, rng))
}

func FromQuestions(qs []Question) *Quiz {
	return &Quiz{questions: qs}
}

func (q *Quiz) Len() int   { return len(q.questions) }
func (q *Quiz) Index() int { return len(q.results) }
func (q *Quiz) Done() bool { return len(q.results) >= len(q.questions) }

// Current is the question awaiting an answer.
func (q *Quiz) Current() (Question, bool) {
	if q.Done() {
		return Question{}, false
	}
	return q.questions[len(q.results)], true
}

// Answer records the option at index i for the current question.
func (q *Quiz) Answer(i int) (Result, error) {
	cur, ok := q.Current()
	if !ok {
		return Result{}, ErrFinished
	}
	if i < 0 || i >= len(cur.Options) {
		return Result{}, ErrInvalidIndex
	}
	r := Result{Question: cur, Choice: cur.Options[i], Correct: cur.Correct(cur.Options[i])}
	if r.Correct {
		q.score++
	}
	q.results = append(q.results, r)
	return r, nil
}

// Skip moves past the current question without scoring it.
func (q *Quiz) Skip() error {
	cur, ok := q.Current()
	if !ok {
		return ErrFinished
	}
	q.results = append(q.results, Result{Question: cur})
	return nil
}

// Score returns correct answers and the question count.
func (q *Quiz) Score() (correct, total int) { return q.score, len(q.questions) }

func (q *Quiz) Percent() int {
	if len(q.questions) == 0 {
		return 0
	}
	return (q.score*200 + len(q.questions)) / (2 * len(q.questions))
}

func (q *Quiz) Results() []Result {
	out := make([]Result, len(q.results))
	copy(out, q.results)
	return out
}

// Feedback is a one-line verdict for the final percentage.
func (q *Quiz) Feedback() string {
	switch p := q.Percent(); {
	case p >= 90:
		return "Excellent! You are a chemistry master!"
	case p >= 70:
		return "Great job! You know your elements well!"
	case p >= 50:
		return "Good effort! Keep studying to improve!"
	default:
		return "Keep practicing and learning about the elements!"
	}
}
