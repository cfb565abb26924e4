// Package grading holds the pure core of the attempt engine: the catalog
// snapshot shape, the submission validator, and the scoring rules. Nothing
// in this package touches storage or the network — identical inputs always
// produce identical outputs.
package grading

import (
	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/shopspring/decimal"
)

// CatalogSnapshot is the authoritative shape of one quiz at the moment of
// submission: which questions belong to it, which options belong to which
// question, mark values, and correctness flags. Built by the catalog reader
// in one read round; a fresh snapshot is taken per submission.
type CatalogSnapshot struct {
	Quiz model.Quiz

	// QuestionOrder lists question IDs in display order.
	QuestionOrder []uuid.UUID

	Questions map[uuid.UUID]QuestionInfo
	Options   map[uuid.UUID]OptionInfo
}

// QuestionInfo carries the mark values needed for grading.
type QuestionInfo struct {
	MarksPositive decimal.Decimal
	MarksNegative decimal.Decimal
}

// OptionInfo ties an option to its owning question. IsCorrect is read here,
// internally, and never exposed on the student-facing side of a request.
type OptionInfo struct {
	QuestionID uuid.UUID
	IsCorrect  bool
}

// HasQuestion reports whether the question belongs to this quiz.
func (s *CatalogSnapshot) HasQuestion(id uuid.UUID) bool {
	_, ok := s.Questions[id]
	return ok
}

// OptionOwner returns the owning question of an option, if the option exists
// in this quiz at all.
func (s *CatalogSnapshot) OptionOwner(id uuid.UUID) (uuid.UUID, bool) {
	opt, ok := s.Options[id]
	if !ok {
		return uuid.Nil, false
	}
	return opt.QuestionID, true
}
