package grading

import (
	"testing"

	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/shopspring/decimal"
)

// newSnapshot builds a two-question snapshot:
//
//	Q1 (+1.00 / −0.25): optA (correct), optB
//	Q2 (+2.00 / −0.50): optC (correct), optD
func newSnapshot() (*CatalogSnapshot, map[string]uuid.UUID) {
	ids := map[string]uuid.UUID{
		"q1": uuid.New(), "q2": uuid.New(),
		"optA": uuid.New(), "optB": uuid.New(),
		"optC": uuid.New(), "optD": uuid.New(),
	}

	snap := &CatalogSnapshot{
		QuestionOrder: []uuid.UUID{ids["q1"], ids["q2"]},
		Questions: map[uuid.UUID]QuestionInfo{
			ids["q1"]: {MarksPositive: decimal.RequireFromString("1.00"), MarksNegative: decimal.RequireFromString("0.25")},
			ids["q2"]: {MarksPositive: decimal.RequireFromString("2.00"), MarksNegative: decimal.RequireFromString("0.50")},
		},
		Options: map[uuid.UUID]OptionInfo{
			ids["optA"]: {QuestionID: ids["q1"], IsCorrect: true},
			ids["optB"]: {QuestionID: ids["q1"]},
			ids["optC"]: {QuestionID: ids["q2"], IsCorrect: true},
			ids["optD"]: {QuestionID: ids["q2"]},
		},
	}
	return snap, ids
}

func answer(q uuid.UUID, o *uuid.UUID) model.SubmittedAnswer {
	return model.SubmittedAnswer{QuestionID: q, OptionID: o}
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestValidateSubmission_DuplicateQuestionKeepsFirst(t *testing.T) {
	snap, ids := newSnapshot()

	validated, dropped := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(ids["q1"], ptr(ids["optA"])),
		answer(ids["q1"], ptr(ids["optB"])),
	})

	if len(validated) != 1 {
		t.Fatalf("validated = %d entries, want 1", len(validated))
	}
	if validated[0].OptionID == nil || *validated[0].OptionID != ids["optA"] {
		t.Errorf("kept option = %v, want first occurrence optA", validated[0].OptionID)
	}
	if len(dropped) != 1 || dropped[0].Reason != DropDuplicateQuestion {
		t.Errorf("dropped = %+v, want one duplicate_question drop", dropped)
	}
}

func TestValidateSubmission_ForeignQuestionDiscarded(t *testing.T) {
	snap, ids := newSnapshot()
	foreignQ := uuid.New() // belongs to some other quiz

	validated, dropped := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(foreignQ, ptr(ids["optA"])),
		answer(ids["q2"], ptr(ids["optC"])),
	})

	if len(validated) != 1 || validated[0].QuestionID != ids["q2"] {
		t.Fatalf("validated = %+v, want only q2", validated)
	}
	if len(dropped) != 1 || dropped[0].Reason != DropForeignQuestion {
		t.Errorf("dropped = %+v, want one foreign_question drop", dropped)
	}
}

func TestValidateSubmission_SpoofedOptionBecomesNoAnswer(t *testing.T) {
	snap, ids := newSnapshot()

	// optA is correct — for q1. Submitting it as the answer for q2 must be
	// treated as "no answer" for q2, not a selection.
	validated, dropped := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(ids["q2"], ptr(ids["optA"])),
	})

	if len(validated) != 1 {
		t.Fatalf("validated = %d entries, want 1", len(validated))
	}
	if validated[0].OptionID != nil {
		t.Errorf("spoofed option survived as a selection: %v", *validated[0].OptionID)
	}
	if len(dropped) != 1 || dropped[0].Reason != DropForeignOption {
		t.Errorf("dropped = %+v, want one foreign_option drop", dropped)
	}
}

func TestValidateSubmission_UnknownOptionIDBecomesNoAnswer(t *testing.T) {
	snap, ids := newSnapshot()
	ghost := uuid.New()

	validated, _ := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(ids["q1"], &ghost),
	})

	if len(validated) != 1 || validated[0].OptionID != nil {
		t.Fatalf("validated = %+v, want q1 recorded as unanswered", validated)
	}
}

func TestValidateSubmission_ExplicitSkipIsKept(t *testing.T) {
	snap, ids := newSnapshot()

	validated, dropped := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(ids["q1"], nil),
	})

	if len(dropped) != 0 {
		t.Fatalf("dropped = %+v, want none", dropped)
	}
	if len(validated) != 1 || validated[0].OptionID != nil {
		t.Fatalf("validated = %+v, want one unanswered q1", validated)
	}
}

func TestValidateSubmission_Deterministic(t *testing.T) {
	snap, ids := newSnapshot()
	payload := []model.SubmittedAnswer{
		answer(ids["q2"], ptr(ids["optD"])),
		answer(ids["q1"], ptr(ids["optA"])),
		answer(ids["q2"], ptr(ids["optC"])),
	}

	first, _ := ValidateSubmission(snap, payload)
	second, _ := ValidateSubmission(snap, payload)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].QuestionID != second[i].QuestionID {
			t.Errorf("entry %d ordering differs", i)
		}
	}
	// Payload order is preserved: q2 first, then q1.
	if first[0].QuestionID != ids["q2"] || first[1].QuestionID != ids["q1"] {
		t.Errorf("output order = %+v, want payload order q2,q1", first)
	}
}
