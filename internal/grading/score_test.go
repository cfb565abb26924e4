package grading

import (
	"testing"

	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/shopspring/decimal"
)

func TestScoreSubmission_PositiveAndNegativeMarking(t *testing.T) {
	snap, ids := newSnapshot()

	// Q1 → optA (correct, +1.00), Q2 → optD (wrong, −0.50).
	validated, _ := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(ids["q1"], ptr(ids["optA"])),
		answer(ids["q2"], ptr(ids["optD"])),
	})

	out := ScoreSubmission(snap, validated)

	want := decimal.RequireFromString("0.5")
	if !out.TotalScore.Equal(want) {
		t.Errorf("TotalScore = %s, want %s", out.TotalScore, want)
	}

	if len(out.PerQuestion) != 2 {
		t.Fatalf("PerQuestion = %d entries, want 2", len(out.PerQuestion))
	}
	if !out.PerQuestion[0].IsCorrect || out.PerQuestion[1].IsCorrect {
		t.Errorf("correctness breakdown = %+v, want q1 correct, q2 wrong", out.PerQuestion)
	}
}

func TestScoreSubmission_NoAnswerContributesZero(t *testing.T) {
	snap, ids := newSnapshot()

	// Only Q1 answered (wrongly); Q2 untouched — it must contribute exactly
	// 0, never a penalty.
	validated, _ := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(ids["q1"], ptr(ids["optB"])),
	})

	out := ScoreSubmission(snap, validated)

	want := decimal.RequireFromString("-0.25")
	if !out.TotalScore.Equal(want) {
		t.Errorf("TotalScore = %s, want %s", out.TotalScore, want)
	}

	q2 := out.PerQuestion[1]
	if q2.Answered || !q2.ScoreDelta.IsZero() {
		t.Errorf("unanswered q2 review = %+v, want zero contribution", q2)
	}
}

func TestScoreSubmission_TotalMayGoNegative(t *testing.T) {
	snap, ids := newSnapshot()

	validated, _ := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(ids["q1"], ptr(ids["optB"])),
		answer(ids["q2"], ptr(ids["optD"])),
	})

	out := ScoreSubmission(snap, validated)

	// −0.25 − 0.50: no floor is applied here.
	want := decimal.RequireFromString("-0.75")
	if !out.TotalScore.Equal(want) {
		t.Errorf("TotalScore = %s, want %s (unclamped)", out.TotalScore, want)
	}
}

func TestScoreSubmission_ExplicitSkipScoresZero(t *testing.T) {
	snap, ids := newSnapshot()

	validated, _ := ValidateSubmission(snap, []model.SubmittedAnswer{
		answer(ids["q1"], nil),
		answer(ids["q2"], ptr(ids["optC"])),
	})

	out := ScoreSubmission(snap, validated)

	want := decimal.RequireFromString("2.00")
	if !out.TotalScore.Equal(want) {
		t.Errorf("TotalScore = %s, want %s", out.TotalScore, want)
	}
	if out.PerQuestion[0].Answered {
		t.Errorf("skipped q1 marked as answered")
	}
}

func TestScoreSubmission_EmptySubmission(t *testing.T) {
	snap, _ := newSnapshot()

	out := ScoreSubmission(snap, nil)

	if !out.TotalScore.IsZero() {
		t.Errorf("TotalScore = %s, want 0", out.TotalScore)
	}
	if len(out.PerQuestion) != 2 {
		t.Errorf("PerQuestion = %d entries, want full catalog coverage", len(out.PerQuestion))
	}
}
