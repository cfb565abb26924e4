package grading

import (
	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/shopspring/decimal"
)

// Outcome is the result of scoring one validated submission.
type Outcome struct {
	// TotalScore is the decimal sum of per-question contributions. It is
	// not clamped and may be negative; callers wanting a floor clamp at
	// presentation time.
	TotalScore decimal.Decimal

	// PerQuestion covers every catalog question in display order, including
	// unanswered ones.
	PerQuestion []model.QuestionReview
}

// ScoreSubmission applies positive/negative marking to a validated answer
// mapping. Per question: no answer contributes 0, a correct selection
// contributes +marks_positive, a wrong selection contributes
// −marks_negative.
func ScoreSubmission(snap *CatalogSnapshot, validated []ValidatedAnswer) Outcome {
	selections := make(map[uuid.UUID]*uuid.UUID, len(validated))
	for _, v := range validated {
		selections[v.QuestionID] = v.OptionID
	}

	total := decimal.Zero
	reviews := make([]model.QuestionReview, 0, len(snap.QuestionOrder))

	for _, qid := range snap.QuestionOrder {
		info := snap.Questions[qid]
		review := model.QuestionReview{
			QuestionID: qid,
			ScoreDelta: decimal.Zero,
		}

		if optID, ok := selections[qid]; ok && optID != nil {
			review.Answered = true
			review.SelectedOptionID = optID

			if snap.Options[*optID].IsCorrect {
				review.IsCorrect = true
				review.ScoreDelta = info.MarksPositive
			} else {
				review.ScoreDelta = info.MarksNegative.Neg()
			}
			total = total.Add(review.ScoreDelta)
		}

		reviews = append(reviews, review)
	}

	return Outcome{TotalScore: total, PerQuestion: reviews}
}
