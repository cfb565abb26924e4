package grading

import (
	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
)

// DropReason explains why a submitted entry was excluded from grading.
// Drops are informational, never errors: the engine grades what is valid
// and silently excludes the rest.
type DropReason string

const (
	// DropDuplicateQuestion — a later entry for a question already seen in
	// this payload. Only the first selection per question counts, so a
	// client resubmitting the same question cannot multiply its score.
	DropDuplicateQuestion DropReason = "duplicate_question"

	// DropForeignQuestion — the question does not belong to this quiz.
	DropForeignQuestion DropReason = "foreign_question"

	// DropForeignOption — the option does not belong to the question it was
	// submitted for (option spoofing). The question survives as unanswered.
	DropForeignOption DropReason = "foreign_option"
)

// ValidatedAnswer is one cleaned (question, option?) pair. OptionID is nil
// for an explicit skip or a spoofed option.
type ValidatedAnswer struct {
	QuestionID uuid.UUID
	OptionID   *uuid.UUID
}

// DroppedAnswer records an excluded entry for informational logging.
type DroppedAnswer struct {
	QuestionID uuid.UUID
	OptionID   *uuid.UUID
	Reason     DropReason
}

// ValidateSubmission cross-checks a raw answer payload against the catalog
// snapshot and returns the ordered, deduplicated, validated mapping.
//
// Scanning the input in order:
//  1. only the first occurrence of each question_id is kept;
//  2. question_ids not in the snapshot are discarded;
//  3. a selected option not owned by its question is discarded — the
//     question is then recorded as unanswered, not rejected.
//
// Catalog questions absent from the payload are simply not emitted; the
// scorer treats them as "no answer".
func ValidateSubmission(snap *CatalogSnapshot, answers []model.SubmittedAnswer) ([]ValidatedAnswer, []DroppedAnswer) {
	validated := make([]ValidatedAnswer, 0, len(answers))
	var dropped []DroppedAnswer
	seen := make(map[uuid.UUID]struct{}, len(answers))

	for _, a := range answers {
		if _, dup := seen[a.QuestionID]; dup {
			dropped = append(dropped, DroppedAnswer{a.QuestionID, a.OptionID, DropDuplicateQuestion})
			continue
		}

		if !snap.HasQuestion(a.QuestionID) {
			dropped = append(dropped, DroppedAnswer{a.QuestionID, a.OptionID, DropForeignQuestion})
			continue
		}
		seen[a.QuestionID] = struct{}{}

		selected := a.OptionID
		if selected != nil {
			owner, exists := snap.OptionOwner(*selected)
			if !exists || owner != a.QuestionID {
				dropped = append(dropped, DroppedAnswer{a.QuestionID, a.OptionID, DropForeignOption})
				selected = nil
			}
		}

		validated = append(validated, ValidatedAnswer{QuestionID: a.QuestionID, OptionID: selected})
	}

	return validated, dropped
}
