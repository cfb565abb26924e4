package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qubitgyan/qubitgyan-backend/internal/grading"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	snap *grading.CatalogSnapshot
	err  error
}

func (f *fakeCatalog) GetCatalogSnapshot(ctx context.Context, quizID uuid.UUID) (*grading.CatalogSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

// fakeStore mimics the atomic attempt store: a fixed number of slots per
// test, handed out under a mutex, finalizing the attempt on success.
type fakeStore struct {
	mu        sync.Mutex
	slots     int
	used      int
	err       error
	leaveOpen bool
	lastScore decimal.Decimal
	lastResps []model.QuestionResponse
}

func (f *fakeStore) CreateFinalized(ctx context.Context, a *model.QuizAttempt, score decimal.Decimal, responses []model.QuestionResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.used >= f.slots {
		return repository.ErrAttemptLimitExceeded
	}
	f.used++
	f.lastScore = score
	f.lastResps = responses

	now := time.Now()
	a.ID = uuid.New()
	a.AttemptNumber = f.used
	a.StartedAt = now
	if !f.leaveOpen {
		a.EndedAt = &now
		a.TotalScore = &score
		a.IsCompleted = true
	}
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []model.ProgressMessage
	err   error
}

func (f *fakeNotifier) NotifyCompleted(ctx context.Context, userID, resourceID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, model.ProgressMessage{UserID: userID, ResourceID: resourceID})
	return nil
}

// twoQuestionSnapshot builds a catalog with Q1 (+1.00/−0.25, correct A) and
// Q2 (+2.00/−0.50, correct C).
func twoQuestionSnapshot(t *testing.T) (*grading.CatalogSnapshot, map[string]uuid.UUID) {
	t.Helper()

	ids := map[string]uuid.UUID{
		"q1": uuid.New(), "q2": uuid.New(),
		"a": uuid.New(), "b": uuid.New(),
		"c": uuid.New(), "d": uuid.New(),
	}
	dec := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("parse decimal %q: %v", s, err)
		}
		return d
	}

	snap := &grading.CatalogSnapshot{
		Quiz: model.Quiz{
			ID:         uuid.New(),
			ResourceID: 42,
			Title:      "Thermodynamics basics",
		},
		QuestionOrder: []uuid.UUID{ids["q1"], ids["q2"]},
		Questions: map[uuid.UUID]grading.QuestionInfo{
			ids["q1"]: {MarksPositive: dec("1.00"), MarksNegative: dec("0.25")},
			ids["q2"]: {MarksPositive: dec("2.00"), MarksNegative: dec("0.50")},
		},
		Options: map[uuid.UUID]grading.OptionInfo{
			ids["a"]: {QuestionID: ids["q1"], IsCorrect: true},
			ids["b"]: {QuestionID: ids["q1"]},
			ids["c"]: {QuestionID: ids["q2"], IsCorrect: true},
			ids["d"]: {QuestionID: ids["q2"]},
		},
	}
	return snap, ids
}

func newService(catalog CatalogReader, store AttemptStore, notifier ProgressNotifier) *SubmissionService {
	return NewSubmissionService(catalog, store, notifier, 5*time.Second, zerolog.Nop())
}

func TestSubmitGradesAndPersists(t *testing.T) {
	snap, ids := twoQuestionSnapshot(t)
	store := &fakeStore{slots: model.MaxAttemptsPerQuiz}
	notifier := &fakeNotifier{}
	svc := newService(&fakeCatalog{snap: snap}, store, notifier)

	optA, optD := ids["a"], ids["d"]
	req := &model.SubmitAttemptRequest{Answers: []model.SubmittedAnswer{
		{QuestionID: ids["q1"], OptionID: &optA}, // correct: +1.00
		{QuestionID: ids["q2"], OptionID: &optD}, // wrong:   −0.50
	}}

	result, err := svc.Submit(context.Background(), 7, snap.Quiz.ID, req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if want := "0.5"; result.TotalScore.String() != want {
		t.Errorf("total score = %s, want %s", result.TotalScore, want)
	}
	if !result.IsCompleted {
		t.Error("result not marked completed")
	}
	if result.AttemptNumber != 1 {
		t.Errorf("attempt number = %d, want 1", result.AttemptNumber)
	}
	if len(result.PerQuestion) != 2 {
		t.Fatalf("per-question reviews = %d, want 2", len(result.PerQuestion))
	}
	if len(store.lastResps) != 2 {
		t.Errorf("persisted responses = %d, want 2", len(store.lastResps))
	}

	if len(notifier.calls) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.calls))
	}
	if got := notifier.calls[0]; got.UserID != 7 || got.ResourceID != 42 {
		t.Errorf("notification = %+v, want user 7 resource 42", got)
	}
}

func TestSubmitSpoofedOptionPersistsAsUnanswered(t *testing.T) {
	snap, ids := twoQuestionSnapshot(t)
	store := &fakeStore{slots: 1}
	svc := newService(&fakeCatalog{snap: snap}, store, &fakeNotifier{})

	optC := ids["c"] // belongs to q2, submitted for q1
	req := &model.SubmitAttemptRequest{Answers: []model.SubmittedAnswer{
		{QuestionID: ids["q1"], OptionID: &optC},
	}}

	result, err := svc.Submit(context.Background(), 7, snap.Quiz.ID, req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !result.TotalScore.IsZero() {
		t.Errorf("total score = %s, want 0", result.TotalScore)
	}
	if len(store.lastResps) != 1 {
		t.Fatalf("persisted responses = %d, want 1", len(store.lastResps))
	}
	if store.lastResps[0].SelectedOptionID != nil {
		t.Error("spoofed option was persisted instead of nil")
	}
}

func TestSubmitUnknownQuizPassesThrough(t *testing.T) {
	svc := newService(&fakeCatalog{err: repository.ErrQuizNotFound}, &fakeStore{slots: 1}, &fakeNotifier{})

	_, err := svc.Submit(context.Background(), 7, uuid.New(), &model.SubmitAttemptRequest{})
	if !errors.Is(err, repository.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestSubmitAttemptLimitNoNotification(t *testing.T) {
	snap, _ := twoQuestionSnapshot(t)
	notifier := &fakeNotifier{}
	svc := newService(&fakeCatalog{snap: snap}, &fakeStore{slots: 0}, notifier)

	_, err := svc.Submit(context.Background(), 7, snap.Quiz.ID, &model.SubmitAttemptRequest{})
	if !errors.Is(err, repository.ErrAttemptLimitExceeded) {
		t.Fatalf("err = %v, want ErrAttemptLimitExceeded", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("notifications = %d, want 0", len(notifier.calls))
	}
}

func TestSubmitPersistenceFailureNoNotification(t *testing.T) {
	snap, _ := twoQuestionSnapshot(t)
	storeErr := errors.New("connection reset")
	notifier := &fakeNotifier{}
	svc := newService(&fakeCatalog{snap: snap}, &fakeStore{slots: 1, err: storeErr}, notifier)

	_, err := svc.Submit(context.Background(), 7, snap.Quiz.ID, &model.SubmitAttemptRequest{})
	if !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want store error", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("notifications = %d, want 0", len(notifier.calls))
	}
}

func TestSubmitNotificationFailureDoesNotFailAttempt(t *testing.T) {
	snap, _ := twoQuestionSnapshot(t)
	svc := newService(&fakeCatalog{snap: snap}, &fakeStore{slots: 1}, &fakeNotifier{err: errors.New("queue down")})

	result, err := svc.Submit(context.Background(), 7, snap.Quiz.ID, &model.SubmitAttemptRequest{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !result.IsCompleted {
		t.Error("attempt not completed despite successful persist")
	}
}

func TestSubmitUnfinalizedAttemptNotNotified(t *testing.T) {
	snap, _ := twoQuestionSnapshot(t)
	notifier := &fakeNotifier{}
	svc := newService(&fakeCatalog{snap: snap}, &fakeStore{slots: 1, leaveOpen: true}, notifier)

	_, err := svc.Submit(context.Background(), 7, snap.Quiz.ID, &model.SubmitAttemptRequest{})
	if err == nil {
		t.Fatal("attempt without an end time was returned as a result")
	}
	if len(notifier.calls) != 0 {
		t.Errorf("notifications = %d, want 0 for an unfinalized attempt", len(notifier.calls))
	}
}

func TestSubmitConcurrentLastSlot(t *testing.T) {
	snap, _ := twoQuestionSnapshot(t)
	store := &fakeStore{slots: 1}
	svc := newService(&fakeCatalog{snap: snap}, store, &fakeNotifier{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), 7, snap.Quiz.ID, &model.SubmitAttemptRequest{})
		}(i)
	}
	wg.Wait()

	var ok, limited int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repository.ErrAttemptLimitExceeded):
			limited++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || limited != 1 {
		t.Errorf("outcomes = %d success / %d limited, want 1/1", ok, limited)
	}
}
