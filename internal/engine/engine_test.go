package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jeylanithiam/ResumeMash/internal/ml"
	"github.com/jeylanithiam/ResumeMash/internal/models"

	"go.uber.org/zap"
)

// fakeStore is an in-memory LabelStore + BundleStore.
type fakeStore struct {
	resumes map[string]*models.Resume
	swipes  []models.Swipe
	seen    map[string]bool
	bundles map[string]*models.ModelBundle
	saves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resumes: make(map[string]*models.Resume),
		seen:    make(map[string]bool),
		bundles: make(map[string]*models.ModelBundle),
	}
}

func (f *fakeStore) addResume(id, field, text string) {
	f.resumes[id] = &models.Resume{ID: id, CandidateID: 1, Text: text, JobField: field}
}

func (f *fakeStore) GetResume(_ context.Context, resumeID string) (*models.Resume, error) {
	return f.resumes[resumeID], nil
}

func (f *fakeStore) UnlabeledResumeIDs(_ context.Context, field string, recruiterID int64) ([]string, error) {
	var ids []string
	for id, r := range f.resumes {
		if r.JobField != field {
			continue
		}
		if f.seen[swipeKey(id, recruiterID)] {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) RecordSwipe(_ context.Context, resumeID string, recruiterID int64, label int) (bool, error) {
	if _, ok := f.resumes[resumeID]; !ok {
		return false, ErrResumeNotFound
	}
	key := swipeKey(resumeID, recruiterID)
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	f.swipes = append(f.swipes, models.Swipe{
		ID:          int64(len(f.swipes) + 1),
		ResumeID:    resumeID,
		RecruiterID: recruiterID,
		Label:       label,
	})
	return true, nil
}

func (f *fakeStore) LabelsForField(_ context.Context, field string) ([]models.TrainingExample, error) {
	var examples []models.TrainingExample
	for _, sw := range f.swipes {
		r := f.resumes[sw.ResumeID]
		if r != nil && r.JobField == field {
			examples = append(examples, models.TrainingExample{Text: r.Text, Label: sw.Label})
		}
	}
	return examples, nil
}

func (f *fakeStore) CountLabels(_ context.Context, field string) (int, error) {
	count := 0
	for _, sw := range f.swipes {
		r := f.resumes[sw.ResumeID]
		if r != nil && r.JobField == field {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) SaveBundle(_ context.Context, bundle *models.ModelBundle) error {
	stored := *bundle
	f.bundles[bundle.JobField] = &stored
	f.saves++
	return nil
}

func (f *fakeStore) GetBundle(_ context.Context, field string) (*models.ModelBundle, error) {
	return f.bundles[field], nil
}

func swipeKey(resumeID string, recruiterID int64) string {
	return fmt.Sprintf("%s|%d", resumeID, recruiterID)
}

// fakeSessions is an in-memory SessionStore. Values are copied on save and
// load to mimic serialization through Redis.
type fakeSessions struct {
	m map[string]models.SwipeSession
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{m: make(map[string]models.SwipeSession)}
}

func (f *fakeSessions) key(recruiterID int64, field string) string {
	return fmt.Sprintf("%d|%s", recruiterID, field)
}

func (f *fakeSessions) GetSession(_ context.Context, recruiterID int64, field string) (*models.SwipeSession, error) {
	s, ok := f.m[f.key(recruiterID, field)]
	if !ok {
		return nil, nil
	}
	copied := s
	copied.Order = append([]string{}, s.Order...)
	return &copied, nil
}

func (f *fakeSessions) SaveSession(_ context.Context, session *models.SwipeSession) error {
	copied := *session
	copied.Order = append([]string{}, session.Order...)
	f.m[f.key(session.RecruiterID, session.JobField)] = copied
	return nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, recruiterID int64, field string) error {
	delete(f.m, f.key(recruiterID, field))
	return nil
}

func newTestEngine(store *fakeStore) *Engine {
	return New(store, store, newFakeSessions(), 10, zap.NewNop())
}

func TestQueueServesEachResumeOnceThenExhausts(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 5; i++ {
		store.addResume(fmt.Sprintf("r%d", i), models.FieldSoftware, "golang engineer")
	}
	eng := newTestEngine(store)
	ctx := context.Background()

	session, err := eng.StartSession(ctx, 7, models.FieldSoftware)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.Remaining() != 5 {
		t.Fatalf("expected 5 resumes in queue, got %d", session.Remaining())
	}

	served := make(map[string]bool)
	for i := 0; i < 5; i++ {
		id, err := eng.Next(ctx, 7, models.FieldSoftware)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if served[id] {
			t.Fatalf("resume %s served twice", id)
		}
		served[id] = true
	}

	if _, err := eng.Next(ctx, 7, models.FieldSoftware); !errors.Is(err, ErrQueueExhausted) {
		t.Fatalf("expected ErrQueueExhausted, got %v", err)
	}
	// exhaustion is terminal and idempotent
	if _, err := eng.Next(ctx, 7, models.FieldSoftware); !errors.Is(err, ErrQueueExhausted) {
		t.Fatalf("expected ErrQueueExhausted on repeat call, got %v", err)
	}
}

func TestQueueExcludesOnlyOwnLabels(t *testing.T) {
	store := newFakeStore()
	store.addResume("a", models.FieldSoftware, "golang engineer")
	store.addResume("b", models.FieldSoftware, "java engineer")
	eng := newTestEngine(store)
	ctx := context.Background()

	// recruiter 1 labeled "a"; recruiter 2 labeled "b"
	if _, _, err := eng.RecordLabel(ctx, "a", 1, models.LabelMash); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, _, err := eng.RecordLabel(ctx, "b", 2, models.LabelPass); err != nil {
		t.Fatalf("record: %v", err)
	}

	session, err := eng.StartSession(ctx, 1, models.FieldSoftware)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.Remaining() != 1 || session.Order[0] != "b" {
		t.Fatalf("expected queue [b] for recruiter 1, got %v", session.Order)
	}
}

func TestResetRecomputesWithCursorZero(t *testing.T) {
	store := newFakeStore()
	store.addResume("a", models.FieldSoftware, "golang engineer")
	store.addResume("b", models.FieldSoftware, "java engineer")
	store.addResume("c", models.FieldSoftware, "rust engineer")
	eng := newTestEngine(store)
	ctx := context.Background()

	if _, err := eng.StartSession(ctx, 3, models.FieldSoftware); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := eng.Next(ctx, 3, models.FieldSoftware); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := eng.Next(ctx, 3, models.FieldSoftware); err != nil {
		t.Fatalf("next: %v", err)
	}

	session, err := eng.Reset(ctx, 3, models.FieldSoftware)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	if session.Cursor != 0 {
		t.Fatalf("expected cursor 0 after reset, got %d", session.Cursor)
	}
	// no labels recorded, so the same ids reappear (possibly reordered)
	if len(session.Order) != 3 {
		t.Fatalf("expected 3 resumes after reset, got %d", len(session.Order))
	}
}

func TestRecordLabelUnknownResume(t *testing.T) {
	store := newFakeStore()
	store.addResume("a", models.FieldSoftware, "golang engineer")
	eng := newTestEngine(store)
	ctx := context.Background()

	_, _, err := eng.RecordLabel(ctx, "missing", 1, models.LabelMash)
	if !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}

	count, err := store.CountLabels(ctx, models.FieldSoftware)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no labels written, got %d", count)
	}
}

func TestDuplicateSwipeIsNotRecorded(t *testing.T) {
	store := newFakeStore()
	store.addResume("a", models.FieldSoftware, "golang engineer")
	eng := newTestEngine(store)
	ctx := context.Background()

	recorded, _, err := eng.RecordLabel(ctx, "a", 1, models.LabelMash)
	if err != nil || !recorded {
		t.Fatalf("first swipe: recorded=%v err=%v", recorded, err)
	}

	recorded, _, err = eng.RecordLabel(ctx, "a", 1, models.LabelPass)
	if err != nil {
		t.Fatalf("second swipe: %v", err)
	}
	if recorded {
		t.Fatalf("expected duplicate swipe to be skipped")
	}

	count, _ := store.CountLabels(ctx, models.FieldSoftware)
	if count != 1 {
		t.Fatalf("expected 1 label, got %d", count)
	}
}

// seedLabels records n alternating mash/pass labels from distinct
// recruiters across the two resumes.
func seedLabels(t *testing.T, eng *Engine, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		resumeID := "strong"
		label := models.LabelMash
		if i%2 == 1 {
			resumeID = "weak"
			label = models.LabelPass
		}
		if _, _, err := eng.RecordLabel(ctx, resumeID, int64(100+i), label); err != nil {
			t.Fatalf("seed label %d: %v", i, err)
		}
	}
}

func TestTenthLabelTriggersExactlyOneRetrain(t *testing.T) {
	store := newFakeStore()
	store.addResume("strong", models.FieldSoftware, "led kubernetes migration built streaming pipeline")
	store.addResume("weak", models.FieldSoftware, "responsible for various duties")
	eng := newTestEngine(store)
	ctx := context.Background()

	seedLabels(t, eng, 9)
	if store.saves != 0 {
		t.Fatalf("expected no retrain before the batch fills, got %d", store.saves)
	}

	recorded, retrained, err := eng.RecordLabel(ctx, "strong", 500, models.LabelMash)
	if err != nil {
		t.Fatalf("tenth label: %v", err)
	}
	if !recorded || !retrained {
		t.Fatalf("expected tenth label to record and retrain, got recorded=%v retrained=%v", recorded, retrained)
	}

	if store.saves != 1 {
		t.Fatalf("expected exactly one bundle save, got %d", store.saves)
	}
	bundle := store.bundles[models.FieldSoftware]
	if bundle == nil {
		t.Fatalf("expected a bundle for software")
	}
	if bundle.LabelCount != 10 {
		t.Fatalf("expected bundle trained on 10 labels, got %d", bundle.LabelCount)
	}
}

func TestRetrainSkippedWithoutTwoClasses(t *testing.T) {
	store := newFakeStore()
	store.addResume("strong", models.FieldFinance, "financial modeling valuation excel")
	eng := newTestEngine(store)
	ctx := context.Background()

	// ten recruiters, all mash: the batch fills but training must refuse
	for i := 0; i < 10; i++ {
		recorded, retrained, err := eng.RecordLabel(ctx, "strong", int64(i+1), models.LabelMash)
		if err != nil {
			t.Fatalf("label %d: %v", i, err)
		}
		if !recorded {
			t.Fatalf("label %d not recorded", i)
		}
		if retrained {
			t.Fatalf("label %d retrained with a single class present", i)
		}
	}

	if store.saves != 0 {
		t.Fatalf("expected no bundle saved, got %d saves", store.saves)
	}

	if err := eng.Train(ctx, models.FieldFinance); !errors.Is(err, ErrInsufficientDiversity) {
		t.Fatalf("expected ErrInsufficientDiversity, got %v", err)
	}
	if store.bundles[models.FieldFinance] != nil {
		t.Fatalf("expected no bundle for finance")
	}
}

func TestScoreWithoutModel(t *testing.T) {
	store := newFakeStore()
	eng := newTestEngine(store)

	_, err := eng.Score(context.Background(), "any resume text", models.FieldSoftware)
	if !errors.Is(err, ErrNoModel) {
		t.Fatalf("expected ErrNoModel, got %v", err)
	}
}

func TestScoreIsDeterministicAgainstOneBundle(t *testing.T) {
	store := newFakeStore()
	store.addResume("strong", models.FieldSoftware, "led kubernetes migration built streaming pipeline")
	store.addResume("weak", models.FieldSoftware, "responsible for various duties")
	eng := newTestEngine(store)
	ctx := context.Background()

	seedLabels(t, eng, 10)

	text := "built streaming pipeline on kubernetes"
	first, err := eng.Score(ctx, text, models.FieldSoftware)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if first < 0 || first > 1 {
		t.Fatalf("score outside [0,1]: %v", first)
	}

	second, err := eng.Score(ctx, text, models.FieldSoftware)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if first != second {
		t.Fatalf("same text scored differently against one bundle: %v vs %v", first, second)
	}
}

func TestScoreLoadsStoredBundleOnColdStart(t *testing.T) {
	store := newFakeStore()
	bundle := ml.Train(
		[]string{"led kubernetes migration", "responsible for duties"},
		[]int{1, 0},
	)
	data, err := bundle.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	store.bundles[models.FieldSoftware] = &models.ModelBundle{
		JobField:   models.FieldSoftware,
		Data:       models.RawJSON(data),
		LabelCount: bundle.LabelCount,
	}

	// fresh engine with an empty in-memory slot
	eng := newTestEngine(store)

	score, err := eng.Score(context.Background(), "led kubernetes migration", models.FieldSoftware)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != bundle.Score("led kubernetes migration") {
		t.Fatalf("cold-start score differs from the stored bundle's score")
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		p    float64
		want Tier
	}{
		{0.80, TierTop},
		{0.79999, TierMiddle},
		{0.95, TierTop},
		{0.50, TierMiddle},
		{0.49999, TierLow},
		{0.0, TierLow},
		{1.0, TierTop},
	}

	for _, tc := range cases {
		if got := TierFor(tc.p); got != tc.want {
			t.Fatalf("TierFor(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}
