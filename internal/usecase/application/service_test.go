package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"workly/internal/domain/application"
	"workly/internal/domain/job"
	"workly/internal/infrastructure/storage"
	"workly/internal/usecase"
)

type memAppRepo struct {
	apps  map[uuid.UUID]application.Application
	jobs  *memJobRepo
	notes []application.Note
}

func newMemAppRepo(jobs *memJobRepo) *memAppRepo {
	return &memAppRepo{apps: map[uuid.UUID]application.Application{}, jobs: jobs}
}

func (m *memAppRepo) Create(_ context.Context, a application.Application) error {
	for _, existing := range m.apps {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return application.ErrDuplicate
		}
	}
	m.apps[a.ID] = a
	return nil
}

func (m *memAppRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (m *memAppRepo) ExistsForJobAndApplicant(_ context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	for _, a := range m.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAppRepo) UpdateStatusOwned(_ context.Context, id uuid.UUID, status application.Status, recruiterID uuid.UUID) (application.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	j, ok := m.jobs.jobs[a.JobID]
	if !ok || j.PostedBy != recruiterID {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = status
	m.apps[id] = a
	return a, nil
}

func (m *memAppRepo) AddNote(_ context.Context, n application.Note) error {
	m.notes = append(m.notes, n)
	return nil
}

func (m *memAppRepo) ListNotes(_ context.Context, applicationID uuid.UUID) ([]application.Note, error) {
	var out []application.Note
	for _, n := range m.notes {
		if n.ApplicationID == applicationID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memAppRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	var out []application.Application
	for _, a := range m.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppRepo) ListByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]application.WithJob, error) {
	var out []application.WithJob
	for _, a := range m.apps {
		j, ok := m.jobs.jobs[a.JobID]
		if !ok || j.PostedBy != recruiterID {
			continue
		}
		out = append(out, application.WithJob{
			Application: a,
			JobTitle:    j.Title,
			JobCompany:  j.Company,
			JobLocation: j.Location,
			JobCategory: j.Category,
		})
	}
	return out, nil
}

func (m *memAppRepo) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]application.WithJob, error) {
	var out []application.WithJob
	for _, a := range m.apps {
		if a.ApplicantID != applicantID {
			continue
		}
		j := m.jobs.jobs[a.JobID]
		out = append(out, application.WithJob{Application: a, JobTitle: j.Title})
	}
	return out, nil
}

func (m *memAppRepo) CountByStatusForRecruiter(_ context.Context, recruiterID uuid.UUID) (map[application.Status]int, error) {
	counts := map[application.Status]int{}
	for _, a := range m.apps {
		if j, ok := m.jobs.jobs[a.JobID]; ok && j.PostedBy == recruiterID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (m *memAppRepo) CountByApplicant(_ context.Context, applicantID uuid.UUID) (int, error) {
	n := 0
	for _, a := range m.apps {
		if a.ApplicantID == applicantID {
			n++
		}
	}
	return n, nil
}

func (m *memAppRepo) CountByApplicantInWindow(_ context.Context, applicantID uuid.UUID, from, to time.Time) (int, error) {
	n := 0
	for _, a := range m.apps {
		if a.ApplicantID == applicantID && !a.AppliedAt.Before(from) && a.AppliedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

type memJobRepo struct {
	jobs map[uuid.UUID]job.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: map[uuid.UUID]job.Job{}}
}

func (m *memJobRepo) add(posterID uuid.UUID) uuid.UUID {
	id := uuid.New()
	m.jobs[id] = job.Job{ID: id, PostedBy: posterID, Title: "Backend Engineer", Company: "Acme", Location: "Remote", Category: "Engineering"}
	return id
}

func (m *memJobRepo) Create(_ context.Context, j job.Job) error {
	m.jobs[j.ID] = j
	return nil
}

func (m *memJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (m *memJobRepo) ListByPoster(_ context.Context, _ uuid.UUID) ([]job.Job, error) {
	return nil, nil
}

func (m *memJobRepo) ListRecent(_ context.Context, _ int) ([]job.Job, error) {
	return nil, nil
}

func (m *memJobRepo) CountByCategory(_ context.Context) ([]job.CategoryCount, error) {
	return nil, nil
}

// fakeResumeStore records saves and removals instead of touching disk.
type fakeResumeStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeResumeStore) Validate(up storage.Upload) error {
	if !strings.HasSuffix(strings.ToLower(up.FileName), ".pdf") &&
		!strings.HasSuffix(strings.ToLower(up.FileName), ".doc") &&
		!strings.HasSuffix(strings.ToLower(up.FileName), ".docx") {
		return storage.ErrUnsupportedType
	}
	if up.Size > 5<<20 {
		return storage.ErrTooLarge
	}
	return nil
}

func (f *fakeResumeStore) Save(up storage.Upload) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	name := "resume-" + up.FileName
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeResumeStore) Remove(name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func validApply() ApplyInput {
	return ApplyInput{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "+1 555 0100",
		CurrentLocation: "London",
		Experience:      "5 years",
		Education:       "BSc Mathematics",
	}
}

func pdfUpload() *storage.Upload {
	return &storage.Upload{
		FileName:    "cv.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Content:     strings.NewReader("%PDF-1.4"),
	}
}

type fixture struct {
	svc     *Service
	apps    *memAppRepo
	jobs    *memJobRepo
	resumes *fakeResumeStore
}

func newFixture() fixture {
	jobs := newMemJobRepo()
	apps := newMemAppRepo(jobs)
	resumes := &fakeResumeStore{}
	return fixture{
		svc:     NewService(apps, jobs, resumes, nil),
		apps:    apps,
		jobs:    jobs,
		resumes: resumes,
	}
}

func TestApply_CreatesPendingApplication(t *testing.T) {
	f := newFixture()
	jobID := f.jobs.add(uuid.New())
	applicant := uuid.New()

	a, err := f.svc.Apply(context.Background(), applicant, jobID.String(), validApply(), pdfUpload())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Status != application.StatusPending {
		t.Fatalf("status = %q, want pending", a.Status)
	}
	if a.ResumePath == "" {
		t.Fatalf("expected stored resume path")
	}
	if len(f.resumes.saved) != 1 {
		t.Fatalf("expected one stored file, got %d", len(f.resumes.saved))
	}
	if _, ok := f.apps.apps[a.ID]; !ok {
		t.Fatalf("application not persisted")
	}
}

func TestApply_DuplicateStoresNothingNew(t *testing.T) {
	f := newFixture()
	jobID := f.jobs.add(uuid.New())
	applicant := uuid.New()

	if _, err := f.svc.Apply(context.Background(), applicant, jobID.String(), validApply(), pdfUpload()); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	_, err := f.svc.Apply(context.Background(), applicant, jobID.String(), validApply(), pdfUpload())
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if len(f.apps.apps) != 1 {
		t.Fatalf("expected one application, got %d", len(f.apps.apps))
	}
	if len(f.resumes.saved) != 1 {
		t.Fatalf("duplicate attempt must not store a second file")
	}
}

func TestApply_ValidationFailureLeavesNoTrace(t *testing.T) {
	f := newFixture()
	jobID := f.jobs.add(uuid.New())

	in := validApply()
	in.Phone = ""
	in.Education = ""
	up := pdfUpload()
	up.FileName = "cv.exe"

	_, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), in, up)

	var ve *usecase.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// phone, education, unsupported file type.
	if len(ve.Violations) != 3 {
		t.Fatalf("expected 3 violations, got %v", ve.Violations)
	}
	if len(f.apps.apps) != 0 || len(f.resumes.saved) != 0 {
		t.Fatalf("rejected submission must leave no record and no file")
	}
}

func TestApply_MissingResume(t *testing.T) {
	f := newFixture()
	jobID := f.jobs.add(uuid.New())

	_, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), nil)

	var ve *usecase.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 1 {
		t.Fatalf("expected one violation, got %v", ve.Violations)
	}
}

func TestApply_UnknownJob(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Apply(context.Background(), uuid.New(), "not-a-uuid", validApply(), pdfUpload()); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := f.svc.Apply(context.Background(), uuid.New(), uuid.NewString(), validApply(), pdfUpload()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApply_InsertRaceRemovesStoredFile(t *testing.T) {
	f := newFixture()
	jobID := f.jobs.add(uuid.New())
	applicant := uuid.New()

	// Simulate the race: the pre-check sees no duplicate, the insert does.
	raced := &racingAppRepo{
		memAppRepo: newMemAppRepo(f.jobs),
		hidden:     application.Application{ID: uuid.New(), JobID: jobID, ApplicantID: applicant},
	}
	svc := NewService(raced, f.jobs, f.resumes, nil)

	_, err := svc.Apply(context.Background(), applicant, jobID.String(), validApply(), pdfUpload())
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if len(f.resumes.removed) != 1 {
		t.Fatalf("expected the stored file removed, got %v", f.resumes.removed)
	}
}

// racingAppRepo hides an existing application from the pre-check so the
// duplicate only surfaces at insert time, like a concurrent submission.
type racingAppRepo struct {
	*memAppRepo
	hidden application.Application
}

func (r *racingAppRepo) ExistsForJobAndApplicant(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (r *racingAppRepo) Create(ctx context.Context, a application.Application) error {
	if a.JobID == r.hidden.JobID && a.ApplicantID == r.hidden.ApplicantID {
		return application.ErrDuplicate
	}
	return r.memAppRepo.Create(ctx, a)
}

func TestSetStatus(t *testing.T) {
	f := newFixture()
	recruiter := uuid.New()
	jobID := f.jobs.add(recruiter)

	a, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), pdfUpload())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	updated, err := f.svc.SetStatus(context.Background(), recruiter, a.ID.String(), "reviewed")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != application.StatusReviewed {
		t.Fatalf("status = %q, want reviewed", updated.Status)
	}
}

func TestSetStatus_UnknownStatus(t *testing.T) {
	f := newFixture()
	recruiter := uuid.New()
	jobID := f.jobs.add(recruiter)

	a, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), pdfUpload())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := f.svc.SetStatus(context.Background(), recruiter, a.ID.String(), "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if f.apps.apps[a.ID].Status != application.StatusPending {
		t.Fatalf("status changed despite invalid input")
	}
}

func TestSetStatus_NonOwnerCannotWrite(t *testing.T) {
	f := newFixture()
	jobID := f.jobs.add(uuid.New())

	a, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), pdfUpload())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	intruder := uuid.New()
	if _, err := f.svc.SetStatus(context.Background(), intruder, a.ID.String(), "hired"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if f.apps.apps[a.ID].Status != application.StatusPending {
		t.Fatalf("non-owner write persisted")
	}
}

func TestSetStatus_IllegalTransition(t *testing.T) {
	f := newFixture()
	recruiter := uuid.New()
	jobID := f.jobs.add(recruiter)

	a, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), pdfUpload())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := f.svc.SetStatus(context.Background(), recruiter, a.ID.String(), "rejected"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	// Rejected is terminal.
	if _, err := f.svc.SetStatus(context.Background(), recruiter, a.ID.String(), "reviewed"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if f.apps.apps[a.ID].Status != application.StatusRejected {
		t.Fatalf("terminal status changed")
	}
}

func TestNotes_OwnerOnly(t *testing.T) {
	f := newFixture()
	recruiter := uuid.New()
	jobID := f.jobs.add(recruiter)

	a, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), pdfUpload())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := f.svc.AddNote(context.Background(), uuid.New(), a.ID.String(), "looks good"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	n, err := f.svc.AddNote(context.Background(), recruiter, a.ID.String(), "strong candidate")
	if err != nil {
		t.Fatalf("add note: %v", err)
	}
	if n.AuthorID != recruiter {
		t.Fatalf("author = %s, want %s", n.AuthorID, recruiter)
	}

	notes, err := f.svc.ListNotes(context.Background(), recruiter, a.ID.String())
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "strong candidate" {
		t.Fatalf("unexpected notes: %v", notes)
	}
}

func TestListForRecruiter_CountsCarryAllStatuses(t *testing.T) {
	f := newFixture()
	recruiter := uuid.New()
	jobID := f.jobs.add(recruiter)

	if _, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), pdfUpload()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	b, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), pdfUpload())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := f.svc.SetStatus(context.Background(), recruiter, b.ID.String(), "reviewed"); err != nil {
		t.Fatalf("set status: %v", err)
	}

	apps, counts, err := f.svc.ListForRecruiter(context.Background(), recruiter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
	want := StatusCounts{Pending: 1, Reviewed: 1, Total: 2}
	if counts != want {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
	if apps[0].JobTitle == "" {
		t.Fatalf("expected joined job data on the row")
	}
}

func TestListApplicantsForJob_OwnerOnly(t *testing.T) {
	f := newFixture()
	recruiter := uuid.New()
	jobID := f.jobs.add(recruiter)

	if _, err := f.svc.Apply(context.Background(), uuid.New(), jobID.String(), validApply(), pdfUpload()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := f.svc.ListApplicantsForJob(context.Background(), uuid.New(), jobID.String()); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	apps, err := f.svc.ListApplicantsForJob(context.Background(), recruiter, jobID.String())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 applicant, got %d", len(apps))
	}
}

func TestWeeklyStats(t *testing.T) {
	f := newFixture()
	applicant := uuid.New()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	seed := func(daysAgo int) {
		id := uuid.New()
		f.apps.apps[id] = application.Application{
			ID:          id,
			JobID:       f.jobs.add(uuid.New()),
			ApplicantID: applicant,
			AppliedAt:   now.AddDate(0, 0, -daysAgo),
		}
	}

	// Empty history: zero across the board.
	st, err := f.svc.WeeklyStats(context.Background(), applicant)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", st)
	}

	// Activity this week only: 100% by convention.
	seed(1)
	seed(2)
	st, err = f.svc.WeeklyStats(context.Background(), applicant)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 2 || st.ChangeFromLastWeek != 2 || st.ChangePercentage != 100 {
		t.Fatalf("unexpected stats: %+v", st)
	}

	// Prior week gains one: 2 now vs 1 then is +100%; add an older record
	// that only counts toward the all-time total.
	seed(10)
	seed(20)
	st, err = f.svc.WeeklyStats(context.Background(), applicant)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 4 || st.ChangeFromLastWeek != 1 || st.ChangePercentage != 100 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestAppliedJobs(t *testing.T) {
	f := newFixture()
	applicant := uuid.New()
	jobID := f.jobs.add(uuid.New())

	if _, err := f.svc.Apply(context.Background(), applicant, jobID.String(), validApply(), pdfUpload()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	jobs, err := f.svc.AppliedJobs(context.Background(), applicant)
	if err != nil {
		t.Fatalf("applied jobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].JobID != jobID {
		t.Fatalf("unexpected applied jobs: %v", jobs)
	}
}
