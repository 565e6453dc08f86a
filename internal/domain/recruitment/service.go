package recruitment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrms/internal/platform/db"
)

type Service struct {
	DB db.Querier
}

func NewService(database db.Querier) *Service {
	return &Service{DB: database}
}

const postingColumns = `id, organization_id, title, COALESCE(description, ''), department_id, location_id,
  employment_type, status, opened_at, closed_at, created_at`

func scanPosting(row pgx.Row) (JobPosting, error) {
	var p JobPosting
	err := row.Scan(&p.ID, &p.OrganizationID, &p.Title, &p.Description, &p.DepartmentID, &p.LocationID,
		&p.EmploymentType, &p.Status, &p.OpenedAt, &p.ClosedAt, &p.CreatedAt)
	return p, err
}

func (s *Service) ListPostings(ctx context.Context, orgID, status string) ([]JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings WHERE organization_id = $1`
	args := []any{orgID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY opened_at DESC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

func (s *Service) GetPosting(ctx context.Context, orgID, postingID string) (*JobPosting, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE organization_id = $1 AND id = $2`, orgID, postingID)
	p, err := scanPosting(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) CreatePosting(ctx context.Context, posting JobPosting) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_postings (organization_id, title, description, department_id, location_id, employment_type, status, opened_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, posting.OrganizationID, posting.Title, posting.Description, posting.DepartmentID, posting.LocationID,
		posting.EmploymentType, PostingOpen, time.Now()).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) ClosePosting(ctx context.Context, orgID, postingID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE job_postings
    SET status = $1, closed_at = $2
    WHERE organization_id = $3 AND id = $4 AND status = $5
  `, PostingClosed, time.Now(), orgID, postingID, PostingOpen)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPostingNotFound
	}
	return nil
}

func (s *Service) ListCandidates(ctx context.Context, orgID string) ([]Candidate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, organization_id, first_name, last_name, email, COALESCE(phone, ''), COALESCE(resume_url, ''), created_at
    FROM candidates
    WHERE organization_id = $1
    ORDER BY created_at DESC
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.ResumeURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *Service) CreateCandidate(ctx context.Context, candidate Candidate) (string, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM candidates WHERE organization_id = $1 AND LOWER(email) = LOWER($2)
  `, candidate.OrganizationID, candidate.Email).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrDuplicateEmail
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO candidates (organization_id, first_name, last_name, email, phone, resume_url)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, candidate.OrganizationID, candidate.FirstName, candidate.LastName, candidate.Email, candidate.Phone, candidate.ResumeURL).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) ListApplications(ctx context.Context, orgID, postingID string) ([]Application, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.posting_id, a.candidate_id, a.stage, COALESCE(a.notes, ''), a.applied_at, a.updated_at
    FROM applications a
    JOIN job_postings p ON a.posting_id = p.id
    WHERE p.organization_id = $1 AND a.posting_id = $2
    ORDER BY a.applied_at
  `, orgID, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.PostingID, &a.CandidateID, &a.Stage, &a.Notes, &a.AppliedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (s *Service) getApplication(ctx context.Context, orgID, applicationID string) (*Application, error) {
	var a Application
	err := s.DB.QueryRow(ctx, `
    SELECT a.id, a.posting_id, a.candidate_id, a.stage, COALESCE(a.notes, ''), a.applied_at, a.updated_at
    FROM applications a
    JOIN job_postings p ON a.posting_id = p.id
    WHERE p.organization_id = $1 AND a.id = $2
  `, orgID, applicationID).Scan(&a.ID, &a.PostingID, &a.CandidateID, &a.Stage, &a.Notes, &a.AppliedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Apply records a candidate against an open posting at the APPLIED stage.
func (s *Service) Apply(ctx context.Context, orgID, postingID, candidateID string) (string, error) {
	posting, err := s.GetPosting(ctx, orgID, postingID)
	if err != nil {
		return "", err
	}
	if posting.Status != PostingOpen {
		return "", ErrPostingClosed
	}

	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM candidates WHERE organization_id = $1 AND id = $2
  `, orgID, candidateID).Scan(&count); err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrCandidateNotFound
	}

	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM applications WHERE posting_id = $1 AND candidate_id = $2
  `, postingID, candidateID).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrDuplicateApplicant
	}

	now := time.Now()
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO applications (posting_id, candidate_id, stage, applied_at, updated_at)
    VALUES ($1,$2,$3,$4,$4)
    RETURNING id
  `, postingID, candidateID, StageApplied, now).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// AdvanceStage moves an application one step along the pipeline, or to
// REJECTED from any non-terminal stage.
func (s *Service) AdvanceStage(ctx context.Context, orgID, applicationID, toStage, notes string) error {
	if !IsValidStage(toStage) {
		return ErrInvalidStage
	}

	app, err := s.getApplication(ctx, orgID, applicationID)
	if err != nil {
		return err
	}
	if !CanAdvance(app.Stage, toStage) {
		return ErrStageTransition
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE applications SET stage = $1, notes = $2, updated_at = $3 WHERE id = $4
  `, toStage, notes, time.Now(), applicationID)
	return err
}

func (s *Service) ListInterviews(ctx context.Context, orgID, applicationID string) ([]Interview, error) {
	if _, err := s.getApplication(ctx, orgID, applicationID); err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, application_id, interviewer_id, scheduled_at, COALESCE(mode, ''), status, COALESCE(feedback, ''), created_at
    FROM interviews
    WHERE application_id = $1
    ORDER BY scheduled_at
  `, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []Interview
	for rows.Next() {
		var i Interview
		if err := rows.Scan(&i.ID, &i.ApplicationID, &i.InterviewerID, &i.ScheduledAt, &i.Mode, &i.Status, &i.Feedback, &i.CreatedAt); err != nil {
			return nil, err
		}
		interviews = append(interviews, i)
	}
	return interviews, rows.Err()
}

// ScheduleInterview is only allowed while the application sits in the
// INTERVIEW stage.
func (s *Service) ScheduleInterview(ctx context.Context, orgID string, interview Interview) (string, error) {
	app, err := s.getApplication(ctx, orgID, interview.ApplicationID)
	if err != nil {
		return "", err
	}
	if app.Stage != StageInterview {
		return "", ErrNotInInterviewStage
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO interviews (application_id, interviewer_id, scheduled_at, mode, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, interview.ApplicationID, interview.InterviewerID, interview.ScheduledAt, interview.Mode, InterviewScheduled).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) CompleteInterview(ctx context.Context, orgID, interviewID, feedback string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE interviews i
    SET status = $1, feedback = $2
    FROM applications a
    JOIN job_postings p ON a.posting_id = p.id
    WHERE i.application_id = a.id
      AND p.organization_id = $3
      AND i.id = $4
      AND i.status = $5
  `, InterviewCompleted, feedback, orgID, interviewID, InterviewScheduled)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInterviewNotFound
	}
	return nil
}
