package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"hrms/internal/domain/benefits"
	"hrms/internal/domain/compliance"
	"hrms/internal/domain/employee"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
)

const (
	JobProbationSweep = "probation_sweep"
	JobComplianceRun  = "compliance_run"
	JobBenefitExpiry  = "benefit_expiry"
)

// Service runs the scheduled sweeps. Each run is recorded in job_runs so
// operators can see when a sweep last completed and what it did.
type Service struct {
	DB         db.Querier
	Cfg        config.Config
	Employees  *employee.Service
	Compliance *compliance.Service
	Benefits   *benefits.Service

	cron *cron.Cron
}

func New(database db.Querier, cfg config.Config, employees *employee.Service, complianceSvc *compliance.Service, benefitsSvc *benefits.Service) *Service {
	return &Service{
		DB:         database,
		Cfg:        cfg,
		Employees:  employees,
		Compliance: complianceSvc,
		Benefits:   benefitsSvc,
		cron:       cron.New(),
	}
}

// Start registers the cron entries and begins scheduling. Invalid cron
// expressions are logged and skipped so one bad setting does not take down
// the others.
func (s *Service) Start(ctx context.Context) {
	s.register(s.Cfg.ProbationSweepCron, JobProbationSweep, func(ctx context.Context, orgID string) (any, error) {
		confirmed, err := s.Employees.ConfirmDueProbations(ctx, orgID)
		return map[string]int{"confirmed": confirmed}, err
	})
	s.register(s.Cfg.ComplianceSweepCron, JobComplianceRun, func(ctx context.Context, orgID string) (any, error) {
		passed, failed, err := s.Compliance.RunChecks(ctx, orgID)
		return map[string]int{"passed": passed, "failed": failed}, err
	})
	s.register(s.Cfg.BenefitExpiryCron, JobBenefitExpiry, func(ctx context.Context, orgID string) (any, error) {
		expired, err := s.Benefits.ExpireLapsedEnrollments(ctx, orgID, time.Now())
		return map[string]int{"expired": expired}, err
	})

	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
}

func (s *Service) register(spec, jobType string, run func(ctx context.Context, orgID string) (any, error)) {
	if spec == "" {
		return
	}
	_, err := s.cron.AddFunc(spec, func() {
		s.runForAllOrgs(context.Background(), jobType, run)
	})
	if err != nil {
		slog.Warn("cron registration failed", "jobType", jobType, "spec", spec, "err", err)
	}
}

func (s *Service) runForAllOrgs(ctx context.Context, jobType string, run func(ctx context.Context, orgID string) (any, error)) {
	orgs, err := s.listOrganizations(ctx)
	if err != nil {
		slog.Warn("job organization lookup failed", "jobType", jobType, "err", err)
		return
	}
	for _, orgID := range orgs {
		if _, err := s.RunNow(ctx, jobType, orgID, run); err != nil {
			slog.Warn("job run failed", "jobType", jobType, "organizationId", orgID, "err", err)
		}
	}
}

// RunNow executes one job for one organization and records the outcome.
func (s *Service) RunNow(ctx context.Context, jobType, orgID string, run func(ctx context.Context, orgID string) (any, error)) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (organization_id, job_type, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, orgID, jobType, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "jobType", jobType, "err", err)
	}

	details, err := run(ctx, orgID)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) listOrganizations(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT id FROM organizations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		orgs = append(orgs, id)
	}
	return orgs, rows.Err()
}
