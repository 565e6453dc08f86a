package compliance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"hrms/internal/platform/db"
)

type Service struct {
	DB     db.Querier
	Logger *slog.Logger
}

func NewService(database db.Querier, logger *slog.Logger) *Service {
	return &Service{DB: database, Logger: logger}
}

func (s *Service) ListRules(ctx context.Context, orgID string) ([]Rule, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, organization_id, code, name, COALESCE(category, ''), severity, is_active, created_at
    FROM compliance_rules
    WHERE organization_id = $1
    ORDER BY code
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var r Rule
		if err := rows.Scan(&r.ID, &r.OrganizationID, &r.Code, &r.Name, &r.Category, &r.Severity, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *Service) CreateRule(ctx context.Context, rule Rule) (string, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM compliance_rules WHERE organization_id = $1 AND code = $2
  `, rule.OrganizationID, rule.Code).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrDuplicateCode
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO compliance_rules (organization_id, code, name, category, severity, is_active)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, rule.OrganizationID, rule.Code, rule.Name, rule.Category, rule.Severity, rule.IsActive).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) SetRuleActive(ctx context.Context, orgID, ruleID string, active bool) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE compliance_rules SET is_active = $1 WHERE organization_id = $2 AND id = $3
  `, active, orgID, ruleID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (s *Service) ListChecks(ctx context.Context, orgID, employeeID string, failedOnly bool) ([]Check, error) {
	query := `
    SELECT c.id, c.rule_id, r.code, c.employee_id, c.status, COALESCE(c.details, ''), c.checked_at
    FROM compliance_checks c
    JOIN compliance_rules r ON c.rule_id = r.id
    JOIN employees e ON c.employee_id = e.id
    WHERE e.organization_id = $1
  `
	args := []any{orgID}
	if employeeID != "" {
		query += ` AND c.employee_id = $2`
		args = append(args, employeeID)
	}
	if failedOnly {
		query += ` AND c.status = 'FAILED'`
	}
	query += ` ORDER BY c.checked_at DESC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var c Check
		if err := rows.Scan(&c.ID, &c.RuleID, &c.RuleCode, &c.EmployeeID, &c.Status, &c.Details, &c.CheckedAt); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

// RunChecks evaluates every active rule against every non-deleted employee in
// the organization and records the outcome. Previous check rows are kept so
// the history of a rule's results stays queryable.
func (s *Service) RunChecks(ctx context.Context, orgID string) (passed, failed int, err error) {
	rules, err := s.ListRules(ctx, orgID)
	if err != nil {
		return 0, 0, err
	}

	active := rules[:0]
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return 0, 0, nil
	}

	facts, err := s.gatherFacts(ctx, orgID)
	if err != nil {
		return 0, 0, err
	}

	now := time.Now()
	for _, f := range facts {
		for _, rule := range active {
			check := Evaluate(rule, f, now)
			_, err := s.DB.Exec(ctx, `
        INSERT INTO compliance_checks (rule_id, employee_id, status, details, checked_at)
        VALUES ($1,$2,$3,$4,$5)
      `, check.RuleID, check.EmployeeID, check.Status, check.Details, check.CheckedAt)
			if err != nil {
				return passed, failed, err
			}
			if check.Status == CheckFailed {
				failed++
			} else {
				passed++
			}
		}
	}

	if s.Logger != nil {
		s.Logger.Info("compliance sweep finished",
			"organizationId", orgID,
			"rules", len(active),
			"employees", len(facts),
			"passed", passed,
			"failed", failed)
	}
	return passed, failed, nil
}

// RunChecksForEmployee evaluates active rules for a single employee, used by
// the on-demand endpoint.
func (s *Service) RunChecksForEmployee(ctx context.Context, orgID, employeeID string) ([]Check, error) {
	rules, err := s.ListRules(ctx, orgID)
	if err != nil {
		return nil, err
	}

	f, err := s.factsForEmployee(ctx, orgID, employeeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var checks []Check
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		check := Evaluate(rule, f, now)
		err := s.DB.QueryRow(ctx, `
      INSERT INTO compliance_checks (rule_id, employee_id, status, details, checked_at)
      VALUES ($1,$2,$3,$4,$5)
      RETURNING id
    `, check.RuleID, check.EmployeeID, check.Status, check.Details, check.CheckedAt).Scan(&check.ID)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

const factsQuery = `
    SELECT e.id,
           e.first_name || ' ' || e.last_name,
           e.status,
           e.probation_end_date,
           e.department_id IS NOT NULL,
           EXISTS (
             SELECT 1 FROM employee_bank_details b
             WHERE b.employee_id = e.id AND b.is_active
           ),
           EXISTS (
             SELECT 1 FROM employment_history h
             WHERE h.employee_id = e.id AND h.is_current
           )
    FROM employees e
    WHERE e.organization_id = $1`

func (s *Service) gatherFacts(ctx context.Context, orgID string) ([]EmployeeFacts, error) {
	rows, err := s.DB.Query(ctx, factsQuery+` ORDER BY e.employee_number`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []EmployeeFacts
	for rows.Next() {
		var f EmployeeFacts
		if err := rows.Scan(&f.EmployeeID, &f.EmployeeName, &f.Status, &f.ProbationEnd, &f.HasDepartment, &f.HasActiveBank, &f.HasCurrentRecord); err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

func (s *Service) factsForEmployee(ctx context.Context, orgID, employeeID string) (EmployeeFacts, error) {
	var f EmployeeFacts
	err := s.DB.QueryRow(ctx, factsQuery+` AND e.id = $2`, orgID, employeeID).
		Scan(&f.EmployeeID, &f.EmployeeName, &f.Status, &f.ProbationEnd, &f.HasDepartment, &f.HasActiveBank, &f.HasCurrentRecord)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeFacts{}, ErrEmployeeNotFound
	}
	if err != nil {
		return EmployeeFacts{}, err
	}
	return f, nil
}
