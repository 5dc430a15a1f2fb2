package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByIDs(ctx context.Context, ids []string) ([]Employee, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("id IN ?", ids).
		Find(&employees).Error
	return employees, err
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// LeadResolver answers "who is this employee's lead, if any" from the stored
// reporting edge. It satisfies the leave engine's HierarchyProvider port.
type LeadResolver struct {
	db *gorm.DB
}

func NewLeadResolver(db *gorm.DB) *LeadResolver {
	return &LeadResolver{db: db}
}

// GetLead returns nil when the employee has no lead or is their own lead
// (department heads report to themselves in some imports).
func (l *LeadResolver) GetLead(ctx context.Context, employeeID string) (*uuid.UUID, error) {
	var e Employee
	err := l.db.WithContext(ctx).
		Select("id", "lead_id").
		First(&e, "id = ?", employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if e.LeadID == nil || *e.LeadID == e.ID {
		return nil, nil
	}
	lead := *e.LeadID
	return &lead, nil
}
