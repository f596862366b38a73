package family

import (
	"context"
	"errors"
	"time"

	familydomain "family-scheduler-go/internal/domain/family"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(familydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetFamily(ctx context.Context, familyID string) (*familydomain.Family, error) {
	return r.getFamily(ctx, familyID, false)
}

func (r *PostgresRepository) GetFamilyForUpdate(ctx context.Context, familyID string) (*familydomain.Family, error) {
	return r.getFamily(ctx, familyID, true)
}

func (r *PostgresRepository) getFamily(ctx context.Context, familyID string, forUpdate bool) (*familydomain.Family, error) {
	query := r.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var family familydomain.Family
	if err := query.Where("id = ?", familyID).First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrFamilyNotFound
		}
		return nil, err
	}
	return &family, nil
}

func (r *PostgresRepository) SearchByName(ctx context.Context, pattern string) ([]familydomain.Family, error) {
	families := make([]familydomain.Family, 0)
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+pattern+"%").
		Order("name asc").
		Find(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

func (r *PostgresRepository) ListFamilyIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Order("created_at asc").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) CreateFamily(ctx context.Context, family *familydomain.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *PostgresRepository) CreateProtagonist(ctx context.Context, protagonist *familydomain.Protagonist) error {
	return r.db.WithContext(ctx).Create(protagonist).Error
}

func (r *PostgresRepository) SetUnitsDue(ctx context.Context, familyID string, original, current int) error {
	return r.updateFamily(ctx, familyID, map[string]interface{}{
		"original_units_due": original,
		"current_units_due":  current,
	})
}

func (r *PostgresRepository) SetCurrentUnitsDue(ctx context.Context, familyID string, current int) error {
	return r.updateFamily(ctx, familyID, map[string]interface{}{
		"current_units_due": current,
	})
}

func (r *PostgresRepository) updateFamily(ctx context.Context, familyID string, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Where("id = ?", familyID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrFamilyNotFound
	}
	return nil
}

type memberRow struct {
	ID          string    `gorm:"column:id"`
	FamilyID    *string   `gorm:"column:family_id"`
	Role        string    `gorm:"column:role"`
	UnitBalance int       `gorm:"column:unit_balance"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (r *PostgresRepository) GetMember(ctx context.Context, userID string) (*familydomain.Member, error) {
	return r.getMember(ctx, userID, false)
}

func (r *PostgresRepository) GetMemberForUpdate(ctx context.Context, userID string) (*familydomain.Member, error) {
	return r.getMember(ctx, userID, true)
}

func (r *PostgresRepository) getMember(ctx context.Context, userID string, forUpdate bool) (*familydomain.Member, error) {
	query := r.db.WithContext(ctx).Table("users")
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row memberRow
	if err := query.
		Select("id, family_id, role, unit_balance, created_at").
		Where("id = ?", userID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrUserNotFound
		}
		return nil, err
	}
	member := toMember(row)
	return &member, nil
}

// ListMembersForUpdate locks and returns the family's user rows in
// insertion order, the stable order the fair-share distributor relies
// on.
func (r *PostgresRepository) ListMembersForUpdate(ctx context.Context, familyID string) ([]familydomain.Member, error) {
	var rows []memberRow
	if err := r.db.WithContext(ctx).
		Table("users").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id, family_id, role, unit_balance, created_at").
		Where("family_id = ?", familyID).
		Order("created_at asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]familydomain.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, toMember(row))
	}
	return members, nil
}

func (r *PostgresRepository) AssignToFamily(ctx context.Context, userID, familyID, role string) error {
	result := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Updates(map[string]interface{}{"family_id": familyID, "role": role})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) SetMemberBalance(ctx context.Context, userID string, balance int) error {
	result := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Update("unit_balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrUserNotFound
	}
	return nil
}

func toMember(row memberRow) familydomain.Member {
	return familydomain.Member{
		ID:          row.ID,
		FamilyID:    row.FamilyID,
		Role:        row.Role,
		UnitBalance: row.UnitBalance,
		CreatedAt:   row.CreatedAt,
	}
}
