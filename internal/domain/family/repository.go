package family

import "context"

// Repository is the family ledger store. The ForUpdate variants lock
// the selected rows for the duration of the surrounding transaction so
// that reads-before-write in allocation and join cannot race.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetFamily(ctx context.Context, familyID string) (*Family, error)
	GetFamilyForUpdate(ctx context.Context, familyID string) (*Family, error)
	SearchByName(ctx context.Context, pattern string) ([]Family, error)
	ListFamilyIDs(ctx context.Context) ([]string, error)
	CreateFamily(ctx context.Context, family *Family) error
	CreateProtagonist(ctx context.Context, protagonist *Protagonist) error
	SetUnitsDue(ctx context.Context, familyID string, original, current int) error
	SetCurrentUnitsDue(ctx context.Context, familyID string, current int) error

	GetMember(ctx context.Context, userID string) (*Member, error)
	GetMemberForUpdate(ctx context.Context, userID string) (*Member, error)
	ListMembersForUpdate(ctx context.Context, familyID string) ([]Member, error)
	AssignToFamily(ctx context.Context, userID, familyID, role string) error
	SetMemberBalance(ctx context.Context, userID string, balance int) error
}
