package rosterservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	rosterdb "github.com/timkene/EKO-FITNESS/app/modules/roster/infrastructure/repositories"
)

// ------------------------
// Fake Roster Repo
// ------------------------

type FakeRosterRepo struct {
	trace []string

	GetByIDFunc         func(ctx context.Context, db bun.IDB, playerID int64) (*rosterdb.Player, error)
	ListFunc            func(ctx context.Context, db bun.IDB) ([]rosterdb.Player, error)
	ListApprovedFunc    func(ctx context.Context, db bun.IDB) ([]rosterdb.Player, error)
	CreateFunc          func(ctx context.Context, db bun.IDB, player *rosterdb.Player) error
	SetSuspendedFunc    func(ctx context.Context, db bun.IDB, playerID int64, suspended bool) error
	DeleteFunc          func(ctx context.Context, db bun.IDB, playerID int64) error
	GetDueFunc          func(ctx context.Context, db bun.IDB, playerID int64, year, quarter int) (*rosterdb.Due, error)
	UpsertDueFunc       func(ctx context.Context, db bun.IDB, due *rosterdb.Due) error
	ListEligibleIDsFunc func(ctx context.Context, db bun.IDB, year, quarter int, today time.Time) ([]int64, error)
}

func NewFakeRosterRepo() *FakeRosterRepo {
	return &FakeRosterRepo{
		trace: []string{},
	}
}

func (f *FakeRosterRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeRosterRepo) GetByID(ctx context.Context, db bun.IDB, playerID int64) (*rosterdb.Player, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, playerID)
	}
	return nil, rosterdb.ErrNotFound
}

func (f *FakeRosterRepo) List(ctx context.Context, db bun.IDB) ([]rosterdb.Player, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRosterRepo) ListApproved(ctx context.Context, db bun.IDB) ([]rosterdb.Player, error) {
	f.record("ListApproved")
	if f.ListApprovedFunc != nil {
		return f.ListApprovedFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRosterRepo) Create(ctx context.Context, db bun.IDB, player *rosterdb.Player) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, player)
	}
	return nil
}

func (f *FakeRosterRepo) SetSuspended(ctx context.Context, db bun.IDB, playerID int64, suspended bool) error {
	f.record("SetSuspended")
	if f.SetSuspendedFunc != nil {
		return f.SetSuspendedFunc(ctx, db, playerID, suspended)
	}
	return nil
}

func (f *FakeRosterRepo) Delete(ctx context.Context, db bun.IDB, playerID int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, playerID)
	}
	return nil
}

func (f *FakeRosterRepo) GetDue(ctx context.Context, db bun.IDB, playerID int64, year, quarter int) (*rosterdb.Due, error) {
	f.record("GetDue")
	if f.GetDueFunc != nil {
		return f.GetDueFunc(ctx, db, playerID, year, quarter)
	}
	return nil, rosterdb.ErrNotFound
}

func (f *FakeRosterRepo) UpsertDue(ctx context.Context, db bun.IDB, due *rosterdb.Due) error {
	f.record("UpsertDue")
	if f.UpsertDueFunc != nil {
		return f.UpsertDueFunc(ctx, db, due)
	}
	return nil
}

func (f *FakeRosterRepo) ListEligibleIDs(ctx context.Context, db bun.IDB, year, quarter int, today time.Time) ([]int64, error) {
	f.record("ListEligibleIDs")
	if f.ListEligibleIDsFunc != nil {
		return f.ListEligibleIDsFunc(ctx, db, year, quarter, today)
	}
	return nil, nil
}

// --- Accessors for assertions ---

func (f *FakeRosterRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ rosterdb.Repository = (*FakeRosterRepo)(nil)
