package view

import (
	"context"

	"dukapos/internal/access"
	"dukapos/internal/apierror"
	"dukapos/internal/upstream"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// UsersView drives the user administration screen (superuser only): the user
// list with approval status and the approve/reject/update actions, plus the
// branch list for the assignment picker.
type UsersView struct {
	*machine
	client *upstream.Client

	users    []upstream.User
	branches []upstream.Branch
}

func NewUsersView(client *upstream.Client) *UsersView {
	return &UsersView{machine: newMachine(), client: client}
}

func (v *UsersView) Load(ctx context.Context) {
	loadCtx, gen, done := v.beginLoad(ctx)
	defer done()

	var (
		users    []upstream.User
		branches []upstream.Branch
	)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() (err error) {
		users, err = v.client.ListUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		branches, err = v.client.ListBranches(gctx)
		return err
	})

	v.finishLoad(gen, g.Wait(), func() {
		v.users = users
		v.branches = branches
	})
}

func (v *UsersView) Users() []upstream.User {
	var out []upstream.User
	v.snapshot(func() { out = v.users })
	return out
}

func (v *UsersView) Branches() []upstream.Branch {
	var out []upstream.Branch
	v.snapshot(func() { out = v.branches })
	return out
}

func (v *UsersView) Approve(ctx context.Context, id uuid.UUID) error {
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if err := v.client.ApproveUser(ctx, id); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

func (v *UsersView) Reject(ctx context.Context, id uuid.UUID) error {
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if err := v.client.RejectUser(ctx, id); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}

// Update edits an approved user. The role must parse against the closed set
// before the call goes out, so a typo cannot create an unroutable account.
func (v *UsersView) Update(ctx context.Context, id uuid.UUID, in upstream.UserUpdateInput) error {
	if _, err := access.ParseRole(in.Role); err != nil {
		return apierror.Validation("unknown role %q", in.Role)
	}
	if err := v.beginSubmit(); err != nil {
		return err
	}
	defer v.endSubmit()

	if _, err := v.client.UpdateUser(ctx, id, in); err != nil {
		return err
	}
	v.Load(ctx)
	return nil
}
