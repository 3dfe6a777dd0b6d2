package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"game-platform/internal/data/entity"
	"game-platform/internal/data/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeUsers backs the user, profile and role repositories with maps
type fakeUsers struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	profiles  map[uuid.UUID]*entity.UserProfile
	roles     map[string]*entity.Role
	userRoles map[uuid.UUID][]string
	createErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users:    map[uuid.UUID]*entity.User{},
		profiles: map[uuid.UUID]*entity.UserProfile{},
		roles: map[string]*entity.Role{
			entity.RoleCustomer: {ID: uuid.New(), Name: entity.RoleCustomer},
			entity.RoleAdmin:    {ID: uuid.New(), Name: entity.RoleAdmin},
		},
		userRoles: map[uuid.UUID][]string{},
	}
}

func (f *fakeUsers) repository() *repository.Repository {
	return &repository.Repository{
		User:    fakeUserRepo{f},
		Profile: fakeProfileRepo{f},
		Role:    fakeRoleRepo{f},
	}
}

type fakeUserRepo struct{ f *fakeUsers }

func (r fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.createErr != nil {
		return r.f.createErr
	}
	cp := *user
	r.f.users[user.ID] = &cp
	return nil
}

func (r fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if u, ok := r.f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindWithProfile(_ context.Context, id uuid.UUID) (*entity.UserWithProfile, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	u, ok := r.f.users[id]
	if !ok {
		return nil, nil
	}
	return &entity.UserWithProfile{User: *u, Profile: r.f.profiles[id], Roles: r.f.userRoles[id]}, nil
}

func (r fakeUserRepo) FindAllWithProfile(_ context.Context, params repository.UserListParams) ([]*entity.UserWithProfile, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	all := make([]*entity.UserWithProfile, 0, len(r.f.users))
	for id, u := range r.f.users {
		all = append(all, &entity.UserWithProfile{User: *u, Profile: r.f.profiles[id], Roles: r.f.userRoles[id]})
	}
	sort.Slice(all, func(i, j int) bool {
		if params.Desc {
			return all[i].User.Username > all[j].User.Username
		}
		return all[i].User.Username < all[j].User.Username
	})
	if params.Offset >= len(all) {
		return []*entity.UserWithProfile{}, nil
	}
	end := min(params.Offset+params.Limit, len(all))
	return all[params.Offset:end], nil
}

func (r fakeUserRepo) CountAll(context.Context) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return int64(len(r.f.users)), nil
}

func (r fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	u, ok := r.f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.f.users, id)
	delete(r.f.profiles, id)
	delete(r.f.userRoles, id)
	return nil
}

type fakeProfileRepo struct{ f *fakeUsers }

func (r fakeProfileRepo) Create(_ context.Context, profile *entity.UserProfile) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	cp := *profile
	r.f.profiles[profile.UserID] = &cp
	return nil
}

func (r fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if p, ok := r.f.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r fakeProfileRepo) Update(_ context.Context, profile *entity.UserProfile) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if _, ok := r.f.profiles[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	cp := *profile
	r.f.profiles[profile.UserID] = &cp
	return nil
}

type fakeRoleRepo struct{ f *fakeUsers }

func (r fakeRoleRepo) FindByName(_ context.Context, name string) (*entity.Role, error) {
	return r.f.roles[name], nil
}

func (r fakeRoleRepo) AssignToUser(_ context.Context, userID, roleID uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, role := range r.f.roles {
		if role.ID == roleID {
			r.f.userRoles[userID] = append(r.f.userRoles[userID], role.Name)
		}
	}
	return nil
}

func (r fakeRoleRepo) FindNamesByUserID(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return append([]string{}, r.f.userRoles[userID]...), nil
}

// fakeGames is an in-memory GameRepository keyed by ObjectID
type fakeGames struct {
	mu    sync.Mutex
	games map[primitive.ObjectID]*entity.Game
}

func newFakeGames() *fakeGames {
	return &fakeGames{games: map[primitive.ObjectID]*entity.Game{}}
}

func (f *fakeGames) EnsureIndexes(context.Context) error { return nil }

func (f *fakeGames) Create(_ context.Context, game *entity.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.AppID == game.AppID {
			return repository.ErrDuplicate
		}
	}
	game.ID = primitive.NewObjectID()
	cp := *game
	f.games[game.ID] = &cp
	return nil
}

func (f *fakeGames) CreateMany(ctx context.Context, games []*entity.Game) error {
	for _, g := range games {
		if err := f.Create(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeGames) FindByID(_ context.Context, id string) (*entity.Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.games[oid]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeGames) FindByAppID(_ context.Context, appID int64) (*entity.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.AppID == appID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeGames) ExistingAppIDs(_ context.Context, appIDs []int64) (map[int64]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int64]struct{}{}
	for _, id := range appIDs {
		for _, g := range f.games {
			if g.AppID == id {
				out[id] = struct{}{}
			}
		}
	}
	return out, nil
}

func (f *fakeGames) FindAll(_ context.Context, limit, offset int) ([]*entity.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*entity.Game, 0, len(f.games))
	for _, g := range f.games {
		cp := *g
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AppID < all[j].AppID })
	if offset >= len(all) {
		return []*entity.Game{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (f *fakeGames) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.games)), nil
}

func (f *fakeGames) Replace(_ context.Context, game *entity.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.games[game.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, g := range f.games {
		if id != game.ID && g.AppID == game.AppID {
			return repository.ErrDuplicate
		}
	}
	cp := *game
	f.games[game.ID] = &cp
	return nil
}

func (f *fakeGames) DeleteByID(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.games[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(f.games, oid)
	return nil
}

func (f *fakeGames) DeleteByAppID(_ context.Context, appID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, g := range f.games {
		if g.AppID == appID {
			delete(f.games, id)
			n++
		}
	}
	return n, nil
}
