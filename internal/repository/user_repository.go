package repository

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/flock"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/storage"
)

// UserRepository defines persistence operations over the user directory.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Delete(ctx context.Context, id string) error
	RecordLogin(ctx context.Context, id string, when time.Time) error
}

// userDirectory is the on-disk envelope of users.json.
type userDirectory struct {
	Users []model.User `json:"users"`
}

type fileUserRepository struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileUserRepository builds a repository over a single users.json file.
// All records live in that one file, so every mutation is a whole-file
// read-modify-write guarded by an in-process mutex plus an advisory file lock
// against other processes.
func NewFileUserRepository(path string) UserRepository {
	return &fileUserRepository{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (r *fileUserRepository) load() (*userDirectory, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return &userDirectory{Users: []model.User{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user directory: %w", err)
	}
	var dir userDirectory
	if err := storage.Decode(data, &dir); err != nil {
		return nil, err
	}
	if dir.Users == nil {
		dir.Users = []model.User{}
	}
	return &dir, nil
}

func (r *fileUserRepository) save(dir *userDirectory) error {
	data, err := storage.Encode(dir)
	if err != nil {
		return err
	}
	return storage.WriteAtomic(r.path, data)
}

// withExclusive runs fn with both locks held for the whole read-modify-write.
func (r *fileUserRepository) withExclusive(fn func(dir *userDirectory) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.lock.Lock(); err != nil {
		return fmt.Errorf("lock user directory: %w", err)
	}
	defer r.lock.Unlock()

	dir, err := r.load()
	if err != nil {
		return err
	}
	return fn(dir)
}

func (r *fileUserRepository) withShared(fn func(dir *userDirectory) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.lock.RLock(); err != nil {
		return fmt.Errorf("lock user directory: %w", err)
	}
	defer r.lock.Unlock()

	dir, err := r.load()
	if err != nil {
		return err
	}
	return fn(dir)
}

func (r *fileUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.withShared(func(dir *userDirectory) error {
		users = dir.Users
		return nil
	})
	return users, err
}

func (r *fileUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var found *model.User
	err := r.withShared(func(dir *userDirectory) error {
		for i := range dir.Users {
			if dir.Users[i].ID == id {
				u := dir.Users[i]
				found = &u
				return nil
			}
		}
		return apperrors.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *fileUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var found *model.User
	err := r.withShared(func(dir *userDirectory) error {
		for i := range dir.Users {
			if dir.Users[i].Username == username {
				u := dir.Users[i]
				found = &u
				return nil
			}
		}
		return apperrors.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Create assigns the next sequential id and appends the user. The id scan,
// uniqueness check, and rewrite all happen inside the critical section, which
// is what keeps both invariants intact under concurrent admin actions.
func (r *fileUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	err := r.withExclusive(func(dir *userDirectory) error {
		maxID := 0
		for _, u := range dir.Users {
			if u.Username == user.Username {
				return apperrors.ErrDuplicateUsername
			}
			if n, err := strconv.Atoi(u.ID); err == nil && n > maxID {
				maxID = n
			}
		}
		user.ID = strconv.Itoa(maxID + 1)
		dir.Users = append(dir.Users, *user)
		return r.save(dir)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *fileUserRepository) Delete(ctx context.Context, id string) error {
	return r.withExclusive(func(dir *userDirectory) error {
		kept := dir.Users[:0:0]
		for _, u := range dir.Users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(dir.Users) {
			return apperrors.ErrUserNotFound
		}
		dir.Users = kept
		return r.save(dir)
	})
}

// RecordLogin stamps lastLogin on the matched user.
func (r *fileUserRepository) RecordLogin(ctx context.Context, id string, when time.Time) error {
	return r.withExclusive(func(dir *userDirectory) error {
		for i := range dir.Users {
			if dir.Users[i].ID == id {
				stamp := when.Format(time.RFC3339)
				dir.Users[i].LastLogin = &stamp
				return r.save(dir)
			}
		}
		return apperrors.ErrUserNotFound
	})
}
