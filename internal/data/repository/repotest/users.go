// Package repotest provides in-memory repositories for service and middleware tests.
package repotest

import (
	"context"
	"strings"
	"sync"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/pkg/apperror"

	"github.com/google/uuid"
)

// Users is an in-memory repository.UserRepository. List and Count ignore filters
// and only apply paging.
type Users struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	order    []uuid.UUID
	wishlist map[uuid.UUID][]uuid.UUID
}

var _ repository.UserRepository = (*Users)(nil)

func NewUsers() *Users {
	return &Users{
		users:    map[uuid.UUID]*entity.User{},
		wishlist: map[uuid.UUID][]uuid.UUID{},
	}
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func (r *Users) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperror.ErrEmailTaken
		}
		if u.Mobile == user.Mobile {
			return apperror.ErrMobileTaken
		}
	}
	r.users[user.ID] = copyUser(user)
	r.order = append(r.order, user.ID)
	return nil
}

func (r *Users) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *Users) find(match func(*entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if u, ok := r.users[id]; ok && match(u) {
			return copyUser(u)
		}
	}
	return nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *Users) FindByMobile(_ context.Context, mobile string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Mobile == mobile }), nil
}

func (r *Users) FindByRefreshToken(_ context.Context, token string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool {
		return u.RefreshToken != nil && *u.RefreshToken == token
	}), nil
}

func (r *Users) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	return r.find(func(u *entity.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == tokenHash &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now)
	}), nil
}

func (r *Users) List(_ context.Context, q request.ListQuery) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.User
	for _, id := range page(r.order, q) {
		out = append(out, copyUser(r.users[id]))
	}
	return out, nil
}

func (r *Users) Count(_ context.Context, _ request.ListQuery) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.order)), nil
}

func (r *Users) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperror.ErrUserNotFound
	}
	user.Email = strings.ToLower(user.Email)
	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return apperror.ErrEmailTaken
		}
		if u.Mobile == user.Mobile {
			return apperror.ErrMobileTaken
		}
	}
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *Users) mutate(id uuid.UUID, fn func(*entity.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return apperror.ErrUserNotFound
	}
	fn(u)
	return nil
}

func (r *Users) SetBlocked(_ context.Context, id uuid.UUID, blocked bool) error {
	return r.mutate(id, func(u *entity.User) { u.IsBlocked = blocked })
}

func (r *Users) SetRefreshToken(_ context.Context, id uuid.UUID, token *string) error {
	return r.mutate(id, func(u *entity.User) { u.RefreshToken = token })
}

func (r *Users) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperror.ErrUserNotFound
	}
	delete(r.users, id)
	delete(r.wishlist, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Users) WishlistContains(_ context.Context, userID, productID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return indexOf(r.wishlist[userID], productID) >= 0, nil
}

func (r *Users) AddToWishlist(_ context.Context, userID, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if indexOf(r.wishlist[userID], productID) < 0 {
		r.wishlist[userID] = append(r.wishlist[userID], productID)
	}
	return nil
}

func (r *Users) RemoveFromWishlist(_ context.Context, userID, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.wishlist[userID]
	if i := indexOf(list, productID); i >= 0 {
		r.wishlist[userID] = append(list[:i], list[i+1:]...)
	}
	return nil
}

func (r *Users) Wishlist(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uuid.UUID(nil), r.wishlist[userID]...), nil
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func page[T any](items []T, q request.ListQuery) []T {
	offset, limit := q.Offset(), q.Limit()
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
