package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/terraincognita07/cradle/internal/mail"
	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users     map[uint]models.User
	nextID    uint
	findErr   error
	createErr error
}

func newStubUserRepo(users ...models.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[uint]models.User{}, nextID: 1}
	for _, user := range users {
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
		repo.users[user.ID] = user
	}
	return repo
}

func (stub *stubUserRepo) FindByID(userID uint) (models.User, error) {
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *stubUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	if stub.findErr != nil {
		return models.User{}, stub.findErr
	}
	for _, user := range stub.users {
		if strings.EqualFold(strings.TrimSpace(user.Email), email) {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubUserRepo) Create(user *models.User) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.ID] = *user
	return nil
}

func (stub *stubUserRepo) UpdateByID(userID uint, updates map[string]any) error {
	user, ok := stub.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if value, ok := updates["password_hash"].(string); ok {
		user.PasswordHash = value
	}
	if value, ok := updates["first_name"].(string); ok {
		user.FirstName = value
	}
	if value, ok := updates["last_name"].(string); ok {
		user.LastName = value
	}
	stub.users[userID] = user
	return nil
}

type stubBabyRepo struct {
	babies     map[uint]models.Baby
	caregivers *stubCaregiverRepo
	nextID     uint
	createErr  error
}

func (stub *stubBabyRepo) Create(baby *models.Baby) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	stub.nextID++
	baby.ID = stub.nextID
	stub.babies[baby.ID] = *baby
	return nil
}

func (stub *stubBabyRepo) FindByID(babyID uint) (models.Baby, error) {
	baby, ok := stub.babies[babyID]
	if !ok {
		return models.Baby{}, gorm.ErrRecordNotFound
	}
	baby.Caregivers, _ = stub.caregivers.ListByBaby(babyID)
	return baby, nil
}

func (stub *stubBabyRepo) ListForUser(userID uint) ([]models.Baby, error) {
	result := make([]models.Baby, 0)
	for _, baby := range stub.babies {
		cares, _ := stub.caregivers.Exists(baby.ID, userID)
		if baby.OwnerID == userID || cares {
			result = append(result, baby)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DateOfBirth.After(result[j].DateOfBirth)
	})
	return result, nil
}

func (stub *stubBabyRepo) UpdateOwner(babyID uint, ownerID uint) (int64, error) {
	baby, ok := stub.babies[babyID]
	if !ok {
		return 0, nil
	}
	baby.OwnerID = ownerID
	stub.babies[babyID] = baby
	return 1, nil
}

type stubCaregiverRepo struct {
	rows   []models.BabyCaregiver
	nextID uint
}

func (stub *stubCaregiverRepo) Create(caregiver *models.BabyCaregiver) error {
	for _, row := range stub.rows {
		if row.BabyID == caregiver.BabyID && row.UserID == caregiver.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	stub.nextID++
	caregiver.ID = stub.nextID
	stub.rows = append(stub.rows, *caregiver)
	return nil
}

func (stub *stubCaregiverRepo) Exists(babyID uint, userID uint) (bool, error) {
	for _, row := range stub.rows {
		if row.BabyID == babyID && row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubCaregiverRepo) Delete(babyID uint, userID uint) (int64, error) {
	for index, row := range stub.rows {
		if row.BabyID == babyID && row.UserID == userID {
			stub.rows = append(stub.rows[:index], stub.rows[index+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (stub *stubCaregiverRepo) ListByBaby(babyID uint) ([]models.BabyCaregiver, error) {
	result := make([]models.BabyCaregiver, 0)
	for _, row := range stub.rows {
		if row.BabyID == babyID {
			result = append(result, row)
		}
	}
	return result, nil
}

type stubInviteRepo struct {
	invites []models.ParentInvite
}

func (stub *stubInviteRepo) Create(invite *models.ParentInvite) error {
	invite.ID = uint(len(stub.invites) + 1)
	stub.invites = append(stub.invites, *invite)
	return nil
}

func (stub *stubInviteRepo) FindPending(babyID uint, email string, relationship string) (models.ParentInvite, error) {
	for _, invite := range stub.invites {
		if invite.BabyID == babyID && invite.Email == email && invite.Relationship == relationship && invite.Status == models.InviteStatusPending {
			return invite, nil
		}
	}
	return models.ParentInvite{}, gorm.ErrRecordNotFound
}

func (stub *stubInviteRepo) ListByBaby(babyID uint) ([]models.ParentInvite, error) {
	result := make([]models.ParentInvite, 0)
	for _, invite := range stub.invites {
		if invite.BabyID == babyID {
			result = append(result, invite)
		}
	}
	return result, nil
}

type stubCareStore struct {
	users      *stubUserRepo
	babies     *stubBabyRepo
	caregivers *stubCaregiverRepo
	invites    *stubInviteRepo
}

func newStubCareStore(users ...models.User) *stubCareStore {
	caregivers := &stubCaregiverRepo{}
	return &stubCareStore{
		users:      newStubUserRepo(users...),
		babies:     &stubBabyRepo{babies: map[uint]models.Baby{}, caregivers: caregivers},
		caregivers: caregivers,
		invites:    &stubInviteRepo{},
	}
}

func (store *stubCareStore) repositories() CareRepositories {
	return CareRepositories{
		Users:      store.users,
		Babies:     store.babies,
		Caregivers: store.caregivers,
		Invites:    store.invites,
	}
}

// transact runs fn directly; the stubs do not roll back.
func (store *stubCareStore) transact(fn func(CareRepositories) error) error {
	return fn(store.repositories())
}

type stubMailer struct {
	mu   sync.Mutex
	sent []mail.Invitation
	err  error
}

func (stub *stubMailer) SendInvitation(_ context.Context, invitation mail.Invitation) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.sent = append(stub.sent, invitation)
	return stub.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
