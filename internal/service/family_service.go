package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "famledger/internal/errors"
	"famledger/internal/model"
	"famledger/internal/repository"
)

const maxUsernameAttempts = 20

// AddMemberInput describes a member to add to a family.
type AddMemberInput struct {
	Email string
	Name  string
	Role  model.Role
}

// AddMemberResult reports the added member. TemporaryPassword is only set for newly created users.
type AddMemberResult struct {
	ID                uint       `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Username          *string    `json:"username"`
	Role              model.Role `json:"role"`
	IsNewUser         bool       `json:"isNewUser"`
	TemporaryPassword string     `json:"temporaryPassword,omitempty"`
}

// FamilyService manages families and their memberships.
type FamilyService interface {
	Create(ctx context.Context, name string, creatorID uint) (*model.Family, error)
	ListForUser(ctx context.Context, userID uint) ([]model.FamilyWithRole, error)
	Get(ctx context.Context, familyID uint) (*model.FamilyDetail, error)
	Members(ctx context.Context, familyID uint) ([]model.Member, error)
	AddMember(ctx context.Context, familyID uint, in AddMemberInput) (*AddMemberResult, error)
	RemoveMember(ctx context.Context, familyID, actorID, userID uint) error
	Delete(ctx context.Context, familyID, actorID uint) error
	Membership(ctx context.Context, familyID, userID uint) (*model.FamilyMember, error)
}

type familyService struct {
	families   repository.FamilyRepository
	users      repository.UserRepository
	categories CategoryService
}

// NewFamilyService creates a new family service.
func NewFamilyService(families repository.FamilyRepository, users repository.UserRepository, categories CategoryService) FamilyService {
	return &familyService{families: families, users: users, categories: categories}
}

func (s *familyService) Create(ctx context.Context, name string, creatorID uint) (*model.Family, error) {
	family, err := s.families.CreateWithAdmin(ctx, strings.TrimSpace(name), creatorID)
	if err != nil {
		return nil, fmt.Errorf("create family: %w", err)
	}
	return family, nil
}

func (s *familyService) ListForUser(ctx context.Context, userID uint) ([]model.FamilyWithRole, error) {
	families, err := s.families.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	return families, nil
}

func (s *familyService) Get(ctx context.Context, familyID uint) (*model.FamilyDetail, error) {
	family, err := s.families.FindByID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("find family: %w", err)
	}
	if family == nil {
		return nil, apperrors.ErrFamilyNotFound
	}
	members, err := s.Members(ctx, familyID)
	if err != nil {
		return nil, err
	}
	return &model.FamilyDetail{Family: *family, Members: members}, nil
}

func (s *familyService) Members(ctx context.Context, familyID uint) ([]model.Member, error) {
	members, err := s.families.ListMembers(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *familyService) Membership(ctx context.Context, familyID, userID uint) (*model.FamilyMember, error) {
	member, err := s.families.Membership(ctx, familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	return member, nil
}

// AddMember adds the user with the given email, creating the account with a temporary password
// when the email is unknown. Re-adding an existing member overwrites the role.
func (s *familyService) AddMember(ctx context.Context, familyID uint, in AddMemberInput) (*AddMemberResult, error) {
	role := in.Role
	if role == "" {
		role = model.RoleMember
	}
	email := normalizeEmail(in.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	result := &AddMemberResult{}
	if user == nil {
		user, result.TemporaryPassword, err = s.createMemberUser(ctx, email, strings.TrimSpace(in.Name))
		if err != nil {
			return nil, err
		}
		result.IsNewUser = true
	}

	member, err := s.families.AddMember(ctx, familyID, user.ID, role)
	if err != nil {
		if apperrors.IsDomain(err) {
			return nil, err
		}
		return nil, fmt.Errorf("add member: %w", err)
	}

	result.ID = user.ID
	result.Name = user.Name
	result.Email = user.Email
	result.Username = user.Username
	result.Role = member.Role
	return result, nil
}

func (s *familyService) createMemberUser(ctx context.Context, email, name string) (*model.User, string, error) {
	if name == "" {
		return nil, "", apperrors.ErrNameRequired
	}
	temporary, err := generateTemporaryPassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := hashPassword(temporary)
	if err != nil {
		return nil, "", err
	}

	base := usernameBase(email)
	for attempt := 1; attempt <= maxUsernameAttempts; attempt++ {
		username := base
		if attempt > 1 {
			username = base + strconv.Itoa(attempt)
		}
		user := &model.User{Name: name, Email: email, Username: &username, PasswordHash: hash}
		err := s.users.Create(ctx, user)
		switch {
		case err == nil:
			return user, temporary, nil
		case errors.Is(err, apperrors.ErrUsernameTaken):
			continue
		case errors.Is(err, apperrors.ErrEmailTaken):
			// registered concurrently; add the existing account instead
			existing, findErr := s.users.FindByEmail(ctx, email)
			if findErr != nil || existing == nil {
				return nil, "", err
			}
			return existing, "", nil
		default:
			return nil, "", fmt.Errorf("create user: %w", err)
		}
	}
	return nil, "", apperrors.ErrUsernameTaken
}

// usernameBase derives a username from the local part of an email address.
func usernameBase(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	base := b.String()
	for len(base) < 3 {
		base += "_"
	}
	if len(base) > 45 {
		base = base[:45]
	}
	return base
}

// RemoveMember removes userID from the family. Admins cannot remove themselves and the last
// admin is never removed.
func (s *familyService) RemoveMember(ctx context.Context, familyID, actorID, userID uint) error {
	if actorID == userID {
		return apperrors.ErrCannotRemoveSelf
	}
	target, err := s.families.Membership(ctx, familyID, userID)
	if err != nil {
		return fmt.Errorf("find membership: %w", err)
	}
	if target == nil {
		return apperrors.ErrMemberNotFound
	}

	removed, err := s.families.RemoveMember(ctx, familyID, userID)
	if err != nil {
		if apperrors.IsDomain(err) {
			return err
		}
		return fmt.Errorf("remove member: %w", err)
	}
	if removed == nil {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// Delete removes the family and everything scoped to it. Only the creator may do this.
func (s *familyService) Delete(ctx context.Context, familyID, actorID uint) error {
	family, err := s.families.FindByID(ctx, familyID)
	if err != nil {
		return fmt.Errorf("find family: %w", err)
	}
	if err := RequireCreator(family, actorID); err != nil {
		return err
	}

	deleted, err := s.families.Delete(ctx, familyID)
	if err != nil {
		return fmt.Errorf("delete family: %w", err)
	}
	if deleted == nil {
		return apperrors.ErrFamilyNotFound
	}
	s.categories.Invalidate(ctx, familyID)
	return nil
}
