package accessservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"casevault/internal/models"
)

const pkg = "accessService/"

// AccessService is the single authority on who may touch a document.
// It gates metadata reads, downloads and deletes uniformly; list
// operations filter through it item by item.
type AccessService struct {
	log          *slog.Logger
	userProvider UserProvider
	caseProvider CaseProvider
}

func New(
	log *slog.Logger,
	userProvider UserProvider,
	caseProvider CaseProvider,
) *AccessService {
	return &AccessService{
		log:          log,
		userProvider: userProvider,
		caseProvider: caseProvider,
	}
}

// CanAccess decides allow/deny for a requester and a document. The
// requester's role is re-read from the store on every call; a role
// cached on the credential object is never trusted.
func (s *AccessService) CanAccess(ctx context.Context, requesterID int64, doc *models.Document) (bool, error) {
	op := pkg + "CanAccess"

	log := s.log.With(slog.String("op", op))

	if doc == nil {
		return false, nil
	}

	user, err := s.userProvider.UserByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return false, nil
		}
		log.Error("failed to load requester", slog.String("error", err.Error()))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if !user.Active {
		return false, nil
	}

	if isPrivileged(user.RoleType) {
		return true, nil
	}

	switch normalizeTier(doc.Sensitivity) {
	case models.SensitivityPublic:
		return true, nil
	case models.SensitivityRestricted:
		return false, nil
	case models.SensitivityConfidential:
		return s.isResponsibleOrCreator(ctx, user, doc)
	default:
		// Unrecognized tier: fail closed.
		return false, nil
	}
}

// IsPrivileged reports whether the user holds a tier-1 role. The role is
// re-derived from the store, same as CanAccess.
func (s *AccessService) IsPrivileged(ctx context.Context, requesterID int64) (bool, error) {
	op := pkg + "IsPrivileged"

	user, err := s.userProvider.UserByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return user.Active && isPrivileged(user.RoleType), nil
}

func (s *AccessService) isResponsibleOrCreator(ctx context.Context, user *models.User, doc *models.Document) (bool, error) {
	op := pkg + "isResponsibleOrCreator"

	log := s.log.With(slog.String("op", op))

	if doc.CreatorID != nil && *doc.CreatorID == user.ID {
		return true, nil
	}

	if doc.CaseID == nil {
		return false, nil
	}

	c, err := s.caseProvider.CaseByID(ctx, *doc.CaseID)
	if err != nil {
		if errors.Is(err, models.ErrCaseNotFound) {
			return false, nil
		}
		log.Error("failed to load case", slog.String("error", err.Error()), slog.Int64("case_id", *doc.CaseID))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return c.ResponsibleID != nil && *c.ResponsibleID == user.ID, nil
}

func isPrivileged(roleType string) bool {
	switch strings.ToLower(roleType) {
	case models.RoleAdministrator, models.RoleTHA:
		return true
	default:
		return false
	}
}

func normalizeTier(tier string) string {
	t := strings.ToUpper(strings.TrimSpace(tier))
	if t == "" {
		return models.SensitivityConfidential
	}
	return t
}
