package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vperic/linguachat/internal/domain"
	"github.com/vperic/linguachat/internal/repository"
)

// LanguageResolver answers "what language does this user want right now".
// It always reads the live user record: the participant snapshot on the
// conversation is display metadata only and goes stale when a user changes
// their preference mid-conversation.
type LanguageResolver struct {
	userRepo repository.UserRepository
}

func NewLanguageResolver(userRepo repository.UserRepository) *LanguageResolver {
	return &LanguageResolver{userRepo: userRepo}
}

// Resolve returns the user's current preferred language. Missing users and
// unset preferences fall back to the default.
func (r *LanguageResolver) Resolve(ctx context.Context, userID uuid.UUID) (domain.Language, error) {
	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.DefaultLanguage, err
	}
	if user == nil || !user.Language.Valid() {
		return domain.DefaultLanguage, nil
	}
	return user.Language, nil
}
