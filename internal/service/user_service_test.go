package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vperic/linguachat/internal/domain"
)

func TestUpdateProfilePartial(t *testing.T) {
	alice := domain.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice", DisplayName: "Alice", Language: domain.LanguageEnglish}
	svc := NewUserService(newFakeUserRepo(alice))

	name := "  Alicia  "
	lang := domain.LanguageSpanish
	updated, err := svc.UpdateProfile(context.Background(), alice.ID, UpdateProfileInput{
		DisplayName: &name,
		Language:    &lang,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", updated.DisplayName)
	assert.Equal(t, domain.LanguageSpanish, updated.Language)
	assert.Equal(t, "alice", updated.Username)
}

func TestUpdateProfileIgnoresInvalidLanguage(t *testing.T) {
	alice := domain.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice", DisplayName: "Alice", Language: domain.LanguageEnglish}
	svc := NewUserService(newFakeUserRepo(alice))

	bad := domain.Language("xx")
	updated, err := svc.UpdateProfile(context.Background(), alice.ID, UpdateProfileInput{Language: &bad})
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, updated.Language)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchNormalizesTerm(t *testing.T) {
	alice := domain.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice", DisplayName: "Alice"}
	alina := domain.User{ID: uuid.New(), Email: "alina@example.com", Username: "alina", DisplayName: "Alina"}
	bob := domain.User{ID: uuid.New(), Email: "bob@example.com", Username: "bob", DisplayName: "Bob"}
	svc := NewUserService(newFakeUserRepo(alice, alina, bob))

	results, err := svc.Search(context.Background(), " ALI ", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.Search(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLanguageResolverLiveLookup(t *testing.T) {
	alice := domain.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice", Language: domain.LanguageEnglish}
	users := newFakeUserRepo(alice)
	resolver := NewLanguageResolver(users)

	lang, err := resolver.Resolve(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, lang)

	users.setLanguage(alice.ID, domain.LanguageSpanish)
	lang, err = resolver.Resolve(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageSpanish, lang)

	// unknown users fall back to the default
	lang, err = resolver.Resolve(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguage, lang)
}
