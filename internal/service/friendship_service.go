package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vperic/linguachat/internal/domain"
	"github.com/vperic/linguachat/internal/repository"
)

var (
	ErrCannotFriendSelf   = errors.New("cannot send a friend request to yourself")
	ErrRequestExists      = errors.New("a request already exists for this pair")
	ErrAlreadyFriends     = errors.New("you are already friends")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrNotRequestReceiver = errors.New("only the request receiver can perform this action")
	ErrNotRequestSender   = errors.New("only the request sender can cancel")
)

type FriendshipService struct {
	friendRepo repository.FriendshipRepository
	userRepo   repository.UserRepository
	convs      *ConversationService
}

func NewFriendshipService(
	friendRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	convs *ConversationService,
) *FriendshipService {
	return &FriendshipService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		convs:      convs,
	}
}

// SendRequest creates a pending friendship toward the user with the given
// username. At most one relation exists per unordered pair, whatever its
// direction or status.
func (s *FriendshipService) SendRequest(ctx context.Context, senderID uuid.UUID, targetUsername string) (*domain.Friendship, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	if senderID == target.ID {
		return nil, ErrCannotFriendSelf
	}

	u1, u2 := domain.SortParticipants(senderID, target.ID)
	existing, err := s.friendRepo.GetByUsers(ctx, u1, u2)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == domain.FriendshipAccepted {
			return nil, ErrAlreadyFriends
		}
		return nil, ErrRequestExists
	}

	f := &domain.Friendship{
		ID:          uuid.New(),
		User1ID:     u1,
		User2ID:     u2,
		RequestedBy: senderID,
		Status:      domain.FriendshipPending,
		CreatedAt:   time.Now(),
	}

	if err := s.friendRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	return f, nil
}

// Accept marks a pending request accepted and creates the conversation
// between the pair as a side effect. Returns the conversation id.
func (s *FriendshipService) Accept(ctx context.Context, userID, requestID uuid.UUID) (string, error) {
	req, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req == nil || req.Status != domain.FriendshipPending {
		return "", ErrRequestNotFound
	}
	if req.Receiver() != userID {
		return "", ErrNotRequestReceiver
	}

	if err := s.friendRepo.Accept(ctx, requestID); err != nil {
		return "", fmt.Errorf("accepting friend request: %w", err)
	}

	conv, err := s.convs.GetOrCreate(ctx, req.User1ID, req.User2ID)
	if err != nil {
		return "", fmt.Errorf("creating conversation for friendship: %w", err)
	}

	return conv.ID, nil
}

// Reject deletes a pending request addressed to the caller.
func (s *FriendshipService) Reject(ctx context.Context, userID, requestID uuid.UUID) error {
	req, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil || req.Status != domain.FriendshipPending {
		return ErrRequestNotFound
	}
	if req.Receiver() != userID {
		return ErrNotRequestReceiver
	}

	return s.friendRepo.Delete(ctx, requestID)
}

// Cancel deletes a pending request the caller sent.
func (s *FriendshipService) Cancel(ctx context.Context, userID, requestID uuid.UUID) error {
	req, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil || req.Status != domain.FriendshipPending {
		return ErrRequestNotFound
	}
	if req.RequestedBy != userID {
		return ErrNotRequestSender
	}

	return s.friendRepo.Delete(ctx, requestID)
}

func (s *FriendshipService) ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	reqs, err := s.friendRepo.ListPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []domain.Friendship{}
	}
	return reqs, nil
}

func (s *FriendshipService) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	friends, err := s.friendRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	if friends == nil {
		friends = []domain.User{}
	}
	return friends, nil
}
