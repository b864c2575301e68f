package service

import (
	"context"
	"fmt"

	"github.com/lshigami/placement-portal/internal/dto"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminUserService interface {
	List(ctx context.Context, filter repository.UserFilter) (*dto.UserListResponse, error)
	SetApproved(ctx context.Context, userID uint, approved bool) (*dto.UserDTO, error)
}

type adminUserService struct {
	userRepo repository.UserRepository
}

func NewAdminUserService(userRepo repository.UserRepository) AdminUserService {
	return &adminUserService{userRepo: userRepo}
}

func (s *adminUserService) List(ctx context.Context, filter repository.UserFilter) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	page := filter.Page.Normalized()
	resp := &dto.UserListResponse{
		Users: make([]dto.UserDTO, 0, len(users)),
		Meta:  dto.PageMeta{Page: page.Page, PageSize: page.PageSize, Total: total},
	}
	for i := range users {
		resp.Users = append(resp.Users, toUserDTO(&users[i]))
	}
	return resp, nil
}

func (s *adminUserService) SetApproved(ctx context.Context, userID uint, approved bool) (*dto.UserDTO, error) {
	if err := s.userRepo.SetApproved(ctx, userID, approved); err != nil {
		return nil, notFoundOr(err, "user %d", userID)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user %d", userID)
	}
	log.Info().Uint("userID", userID).Bool("approved", approved).Msg("User approval changed")
	out := toUserDTO(user)
	return &out, nil
}
