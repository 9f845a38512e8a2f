package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"whispr/domain"
	"whispr/errors"
	"whispr/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// CreateGroupCommand is the validated input of group creation.
type CreateGroupCommand struct {
	Name       string   `validate:"required,max=30"`
	CreatorUID string   `validate:"required"`
	MemberIDs  []string `validate:"required,min=1,dive,required"`
}

type IGroupService interface {
	CreateGroup(ctx context.Context, cmd CreateGroupCommand) (string, error)
	DeleteOrLeaveGroup(ctx context.Context, groupID, actorUID string) error
}

// GroupService creates, shrinks, and dissolves multi-member
// conversations, with creator-only delete rights.
type GroupService struct {
	users  repositories.IUserRepository
	groups repositories.IGroupRepository
	quota  IQuotaService
	log    *slog.Logger
}

func NewGroupService(
	users repositories.IUserRepository,
	groups repositories.IGroupRepository,
	quota IQuotaService,
	log *slog.Logger,
) *GroupService {
	return &GroupService{users: users, groups: groups, quota: quota, log: log}
}

// CreateGroup persists the group, links it to the creator synchronously,
// then fans the other members' membership writes out in the background.
// A failed creator link still returns the group id: the group exists
// durably at that point, so the caller gets the id together with a
// degraded-mode error to surface.
func (s *GroupService) CreateGroup(ctx context.Context, cmd CreateGroupCommand) (string, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if err := validate.Struct(cmd); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidGroup, err)
	}

	creator, err := s.users.GetUser(ctx, cmd.CreatorUID)
	if err != nil {
		return "", err
	}
	if err := s.quota.Check(creator); err != nil {
		return "", err
	}

	now := domain.Now()
	group := domain.Group{
		Name:            cmd.Name,
		CreatedBy:       cmd.CreatorUID,
		CreatedAt:       now,
		LastMessageTime: now,
		Members:         lo.Uniq(append([]string{cmd.CreatorUID}, cmd.MemberIDs...)),
	}
	groupID, err := s.groups.CreateGroup(ctx, group)
	if err != nil {
		return "", err
	}

	if err := s.users.SaveMembership(ctx, cmd.CreatorUID, groupID, domain.Membership{JoinedAt: now}); err != nil {
		s.log.Warn("group created but creator membership write failed", "group", groupID, "error", err)
		return groupID, fmt.Errorf("%w: group %s is not linked to your profile yet", errors.ErrPartialFailure, groupID)
	}

	members := lo.Without(lo.Uniq(cmd.MemberIDs), cmd.CreatorUID)
	go s.addMembers(context.WithoutCancel(ctx), groupID, cmd.CreatorUID, members)

	return groupID, nil
}

// addMembers writes each member's membership entry independently. One
// failure neither rolls back the group nor affects the other members;
// it is logged and dropped.
func (s *GroupService) addMembers(ctx context.Context, groupID, addedBy string, memberIDs []string) {
	for _, uid := range memberIDs {
		m := domain.Membership{JoinedAt: domain.Now(), AddedBy: addedBy}
		if err := s.users.SaveMembership(ctx, uid, groupID, m); err != nil {
			s.log.Error("membership write failed", "group", groupID, "member", uid, "error", err)
		}
	}
}

// DeleteOrLeaveGroup applies the asymmetric semantics: the creator
// dissolves the group for everyone, any other member only removes
// themselves while the group and its history persist.
func (s *GroupService) DeleteOrLeaveGroup(ctx context.Context, groupID, actorUID string) error {
	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if group.IsCreator(actorUID) {
		if err := s.groups.DeleteGroup(ctx, groupID); err != nil {
			return err
		}
		for _, member := range group.Members {
			if err := s.users.RemoveMembership(ctx, member, groupID); err != nil {
				s.log.Warn("membership entry not pruned after group delete",
					"group", groupID, "member", member, "error", err)
			}
		}
		return nil
	}

	if err := s.groups.RemoveMember(ctx, groupID, actorUID); err != nil {
		return err
	}
	return s.users.RemoveMembership(ctx, actorUID, groupID)
}
