package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"car-lease-service/internal/domain"
	"car-lease-service/pkg/utils"
)

// UserService 用户注册与查询。用户创建后不再变更（角色固定、邮箱为业务主键）。
type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

type RegisterUserInput struct {
	Name     string
	Email    string
	Role     string
	Password string // 可选；仅用于 /auth/token
}

// Register 注册用户。邮箱已存在时返回已有记录和 ErrAlreadyExists，
// 由 transport 决定如何呈现（带数据的 FAILURE 包体）。
// 唯一索引是最终防线：并发下预检查可能漏判，Create 撞唯一键后回读一次。
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" {
		return nil, domain.Validationf("email cannot be null or empty")
	}
	if name == "" {
		return nil, domain.Validationf("name cannot be null or empty")
	}
	role, ok := domain.ParseRole(strings.TrimSpace(in.Role))
	if !ok {
		return nil, domain.Validationf("invalid role: %s", in.Role)
	}

	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		s.log.Warn("user already exists", zap.String("email", email))
		return existing, domain.AlreadyExistsf("user already exists with this email")
	}

	u := &domain.User{
		ID:    utils.NewID(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	if pw := strings.TrimSpace(in.Password); pw != "" {
		u.PasswordHash = utils.HashPassword(pw)
	}

	if err := s.users.Create(ctx, u); err != nil {
		if utils.IsDupKey(err) {
			if existing, e2 := s.users.FindByEmail(ctx, email); e2 == nil && existing != nil {
				return existing, domain.AlreadyExistsf("user already exists with this email")
			}
		}
		return nil, err
	}
	s.log.Info("user registered", zap.String("email", u.Email), zap.String("role", string(u.Role)))
	return u, nil
}

// RegisterMany 批量注册，逐个复用 Register；已存在的邮箱跳过。
// 供种子数据引导使用，天然幂等。
func (s *UserService) RegisterMany(ctx context.Context, ins []RegisterUserInput) (created int, err error) {
	for _, in := range ins {
		_, rerr := s.Register(ctx, in)
		switch {
		case rerr == nil:
			created++
		case isAlreadyExists(rerr):
			// 幂等：跳过
		default:
			return created, rerr
		}
	}
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFoundf("user not found with ID: %s", id)
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// List 分页列出用户（管理端）。page 从 1 起，size 限制在 [1,100]。
func (s *UserService) List(ctx context.Context, page, size int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return s.users.List(ctx, (page-1)*size, size)
}

func isAlreadyExists(err error) bool { return errors.Is(err, domain.ErrAlreadyExists) }
