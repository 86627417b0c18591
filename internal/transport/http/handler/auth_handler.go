package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-lease-service/internal/core/auth"
	"car-lease-service/internal/service"
	"car-lease-service/internal/transport/http/ez"
	"car-lease-service/pkg/utils"
)

// AuthHandler 颁发开发/集成用的访问令牌。
// 只有注册时设置过密码的用户才能换取令牌。
type AuthHandler struct {
	users *service.UserService
	jwter *auth.JWTer
}

func NewAuthHandler(users *service.UserService, jwter *auth.JWTer) *AuthHandler {
	return &AuthHandler{users: users, jwter: jwter}
}

func (h *AuthHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	type tokenIn struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password"`
	}
	type tokenOut struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	ez.RegisterAction(e, ez.Action[tokenIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/token",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *tokenIn) (tokenOut, string, error) {
			u, err := h.users.FindByEmail(c.Request.Context(), in.Email)
			if err != nil {
				return tokenOut{}, "", err
			}
			// 没设密码的用户（含种子数据）不能换取令牌，
			// 否则只凭邮箱就能拿到任意角色的令牌
			if u == nil || u.PasswordHash == "" || !utils.CheckPassword(in.Password, u.PasswordHash) {
				return tokenOut{}, "", ez.Fail(http.StatusUnauthorized, "invalid credentials", nil)
			}
			tok, err := h.jwter.Issue(u.ID, string(u.Role))
			if err != nil {
				return tokenOut{}, "", err
			}
			return tokenOut{Token: tok, Role: string(u.Role)}, "Token issued.", nil
		},
	})
}
