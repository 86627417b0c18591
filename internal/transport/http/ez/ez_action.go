// Package ez 是 gin 之上的轻封装：泛型 Action 一行注册，
// 统一入参绑定、领域错误到包体/状态码的映射。
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"car-lease-service/internal/domain"
	resp "car-lease-service/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// RespError 由 handler 直接指定状态码和包体的错误（如带数据的 FAILURE）。
type RespError struct {
	Status int
	Body   resp.Envelope
}

func (e *RespError) Error() string { return e.Body.Message }

// Fail 构造一个带自定义包体的失败。
func Fail(status int, msg string, data any) error {
	return &RespError{Status: status, Body: resp.Failure(msg, data)}
}

// 领域错误分类 → HTTP 状态码。业务违规不是服务端故障，全部 4xx。
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRoleViolation):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrBusinessRule):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// WriteErr 统一错误出口（中间件与非 Action 的 handler 也用它）。
func WriteErr(c *gin.Context, err error) {
	var re *RespError
	if errors.As(err, &re) {
		c.JSON(re.Status, re.Body)
		return
	}
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// 内部错误细节不外泄
		_ = c.Error(err)
		msg = "internal error"
	}
	c.JSON(status, resp.Failure(msg, nil))
}

// Action 非 CRUD 动作：I 入参，O 出参。
// Handler 返回 (数据, 成功消息, 错误)。
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/users"、"/leases/:leaseId/end"
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, string, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, resp.Failure(bindErr.Error(), nil))
			return
		}

		out, msg, err := a.Handler(c, &in)
		if err != nil {
			WriteErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.Success(msg, out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
