package domain

import (
	"errors"
	"fmt"
)

// 领域错误分类。transport 层据此映射 HTTP 状态码与响应包体，
// service 层只返回这几类，不直接感知 HTTP。
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrRoleViolation = errors.New("role violation")
	ErrBusinessRule  = errors.New("business rule violation")
	ErrValidation    = errors.New("validation failed")
)

// Error 带上下文消息的领域错误，Unwrap 到上面的分类哨兵。
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func AlreadyExistsf(format string, args ...any) error {
	return &Error{Kind: ErrAlreadyExists, Msg: fmt.Sprintf(format, args...)}
}

func RoleViolationf(format string, args ...any) error {
	return &Error{Kind: ErrRoleViolation, Msg: fmt.Sprintf(format, args...)}
}

func BusinessRulef(format string, args ...any) error {
	return &Error{Kind: ErrBusinessRule, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}
