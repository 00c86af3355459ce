package attendance

import (
	"errors"
	"fmt"
)

// ── 考勤核心错误 ──

var (
	ErrValidation     = errors.New("参数校验失败")
	ErrAuth           = errors.New("密码错误")
	ErrNotInitialized = errors.New("该周考勤尚未初始化")
)

// ValidationError 输入缺失或格式错误；调用方可恢复，且不会修改状态。
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotInitializedError 请求的周尚未建立考勤网格
type NotInitializedError struct {
	Week string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("week %s: %s", e.Week, ErrNotInitialized.Error())
}

// Is 使 errors.Is(err, ErrNotInitialized) 成立
func (e *NotInitializedError) Is(target error) bool { return target == ErrNotInitialized }
