package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：考勤文档已被其他进程修改
var ErrOptimisticLock = errors.New("考勤文档已被其他操作修改，请刷新后重试")
