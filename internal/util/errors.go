package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("账号已被停用")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrDateOrder          = errors.New("结束日期不能早于开始日期")
	ErrInvalidStatus      = errors.New("无效的审核状态")
	ErrIllegalTransition  = errors.New("当前状态不允许该操作")
)
