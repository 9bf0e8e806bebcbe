package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPermissionRequired = errors.New("insufficient permissions")
)
