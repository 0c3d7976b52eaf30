package model

import "github.com/pkg/errors"

var (
	ErrCommandNotConverted = errors.New("command not converted")
	ErrNotSelectedLanguage = errors.New("language not selected")
	ErrNotAdminUser        = errors.New("user is not admin")
	ErrScanSqlRow          = errors.New("failed scan sql row")

	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
