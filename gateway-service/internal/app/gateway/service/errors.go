package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в транспортном слое
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrInvalidInput      = errors.New("invalid input")
)
