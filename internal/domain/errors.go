package domain

import "errors"

var (
	ErrInstallerNotFound = errors.New("installer executable not found")
	ErrRunNotFound       = errors.New("run not found")
)
