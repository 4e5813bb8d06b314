package config

import "errors"

var (
	ErrInvalidStorageConfigs     = errors.New("invalid storage configs: database DSN is required")
	ErrInvalidAppConfigs         = errors.New("invalid app configs: token sign key and issuer are required")
	ErrInvalidCleanlinessConfigs = errors.New("invalid cleanliness configs")
)
