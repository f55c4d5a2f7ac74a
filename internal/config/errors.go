package config

import "errors"

var ErrInvalidProperties = errors.New("invalid properties")
