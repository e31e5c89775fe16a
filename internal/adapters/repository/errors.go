package repository

import (
	"errors"

	"github.com/okian/cvparse/internal/domain/model"
)

// Sentinel kinds for store errors.
var (
	ErrNotFound     = model.ErrJobNotFound
	ErrInvalidLimit = errors.New("invalid list limit")
	ErrInvalidJob   = errors.New("job id is required")
)
