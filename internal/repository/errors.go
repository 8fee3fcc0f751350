package repository

import "errors"

// 対象が存在しないことを統一して表す
var ErrNotFound = errors.New("not found")
