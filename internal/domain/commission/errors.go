package commission

import "errors"

var ErrCommissionNotFound = errors.New("commission not found")
