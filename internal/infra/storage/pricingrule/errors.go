package pricingrule

import "errors"

var (
	ErrBuildQuery = errors.New("pricingrule.repository: failed to build query")
	ErrExecQuery  = errors.New("pricingrule.repository: failed to execute query")
	ErrScanRow    = errors.New("pricingrule.repository: failed to scan row")
	ErrMapping    = errors.New("pricingrule.repository: failed to map row")
)
