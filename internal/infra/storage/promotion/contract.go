package promotion

import (
	"github.com/m04kA/SMC-CleaningBookingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
