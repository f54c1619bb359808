package apperror

import (
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"go.uber.org/zap"
)

// Report classifies err and logs it when it is not a business-rule failure.
func Report(log logger.ZapLogger, op string, err error) error {
	appErr := From(err)
	if appErr == nil {
		return nil
	}
	if appErr.Kind == KindServerError {
		log.Error(op+" failed", zap.Error(err))
	}
	return appErr
}
