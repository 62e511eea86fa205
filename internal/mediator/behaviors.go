package mediator

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
	"github.com/oksasatya/employee-hierarchy-api/pkg/result"
	"github.com/oksasatya/employee-hierarchy-api/pkg/validation"
)

// Logging records start and end of every request at debug level, failures at info
// and fatal errors at error level.
func Logging(logger *logrus.Logger) Behavior {
	return func(ctx context.Context, req Request, next Next) (Outcome, error) {
		entry := logger.WithFields(logrus.Fields{
			"request":    req.Name,
			"kind":       req.Kind.String(),
			"request_id": helpers.RequestIDFrom(ctx),
		})
		entry.Debug("handling request")
		start := time.Now()

		out, err := next(ctx)

		entry = entry.WithField("duration_ms", time.Since(start).Milliseconds())
		switch {
		case err != nil:
			entry.WithError(err).Error("request failed")
		case out != nil && out.Failed():
			f := out.Failure()
			entry.WithFields(logrus.Fields{
				"error_code":       f.Code,
				"error_definition": f.Definition.String(),
			}).Info("request completed with failure")
		default:
			entry.Debug("request handled")
		}
		return out, err
	}
}

// Validation runs struct tag validation over the request payload and short circuits
// with a Validation failure listing every invalid field.
func Validation(v *validator.Validate) Behavior {
	return func(ctx context.Context, req Request, next Next) (Outcome, error) {
		if err := v.StructCtx(ctx, req.Payload); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return nil, err
			}
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = validation.FieldMessage(fe)
			}
			return Fail(result.ValidationError(req.Name, fields)), nil
		}
		return next(ctx)
	}
}
