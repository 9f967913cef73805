package services

import (
	"credstore/internal/app/deps"
	drl "credstore/internal/core/domain/rate_limiter"
	"credstore/internal/core/services"
	getpasswordentry "credstore/internal/core/services/get_password_entry"
	ratelimiting "credstore/internal/core/services/rate_limiting"
	resetpassword "credstore/internal/core/services/reset_password"
	savepasswordentry "credstore/internal/core/services/save_password_entry"
)

type Services struct {
	ResetPassword     services.Service[resetpassword.Input, resetpassword.Result]
	SavePasswordEntry services.Service[savepasswordentry.Input, savepasswordentry.Result]
	GetPasswordEntry  services.Service[getpasswordentry.Input, getpasswordentry.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.ResetPassword = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: deps.Config.ResetPasswordRateLimitPerMinute},
		resetpassword.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.SecretDeriver,
		),
	)
	s.SavePasswordEntry = savepasswordentry.New(
		deps.Logger,
		deps.PasswordEntryStore,
		deps.IdentityGenerator,
	)
	s.GetPasswordEntry = getpasswordentry.New(
		deps.Logger,
		deps.PasswordEntryStore,
	)

	return s
}
