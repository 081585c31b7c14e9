package service

import "time"

// Clock overrides for tests in package service_test.

func SetUserServiceClock(s *UserService, now func() time.Time) {
	s.now = now
}

func SetSessionResolverClock(r *SessionResolver, now func() time.Time) {
	r.now = now
}
