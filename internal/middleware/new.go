package middleware

import (
	pkgLog "cscx-api/pkg/log"
	"cscx-api/pkg/scope"
)

type Middleware struct {
	l      pkgLog.Logger
	jwtMgr scope.Manager
	// demoMode skips token verification and injects a fixed demo scope.
	// Enabled when no JWT secret is configured.
	demoMode bool
}

func New(l pkgLog.Logger, jwtMgr scope.Manager, demoMode bool) Middleware {
	return Middleware{
		l:        l,
		jwtMgr:   jwtMgr,
		demoMode: demoMode,
	}
}
