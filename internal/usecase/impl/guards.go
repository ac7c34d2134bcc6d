package impl

import (
	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/usecase"
)

// requireIdentity returns the current identity or the error explaining why
// there is none. A loading session is unknown, not guest: callers must not
// take an authorization decision from it.
func requireIdentity(auth usecase.AuthSessionUsecase) (*entity.Identity, error) {
	if auth.Loading() {
		return nil, domainerrors.ErrSessionResolving
	}

	identity := auth.Current()
	if identity == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	return identity, nil
}

// sessionGuard is the same decision for services that track the identity
// themselves through the event bus rather than asking the session manager.
// Until the first identity transition has been delivered the session is
// still resolving, not guest.
func sessionGuard(resolved bool, identity *entity.Identity) error {
	if !resolved {
		return domainerrors.ErrSessionResolving
	}

	if identity == nil {
		return domainerrors.ErrNotAuthenticated
	}

	return nil
}

// requireAdmin is the client-side route guard for back-office operations.
// The server enforces authorization too; this guard just refuses to issue
// calls that are known to be forbidden.
func requireAdmin(auth usecase.AuthSessionUsecase) (*entity.Identity, error) {
	identity, err := requireIdentity(auth)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin() {
		return nil, domainerrors.ErrAdminOnly
	}

	return identity, nil
}
