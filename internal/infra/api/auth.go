package api

import (
	"context"
	"encoding/json"
	"net/http"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"

	"github.com/pkg/errors"
)

type authAPI struct {
	c *Client
}

// Auth returns the credential-exchange surface of the client.
func (c *Client) Auth() service.AuthAPI {
	return authAPI{c: c}
}

// Login exchanges credentials for a bearer token and the identity behind it.
func (a authAPI) Login(ctx context.Context, creds service.Credentials) (*service.AuthResult, error) {
	var result service.AuthResult
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", creds, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Register creates an account and signs it in, in one round-trip.
func (a authAPI) Register(ctx context.Context, reg service.Registration) (*service.AuthResult, error) {
	var result service.AuthResult
	if err := a.c.do(ctx, http.MethodPost, "/auth/register", reg, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

type profileAPI struct {
	c *Client
}

// Profile returns the profile surface of the client.
func (c *Client) Profile() service.ProfileAPI {
	return profileAPI{c: c}
}

// FetchProfile resolves the current bearer token into its identity.
func (p profileAPI) FetchProfile(ctx context.Context) (*entity.Identity, error) {
	// The profile endpoint wraps its payload inconsistently across
	// deployments; unwrap here so callers always get a bare identity.
	raw, err := p.c.doRaw(ctx, http.MethodGet, "/profile", nil)
	if err != nil {
		return nil, err
	}

	return decodeIdentity(raw)
}

// UpdateProfile applies the changes and returns the raw response for the
// auth manager's envelope-tolerant merge.
func (p profileAPI) UpdateProfile(ctx context.Context, update service.ProfileUpdate) ([]byte, error) {
	return p.c.doRaw(ctx, http.MethodPut, "/profile", update)
}

// profileEnvelope matches the wrapper shapes the profile endpoint may use.
type profileEnvelope struct {
	User     *entity.Identity `json:"user"`
	Identity *entity.Identity `json:"identity"`
}

// decodeIdentity accepts a bare identity object or a {"user": ...} /
// {"identity": ...} envelope.
func decodeIdentity(raw []byte) (*entity.Identity, error) {
	var envelope profileEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.User != nil {
			return envelope.User, nil
		}
		if envelope.Identity != nil {
			return envelope.Identity, nil
		}
	}

	var bare entity.Identity
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, errors.Wrap(err, "unrecognized profile payload")
	}

	return &bare, nil
}
