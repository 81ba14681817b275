// Package repository implements the client domain repositories on top of the
// HTTP data source and the local token storage.
package repository

import (
	"context"
	"errors"

	"userhub/internal/client/datasource"
	"userhub/internal/client/domain"
)

// API is the part of datasource.HTTP the repositories use.
type API interface {
	Get(ctx context.Context, path string) (*datasource.Envelope, error)
	Post(ctx context.Context, path string, body any) (*datasource.Envelope, error)
	Put(ctx context.Context, path string, body any) (*datasource.Envelope, error)
	Delete(ctx context.Context, path string) (*datasource.Envelope, error)
	SetAuthToken(token string)
	ClearAuthToken()
}

// fail turns a transport error or an unsuccessful envelope into a
// *domain.Error. The server's message wins; fallback is used when there is
// none.
func fail(env *datasource.Envelope, err error, fallback string) *domain.Error {
	if err != nil {
		var se *datasource.StatusError
		if errors.As(err, &se) {
			msg := se.Message()
			if msg == "" {
				msg = fallback
			}
			return &domain.Error{Message: msg, Status: se.Status, Err: err}
		}
		msg := err.Error()
		if msg == "" {
			msg = fallback
		}
		return &domain.Error{Message: msg, Err: err}
	}

	msg := fallback
	if env != nil && env.Message != "" {
		msg = env.Message
	}
	return &domain.Error{Message: msg}
}
