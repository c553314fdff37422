package service

import "errors"

var (
	// ErrNoDataProvided is returned by Push when the request carries no
	// content to store.
	ErrNoDataProvided = errors.New("no data provided")

	// ErrVersionConflict is returned by Push when the client's version is
	// behind the stored one. The current server document accompanies the
	// error so the caller can rebase.
	ErrVersionConflict = errors.New("version conflict")

	// ErrInvalidVersion is returned by Push when the client claims a
	// version the server has never issued. This signals a client bug, not
	// routine concurrent editing.
	ErrInvalidVersion = errors.New("invalid client version")
)
