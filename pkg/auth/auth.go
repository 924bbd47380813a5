package auth

import (
	"crypto/subtle"
	"errors"
)

var (
	// ErrNoUsername is returned, when no username has been configured.
	ErrNoUsername = errors.New("no username specified (BLU_AUTH_USERNAME)")
	// ErrNoPassword is returned, when no password has been configured.
	ErrNoPassword = errors.New("no password specified (BLU_AUTH_PASSWORD)")
)

// Authenticator provides an interface to authenticate
// privileged user who are the only ones being able to
// trigger the recomputation of epochs.
type Authenticator interface {

	// CheckAuthentication checks whether the given username
	// and password are correct. True will be returned, if it
	// is the case. Otherwise, false.
	CheckAuthentication(username, password string) bool
}

// Credentials is an object containing a  username
// and corresponding password in plain text.
type Credentials struct {
	username string
	password string
}

// CachedCredentials is an Authenticator that stores the
// username and password in plain text in cache.
type CachedCredentials struct {
	credentials Credentials
}

// NewCredentialsAuthentication expects a single username and
// password, which are usually taken from the environment variables
// 'BLU_AUTH_USERNAME' and 'BLU_AUTH_PASSWORD'. If those two values
// are specified, then a valid Authenticator will be returned.
//
// Otherwise, if only one of them isn't specified, an error will
// be returned.
func NewCredentialsAuthentication(username, password string) (Authenticator, error) {
	if username == "" {
		return nil, ErrNoUsername
	}
	if password == "" {
		return nil, ErrNoPassword
	}
	return &CachedCredentials{credentials: Credentials{username: username, password: password}}, nil
}

func (auth *CachedCredentials) CheckAuthentication(username, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(auth.credentials.username), []byte(username))
	passMatch := subtle.ConstantTimeCompare([]byte(auth.credentials.password), []byte(password))
	return userMatch&passMatch == 1
}
