package scraping

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"dev.hon.one/sodola/common"
)

// LoginPath - Form target of the web UI login page.
const LoginPath = "/login.cgi"

// loginCookie - Cookie the login page script sets to the credential hash before submitting.
const loginCookie = "admin"

// CredentialHash - Lowercase hex MD5 of username followed by password, as computed by the login page.
func CredentialHash(username string, password string) string {
	sum := md5.Sum([]byte(username + password))
	return hex.EncodeToString(sum[:])
}

// Login - Log in the session.
//
// The device has no definite success signal, so this is a heuristic: a 200 response which
// redirected away from the login page counts as success, and so does a 200 response whose body
// does not mention "error". Anything else is ErrAuthentication.
func Login(ctx context.Context, session *Session, credential common.Credential, timeout time.Duration) error {
	hash := CredentialHash(credential.Username, credential.Password)
	// The server may read the cookie instead of the form field
	session.SetCookie(loginCookie, hash)

	form := map[string]string{
		"username": credential.Username,
		"password": credential.Password,
		"Response": hash,
		"language": "EN",
	}
	response, err := session.Post(ctx, LoginPath, form, timeout)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	loginURL := session.URL(LoginPath)
	if !loginSucceeded(response, loginURL) {
		log.WithFields(log.Fields{
			"url":    response.URL,
			"status": response.StatusCode,
		}).Debug("Login rejected")
		return fmt.Errorf("%w: status %v from %v", ErrAuthentication, response.StatusCode, response.URL)
	}
	return nil
}

func loginSucceeded(response *Response, loginURL string) bool {
	if response.StatusCode != http.StatusOK {
		return false
	}
	// Redirected to a post-login page
	if response.URL != loginURL && !strings.Contains(response.URL, strings.TrimPrefix(LoginPath, "/")) {
		return true
	}
	// Some firmware answers 200 on the login URL, with an error message on failure
	return !strings.Contains(strings.ToLower(response.Body), "error")
}
