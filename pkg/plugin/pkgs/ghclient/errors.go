package ghclient

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/google/go-github/v72/github"
)

var (
	ErrNotFound    = errors.New("github resource not found")
	ErrInvalidPath = errors.New("invalid repository path")
	ErrNotAFile    = errors.New("path is not a file")
	ErrInvalidName = errors.New("invalid owner or repository name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidName reports whether name can be used as a GitHub owner or repository
// name. It is interpolated into the request URL unescaped.
func ValidName(name string) bool {
	return name != "." && name != ".." && namePattern.MatchString(name)
}

func checkRepo(owner, repo string) error {
	if !ValidName(owner) {
		return fmt.Errorf("owner %q: %w", owner, ErrInvalidName)
	}
	if !ValidName(repo) {
		return fmt.Errorf("repo %q: %w", repo, ErrInvalidName)
	}
	return nil
}

// IsNotFound reports whether err came from a GitHub 404 Not Found response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func wrapError(resp *github.Response, err error, op string) error {
	if errors.Is(err, github.ErrPathForbidden) {
		return fmt.Errorf("%s: %w", op, ErrInvalidPath)
	}
	if isNotFoundResponse(resp, err) {
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isNotFoundResponse(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
