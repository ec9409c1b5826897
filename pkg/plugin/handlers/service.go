package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Fl0rencess720/repoaccess/pkg/common/models"
	"github.com/Fl0rencess720/repoaccess/pkg/common/observability"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/pkgs/ghclient"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/pkgs/response"
	"go.uber.org/zap"
)

// RepoClient is the GitHub read surface the handlers depend on.
type RepoClient interface {
	GetRepositoryStructure(ctx context.Context, owner, repo, path, branch string) (*models.RepositoryStructure, error)
	GetFileContent(ctx context.Context, owner, repo, filePath, branch string) (*models.FileContent, error)
}

// APIError carries the error kind and message reported to callers.
type APIError struct {
	Kind    response.ErrorKind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func invalidRequest(format string, args ...any) *APIError {
	return &APIError{Kind: response.InvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// RepoService validates repository reads and classifies upstream failures.
// It is shared by the HTTP routes and the MCP tools.
type RepoService struct {
	client RepoClient
}

func NewRepoService(client RepoClient) *RepoService {
	return &RepoService{client: client}
}

func (s *RepoService) Structure(ctx context.Context, req models.RepoStructureReq) (*models.RepositoryStructure, error) {
	owner, repo, err := validateRepo(req.Owner, req.Repo)
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(req.Path)
	branch := strings.TrimSpace(req.Branch)

	out, err := s.client.GetRepositoryStructure(ctx, owner, repo, path, branch)
	if err != nil {
		return nil, classify(ctx, err, &APIError{
			Kind:    response.RepositoryNotFound,
			Message: fmt.Sprintf("Repository %s/%s not found", owner, repo),
		},
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.String("path", path),
			zap.String("branch", branch),
		)
	}
	return out, nil
}

func (s *RepoService) File(ctx context.Context, req models.ReadFileReq) (*models.FileContent, error) {
	owner, repo, err := validateRepo(req.Owner, req.Repo)
	if err != nil {
		return nil, err
	}
	filePath := strings.TrimSpace(req.FilePath)
	if strings.Trim(filePath, "/") == "" {
		return nil, invalidRequest("file_path is required")
	}
	branch := strings.TrimSpace(req.Branch)

	out, err := s.client.GetFileContent(ctx, owner, repo, filePath, branch)
	if err != nil {
		return nil, classify(ctx, err, &APIError{
			Kind:    response.FileNotFound,
			Message: fmt.Sprintf("File %s not found in %s/%s", filePath, owner, repo),
		},
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.String("file_path", filePath),
			zap.String("branch", branch),
		)
	}
	return out, nil
}

// classify maps a client error onto the reported kind. notFound is returned
// for upstream 404s.
func classify(ctx context.Context, err error, notFound *APIError, fields ...zap.Field) *APIError {
	fields = append(fields, zap.Error(err))
	switch {
	case errors.Is(err, ghclient.ErrNotFound):
		observability.Logger(ctx).Warn("GitHub resource not found", fields...)
		notFound.Err = err
		return notFound
	case errors.Is(err, ghclient.ErrInvalidPath),
		errors.Is(err, ghclient.ErrInvalidName),
		errors.Is(err, ghclient.ErrNotAFile):
		observability.Logger(ctx).Warn("Rejected repository request", fields...)
		return &APIError{Kind: response.InvalidRequest, Message: err.Error(), Err: err}
	default:
		observability.Logger(ctx).Error("GitHub API request failed", fields...)
		return &APIError{
			Kind:    response.GitHubAPIError,
			Message: "Error accessing GitHub API: " + err.Error(),
			Err:     err,
		}
	}
}

func validateRepo(owner, repo string) (string, string, error) {
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSpace(repo)
	if owner == "" {
		return "", "", invalidRequest("owner is required")
	}
	if repo == "" {
		return "", "", invalidRequest("repo is required")
	}
	if !ghclient.ValidName(owner) {
		return "", "", invalidRequest("invalid owner %q: only letters, digits, '.', '_' and '-' are allowed", owner)
	}
	if !ghclient.ValidName(repo) {
		return "", "", invalidRequest("invalid repo %q: only letters, digits, '.', '_' and '-' are allowed", repo)
	}
	return owner, repo, nil
}
