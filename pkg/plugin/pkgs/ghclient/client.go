package ghclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/Fl0rencess720/repoaccess/pkg/common/models"
	"github.com/google/go-github/v72/github"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

// Config controls how the GitHub API client is built.
type Config struct {
	// Token is a personal access token. Empty means unauthenticated access.
	Token string
	// BaseURL overrides https://api.github.com/, e.g. for GitHub Enterprise.
	BaseURL string
	// Transport is the base round tripper, http.DefaultTransport when nil.
	Transport http.RoundTripper
}

// Client reads repository contents through the GitHub REST contents API.
type Client struct {
	repos *github.RepositoriesService
}

func New(cfg Config) (*Client, error) {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if token := strings.TrimSpace(cfg.Token); token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	gh := github.NewClient(&http.Client{Transport: otelhttp.NewTransport(transport)})
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		gh.BaseURL = baseURL
	}

	return &Client{repos: gh.Repositories}, nil
}

// GetRepositoryStructure lists the entries under path at branch. An empty
// path lists the repository root and an empty branch the default branch.
// When path names a single file the listing holds just that file.
func (c *Client) GetRepositoryStructure(ctx context.Context, owner, repo, path, branch string) (*models.RepositoryStructure, error) {
	if err := checkRepo(owner, repo); err != nil {
		return nil, err
	}
	cleaned, err := cleanPath(path)
	if err != nil {
		return nil, err
	}

	file, dir, resp, err := c.repos.GetContents(ctx, owner, repo, cleaned, contentOptions(branch))
	if err != nil {
		return nil, wrapError(resp, err, fmt.Sprintf("get contents of %s/%s/%s", owner, repo, cleaned))
	}

	items := make([]models.RepositoryItem, 0, len(dir)+1)
	if file != nil {
		items = append(items, toItem(file))
	}
	for _, entry := range dir {
		items = append(items, toItem(entry))
	}

	return &models.RepositoryStructure{
		Path:  cleaned,
		Items: items,
	}, nil
}

// GetFileContent reads a single file at branch. UTF-8 text is returned as is,
// anything else base64 encoded.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, filePath, branch string) (*models.FileContent, error) {
	if err := checkRepo(owner, repo); err != nil {
		return nil, err
	}
	cleaned, err := cleanPath(filePath)
	if err != nil {
		return nil, err
	}
	if cleaned == "" {
		return nil, fmt.Errorf("file path is empty: %w", ErrInvalidPath)
	}

	opts := contentOptions(branch)
	file, _, resp, err := c.repos.GetContents(ctx, owner, repo, cleaned, opts)
	if err != nil {
		return nil, wrapError(resp, err, fmt.Sprintf("get file %s/%s/%s", owner, repo, cleaned))
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory: %w", cleaned, ErrNotAFile)
	}

	data, err := c.fileBytes(ctx, owner, repo, cleaned, opts, file)
	if err != nil {
		return nil, err
	}

	content, encoding := encodeContent(data)
	size := file.GetSize()
	if size == 0 {
		size = len(data)
	}
	path := file.GetPath()
	if path == "" {
		path = cleaned
	}

	return &models.FileContent{
		Path:     path,
		Content:  content,
		Size:     size,
		Encoding: encoding,
	}, nil
}

// fileBytes returns the raw bytes of file. The contents API leaves content
// empty with encoding "none" for files over 1 MB; those go through the
// download URL instead.
func (c *Client) fileBytes(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions, file *github.RepositoryContent) ([]byte, error) {
	if file.GetEncoding() != "none" {
		content, err := file.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decode file %s: %w", path, err)
		}
		return []byte(content), nil
	}

	rc, resp, err := c.repos.DownloadContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, wrapError(resp, err, fmt.Sprintf("download file %s/%s/%s", owner, repo, path))
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return data, nil
}

func contentOptions(branch string) *github.RepositoryContentGetOptions {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: branch}
}

func cleanPath(p string) (string, error) {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "", nil
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("path %q escapes the repository: %w", p, ErrInvalidPath)
		}
	}
	return p, nil
}

func toItem(entry *github.RepositoryContent) models.RepositoryItem {
	item := models.RepositoryItem{
		Name: entry.GetName(),
		Path: entry.GetPath(),
		Type: models.ItemTypeFile,
	}
	if entry.GetType() == models.ItemTypeDir {
		item.Type = models.ItemTypeDir
		return item
	}
	size := entry.GetSize()
	item.Size = &size
	return item
}

func encodeContent(data []byte) (string, string) {
	if utf8.Valid(data) {
		return string(data), models.EncodingUTF8
	}
	return base64.StdEncoding.EncodeToString(data), models.EncodingBase64
}
