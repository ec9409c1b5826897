package mcp

import (
	"context"

	"github.com/Fl0rencess720/repoaccess/pkg/common/models"
	"github.com/Fl0rencess720/repoaccess/pkg/plugin/handlers"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type repoTools struct {
	svc *handlers.RepoService
}

func registerRepoTools(server *sdkmcp.Server, svc *handlers.RepoService) {
	tools := &repoTools{svc: svc}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "repo_structure_get",
		Description: "List files and directories under a path of a GitHub repository",
	}, tools.getStructure)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "repo_file_get",
		Description: "Read a file from a GitHub repository, text as utf-8 and binary as base64",
	}, tools.getFile)
}

func (t *repoTools) getStructure(ctx context.Context, _ *sdkmcp.CallToolRequest, in models.RepoStructureReq) (*sdkmcp.CallToolResult, models.RepositoryStructure, error) {
	out, err := t.svc.Structure(ctx, in)
	if err != nil {
		return nil, models.RepositoryStructure{}, err
	}
	return nil, *out, nil
}

func (t *repoTools) getFile(ctx context.Context, _ *sdkmcp.CallToolRequest, in models.ReadFileReq) (*sdkmcp.CallToolResult, models.FileContent, error) {
	out, err := t.svc.File(ctx, in)
	if err != nil {
		return nil, models.FileContent{}, err
	}
	return nil, *out, nil
}
