package models

const (
	ItemTypeFile = "file"
	ItemTypeDir  = "dir"

	EncodingUTF8   = "utf-8"
	EncodingBase64 = "base64"
)

// RepoStructureReq 对应 POST /api/repos/structure 的请求体
type RepoStructureReq struct {
	Owner  string `json:"owner" binding:"required" jsonschema:"Repository owner, user or organization login"`
	Repo   string `json:"repo" binding:"required" jsonschema:"Repository name"`
	Path   string `json:"path,omitempty" jsonschema:"Directory path inside the repository, empty means repository root"`
	Branch string `json:"branch,omitempty" jsonschema:"Branch, tag or commit SHA, empty means the default branch"`
}

// ReadFileReq 对应 POST /api/repos/files 的请求体
type ReadFileReq struct {
	Owner    string `json:"owner" binding:"required" jsonschema:"Repository owner, user or organization login"`
	Repo     string `json:"repo" binding:"required" jsonschema:"Repository name"`
	FilePath string `json:"file_path" binding:"required" jsonschema:"File path inside the repository"`
	Branch   string `json:"branch,omitempty" jsonschema:"Branch, tag or commit SHA, empty means the default branch"`
}

// RepositoryItem 目录列表中的单个条目
type RepositoryItem struct {
	Name string `json:"name" jsonschema:"Base name of the entry"`
	Path string `json:"path" jsonschema:"Path of the entry relative to the repository root"`
	Type string `json:"type" jsonschema:"Entry type, one of: file, dir"`
	Size *int   `json:"size,omitempty" jsonschema:"File size in bytes, only for files"`
}

// RepositoryStructure 目录列表接口响应体
type RepositoryStructure struct {
	Path  string           `json:"path" jsonschema:"Listed path, empty for the repository root"`
	Items []RepositoryItem `json:"items" jsonschema:"Entries under the listed path"`
}

// FileContent 读取文件接口响应体
type FileContent struct {
	Path     string `json:"path" jsonschema:"File path relative to the repository root"`
	Content  string `json:"content" jsonschema:"File content encoded by the encoding field"`
	Size     int    `json:"size" jsonschema:"File size in bytes"`
	Encoding string `json:"encoding" jsonschema:"Content encoding, one of: utf-8, base64"`
}

// ErrorResp 所有失败响应的统一结构
type ErrorResp struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResp struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}
