package config

type Config struct {
	Port string `json:"port"`

	ServiceName    string `json:"service_name"`
	ServiceVersion string `json:"service_version"`

	GitHubToken   string `json:"-"`
	GitHubBaseURL string `json:"github_base_url"`

	ManifestPath string `json:"manifest_path"`
}
