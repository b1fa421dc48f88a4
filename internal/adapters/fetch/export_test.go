package fetch

import "net/http"

// NewTarballFetcherWithClient creates a TarballFetcher with a custom http client for testing.
func NewTarballFetcherWithClient(client *http.Client) *TarballFetcher {
	return newTarballFetcherWithClient(client)
}

// NewGitFetcherWithEnv creates a GitFetcher reading credentials from env.
func NewGitFetcherWithEnv(env map[string]string) *GitFetcher {
	return &GitFetcher{lookup: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
}

// AuthFor exposes the credential selection for a URL.
func (f *GitFetcher) AuthFor(url string) any {
	return f.auth(url)
}
