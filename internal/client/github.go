package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"boardman-api/internal/metrics"
)

// ErrRepoFetch is returned when any of the upstream reads carries an error
// envelope instead of the expected payload.
var ErrRepoFetch = errors.New("error fetching repository information")

// Branch is the minimal projection of an upstream branch
type Branch struct {
	Name          string
	LastCommitSha string
}

// Pull is the minimal projection of an upstream pull request
type Pull struct {
	Number int
	Title  string
}

// Issue is the minimal projection of an upstream issue
type Issue struct {
	Number int
	Title  string
}

// Commit is the minimal projection of an upstream commit
type Commit struct {
	Sha     string
	Message string
}

// RepoInfo aggregates the five upstream reads
type RepoInfo struct {
	RepoID   int64
	Branches []Branch
	Pulls    []Pull
	Issues   []Issue
	Commits  []Commit
}

// GitHubClient defines the interface for the GitHub read-through proxy
type GitHubClient interface {
	// FetchRepoInfo fetches repository metadata with five parallel reads.
	// An empty ghToken means unauthenticated access.
	FetchRepoInfo(ctx context.Context, owner, repo, ghToken string) (*RepoInfo, error)
}

// githubClient implements GitHubClient against the GitHub REST API
type githubClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewGitHubClient creates a new GitHub API client.
// baseURL defaults to the public API when empty; tests point it at a local server.
func NewGitHubClient(baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) GitHubClient {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &githubClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// errEnvelope matches the upstream error body shape
type errEnvelope struct {
	Message string `json:"message"`
}

// upstream wire shapes, pared down to what the projection needs
type ghRepo struct {
	ID int64 `json:"id"`
}

type ghBranch struct {
	Name   string `json:"name"`
	Commit struct {
		Sha string `json:"sha"`
	} `json:"commit"`
}

type ghPull struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

type ghIssue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

type ghCommit struct {
	Sha    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

func (c *githubClient) FetchRepoInfo(ctx context.Context, owner, repo, ghToken string) (*RepoInfo, error) {
	base := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	paths := []string{"", "/branches", "/pulls", "/issues", "/commits"}

	bodies := make([][]byte, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			bodies[i], errs[i] = c.get(ctx, url, ghToken)
		}(i, base+path)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			c.logger.Warn("GitHub fetch failed",
				zap.String("path", paths[i]),
				zap.String("owner", owner),
				zap.String("repo", repo),
				zap.Error(err),
			)
			return nil, fmt.Errorf("github fetch: %w", err)
		}
	}

	// Any body carrying a message envelope fails the call wholesale
	for _, body := range bodies {
		var env errEnvelope
		if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
			return nil, ErrRepoFetch
		}
	}

	var (
		repoData     ghRepo
		branchesData []ghBranch
		pullsData    []ghPull
		issuesData   []ghIssue
		commitsData  []ghCommit
	)
	if err := json.Unmarshal(bodies[0], &repoData); err != nil {
		return nil, ErrRepoFetch
	}
	if err := json.Unmarshal(bodies[1], &branchesData); err != nil {
		return nil, ErrRepoFetch
	}
	if err := json.Unmarshal(bodies[2], &pullsData); err != nil {
		return nil, ErrRepoFetch
	}
	if err := json.Unmarshal(bodies[3], &issuesData); err != nil {
		return nil, ErrRepoFetch
	}
	if err := json.Unmarshal(bodies[4], &commitsData); err != nil {
		return nil, ErrRepoFetch
	}

	info := &RepoInfo{
		RepoID:   repoData.ID,
		Branches: make([]Branch, 0, len(branchesData)),
		Pulls:    make([]Pull, 0, len(pullsData)),
		Issues:   make([]Issue, 0, len(issuesData)),
		Commits:  make([]Commit, 0, len(commitsData)),
	}
	for _, b := range branchesData {
		info.Branches = append(info.Branches, Branch{Name: b.Name, LastCommitSha: b.Commit.Sha})
	}
	for _, p := range pullsData {
		info.Pulls = append(info.Pulls, Pull{Number: p.Number, Title: p.Title})
	}
	for _, i := range issuesData {
		info.Issues = append(info.Issues, Issue{Number: i.Number, Title: i.Title})
	}
	for _, cm := range commitsData {
		info.Commits = append(info.Commits, Commit{Sha: cm.Sha, Message: cm.Commit.Message})
	}

	return info, nil
}

// get performs a single authenticated read and returns the raw body
func (c *githubClient) get(ctx context.Context, url, ghToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if ghToken != "" {
		req.Header.Set("Authorization", "token "+ghToken)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(req.URL.Path, http.MethodGet, statusCode, duration, err)
	}

	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
