package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"boardman-api/internal/client"
	"boardman-api/internal/dto"
	"boardman-api/internal/response"
)

// repoURLPattern accepts only canonical GitHub repository URLs,
// with an optional trailing slash
var repoURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)/?$`)

// RepoService defines the interface for the GitHub read-through proxy
type RepoService interface {
	GetRepoInfo(ctx context.Context, ghToken string, req *dto.RepoInfoRequest) (*dto.RepoInfoResponse, error)
}

// repoServiceImpl is the implementation of RepoService
type repoServiceImpl struct {
	github client.GitHubClient
	logger *zap.Logger
}

// NewRepoService creates a new instance of RepoService
func NewRepoService(github client.GitHubClient, logger *zap.Logger) RepoService {
	return &repoServiceImpl{
		github: github,
		logger: logger,
	}
}

// parseRepoURL extracts owner and repo from a GitHub repository URL
func parseRepoURL(repoURL string) (owner, repo string, err error) {
	m := repoURLPattern.FindStringSubmatch(repoURL)
	if m == nil {
		return "", "", fmt.Errorf("invalid repository URL: %s", repoURL)
	}
	return m[1], m[2], nil
}

// GetRepoInfo fetches and reshapes repository metadata from GitHub.
// ghToken comes from the caller's session claims and may be empty.
func (s *repoServiceImpl) GetRepoInfo(ctx context.Context, ghToken string, req *dto.RepoInfoRequest) (*dto.RepoInfoResponse, error) {
	owner, repo, err := parseRepoURL(req.RepoURL)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid repository URL", "")
	}

	info, err := s.github.FetchRepoInfo(ctx, owner, repo, ghToken)
	if err != nil {
		if errors.Is(err, client.ErrRepoFetch) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Error fetching repository information", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch repository information", err.Error())
	}

	out := &dto.RepoInfoResponse{
		RepoURL:  fmt.Sprintf("https://github.com/%s/%s", owner, repo),
		RepoID:   info.RepoID,
		Branches: make([]dto.BranchInfo, 0, len(info.Branches)),
		Pulls:    make([]dto.PullInfo, 0, len(info.Pulls)),
		Issues:   make([]dto.IssueInfo, 0, len(info.Issues)),
		Commits:  make([]dto.CommitInfo, 0, len(info.Commits)),
	}
	for _, b := range info.Branches {
		out.Branches = append(out.Branches, dto.BranchInfo{Name: b.Name, LastCommitSha: b.LastCommitSha})
	}
	for _, p := range info.Pulls {
		out.Pulls = append(out.Pulls, dto.PullInfo{Number: p.Number, Title: p.Title})
	}
	for _, i := range info.Issues {
		out.Issues = append(out.Issues, dto.IssueInfo{Number: i.Number, Title: i.Title})
	}
	for _, c := range info.Commits {
		out.Commits = append(out.Commits, dto.CommitInfo{Sha: c.Sha, Message: c.Message})
	}

	return out, nil
}
