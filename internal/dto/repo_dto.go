package dto

// RepoInfoRequest represents the request to fetch GitHub repository metadata
type RepoInfoRequest struct {
	RepoURL string `json:"repoUrl" binding:"required"`
}

// BranchInfo is the minimal projection of a repository branch
type BranchInfo struct {
	Name          string `json:"name"`
	LastCommitSha string `json:"lastCommitSha"`
}

// PullInfo is the minimal projection of a pull request
type PullInfo struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// IssueInfo is the minimal projection of an issue
type IssueInfo struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// CommitInfo is the minimal projection of a commit
type CommitInfo struct {
	Sha     string `json:"sha"`
	Message string `json:"message"`
}

// RepoInfoResponse aggregates the five upstream reads into one payload
type RepoInfoResponse struct {
	RepoURL  string       `json:"repoUrl"`
	RepoID   int64        `json:"repoId"`
	Branches []BranchInfo `json:"branches"`
	Pulls    []PullInfo   `json:"pulls"`
	Issues   []IssueInfo  `json:"issues"`
	Commits  []CommitInfo `json:"commits"`
}
