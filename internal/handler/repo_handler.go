package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardman-api/internal/dto"
	"boardman-api/internal/response"
	"boardman-api/internal/service"
)

// RepoHandler handles the GitHub repository metadata proxy
type RepoHandler struct {
	repoService service.RepoService
}

// NewRepoHandler creates a new RepoHandler
func NewRepoHandler(repoService service.RepoService) *RepoHandler {
	return &RepoHandler{
		repoService: repoService,
	}
}

// GetRepoInfo fetches repository metadata from GitHub, using the GitHub
// token carried in the caller's session when present
func (h *RepoHandler) GetRepoInfo(c *gin.Context) {
	claims, ok := sessionClaims(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Unauthorized")
		return
	}

	var req dto.RepoInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Repository URL is required")
		return
	}

	info, err := h.repoService.GetRepoInfo(c.Request.Context(), claims.GHToken, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, info)
}
