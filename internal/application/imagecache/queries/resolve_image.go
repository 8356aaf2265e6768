package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
	domain "github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/imagecache"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

// ImageResolver resolves a wiki file name to a URL
type ImageResolver interface {
	Resolve(ctx context.Context, fileName string, entityID int64) domain.Resolution
}

// ResolveImageQuery resolves one wiki file name
type ResolveImageQuery struct {
	FileName string
}

// ResolveImageResponse carries the resolved URL, empty when the image is unknown
type ResolveImageResponse struct {
	FileName string
	URL      string
	Found    bool
}

// ResolveImageHandler handles the ResolveImage query
type ResolveImageHandler struct {
	resolver ImageResolver
}

// NewResolveImageHandler creates a new ResolveImageHandler
func NewResolveImageHandler(resolver ImageResolver) *ResolveImageHandler {
	return &ResolveImageHandler{resolver: resolver}
}

// Handle executes the ResolveImage query
func (h *ResolveImageHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ResolveImageQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResolveImageQuery")
	}

	fileName := strings.TrimSpace(query.FileName)
	if fileName == "" {
		return nil, shared.NewValidationError("file_name", "is required")
	}

	res := h.resolver.Resolve(ctx, fileName, 0)
	return &ResolveImageResponse{
		FileName: res.FileName,
		URL:      res.URL,
		Found:    res.URL != "",
	}, nil
}
