package transport

import (
	"context"
	"io"
	"log/slog"

	"github.com/somesh-bagadiya/sb-omnicore/internal/dispatch"
	"github.com/somesh-bagadiya/sb-omnicore/internal/portfolio"
)

type stubUpstream struct{}

func (stubUpstream) GetProfile(ctx context.Context) (portfolio.Profile, error) {
	return portfolio.Profile{"name": "Somesh"}, nil
}

func (stubUpstream) GetProjects(ctx context.Context) ([]portfolio.Project, error) {
	return []portfolio.Project{{ID: "creva", Title: "Creva"}}, nil
}

func (stubUpstream) GetExperience(ctx context.Context) ([]portfolio.Experience, error) {
	return nil, nil
}

func (stubUpstream) GetEducation(ctx context.Context) ([]portfolio.Education, error) {
	return nil, nil
}

func (stubUpstream) GetProjectContent(ctx context.Context, id string) (*portfolio.ContentBlob, error) {
	return nil, nil
}

func (stubUpstream) BaseURL() string { return "http://upstream.test" }

func newTestDispatcher() *dispatch.Dispatcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dispatch.New(stubUpstream{}, dispatch.WithLogger(logger))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
