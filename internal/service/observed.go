package service

import (
	"context"
	"time"

	"github.com/sam3690/syncly/internal/model"
	"github.com/sam3690/syncly/internal/service/importer"
)

// ImportRecorder observes finished import runs, e.g. for metrics.
type ImportRecorder interface {
	ObserveImport(provider model.Provider, imported int64, err error, elapsed time.Duration)
}

type observedGitHubImporter struct {
	next     importer.GitHubImporter
	recorder ImportRecorder
}

func (o observedGitHubImporter) Import(ctx context.Context, params importer.GitHubImportParams) (*importer.GitHubImportResult, error) {
	start := time.Now()
	result, err := o.next.Import(ctx, params)
	var n int64
	if err == nil {
		n = result.Imported
	}
	o.recorder.ObserveImport(model.ProviderGitHub, n, err, time.Since(start))
	return result, err
}

type observedSlackImporter struct {
	next     importer.SlackImporter
	recorder ImportRecorder
}

func (o observedSlackImporter) Import(ctx context.Context, params importer.SlackImportParams) (*importer.SlackImportResult, error) {
	start := time.Now()
	result, err := o.next.Import(ctx, params)
	var n int64
	if err == nil {
		n = result.Imported
	}
	o.recorder.ObserveImport(model.ProviderSlack, n, err, time.Since(start))
	return result, err
}

type observedGitLabImporter struct {
	next     importer.GitLabImporter
	recorder ImportRecorder
}

func (o observedGitLabImporter) Import(ctx context.Context, params importer.GitLabImportParams) (*importer.GitLabImportResult, error) {
	start := time.Now()
	result, err := o.next.Import(ctx, params)
	var n int64
	if err == nil {
		n = result.Imported
	}
	o.recorder.ObserveImport(model.ProviderGitLab, n, err, time.Since(start))
	return result, err
}
