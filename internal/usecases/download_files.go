package usecases

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
)

const maxParallelDownloads = 4

// DownloadFilesUseCase saves every file linked from a document next to it.
type DownloadFilesUseCase struct {
	connect ConnectFiles
	store   ArchiveStore
}

// NewDownloadFilesUseCase creates a DownloadFilesUseCase.
func NewDownloadFilesUseCase(connect ConnectFiles, store ArchiveStore) *DownloadFilesUseCase {
	return &DownloadFilesUseCase{connect: connect, store: store}
}

// FileArchiveName is where a linked file is saved: a "<document>-files"
// directory holding "<link key><extension>".
func FileArchiveName(documentName, linkKey, fileURL string) string {
	dir := strings.TrimSuffix(documentName, ".json") + "-files"
	ext := ""
	if u, err := url.Parse(fileURL); err == nil {
		ext = path.Ext(u.Path)
	}
	return dir + "/" + linkKey + ext
}

// Execute downloads every entry of agg.FileLinks and returns the saved names
// in link key order. The first failure stops the remaining downloads.
func (uc *DownloadFilesUseCase) Execute(ctx context.Context, creds domain.Credentials, agg *domain.ComponentsAggregate) ([]string, error) {
	if len(agg.FileLinks) == 0 {
		return nil, nil
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(agg.FileLinks))
	for k := range agg.FileLinks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fetcher := uc.connect(creds)
	names := make([]string, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDownloads)
	for i, key := range keys {
		g.Go(func() error {
			fileURL := agg.FileLinks[key]
			data, err := fetcher.FetchFileData(gctx, fileURL)
			if err != nil {
				return fmt.Errorf("download %s: %w", key, err)
			}

			name := FileArchiveName(agg.FileName, key, fileURL)
			if err := uc.store.Save(gctx, name, data); err != nil {
				return fmt.Errorf("save %s: %w", name, err)
			}
			names[i] = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.GlobalInfoCtx(ctx, "files downloaded", "file_name", agg.FileName, "count", len(names))
	return names, nil
}
