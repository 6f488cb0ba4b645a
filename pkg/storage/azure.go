package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/JaimeStill/heritage/pkg/lifecycle"
)

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// newAzure prefers a connection string; otherwise it authenticates against
// AccountURL with the default Azure credential chain.
func newAzure(cfg *Config, logger *slog.Logger) (*azure, error) {
	var (
		client *azblob.Client
		err    error
	)

	if cfg.ConnectionString != "" {
		client, err = azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	} else {
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("create azure credential: %w", credErr)
		}
		client, err = azblob.NewClient(cfg.AccountURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &azure{
		client:    client,
		container: cfg.Container,
		logger:    logger,
	}, nil
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system", "container", a.container)

	lc.OnStartup(func() error {
		_, err := a.client.
			ServiceClient().
			NewContainerClient(a.container).
			GetProperties(lc.Context(), nil)
		if err != nil {
			a.logger.Error("storage container unavailable", "error", err)
			return fmt.Errorf("storage container %s: %w", a.container, err)
		}

		a.logger.Info("storage container ready", "container", a.container)
		return nil
	})

	return nil
}

func (a *azure) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.client.DownloadStream(ctx, a.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}

	return resp.Body, nil
}

func (a *azure) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key).
		GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check blob existence %s: %w", key, err)
	}

	return true, nil
}
