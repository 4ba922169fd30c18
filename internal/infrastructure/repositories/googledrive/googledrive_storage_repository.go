package googledrive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/rios0rios0/repoarchiver/internal/domain/entities"
	"github.com/rios0rios0/repoarchiver/internal/domain/repositories"
)

const storageServiceName = "google-drive"

// StorageRepository implements repositories.CloudStorageRepository on Google Drive.
type StorageRepository struct {
	authorization repositories.AuthorizationRepository
	endpoint      string
}

// NewStorageRepository creates a Google Drive storage using authorization
// for its OAuth2 client.
func NewStorageRepository(authorization repositories.AuthorizationRepository) repositories.CloudStorageRepository {
	return &StorageRepository{authorization: authorization}
}

// NewStorageRepositoryWithEndpoint targets a custom Drive endpoint.
func NewStorageRepositoryWithEndpoint(
	authorization repositories.AuthorizationRepository,
	endpoint string,
) *StorageRepository {
	return &StorageRepository{authorization: authorization, endpoint: endpoint}
}

// Upload creates a new Drive file whose body is the local file. The Drive
// API has no writable drive id on create, so a shared drive is targeted by
// using it as the parent when no folder is configured.
func (it *StorageRepository) Upload(
	ctx context.Context,
	auth entities.OAuthSettings,
	input entities.UploadInput,
) (string, error) {
	client, err := it.authorization.HTTPClient(ctx, auth, []string{drive.DriveFileScope})
	if err != nil {
		return "", err
	}

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if it.endpoint != "" {
		opts = append(opts, option.WithEndpoint(it.endpoint))
	}
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create Drive client: %w", err)
	}

	file, err := os.Open(input.LocalPath)
	if err != nil {
		return "", &entities.LocalToolError{Tool: "upload", Path: input.LocalPath, Err: err}
	}
	defer file.Close()

	metadata := &drive.File{Name: input.Name}
	switch {
	case input.FolderID != "":
		metadata.Parents = []string{input.FolderID}
	case input.DriveID != "":
		metadata.Parents = []string{input.DriveID}
	}

	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = entities.ArchiveMimeType
	}

	created, err := service.Files.Create(metadata).
		Media(file, googleapi.ContentType(mimeType)).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			payload := apiErr.Body
			if payload == "" {
				payload = apiErr.Message
			}
			return "", &entities.RemoteAPIError{
				Service:    storageServiceName,
				Operation:  "upload",
				Resource:   input.Name,
				StatusCode: apiErr.Code,
				Payload:    payload,
			}
		}
		return "", fmt.Errorf("failed to upload %q: %w", input.Name, err)
	}

	if created.HTTPStatusCode != http.StatusOK {
		return "", &entities.RemoteAPIError{
			Service:    storageServiceName,
			Operation:  "upload",
			Resource:   input.Name,
			StatusCode: created.HTTPStatusCode,
			Payload:    "error while uploading to Google Drive",
		}
	}
	return created.Id, nil
}
