package entities

// ArchiveMimeType is the content type of uploaded archives.
const ArchiveMimeType = "application/octet-stream"

// UploadInput describes a local file to be stored in the cloud drive.
// Empty DriveID means "My Drive" and empty FolderID means the drive root.
type UploadInput struct {
	LocalPath string
	Name      string
	MimeType  string
	DriveID   string
	FolderID  string
}
