package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// FileID uniquely identifies a file within a session. IDs are never reused.
type FileID string

// FileType classifies a file for filtering and display
type FileType int

const (
	FileTypeOther FileType = iota
	FileTypeImage
	FileTypeVideo
	FileTypeAudio
	FileTypeDocument
	FileTypeArchive
	FileTypeApp
	FileTypeFolder
)

// String returns the lowercase name of the file type
func (t FileType) String() string {
	switch t {
	case FileTypeImage:
		return "image"
	case FileTypeVideo:
		return "video"
	case FileTypeAudio:
		return "audio"
	case FileTypeDocument:
		return "document"
	case FileTypeArchive:
		return "archive"
	case FileTypeApp:
		return "app"
	case FileTypeFolder:
		return "folder"
	default:
		return "other"
	}
}

// ParseFileType parses a file type name as printed by String.
// Unknown names map to FileTypeOther, ok=false.
func ParseFileType(s string) (FileType, bool) {
	switch strings.ToLower(s) {
	case "image":
		return FileTypeImage, true
	case "video":
		return FileTypeVideo, true
	case "audio":
		return FileTypeAudio, true
	case "document":
		return FileTypeDocument, true
	case "archive":
		return FileTypeArchive, true
	case "app":
		return FileTypeApp, true
	case "folder":
		return FileTypeFolder, true
	case "other":
		return FileTypeOther, true
	}
	return FileTypeOther, false
}

var extTypes = map[string]FileType{
	".jpg": FileTypeImage, ".jpeg": FileTypeImage, ".png": FileTypeImage,
	".gif": FileTypeImage, ".webp": FileTypeImage, ".heic": FileTypeImage,
	".bmp": FileTypeImage, ".tiff": FileTypeImage, ".svg": FileTypeImage,

	".mp4": FileTypeVideo, ".mov": FileTypeVideo, ".avi": FileTypeVideo,
	".mkv": FileTypeVideo, ".webm": FileTypeVideo, ".m4v": FileTypeVideo,

	".mp3": FileTypeAudio, ".wav": FileTypeAudio, ".flac": FileTypeAudio,
	".m4a": FileTypeAudio, ".ogg": FileTypeAudio, ".aac": FileTypeAudio,

	".pdf": FileTypeDocument, ".doc": FileTypeDocument, ".docx": FileTypeDocument,
	".xls": FileTypeDocument, ".xlsx": FileTypeDocument, ".ppt": FileTypeDocument,
	".pptx": FileTypeDocument, ".txt": FileTypeDocument, ".md": FileTypeDocument,
	".rtf": FileTypeDocument, ".csv": FileTypeDocument, ".pages": FileTypeDocument,
	".numbers": FileTypeDocument, ".key": FileTypeDocument,

	".zip": FileTypeArchive, ".tar": FileTypeArchive, ".gz": FileTypeArchive,
	".7z": FileTypeArchive, ".rar": FileTypeArchive, ".bz2": FileTypeArchive,
	".xz": FileTypeArchive, ".dmg": FileTypeArchive, ".iso": FileTypeArchive,

	".app": FileTypeApp, ".exe": FileTypeApp, ".msi": FileTypeApp,
	".pkg": FileTypeApp, ".deb": FileTypeApp, ".rpm": FileTypeApp,
	".appimage": FileTypeApp,
}

// ClassifyName returns the FileType for a file name based on its extension.
// Directories should be classified as FileTypeFolder by the caller.
func ClassifyName(name string) FileType {
	if t, ok := extTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return FileTypeOther
}

// Thumbnail is a cached, downscaled preview of a file
type Thumbnail struct {
	Width  int
	Height int
	Data   []byte // encoded PNG
}

// Decision is the triage outcome applied to a file
type Decision int

const (
	DecisionNone Decision = iota
	DecisionKeep
	DecisionBin
	DecisionStack
	DecisionCloud
)

// String returns the lowercase name of the decision
func (d Decision) String() string {
	switch d {
	case DecisionKeep:
		return "keep"
	case DecisionBin:
		return "bin"
	case DecisionStack:
		return "stack"
	case DecisionCloud:
		return "cloud"
	default:
		return "none"
	}
}

// ParseDecision parses a decision name as printed by String
func ParseDecision(s string) (Decision, bool) {
	switch strings.ToLower(s) {
	case "keep":
		return DecisionKeep, true
	case "bin":
		return DecisionBin, true
	case "stack":
		return DecisionStack, true
	case "cloud":
		return DecisionCloud, true
	}
	return DecisionNone, false
}

// FileRecord describes one file under triage. Records are owned by the
// Session until removed by a decision; Decision is set only at that point.
type FileRecord struct {
	ID          FileID
	Path        string
	Name        string
	Size        int64
	Type        FileType
	CreatedAt   time.Time
	Fingerprint string // content-equality signal, best effort; empty if unread
	Decision    Decision
	Preview     *Thumbnail
}
