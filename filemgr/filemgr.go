package filemgr

import "errors"

type EntityType string
type PictureType string

const (
	EntityProduct EntityType = "product"
	EntityStore   EntityType = "store"
	EntityReview  EntityType = "review"
	EntityChat    EntityType = "chat"

	PicBanner PictureType = "banner"
	PicPhoto  PictureType = "photo"
	PicThumb  PictureType = "thumb"
	PicFile   PictureType = "file"
)

var (
	AllowedExtensions = map[PictureType][]string{
		PicPhoto:  {".jpg", ".jpeg", ".png", ".gif", ".webp"},
		PicThumb:  {".jpg"},
		PicBanner: {".jpg", ".jpeg", ".png"},
		PicFile:   {".pdf", ".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".webm"},
	}

	AllowedMIMEs = map[PictureType][]string{
		PicPhoto:  {"image/jpeg", "image/png", "image/gif", "image/webp"},
		PicThumb:  {"image/jpeg"},
		PicBanner: {"image/jpeg", "image/png"},
		PicFile: {
			"application/pdf",
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"video/mp4", "video/webm",
		},
	}

	PictureSubfolders = map[PictureType]string{
		PicBanner: "banner",
		PicPhoto:  "photo",
		PicThumb:  "thumb",
		PicFile:   "files",
	}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")

	LogFunc func(path string, size int64, mimeType string)
)
