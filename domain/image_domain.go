package domain

var (
	MessageFailedGetImage = "failed to get image"

	ErrImageNotFound = NewError(ErrNotFound, "Image not found")
)

type Image struct {
	Data        []byte
	ContentType string
}
