package model

// ImageSourceKind tags the variant held by an ImageSource.
type ImageSourceKind int

const (
	ImageUnset ImageSourceKind = iota
	ImageExisting
	ImagePending
)

// ImageSource is the image field of a product form: nothing chosen, a
// reference already stored, or new bytes waiting to be uploaded. It is
// resolved once, at submit time.
type ImageSource struct {
	kind     ImageSourceKind
	ref      string
	data     []byte
	fileName string
}

// NoImage returns the Unset variant.
func NoImage() ImageSource {
	return ImageSource{}
}

// ExistingImage returns the variant that keeps an already stored reference.
func ExistingImage(ref string) ImageSource {
	return ImageSource{kind: ImageExisting, ref: ref}
}

// PendingImage returns the variant carrying new content to upload.
func PendingImage(data []byte, fileName string) ImageSource {
	return ImageSource{kind: ImagePending, data: data, fileName: fileName}
}

// Kind reports which variant is held.
func (s ImageSource) Kind() ImageSourceKind {
	return s.kind
}

// Ref returns the stored reference of an ExistingImage.
func (s ImageSource) Ref() string {
	return s.ref
}

// Upload returns the pending bytes and original file name.
func (s ImageSource) Upload() ([]byte, string) {
	return s.data, s.fileName
}
