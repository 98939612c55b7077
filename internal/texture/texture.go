package texture

import "image"

// Uploader consumes a decoded pixel buffer and writes it into a GPU texture
// region. init asks for the destination region to be (re)allocated rather
// than updated in place.
type Uploader interface {
	Upload(pix *image.RGBA, init bool, x, y, w, h int)
}
