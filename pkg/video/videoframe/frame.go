package videoframe

type Dimensions struct {
	W, H int
}

type Frame interface {
	DataRef() interface{}
	Dimensions() Dimensions
	// EncodeJPEG returns the frame's current contents as a JPEG
	// at the given quality (0-100).
	EncodeJPEG(quality int) ([]byte, error)
	Close()
}
