package domain

// TransformKind is the operation selected in the transform form.
type TransformKind string

const (
	TransformResize    TransformKind = "resize"
	TransformCrop      TransformKind = "crop"
	TransformRotate    TransformKind = "rotate"
	TransformGrayscale TransformKind = "grayscale"
	TransformSepia     TransformKind = "sepia"
	TransformFormat    TransformKind = "format"
)

// TransformKinds lists the form options in display order.
var TransformKinds = []TransformKind{
	TransformResize, TransformCrop, TransformRotate,
	TransformGrayscale, TransformSepia, TransformFormat,
}

// Label is the Spanish option label.
func (k TransformKind) Label() string {
	switch k {
	case TransformResize:
		return "Redimensionar"
	case TransformCrop:
		return "Recortar"
	case TransformRotate:
		return "Rotar"
	case TransformGrayscale:
		return "Escala de Grises"
	case TransformSepia:
		return "Sepia"
	case TransformFormat:
		return "Convertir Formato"
	default:
		return string(k)
	}
}

// OutputFormats are the conversion targets accepted by the API.
var OutputFormats = []string{"png", "jpg", "jpeg", "gif", "bmp", "webp"}

type Resize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Crop struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Filters struct {
	Grayscale bool `json:"grayscale,omitempty"`
	Sepia     bool `json:"sepia,omitempty"`
}

// TransformRequest is the tagged union sent to the transform endpoint.
// Exactly one member is set.
type TransformRequest struct {
	Resize  *Resize  `json:"resize,omitempty"`
	Crop    *Crop    `json:"crop,omitempty"`
	Rotate  *int     `json:"rotate,omitempty"`
	Filters *Filters `json:"filters,omitempty"`
	Format  string   `json:"format,omitempty"`
}

// Kind reports which member of the union is set.
func (r TransformRequest) Kind() TransformKind {
	switch {
	case r.Resize != nil:
		return TransformResize
	case r.Crop != nil:
		return TransformCrop
	case r.Rotate != nil:
		return TransformRotate
	case r.Filters != nil && r.Filters.Grayscale:
		return TransformGrayscale
	case r.Filters != nil && r.Filters.Sepia:
		return TransformSepia
	case r.Format != "":
		return TransformFormat
	default:
		return ""
	}
}

// TransformParams mirrors the numeric and text inputs of the transform form.
type TransformParams struct {
	Width      int
	Height     int
	X          int
	Y          int
	CropWidth  int
	CropHeight int
	Rotation   int
	Format     string
}

// DefaultTransformParams are the values the form opens with.
func DefaultTransformParams() TransformParams {
	return TransformParams{
		Width:      200,
		Height:     200,
		CropWidth:  300,
		CropHeight: 300,
		Rotation:   45,
		Format:     "png",
	}
}
