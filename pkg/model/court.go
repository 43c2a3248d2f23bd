package model

// Surface is the playing surface of a court. The surface determines the
// per-minute rate a reservation is priced at.
type Surface string

const (
	SurfaceGrass           Surface = "GRASS"
	SurfaceAsphalt         Surface = "ASPHALT"
	SurfaceClay            Surface = "CLAY"
	SurfaceArtificialGrass Surface = "ARTIFICIAL_GRASS"
)

// Surfaces lists every known surface type.
var Surfaces = []Surface{
	SurfaceGrass,
	SurfaceAsphalt,
	SurfaceClay,
	SurfaceArtificialGrass,
}

type Court struct {
	ID      string  `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name    string  `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Surface Surface `json:"surface" bson:"surface" validate:"required,oneof=GRASS ASPHALT CLAY ARTIFICIAL_GRASS"`
	Deleted bool    `json:"deleted" bson:"deleted"`
}

func (c *Court) GetID() string   { return c.ID }
func (c *Court) SetID(id string) { c.ID = id }
