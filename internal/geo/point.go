package geo

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// SRID4326 is the WGS-84 spatial reference identifier. Every point that
// passes through this package is stamped with it, regardless of what the
// caller or the database supplied.
const SRID4326 = 4326

// Point is a 2D geographic coordinate. X is longitude, Y is latitude.
type Point struct {
	X    float64
	Y    float64
	SRID int
}

// NewPoint returns a point stamped with SRID 4326.
func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y, SRID: SRID4326}
}

// pointJSON is the wire shape: a flat {"x": <lon>, "y": <lat>} object.
type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MarshalJSON always emits both fields.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{X: p.X, Y: p.Y})
}

// UnmarshalJSON reads the x and y fields in any order, defaulting both to 0
// if absent, and stamps the result with SRID 4326.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw pointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "failed to decode point")
	}
	p.X = raw.X
	p.Y = raw.Y
	p.SRID = SRID4326
	return nil
}

// Value encodes the point as EWKT, which PostGIS accepts for both geometry
// and geography columns.
func (p Point) Value() (driver.Value, error) {
	srid := p.SRID
	if srid == 0 {
		srid = SRID4326
	}
	return fmt.Sprintf("SRID=%d;POINT(%v %v)", srid, p.X, p.Y), nil
}

// Scan decodes a point from the database. PostGIS returns hex-encoded EWKB
// by default; EWKT text is also accepted so values written by Value round-trip
// through drivers that skip the geometry output function.
func (p *Point) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return p.decode(string(v))
	case string:
		return p.decode(v)
	default:
		return errors.Errorf("cannot scan %T into Point", src)
	}
}

func (p *Point) decode(s string) error {
	if strings.HasPrefix(s, "SRID=") || strings.HasPrefix(s, "POINT") {
		return p.decodeEWKT(s)
	}
	return p.decodeEWKBHex(s)
}

func (p *Point) decodeEWKT(s string) error {
	rest := s
	srid := SRID4326
	if strings.HasPrefix(rest, "SRID=") {
		sep := strings.IndexByte(rest, ';')
		if sep < 0 {
			return errors.New("malformed EWKT point")
		}
		if _, err := fmt.Sscanf(rest[:sep], "SRID=%d", &srid); err != nil {
			return errors.Wrap(err, "malformed EWKT SRID")
		}
		rest = rest[sep+1:]
	}
	var x, y float64
	if _, err := fmt.Sscanf(rest, "POINT(%f %f)", &x, &y); err != nil {
		return errors.Wrap(err, "malformed EWKT point")
	}
	p.X = x
	p.Y = y
	p.SRID = srid
	return nil
}

// EWKB geometry type for a point, with the PostGIS SRID flag bit.
const (
	ewkbPointType = 1
	ewkbSRIDFlag  = 0x20000000
)

func (p *Point) decodeEWKBHex(s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrap(err, "point is not hex EWKB")
	}
	r := bytes.NewReader(raw)

	var order byte
	if err := binary.Read(r, binary.LittleEndian, &order); err != nil {
		return errors.Wrap(err, "truncated EWKB point")
	}
	var bo binary.ByteOrder = binary.BigEndian
	if order == 1 {
		bo = binary.LittleEndian
	}

	var geomType uint32
	if err := binary.Read(r, bo, &geomType); err != nil {
		return errors.Wrap(err, "truncated EWKB point")
	}
	srid := SRID4326
	if geomType&ewkbSRIDFlag != 0 {
		var s32 uint32
		if err := binary.Read(r, bo, &s32); err != nil {
			return errors.Wrap(err, "truncated EWKB SRID")
		}
		srid = int(s32)
	}
	if geomType&0xff != ewkbPointType {
		return errors.Errorf("unsupported geometry type %d, only points are handled", geomType&0xff)
	}

	var x, y uint64
	if err := binary.Read(r, bo, &x); err != nil {
		return errors.Wrap(err, "truncated EWKB coordinates")
	}
	if err := binary.Read(r, bo, &y); err != nil {
		return errors.Wrap(err, "truncated EWKB coordinates")
	}
	p.X = math.Float64frombits(x)
	p.Y = math.Float64frombits(y)
	p.SRID = srid
	return nil
}

// GormDataType tells gorm which column type to create for Point fields.
func (Point) GormDataType() string {
	return "geography(point,4326)"
}
