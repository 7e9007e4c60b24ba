package snapshot

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"glasscat/internal/catalog"
	"glasscat/internal/material"
)

// formatVersion is bumped whenever the snapshot layout changes. Snapshots
// with another version are treated as a cache miss.
const formatVersion = 1

// Stamp identifies one revision of a source file.
type Stamp struct {
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// StatSource returns the current stamp of the file at path.
func StatSource(path string) (Stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{Size: info.Size(), ModTime: info.ModTime().UTC()}, nil
}

// Matches reports whether two stamps describe the same file revision.
func (s Stamp) Matches(other Stamp) bool {
	return s.Size == other.Size && s.ModTime.Equal(other.ModTime)
}

// Snapshot is the serialized form of one parsed catalog.
type Snapshot struct {
	Version   int       `json:"version"`
	Source    string    `json:"source"`
	Stamp     Stamp     `json:"stamp"`
	CreatedAt time.Time `json:"created_at"`
	Catalog   string    `json:"catalog"`
	Materials []Record  `json:"materials"`
}

// Entry summarizes a stored snapshot for listings.
type Entry struct {
	Source    string
	Catalog   string
	Materials int
	Stamp     Stamp
	CreatedAt time.Time
}

// Record mirrors material.Material with JSON-safe floats.
type Record struct {
	Name         string         `json:"name"`
	Comment      string         `json:"comment,omitempty"`
	Kind         string         `json:"kind"`
	Solid        bool           `json:"solid"`
	Mirror       bool           `json:"mirror"`
	GlassCode    Float          `json:"glasscode"`
	ND           Float          `json:"nd"`
	VD           Float          `json:"vd"`
	Density      Float          `json:"density"`
	AlphaM3070   Float          `json:"alpham3070"`
	Alpha20300   Float          `json:"alpha20300"`
	Chemical     []Float        `json:"chemical"`
	Thermal      []Float        `json:"thermal"`
	Price        *Float         `json:"price"`
	Sellmeier    []Term         `json:"sellmeier"`
	Transmission []Transmission `json:"transmission"`
}

// Term is one serialized Sellmeier term.
type Term struct {
	Coefficient Float `json:"c"`
	Pole        Float `json:"p"`
}

// Transmission is one serialized internal transmission sample.
type Transmission struct {
	Wavelength Float `json:"wavelength"`
	Thickness  Float `json:"thickness"`
	Value      Float `json:"value"`
}

// Float is a float64 whose JSON form also carries NaN and the infinities,
// which catalogs use for unknown chemistry figures and gas dispersion.
type Float float64

// MarshalJSON writes finite values as the shortest exact number and the
// special values as the strings "NaN", "+Inf" and "-Inf".
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (f *Float) UnmarshalJSON(data []byte) error {
	text := string(data)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("decode float %s: %w", data, err)
	}
	*f = Float(v)
	return nil
}

// New builds a snapshot of cat stamped with the source revision it was
// parsed from.
func New(cat *catalog.Catalog, stamp Stamp) *Snapshot {
	materials := cat.Materials()
	snap := &Snapshot{
		Version:   formatVersion,
		Source:    cat.Source,
		Stamp:     stamp,
		CreatedAt: time.Now().UTC(),
		Catalog:   cat.Name,
		Materials: make([]Record, 0, len(materials)),
	}
	for _, m := range materials {
		snap.Materials = append(snap.Materials, NewRecord(m))
	}
	return snap
}

// ToCatalog rebuilds the catalog held by the snapshot.
func (s *Snapshot) ToCatalog() (*catalog.Catalog, error) {
	cat := catalog.New(s.Catalog)
	cat.Source = s.Source
	for _, r := range s.Materials {
		m, err := r.material()
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", s.Source, err)
		}
		cat.Add(m)
	}
	return cat, nil
}

// Fresh reports whether the snapshot was written from the given revision.
func (s *Snapshot) Fresh(current Stamp) bool {
	return s.Stamp.Matches(current)
}

func (s *Snapshot) entry() Entry {
	return Entry{
		Source:    s.Source,
		Catalog:   s.Catalog,
		Materials: len(s.Materials),
		Stamp:     s.Stamp,
		CreatedAt: s.CreatedAt,
	}
}

// NewRecord converts m to its serialized form.
func NewRecord(m *material.Material) Record {
	r := Record{
		Name:       m.Name,
		Comment:    m.Comment,
		Kind:       m.Kind.String(),
		Solid:      m.Solid,
		Mirror:     m.Mirror,
		GlassCode:  Float(m.GlassCode),
		ND:         Float(m.ND),
		VD:         Float(m.VD),
		Density:    Float(m.Density),
		AlphaM3070: Float(m.AlphaM3070),
		Alpha20300: Float(m.Alpha20300),
		Chemical:   toFloats(m.Chemical),
		Thermal:    toFloats(m.Thermal),
	}
	if m.Price != nil {
		price := Float(*m.Price)
		r.Price = &price
	}
	if m.Sellmeier != nil {
		r.Sellmeier = make([]Term, 0, len(m.Sellmeier))
		for _, term := range m.Sellmeier {
			r.Sellmeier = append(r.Sellmeier, Term{Coefficient: Float(term.Coefficient), Pole: Float(term.Pole)})
		}
	}
	if m.Transmission != nil {
		r.Transmission = make([]Transmission, 0, len(m.Transmission))
		for key, value := range m.Transmission {
			r.Transmission = append(r.Transmission, Transmission{
				Wavelength: Float(key.Wavelength),
				Thickness:  Float(key.Thickness),
				Value:      Float(value),
			})
		}
		sort.Slice(r.Transmission, func(i, j int) bool {
			a, b := r.Transmission[i], r.Transmission[j]
			if a.Thickness != b.Thickness {
				return a.Thickness < b.Thickness
			}
			return a.Wavelength < b.Wavelength
		})
	}
	return r
}

func (r Record) material() (*material.Material, error) {
	kind, err := material.ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", r.Name, err)
	}
	m := &material.Material{
		Name:       r.Name,
		Comment:    r.Comment,
		Kind:       kind,
		Solid:      r.Solid,
		Mirror:     r.Mirror,
		GlassCode:  float64(r.GlassCode),
		ND:         float64(r.ND),
		VD:         float64(r.VD),
		Density:    float64(r.Density),
		AlphaM3070: float64(r.AlphaM3070),
		Alpha20300: float64(r.Alpha20300),
		Chemical:   fromFloats(r.Chemical),
		Thermal:    fromFloats(r.Thermal),
	}
	if r.Price != nil {
		price := float64(*r.Price)
		m.Price = &price
	}
	if r.Sellmeier != nil {
		m.Sellmeier = make([]material.Term, 0, len(r.Sellmeier))
		for _, term := range r.Sellmeier {
			m.Sellmeier = append(m.Sellmeier, material.Term{
				Coefficient: float64(term.Coefficient),
				Pole:        float64(term.Pole),
			})
		}
	}
	if r.Transmission != nil {
		m.Transmission = make(map[material.TransmissionKey]float64, len(r.Transmission))
		for _, t := range r.Transmission {
			key := material.TransmissionKey{Wavelength: float64(t.Wavelength), Thickness: float64(t.Thickness)}
			m.Transmission[key] = float64(t.Value)
		}
	}
	return m, nil
}

func toFloats(values []float64) []Float {
	if values == nil {
		return nil
	}
	out := make([]Float, len(values))
	for i, v := range values {
		out[i] = Float(v)
	}
	return out
}

func fromFloats(values []Float) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
