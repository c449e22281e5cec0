package speaker

import (
	"errors"
	"fmt"
)

// ErrUnknownModel is returned when a name is not in the catalog.
var ErrUnknownModel = errors.New("speaker: unknown model")

// Catalog is an ordered, read-only set of models.
type Catalog struct {
	models []Model
	index  map[string]int
}

// NewCatalog returns a catalog of the given models in order. Names must be
// unique and the catalog must not be empty.
func NewCatalog(models ...Model) (*Catalog, error) {
	if len(models) == 0 {
		return nil, errors.New("speaker: catalog must not be empty")
	}

	c := &Catalog{
		models: make([]Model, len(models)),
		index:  make(map[string]int, len(models)),
	}

	for i, m := range models {
		if _, dup := c.index[m.Name]; dup {
			return nil, fmt.Errorf("speaker: duplicate model name %q", m.Name)
		}

		c.models[i] = m
		c.index[m.Name] = i
	}

	return c, nil
}

// Len returns the number of models.
func (c *Catalog) Len() int {
	return len(c.models)
}

// At returns the model at i, clamped to the valid index range.
func (c *Catalog) At(i int) Model {
	return c.models[c.Clamp(i)]
}

// Clamp maps i to the nearest valid index.
func (c *Catalog) Clamp(i int) int {
	if i < 0 {
		return 0
	}

	if i >= len(c.models) {
		return len(c.models) - 1
	}

	return i
}

// Lookup returns the model called name.
func (c *Catalog) Lookup(name string) (Model, error) {
	i, err := c.Index(name)
	if err != nil {
		return Model{}, err
	}

	return c.models[i], nil
}

// Index returns the position of the model called name.
func (c *Catalog) Index(name string) (int, error) {
	i, ok := c.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}

	return i, nil
}

// Names returns the model names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.models))
	for i, m := range c.models {
		names[i] = m.Name
	}

	return names
}

var defaultParameters = []struct {
	name string
	p    Parameters
}{
	{"Peerless HDSP830860", Parameters{Fs: 72.0, Rec: 6.4, Lec: 0.278e-3, Qms: 2.08, Qes: 0.725, Qts: 0.54, Mms: 8.88e-3, Cms: 560e-6, Bl: 5.74, Vas: 6.36e-3, Sd: 89.9e-4}},
	{"Peerless Klippel", Parameters{Fs: 65.5, Rec: 7.00, Lec: 0.515e-3, Qms: 2.82, Qes: 0.921, Qts: 0.694, Mms: 10.0e-3, Cms: 595e-6, Bl: 5.594, Vas: 6.36e-3, Sd: 89.9e-4}},
	{"Dayton RS150-4", Parameters{Fs: 45.1, Rec: 3.1, Lec: 0.34e-3, Qms: 1.96, Qes: 0.40, Qts: 0.33, Mms: 7.7e-3, Cms: 1.62e-3, Bl: 4.1, Vas: 16.4e-3, Sd: 85.0e-4}},
	{"Dayton HARB252-8", Parameters{Fs: 172.11, Rec: 7.2, Lec: 0.09e-3, Qms: 4.23, Qes: 2.98, Qts: 1.74, Mms: 3.2e-3, Cms: 0.3e-3, Bl: 3.04, Vas: 0.19e-3, Sd: 21.2e-4}},
	{"Dayton DCS165-4", Parameters{Fs: 35.7, Rec: 3.4, Lec: 1.43e-3, Qms: 6.62, Qes: 0.36, Qts: 0.34, Mms: 39.5e-3, Cms: 0.5e-3, Bl: 9.15, Vas: 12.1e-3, Sd: 124.7e-4}},
	{"B&C 15FW76-4", Parameters{Fs: 42.0, Rec: 3.0, Lec: 1.04e-3, Qms: 3.20, Qes: 0.18, Qts: 0.17, Mms: 113e-3, Cms: 131e-6, Bl: 22.44, Vas: 0.135, Sd: 855e-4}},
	{"SB 10PGC21-4", Parameters{Fs: 89.0, Rec: 3.4, Lec: 0.15e-3, Qms: 11.2, Qes: 1.01, Qts: 0.92, Mms: 2.8e-3, Cms: 1.14e-3, Bl: 2.3, Vas: 1.2e-3, Sd: 27e-4}},
}

// DefaultCatalog returns the built-in drivers. Each call returns a new
// catalog.
func DefaultCatalog() *Catalog {
	models := make([]Model, 0, len(defaultParameters))
	for _, d := range defaultParameters {
		m, err := NewModel(d.name, d.p)
		if err != nil {
			panic(err)
		}

		models = append(models, m)
	}

	c, err := NewCatalog(models...)
	if err != nil {
		panic(err)
	}

	return c
}
