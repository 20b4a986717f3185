package tabfile

// =============================================================================
// Formats
// =============================================================================

// Format names the encoding of a table file.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// =============================================================================
// File - Table Description
// =============================================================================

// File is the decoded form of a table file.
type File struct {
	Table   Settings `toml:"table" json:"table"`
	Columns []Column `toml:"columns" json:"columns"`
	Rows    []Row    `toml:"rows" json:"rows"`
	Groups  []Group  `toml:"groups" json:"groups,omitempty"`
}

// Settings are the table-wide options. A positive Width makes the table
// interactive, fitted to that width.
type Settings struct {
	Width     int     `toml:"width" json:"width,omitempty"`
	Separator *string `toml:"separator" json:"separator,omitempty"` // nil keeps the default single space
	MaxOut    bool    `toml:"maxout" json:"maxout,omitempty"`
	NoWrap    bool    `toml:"nowrap" json:"nowrap,omitempty"`
	ASCII     bool    `toml:"ascii" json:"ascii,omitempty"`
}

// Column describes one column.
type Column struct {
	Name  string   `toml:"name" json:"name"`
	Hint  float64  `toml:"hint" json:"hint,omitempty"`
	Flags []string `toml:"flags" json:"flags,omitempty"`
	Min   int      `toml:"min" json:"min,omitempty"` // explicit minimum width
}

// Row describes one row. Cells are keyed by column name.
type Row struct {
	ID     string            `toml:"id" json:"id,omitempty"`
	Parent string            `toml:"parent" json:"parent,omitempty"`
	Cells  map[string]string `toml:"cells" json:"cells,omitempty"`
}

// Group describes a run of rows that belong together.
type Group struct {
	Name    string   `toml:"name" json:"name"`
	Members []string `toml:"members" json:"members"`
	Open    bool     `toml:"open" json:"open,omitempty"` // never closed
}
