package codegen

// Helpers names the runtime helper functions the generated code calls.
type Helpers struct {
	Assign  string `toml:"assign"`
	Sample  string `toml:"sample"`
	ToInt   string `toml:"to_int"`
	AsBool  string `toml:"as_bool"`
	ToFloat string `toml:"to_float"`
}

// Options controls how statements are rendered. It is passed explicitly to
// the generator; nothing here is package state.
type Options struct {
	// IndentUnit is the text for one nesting level.
	IndentUnit string `toml:"indent_unit"`

	// EmitLineMarkers precedes every numbered statement with
	// `# current_statement_begin__ = <line>`.
	EmitLineMarkers bool `toml:"emit_line_markers"`

	// LogDensityVar is the accumulator truncation corrections are added to.
	LogDensityVar string `toml:"log_density_var"`

	Helpers Helpers `toml:"helpers"`
}

func DefaultOptions() Options {
	return Options{
		IndentUnit:    "    ",
		LogDensityVar: "log_density",
		Helpers: Helpers{
			Assign:  "_pyro_assign",
			Sample:  "_pyro_sample",
			ToInt:   "to_int",
			AsBool:  "as_bool",
			ToFloat: "to_float",
		},
	}
}

// WithDefaults returns a copy of o with every empty field taken from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	orDefault(&o.IndentUnit, d.IndentUnit)
	orDefault(&o.LogDensityVar, d.LogDensityVar)
	orDefault(&o.Helpers.Assign, d.Helpers.Assign)
	orDefault(&o.Helpers.Sample, d.Helpers.Sample)
	orDefault(&o.Helpers.ToInt, d.Helpers.ToInt)
	orDefault(&o.Helpers.AsBool, d.Helpers.AsBool)
	orDefault(&o.Helpers.ToFloat, d.Helpers.ToFloat)
	return o
}

func orDefault(s *string, def string) {
	if *s == "" {
		*s = def
	}
}
