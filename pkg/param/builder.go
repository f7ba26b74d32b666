package param

// Builder provides a fluent API for creating parameters.
type Builder struct {
	param        *Parameter
	plainDefault float64
}

// New creates a new parameter builder.
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:        id,
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
			Skew:      1,
		},
	}
}

// ShortName sets the short name.
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Range sets the plain min and max values.
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Skewed sets a skew exponent for the normalized-to-plain mapping.
// Exponents below 1 give more normalized resolution to the low end of
// the range, which suits frequency-like parameters.
func (b *Builder) Skewed(skew float64) *Builder {
	if skew > 0 {
		b.param.Skew = skew
	}
	return b
}

// Default sets the default value (in the plain range, not normalized).
func (b *Builder) Default(value float64) *Builder {
	b.plainDefault = value
	return b
}

// Unit sets the unit string.
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps sets the number of discrete steps for a list parameter.
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

// Smoothing sets the recommended smoothing time in seconds.
func (b *Builder) Smoothing(seconds float64) *Builder {
	b.param.Smoothing = seconds
	return b
}

// Build returns the configured parameter, initialized to its default.
func (b *Builder) Build() *Parameter {
	b.param.DefaultValue = b.param.Normalize(b.plainDefault)
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}
