package searchselect

import (
	"fmt"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"stockhub/internal/ui/logic"
)

// Defaults applied by New to zero-valued Config fields
const (
	DefaultPlaceholder = "Select option"
	DefaultDisplayKey  = "name"
	DefaultValueKey    = "id"
	DefaultMaxVisible  = 6
	DefaultWidth       = 40

	// NoOptionsText is shown in the open panel when nothing matches
	NoOptionsText = "No options found"
	// SearchPlaceholder is shown in the empty search box
	SearchPlaceholder = "Search options..."
)

// Config describes one select. Everything except the keys is presentation.
//
// Zero values are replaced by defaults: Placeholder "Select option",
// DisplayKey "name", ValueKey "id", SearchKeys [DisplayKey],
// MatchMode "substring", MaxVisible 6, Width 40 and a generated ID.
type Config struct {
	// ID prefixes the mouse zones of the select; unique per screen
	ID string

	Label       string
	Placeholder string
	// Required only adds a marker next to the label
	Required bool

	DisplayKey string   `validate:"required"`
	ValueKey   string   `validate:"required"`
	SearchKeys []string `validate:"min=1,dive,required"`
	// DetailKey, when set, is rendered as a second line under each row
	DetailKey string

	MatchMode  string `validate:"omitempty,oneof=substring fuzzy"`
	MaxVisible int    `validate:"gte=1"`
	Width      int    `validate:"gte=12"`
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	idSeq    atomic.Uint64
)

// withDefaults returns a copy of c with defaults filled in
func (c Config) withDefaults() Config {
	if c.ID == "" {
		c.ID = fmt.Sprintf("select-%d", idSeq.Add(1))
	}
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	if c.DisplayKey == "" {
		c.DisplayKey = DefaultDisplayKey
	}
	if c.ValueKey == "" {
		c.ValueKey = DefaultValueKey
	}
	if len(c.SearchKeys) == 0 {
		c.SearchKeys = []string{c.DisplayKey}
	} else {
		keys := make([]string, len(c.SearchKeys))
		copy(keys, c.SearchKeys)
		c.SearchKeys = keys
	}
	if c.MatchMode == "" {
		c.MatchMode = logic.MatchSubstring.String()
	}
	if c.MaxVisible == 0 {
		c.MaxVisible = DefaultMaxVisible
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	return c
}

// Resolved returns c with defaults filled in
func (c Config) Resolved() Config {
	return c.withDefaults()
}

// Validate applies defaults and checks the result
func (c Config) Validate() error {
	d := c.withDefaults()
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid select config %q: %w", d.ID, err)
	}
	return nil
}

func (c Config) matchMode() logic.MatchMode {
	mode, err := logic.ParseMatchMode(c.MatchMode)
	if err != nil {
		return logic.MatchSubstring
	}
	return mode
}
