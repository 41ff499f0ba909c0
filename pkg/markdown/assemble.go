package markdown

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-argdoc/pkg/optspec"
)

// TableHeader returns the header line and separator line shared by every
// category table, each terminated by a newline.
func TableHeader() string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, h := range Headers {
		sb.WriteString(" " + h + " |")
	}
	sb.WriteString("\n|")
	for range Headers {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	return sb.String()
}

// Assemble renders every category, in order, as a setext heading followed by
// its option table and a blank line. Categories without a well-formed options
// mapping produce an empty table.
func Assemble(spec optspec.CategorySpec, opts ...Option) (string, error) {
	cfg := NewOptions(opts...)
	header := TableHeader()

	var sb strings.Builder
	for _, cat := range spec {
		sb.WriteString(cat.Name)
		sb.WriteString("\n---\n\n")
		sb.WriteString(header)

		rows, err := categoryRows(cat, cfg)
		if err != nil {
			return "", err
		}
		for _, row := range rows {
			sb.WriteString(row.String())
			sb.WriteByte('\n')
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func categoryRows(cat optspec.Category, cfg Options) ([]Row, error) {
	switch cat.OptionsShape {
	case optspec.ShapeMapping:
		rows, err := Flatten(cat.Options, "", withOptions(cfg))
		if err != nil {
			return nil, fmt.Errorf("markdown: category %q: %w", cat.Name, err)
		}
		return rows, nil
	case optspec.ShapeMalformed:
		err := fmt.Errorf("markdown: category %q options: %w", cat.Name, optspec.ErrMalformedOptions)
		if cfg.Strict {
			return nil, err
		}
		if cfg.OnMalformed != nil {
			cfg.OnMalformed(cat.Name, err)
		}
	}
	return nil, nil
}

func withOptions(src Options) Option {
	return func(dst *Options) {
		*dst = src
	}
}
