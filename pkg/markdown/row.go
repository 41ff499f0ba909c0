package markdown

import (
	"strings"

	"github.com/goliatone/go-argdoc/pkg/optspec"
)

// Column positions within a Row.
const (
	ColumnVariable = iota
	ColumnType
	ColumnRequired
	ColumnChoices
	ColumnDefault
	ColumnDescription

	ColumnCount
)

// Headers are the table column titles in Row order.
var Headers = [ColumnCount]string{"Variable", "Type", "Required", "Choices", "Default", "Description"}

// DescriptionSeparator joins multi-line descriptions into a single cell.
const DescriptionSeparator = " <br />"

// Row is one flattened option rendered as table cells.
type Row struct {
	Path  string
	Cells [ColumnCount]string
}

// String renders the row as a Markdown table line without the trailing
// newline. Every cell is written as "| content " and the line is closed with
// "|", so empty cells collapse to "| ".
func (r Row) String() string {
	var sb strings.Builder
	for _, cell := range r.Cells {
		sb.WriteString("| ")
		if cell != "" {
			sb.WriteString(cell)
			sb.WriteByte(' ')
		}
	}
	sb.WriteString("|")
	return sb.String()
}

// NewRow builds the row for opt located at path.
func NewRow(path string, opt optspec.OptionSpec) Row {
	row := Row{Path: path}
	row.Cells[ColumnVariable] = path
	row.Cells[ColumnType] = typeCell(opt.Type)
	row.Cells[ColumnRequired] = scalarCell(opt.Required)
	row.Cells[ColumnChoices] = choicesCell(opt.Choices)
	row.Cells[ColumnDefault] = scalarCell(opt.Default)
	row.Cells[ColumnDescription] = descriptionCell(opt.Description)
	return row
}

// JoinPath appends key to the dotted parent path.
func JoinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func code(s string) string {
	return "`" + s + "`"
}

func typeCell(v optspec.Value) string {
	if !v.Present() {
		return ""
	}
	return code(strings.ToLower(v.String()))
}

func scalarCell(v optspec.Value) string {
	if !v.Present() {
		return ""
	}
	return code(v.String())
}

func choicesCell(v optspec.Value) string {
	if !v.Present() {
		return ""
	}
	return code(strings.Join(v.Strings(), "`, `"))
}

func descriptionCell(v optspec.Value) string {
	switch v.Kind {
	case optspec.KindAbsent:
		return ""
	case optspec.KindSequence:
		return strings.Join(v.Strings(), DescriptionSeparator)
	default:
		return v.String()
	}
}
