package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"glasscat/internal/logging"
	"glasscat/internal/material"
)

// Record codes understood by the parser.
const (
	codeComment      = "CC"
	codeName         = "NM"
	codeGlassComment = "GC"
	codeExtraData    = "ED"
	codeCoefficients = "CD"
	codeThermal      = "TD"
	codeOtherData    = "OD"
	codeLambdaRange  = "LD"
	codeTransmission = "IT"
)

const maxLineBytes = 1 << 20

// Report summarizes one parse.
type Report struct {
	Source string
	// Lines counts non-blank lines.
	Lines int
	// Applied counts lines that changed the catalog.
	Applied int
	// Ignored counts well-formed lines that carry no stored data (LD).
	Ignored int
	Skipped []*LineError
}

// ParseFile opens path and parses it. A file that cannot be opened is
// reported as ErrSourceUnavailable; bad lines inside it are not errors.
func ParseFile(path string, logger *slog.Logger) (*Catalog, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{Source: path}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	cat, report, err := parse(f, path, logger)
	if err != nil {
		return nil, report, err
	}
	cat.Source = path
	return cat, report, nil
}

// Parse reads an AGF stream. UTF-8 and UTF-16 input with a byte order mark
// are both accepted. The error is non-nil only when reading r fails.
func Parse(r io.Reader, logger *slog.Logger) (*Catalog, Report, error) {
	return parse(r, "", logger)
}

func parse(r io.Reader, source string, logger *slog.Logger) (*Catalog, Report, error) {
	logger = logging.NewComponentLogger(logger, "catalog")
	if source != "" {
		logger = logger.With(logging.String(logging.FieldSource, source))
	}

	b := &builder{cat: New(""), logger: logger}
	report := Report{Source: source}

	scanner := bufio.NewScanner(decodeSource(r))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		code, args, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}
		report.Lines++

		applied, err := b.apply(code, args)
		if err != nil {
			lineErr := &LineError{Line: lineNo, Command: code, Args: args, Err: err}
			report.Skipped = append(report.Skipped, lineErr)
			b.logSkipped(lineErr)
			continue
		}
		if applied {
			report.Applied++
		} else {
			report.Ignored++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, report, fmt.Errorf("read catalog: %w", err)
	}
	b.commit()

	logger.Debug("catalog parsed",
		logging.String(logging.FieldCatalog, b.cat.Name),
		logging.Int("material_count", b.cat.Len()),
		logging.Int("line_count", report.Lines),
		logging.Int("skipped_count", len(report.Skipped)))

	return b.cat, report, nil
}

func decodeSource(r io.Reader) io.Reader {
	return transform.NewReader(r, xunicode.BOMOverride(xunicode.UTF8.NewDecoder()))
}

// splitLine separates the record code from its argument text. Blank lines
// report ok=false.
func splitLine(line string) (code, args string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", false
	}
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, "", true
	}
	return line[:idx], strings.TrimSpace(line[idx:]), true
}

// builder holds the in-progress material between NM records.
type builder struct {
	cat     *Catalog
	current *material.Material
	logger  *slog.Logger
}

// apply mutates the builder for one line. It reports whether the line
// carried stored data.
func (b *builder) apply(code, args string) (bool, error) {
	switch code {
	case codeComment:
		b.cat.Name = args
		return true, nil
	case codeName:
		return true, b.startMaterial(args)
	case codeLambdaRange:
		// Parsed for validation only.
		if _, err := parseFloats(args); err != nil {
			return false, err
		}
		return false, nil
	case codeGlassComment, codeExtraData, codeCoefficients, codeThermal, codeOtherData, codeTransmission:
		if b.current == nil {
			return false, ErrNoCurrentMaterial
		}
		return true, b.applyMaterialLine(code, args)
	default:
		return false, ErrUnrecognizedCommand
	}
}

func (b *builder) startMaterial(args string) error {
	b.commit()

	fields := strings.Fields(args)
	if len(fields) < 5 {
		return malformed("NM needs at least 5 fields, got %d", len(fields))
	}
	glassCode, err := parseFloat(fields[2])
	if err != nil {
		return err
	}
	nd, err := parseFloat(fields[3])
	if err != nil {
		return err
	}
	vd, err := parseFloat(fields[4])
	if err != nil {
		return err
	}

	b.current = &material.Material{
		Name:         fields[0],
		Kind:         material.KindSellmeier,
		Solid:        true,
		GlassCode:    glassCode,
		ND:           nd,
		VD:           vd,
		Transmission: make(map[material.TransmissionKey]float64),
	}
	return nil
}

func (b *builder) applyMaterialLine(code, args string) error {
	m := b.current
	switch code {
	case codeGlassComment:
		m.Comment = args
		return nil
	case codeOtherData:
		return applyOtherData(m, args)
	}

	values, err := parseFloats(args)
	if err != nil {
		return err
	}
	switch code {
	case codeExtraData:
		if len(values) < 3 {
			return malformed("ED needs at least 3 values, got %d", len(values))
		}
		m.AlphaM3070, m.Alpha20300, m.Density = values[0], values[1], values[2]
	case codeCoefficients:
		if len(values)%2 != 0 {
			return malformed("CD needs coefficient pairs, got %d values", len(values))
		}
		terms := make([]material.Term, 0, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			terms = append(terms, material.Term{Coefficient: values[i], Pole: values[i+1]})
		}
		m.Sellmeier = material.FilterTerms(terms)
	case codeThermal:
		m.Thermal = values
	case codeTransmission:
		if len(values) < 3 {
			return malformed("IT needs 3 values, got %d", len(values))
		}
		m.Transmission[material.TransmissionKey{Wavelength: values[0], Thickness: values[2]}] = values[1]
	}
	return nil
}

// applyOtherData reads the price and chemical resistance figures. A "-"
// token means unknown: a nil price or a NaN figure.
func applyOtherData(m *material.Material, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return malformed("OD needs a price field")
	}

	var price *float64
	if fields[0] != "-" {
		value, err := parseFloat(fields[0])
		if err != nil {
			return err
		}
		price = &value
	}

	chemical := make([]float64, 0, len(fields)-1)
	for _, field := range fields[1:] {
		if field == "-" {
			chemical = append(chemical, math.NaN())
			continue
		}
		value, err := parseFloat(field)
		if err != nil {
			return err
		}
		chemical = append(chemical, value)
	}

	m.Price = price
	m.Chemical = chemical
	return nil
}

func (b *builder) commit() {
	if b.current == nil {
		return
	}
	b.cat.Add(b.current)
	b.current = nil
}

func (b *builder) logSkipped(lineErr *LineError) {
	attrs := []logging.Attr{
		logging.Int(logging.FieldLine, lineErr.Line),
		logging.String(logging.FieldCommand, lineErr.Command),
		logging.String("args", lineErr.Args),
		logging.Error(lineErr.Err),
	}
	if b.current != nil {
		attrs = append(attrs, logging.String(logging.FieldMaterial, b.current.Name))
	}

	if errors.Is(lineErr.Err, ErrUnrecognizedCommand) {
		b.logger.Debug("catalog line not handled", logging.Args(attrs...)...)
		return
	}
	logging.WarnWithContext(b.logger, "catalog line skipped", "catalog_line_skipped",
		append(attrs,
			logging.String(logging.FieldErrorHint, "correct the line in the catalog source"),
			logging.String(logging.FieldImpact, "data from this line is missing from the material"),
		)...)
}

func parseFloat(token string) (float64, error) {
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, malformed("%q is not a number", token)
	}
	return value, nil
}

func parseFloats(args string) ([]float64, error) {
	fields := strings.Fields(args)
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := parseFloat(field)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
