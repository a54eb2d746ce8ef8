// Package vcf provides streaming VCF file parsing.
package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads records from an annotated VCF file.
type Parser struct {
	reader      *bufio.Reader
	file        *os.File
	gzipReader  *gzip.Reader
	lineNumber  int
	header      []string
	sampleNames []string
	infoDesc    map[string]string
}

// NewParser creates a new VCF parser for the given file.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}

	_, err = file.Seek(0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	// Gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{
		reader: bufio.NewReader(r),
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads and stores header lines up to and including #CHROM.
func (p *Parser) parseHeader() error {
	p.infoDesc = make(map[string]string)
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			p.header = append(p.header, line)
			if id, desc, ok := parseInfoHeader(line); ok {
				p.infoDesc[id] = desc
			}
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			p.header = append(p.header, line)
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				p.sampleNames = fields[9:]
			}
			return nil
		}

		return &ParseError{
			Line:    p.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &ParseError{
		Line:    p.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// parseInfoHeader extracts the ID and Description of one ##INFO line.
func parseInfoHeader(line string) (id, desc string, ok bool) {
	if !strings.HasPrefix(line, "##INFO=<") {
		return "", "", false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(line, "##INFO=<"), ">")

	if idx := strings.Index(body, "ID="); idx >= 0 {
		rest := body[idx+3:]
		if end := strings.IndexByte(rest, ','); end >= 0 {
			id = rest[:end]
		} else {
			id = rest
		}
	}
	if idx := strings.Index(body, `Description="`); idx >= 0 {
		rest := body[idx+len(`Description="`):]
		if end := strings.IndexByte(rest, '"'); end >= 0 {
			desc = rest[:end]
		}
	}
	return id, desc, id != ""
}

// CSQFields returns the pipe-separated field names announced in the CSQ
// INFO Description, or nil when the file carries no VEP annotation.
func (p *Parser) CSQFields() []string {
	desc, ok := p.infoDesc["CSQ"]
	if !ok {
		return nil
	}
	// VEP writes "Consequence annotations from Ensembl VEP. Format: a|b|c"
	if idx := strings.Index(desc, "Format: "); idx >= 0 {
		desc = desc[idx+len("Format: "):]
	}
	return strings.Split(desc, "|")
}

// RankResultCategories returns the sub-score names announced in the
// RankResult INFO Description.
func (p *Parser) RankResultCategories() []string {
	desc, ok := p.infoDesc["RankResult"]
	if !ok {
		return nil
	}
	if idx := strings.Index(desc, ":"); idx >= 0 {
		desc = desc[idx+1:]
	}
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil
	}
	return strings.Split(desc, "|")
}

// Next reads the next record from the VCF file.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		// A final record without a trailing newline is still a record.
		if line == "" {
			return nil, nil
		}
	}
	p.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return p.Next() // Skip empty lines
	}

	return p.parseLine(line)
}

// parseLine parses a single VCF data line into a Record.
func (p *Parser) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	r := &Record{
		Chrom:  fields[0],
		Pos:    pos,
		ID:     fields[2],
		Ref:    fields[3],
		Alt:    fields[4],
		Filter: fields[6],
		Info:   parseInfo(fields[7]),
	}

	if fields[5] != "." {
		qual, err := strconv.ParseFloat(fields[5], 64)
		if err == nil {
			r.Qual = &qual
		}
	}

	if len(fields) > 8 {
		r.Format = strings.Split(fields[8], ":")
		for _, sample := range fields[9:] {
			r.Samples = append(r.Samples, strings.Split(sample, ":"))
		}
	}

	return r, nil
}

// parseInfo parses the INFO field into a map. Flag-type entries map to
// an empty string; Has distinguishes them from missing keys.
func parseInfo(info string) map[string]string {
	result := make(map[string]string)
	if info == "." {
		return result
	}

	for _, kv := range strings.Split(info, ";") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		} else {
			result[parts[0]] = ""
		}
	}

	return result
}

// Header returns the raw VCF header lines.
func (p *Parser) Header() []string {
	return p.header
}

// SampleNames returns sample names from the #CHROM header line.
func (p *Parser) SampleNames() []string {
	return p.sampleNames
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
