package sounding

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadCSV parses a sounding from CSV. The dialect:
//
//	# name: ridge-line-07       optional metadata comments
//	# array: schlumberger
//	spacing,rhoa,stddev         optional header row
//	1.0,98.2,0.05               data: 2 or 3 numeric columns
//
// When no "# array:" line is present the array defaults to Schlumberger.
// Mixing rows with and without a stddev column is rejected, as are files
// with fewer than two data rows.
func ReadCSV(r io.Reader) (*Sounding, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	s := &Sounding{}
	sawData := false
	sawStdDev := false
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCSV, line, err)
		}
		if len(rec) > 0 && strings.HasPrefix(rec[0], "#") {
			readMeta(s, strings.Join(rec, ","))
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64); err != nil {
			if sawData {
				return nil, fmt.Errorf("%w: line %d: non-numeric %q", ErrCSV, line, rec[0])
			}
			// Header row.
			continue
		}
		if len(rec) != 2 && len(rec) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 2 or 3 columns, got %d", ErrCSV, line, len(rec))
		}
		vals := make([]float64, len(rec))
		for i, f := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrCSV, line, i+1, f)
			}
			vals[i] = v
		}
		if sawData && (len(rec) == 3) != sawStdDev {
			return nil, fmt.Errorf("%w: line %d: inconsistent stddev column", ErrCSV, line)
		}
		sawData, sawStdDev = true, len(rec) == 3
		s.Spacing = append(s.Spacing, vals[0])
		s.Rhoa = append(s.Rhoa, vals[1])
		if len(vals) == 3 {
			s.StdDev = append(s.StdDev, vals[2])
		}
	}
	// A real sounding curve has many points; a lone data row is almost
	// always a truncated or misparsed file.
	if len(s.Spacing) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 data rows, got %d", ErrCSV, len(s.Spacing))
	}
	if s.Array == 0 {
		s.Array = Schlumberger
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// readMeta parses a "# key: value" comment; unknown keys are ignored.
func readMeta(s *Sounding, comment string) {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "#"))
	key, val, ok := strings.Cut(body, ":")
	if !ok {
		return
	}
	val = strings.TrimSpace(val)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "name":
		s.Name = val
	case "array":
		if a, err := ParseArray(val); err == nil {
			s.Array = a
		}
	}
}

// WriteCSV writes the sounding in the dialect ReadCSV accepts, including
// metadata comments and a header row.
func (s *Sounding) WriteCSV(w io.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Name != "" {
		if _, err := fmt.Fprintf(w, "# name: %s\n", s.Name); err != nil {
			return fmt.Errorf("sounding: write csv: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "# array: %s\n", s.Array); err != nil {
		return fmt.Errorf("sounding: write csv: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"spacing", "rhoa"}
	if s.HasStdDev() {
		header = append(header, "stddev")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("sounding: write csv: %w", err)
	}
	for i := range s.Spacing {
		rec := []string{
			strconv.FormatFloat(s.Spacing[i], 'g', -1, 64),
			strconv.FormatFloat(s.Rhoa[i], 'g', -1, 64),
		}
		if s.HasStdDev() {
			rec = append(rec, strconv.FormatFloat(s.StdDev[i], 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("sounding: write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("sounding: write csv: %w", err)
	}
	return nil
}

// LoadFile reads a sounding from a CSV file.
func LoadFile(path string) (*Sounding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sounding: open %s: %w", path, err)
	}
	defer f.Close()
	s, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// SaveFile writes the sounding to a CSV file, overwriting any previous
// contents.
func (s *Sounding) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sounding: create %s: %w", path, err)
	}
	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sounding: close %s: %w", path, err)
	}
	return nil
}
