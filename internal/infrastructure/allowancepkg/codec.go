// Package allowancepkg lee y escribe paquetes de dotación: un tar.gz con un manifiesto
// (allowance.yaml) y las filas de requerimiento (requirements.yaml).
package allowancepkg

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/allowance"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FormatVersion versión del formato de paquete que escribe este codec.
const FormatVersion = 1

// Nombres de las entradas dentro del tar.
const (
	ManifestFile     = "allowance.yaml"
	RequirementsFile = "requirements.yaml"
)

// maxEntrySize límite por entrada para no descomprimir sin control.
const maxEntrySize = 16 << 20

var _ allowance.PackageCodec = Codec{}

// ErrMissingManifest el paquete no contiene allowance.yaml.
var ErrMissingManifest = errors.New("allowancepkg: falta " + ManifestFile)

// Codec implementación tar.gz + YAML de allowance.PackageCodec.
type Codec struct{}

type manifestYAML struct {
	Format     int       `yaml:"format"`
	Name       string    `yaml:"name"`
	Author     string    `yaml:"author"`
	Version    int       `yaml:"version"`
	Date       time.Time `yaml:"date"`
	Additional bool      `yaml:"additional"`
}

type rowYAML struct {
	Domain   string `yaml:"domain"`
	BaseKind string `yaml:"base_kind"`
	Name     string `yaml:"name"`
	Group    string `yaml:"group,omitempty"`
	Quantity string `yaml:"quantity"`
}

type requirementsYAML struct {
	Requirements []rowYAML `yaml:"requirements"`
}

// Encode escribe el paquete comprimido en w.
func (Codec) Encode(w io.Writer, p *allowance.Package) error {
	if p == nil {
		return errors.New("allowancepkg: paquete nil")
	}
	manifest, err := yaml.Marshal(manifestYAML{
		Format:     FormatVersion,
		Name:       p.Manifest.Name,
		Author:     p.Manifest.Author,
		Version:    p.Manifest.Version,
		Date:       p.Manifest.Date.UTC(),
		Additional: p.Manifest.Additional,
	})
	if err != nil {
		return fmt.Errorf("allowancepkg: manifiesto: %w", err)
	}
	reqs := requirementsYAML{Requirements: make([]rowYAML, 0, len(p.Requirements))}
	for _, r := range p.Requirements {
		reqs.Requirements = append(reqs.Requirements, rowYAML{
			Domain:   r.Domain,
			BaseKind: r.BaseKind,
			Name:     r.Name,
			Group:    r.Group,
			Quantity: r.Quantity.String(),
		})
	}
	rows, err := yaml.Marshal(reqs)
	if err != nil {
		return fmt.Errorf("allowancepkg: requerimientos: %w", err)
	}

	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)
	modTime := p.Manifest.Date
	if modTime.IsZero() {
		modTime = time.Now()
	}
	for _, e := range []struct {
		name string
		body []byte
	}{{ManifestFile, manifest}, {RequirementsFile, rows}} {
		hdr := &tar.Header{
			Name:     e.name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(e.body)),
			ModTime:  modTime,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("allowancepkg: cabecera %s: %w", e.name, err)
		}
		if _, err := tw.Write(e.body); err != nil {
			return fmt.Errorf("allowancepkg: escribir %s: %w", e.name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("allowancepkg: cerrar tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("allowancepkg: cerrar gzip: %w", err)
	}
	return nil
}

// Decode lee un paquete. Las entradas desconocidas se ignoran.
func (Codec) Decode(r io.Reader) (*allowance.Package, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("allowancepkg: gzip: %w", err)
	}
	defer gz.Close()

	var manifestRaw, rowsRaw []byte
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("allowancepkg: tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		switch path.Base(path.Clean(hdr.Name)) {
		case ManifestFile:
			manifestRaw, err = readEntry(tr, hdr)
		case RequirementsFile:
			rowsRaw, err = readEntry(tr, hdr)
		}
		if err != nil {
			return nil, err
		}
	}
	if manifestRaw == nil {
		return nil, ErrMissingManifest
	}

	var m manifestYAML
	if err := yaml.Unmarshal(manifestRaw, &m); err != nil {
		return nil, fmt.Errorf("allowancepkg: %s: %w", ManifestFile, err)
	}
	if m.Format > FormatVersion {
		return nil, fmt.Errorf("allowancepkg: formato %d no soportado", m.Format)
	}

	p := &allowance.Package{Manifest: allowance.Manifest{
		Name:       m.Name,
		Author:     m.Author,
		Version:    m.Version,
		Date:       m.Date,
		Additional: m.Additional,
	}}
	if rowsRaw == nil {
		return p, nil
	}
	var reqs requirementsYAML
	if err := yaml.Unmarshal(rowsRaw, &reqs); err != nil {
		return nil, fmt.Errorf("allowancepkg: %s: %w", RequirementsFile, err)
	}
	for i, row := range reqs.Requirements {
		q, err := decimal.NewFromString(row.Quantity)
		if err != nil {
			return nil, fmt.Errorf("allowancepkg: fila %d: cantidad %q: %w", i+1, row.Quantity, err)
		}
		p.Requirements = append(p.Requirements, allowance.PackageRow{
			Domain:   row.Domain,
			BaseKind: row.BaseKind,
			Name:     row.Name,
			Group:    row.Group,
			Quantity: q,
		})
	}
	return p, nil
}

func readEntry(tr *tar.Reader, hdr *tar.Header) ([]byte, error) {
	if hdr.Size > maxEntrySize {
		return nil, fmt.Errorf("allowancepkg: %s demasiado grande (%d bytes)", hdr.Name, hdr.Size)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(tr, maxEntrySize)); err != nil {
		return nil, fmt.Errorf("allowancepkg: leer %s: %w", hdr.Name, err)
	}
	return buf.Bytes(), nil
}
