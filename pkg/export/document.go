// Package export turns a playground snapshot into files: the JSON/YAML
// configuration document, a markdown report, and SVG/PNG renderings of the
// nested shapes.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
	"github.com/Dicklesworthstone/radius_viewer/pkg/version"
)

// TokenRef is a token as written into the export document.
type TokenRef struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

func refOf(t tokens.Token) TokenRef {
	return TokenRef{Name: t.Name, Value: t.Px()}
}

// Meta describes when and by which format version a document was written.
type Meta struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Version   string `json:"version" yaml:"version"`
}

// Level4Doc is the molecular container entry.
type Level4Doc struct {
	Padding                TokenRef `json:"padding" yaml:"padding"`
	CalculatedBorderRadius string   `json:"calculatedBorderRadius" yaml:"calculatedBorderRadius"`
}

// Level3Doc is the interactive control entry; it carries the inputs.
type Level3Doc struct {
	BorderRadius           TokenRef `json:"borderRadius" yaml:"borderRadius"`
	Padding                TokenRef `json:"padding" yaml:"padding"`
	Size                   string   `json:"size" yaml:"size"`
	CalculatedBorderRadius string   `json:"calculatedBorderRadius" yaml:"calculatedBorderRadius"`
}

// Level2Doc is the small primitive entry.
type Level2Doc struct {
	Padding                TokenRef `json:"padding" yaml:"padding"`
	CalculatedBorderRadius string   `json:"calculatedBorderRadius" yaml:"calculatedBorderRadius"`
}

// Level1Doc is the atom entry.
type Level1Doc struct {
	CalculatedBorderRadius string `json:"calculatedBorderRadius" yaml:"calculatedBorderRadius"`
}

// Document is the exported configuration. Field order matches the
// playground's download: configuration, then level4 down to level1.
type Document struct {
	Configuration Meta      `json:"configuration" yaml:"configuration"`
	Level4        Level4Doc `json:"level4" yaml:"level4"`
	Level3        Level3Doc `json:"level3" yaml:"level3"`
	Level2        Level2Doc `json:"level2" yaml:"level2"`
	Level1        Level1Doc `json:"level1" yaml:"level1"`
}

// NewDocument builds the export document for a snapshot. Radii are written
// as pixel strings; the circular sentinel is written as its pixel value.
func NewDocument(s model.Snapshot, now time.Time) Document {
	return Document{
		Configuration: Meta{
			Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z"),
			Version:   version.ExportFormat,
		},
		Level4: Level4Doc{
			Padding:                refOf(s.OuterPadding),
			CalculatedBorderRadius: tokens.Format(s.Levels.Level4),
		},
		Level3: Level3Doc{
			BorderRadius:           refOf(s.Radius),
			Padding:                refOf(s.Padding),
			Size:                   tokens.Format(s.Config.Size),
			CalculatedBorderRadius: tokens.Format(s.Levels.Level3),
		},
		Level2: Level2Doc{
			Padding:                refOf(s.ChildPadding),
			CalculatedBorderRadius: tokens.Format(s.Levels.Level2),
		},
		Level1: Level1Doc{
			CalculatedBorderRadius: tokens.Format(s.Levels.Level1),
		},
	}
}

// Radius returns the calculated radius string of a level.
func (d Document) Radius(l model.Level) string {
	switch l {
	case model.Level1:
		return d.Level1.CalculatedBorderRadius
	case model.Level2:
		return d.Level2.CalculatedBorderRadius
	case model.Level3:
		return d.Level3.CalculatedBorderRadius
	case model.Level4:
		return d.Level4.CalculatedBorderRadius
	}
	return ""
}

// EncodeJSON encodes the document with two-space indentation.
func (d Document) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML encodes the document as YAML with two-space indentation.
func (d Document) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName returns the download name used by the playground,
// border-radius-config-<unix millis>.<ext>.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("border-radius-config-%d.%s", now.UnixMilli(), ext)
}
