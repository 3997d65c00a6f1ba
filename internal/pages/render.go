package pages

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"github.com/swiftgg/docmigrate/internal/anchors"
)

//go:embed render.schema.json
var renderSchemaJSON string

var renderSchema = jsonschema.MustCompileString("render.schema.json", renderSchemaJSON)

// ParseRenderJSON extracts anchors from a render JSON page of the new build.
// Every item of every primary content section carrying an "anchor" string
// yields one record, in document order.
func ParseRenderJSON(page string, data []byte) ([]anchors.PageAnchor, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", page, err)
	}
	if err := renderSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%s: unexpected render JSON layout: %w", page, err)
	}

	var out []anchors.PageAnchor
	gjson.GetBytes(data, "primaryContentSections").ForEach(func(_, section gjson.Result) bool {
		section.Get("content").ForEach(func(_, item gjson.Result) bool {
			if a := item.Get("anchor"); a.Type == gjson.String && a.Str != "" {
				out = append(out, anchors.PageAnchor{Page: page, Anchor: a.Str})
			}
			return true
		})
		return true
	})
	return out, nil
}
