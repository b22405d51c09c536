// Package schemas holds the JSON Schemas for the files the extractor writes.
package schemas

import _ "embed"

// ExtractedRecord is the schema of <document-id>_extracted_info.json.
//
//go:embed extracted_record.schema.json
var ExtractedRecord []byte
