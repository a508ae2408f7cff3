// Package schema validates loosely typed documents before they are decoded
// into Go structs.
//
// A Schema maps field names to Types. Validate walks the fields in name order
// and collects every failure into an *AggregateError, so a caller can report
// all problems of a document at once:
//
//	s := schema.Schema{
//	    "states":      schema.Slice(schema.String()),
//	    "transitions": schema.Map(schema.String()),
//	    "alphabet":    schema.Optional(schema.Slice(schema.String())),
//	}
//
//	var doc map[string]any
//	_ = json.Unmarshal(data, &doc)
//	if err := schema.Validate(s, doc); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// The package has no dependencies beyond the standard library.
package schema
