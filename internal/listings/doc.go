// Package listings consumes the NYC for Free public listings API.
//
// The upstream API is loosely typed: field names vary, timestamps live either at
// the top level or under a structured-content sub-object, and the response body
// is sometimes a bare JSON array and sometimes a wrapper object. This package
// performs all of that key probing once, at the boundary, and hands the rest of
// the pipeline a typed Item with explicit optional fields.
package listings
