// Package event builds calendar event drafts from upstream listing items.
//
// The builder merges the listings API fields with a scraped description into a
// draft ready for calendar insertion: a summary, a joined location string, a
// start/end window emitted either as whole dates (all-day) or zoned timestamps,
// and a composed multi-section description. Items without a usable start
// timestamp are rejected with a ValidationError so the caller can skip them
// without aborting the batch.
package event
