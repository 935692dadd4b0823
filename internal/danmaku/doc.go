// Package danmaku models timed comment records and parses the XML comment
// streams served per episode.
//
// A Record is immutable once parsed: timestamp offset into the episode audio,
// the platform-assigned author identifier, the rendered color code, and the
// raw comment text. Malformed entries are dropped at parse time; a wholly
// unparseable stream yields an empty slice so downstream classification
// naturally treats the episode as contributing nothing.
package danmaku
