package component

import "strings"

// spaceEntities maps each common HTML space entity to a byte-length-
// preserving sentinel (two private-use-area runes, 3 bytes each in UTF-8 —
// matching the 6-byte length of "&ensp;"/"&emsp;"/"&nbsp;") so the
// substitution never shifts any later byte offset, per Variant A's
// "pre-replace ... to prevent regex interference" step.
const (
	sentinelEnsp = ""
	sentinelEmsp = ""
	sentinelNbsp = ""
)

var spaceEntities = map[string]string{
	"&ensp;": sentinelEnsp,
	"&emsp;": sentinelEmsp,
	"&nbsp;": sentinelNbsp,
}

var sentinelToEntity = map[string]string{
	sentinelEnsp: "&ensp;",
	sentinelEmsp: "&emsp;",
	sentinelNbsp: "&nbsp;",
}

func applySentinels(s string) string {
	for entity, sentinel := range spaceEntities {
		s = strings.ReplaceAll(s, entity, sentinel)
	}
	return s
}

// restoreSentinels reverses applySentinels on a reported text field.
func restoreSentinels(s string) string {
	for sentinel, entity := range sentinelToEntity {
		s = strings.ReplaceAll(s, sentinel, entity)
	}
	return s
}
